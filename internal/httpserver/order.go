package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodesignco/apparel-shop/internal/logging"
	authmw "github.com/prodesignco/apparel-shop/internal/middleware/auth"
	"github.com/prodesignco/apparel-shop/internal/service"
	"github.com/prodesignco/apparel-shop/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req, authmw.IdentityFrom(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("create_order_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	l.Info("create_order_success", "order_number", order.OrderNumber)
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "order created",
		"order":   transport.NewOrderResponse(order),
	})
}

func (h *OrderHTTP) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_user_orders")

	caller := authmw.IdentityFrom(c)
	orders, err := h.Svc.GetUserOrders(ctx, caller)
	if err != nil {
		l.Error("get_user_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, map[string]any{"orders": transport.NewOrderResponses(orders)})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseIDParam(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not an integer")
	}

	order, err := h.Svc.GetOrder(ctx, id, authmw.IdentityFrom(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		if errors.Is(err, service.ErrForbidden) {
			l.Warn("get_order_error", "status", 403, "reason", "not the order owner", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	return c.JSON(http.StatusOK, transport.NewOrderResponse(order))
}

func (h *OrderHTTP) TrackOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.track_order")

	id, err := parseIDParam(c)
	if err != nil {
		l.Warn("track_order_error", "status", 400, "reason", "id not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not an integer")
	}

	info, err := h.Svc.TrackOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("track_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("track_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot track order")
	}

	return c.JSON(http.StatusOK, info)
}

func (h *OrderHTTP) RequestCustomQuote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.custom_quote")

	var req transport.CustomQuoteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("custom_quote_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	quote, err := h.Svc.RequestCustomQuote(ctx, req, authmw.IdentityFrom(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("custom_quote_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("custom_quote_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create quote request")
	}

	l.Info("custom_quote_success", "custom_order_id", quote.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"message":      "quote request received",
		"custom_order": quote,
	})
}
