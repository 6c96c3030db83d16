package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prodesignco/apparel-shop/internal/logging"
	"github.com/prodesignco/apparel-shop/internal/service"
	"github.com/prodesignco/apparel-shop/internal/transport"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create_intent")

	var req transport.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_intent_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.CreateIntent(ctx, req.Amount, req.CustomerEmail, req.CustomerName)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_intent_error", "status", 400, "reason", "invalid amount", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		// Past validation the only failure source is the payment provider,
		// which the client can correct or retry.
		l.Warn("create_intent_error", "status", 400, "reason", "provider rejected intent", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot create payment intent")
	}

	l.Info("create_intent_success", "intent_id", res.PaymentIntentID)
	return c.JSON(http.StatusOK, res)
}

func (h *PaymentHTTP) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.confirm_payment")

	var req transport.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("confirm_payment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, status, err := h.Svc.ConfirmPayment(ctx, req.PaymentIntentID, req.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("confirm_payment_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("confirm_payment_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("confirm_payment_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot confirm payment")
	}

	l.Info("confirm_payment_success", "order_number", order.OrderNumber, "intent_status", status)
	return c.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"order":          transport.NewOrderResponse(order),
		"payment_status": status,
	})
}

func (h *PaymentHTTP) Webhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.webhook")

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("webhook_error", "status", 400, "reason", "cannot read body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.Svc.HandleWebhook(ctx, payload, signature); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("webhook_error", "status", 400, "reason", "signature verification failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
		}
		l.Error("webhook_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot process webhook")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func (h *PaymentHTTP) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.PublicConfig())
}
