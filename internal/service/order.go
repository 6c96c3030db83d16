package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/logging"
	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/mykafka"
	"github.com/prodesignco/apparel-shop/internal/repo"
	"github.com/prodesignco/apparel-shop/internal/tokens"
	"github.com/prodesignco/apparel-shop/internal/transport"
)

const (
	TaxRate               = 0.08
	FreeShippingThreshold = 100.00
	FlatShippingRate      = 10.00
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// CreateOrder prices the cart against current base prices and persists the
// order with its items atomically. A missing product fails the whole request
// before anything is written.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest, caller *tokens.Identity) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, it := range req.Items {
		if it.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}

		product, err := s.Repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
			}
			return nil, err
		}

		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		subtotal += product.BasePrice * float64(qty)

		items = append(items, models.OrderItem{
			ProductID:       product.ID,
			VariantID:       it.VariantID,
			Quantity:        qty,
			PriceAtPurchase: product.BasePrice,
			CustomText:      it.CustomText,
			CustomImageURL:  it.CustomImageURL,
			CustomNotes:     it.CustomNotes,
		})
	}

	tax := subtotal * TaxRate
	shipping := 0.0
	if subtotal < FreeShippingThreshold {
		shipping = FlatShippingRate
	}

	order := &models.Order{
		OrderNumber:     models.NewOrderNumber(),
		Status:          models.OrderStatusPending,
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shipping,
		Total:           subtotal + tax + shipping,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: string(req.ShippingAddress),
		BillingAddress:  string(req.BillingAddress),
		Items:           items,
	}
	if caller != nil {
		order.UserID = &caller.UserID
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, mykafka.TopicOrderEvents, order.OrderNumber, map[string]any{
		"type":         "order_created",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, caller *tokens.Identity) ([]models.Order, error) {
	return s.Repo.ListUserOrders(ctx, caller.UserID)
}

// GetOrder is a public read, except that an order owned by a user may only be
// read by that user or an admin.
func (s *OrderService) GetOrder(ctx context.Context, id uint, caller *tokens.Identity) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	if order.UserID != nil && caller != nil && caller.UserID != *order.UserID && !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: order %d belongs to another user", ErrForbidden, id)
	}

	return order, nil
}

type TrackingInfo struct {
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TrackOrder exposes status and timestamps only, with no ownership check:
// guests track orders by id from their confirmation page.
func (s *OrderService) TrackOrder(ctx context.Context, id uint) (*TrackingInfo, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	return &TrackingInfo{
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}, nil
}

func (s *OrderService) RequestCustomQuote(ctx context.Context, req transport.CustomQuoteRequest, caller *tokens.Identity) (*models.CustomOrder, error) {
	co := &models.CustomOrder{
		DesignType:   req.DesignType,
		DesignData:   string(req.DesignData),
		FrontDesign:  req.FrontDesign,
		BackDesign:   req.BackDesign,
		Notes:        req.Notes,
		Status:       models.CustomOrderStatusPendingApproval,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if caller != nil {
		co.UserID = &caller.UserID
	}

	if err := s.Repo.CreateCustomOrder(ctx, co); err != nil {
		return nil, err
	}

	s.publish(ctx, mykafka.TopicOrderEvents, fmt.Sprint(co.ID), map[string]any{
		"type":            "custom_quote_requested",
		"custom_order_id": co.ID,
		"design_type":     co.DesignType,
	})

	return co, nil
}

func (s *OrderService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
