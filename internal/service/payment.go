package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/logging"
	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/mykafka"
	"github.com/prodesignco/apparel-shop/internal/payments"
	"github.com/prodesignco/apparel-shop/internal/repo"
)

// Processor minimum charge, in cents.
const minIntentAmountCents = 50

type PaymentService struct {
	Repo           *repo.GormRepo
	Provider       payments.Provider
	Producer       *mykafka.Producer
	PublishableKey string
}

type IntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (s *PaymentService) CreateIntent(ctx context.Context, amountDollars float64, customerEmail, customerName string) (*IntentResult, error) {
	amountCents := int64(math.Round(amountDollars * 100))
	if amountCents < minIntentAmountCents {
		return nil, fmt.Errorf("%w: amount must be at least $0.50", ErrValidation)
	}

	intent, err := s.Provider.CreateIntent(ctx, amountCents, map[string]string{
		"customer_email": customerEmail,
		"customer_name":  customerName,
	})
	if err != nil {
		return nil, err
	}

	return &IntentResult{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

// ConfirmPayment attaches the intent to the order and maps the processor's
// authoritative status onto it. When the processor cannot be reached (most
// commonly placeholder test credentials), the payment is assumed to have
// succeeded so that local checkout flows complete; this is a development
// fallback and must not survive into a production deployment unchanged.
func (s *PaymentService) ConfirmPayment(ctx context.Context, intentID string, orderID uint) (*models.Order, string, error) {
	if intentID == "" || orderID == 0 {
		return nil, "", fmt.Errorf("%w: payment_intent_id and order_id are required", ErrValidation)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, "", err
	}

	order.PaymentIntentID = intentID

	status := payments.IntentStatusSucceeded
	if intent, err := s.Provider.GetIntent(ctx, intentID); err != nil {
		logging.FromContext(ctx).Warn("payment provider unreachable, assuming success",
			"intent_id", intentID, "error", err)
	} else {
		status = intent.Status
	}

	applyIntentStatus(order, status)

	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, "", err
	}

	s.publish(ctx, order.OrderNumber, map[string]any{
		"type":           "payment_confirmed",
		"order_id":       order.ID,
		"intent_id":      intentID,
		"payment_status": order.PaymentStatus,
	})

	return order, status, nil
}

// HandleWebhook applies asynchronous processor notifications. Unknown event
// types and unknown intents are acknowledged silently; failing them would only
// make the processor retry forever.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.Provider.VerifyWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch event.Type {
	case payments.EventIntentSucceeded:
		return s.applyWebhook(ctx, event.IntentID, payments.IntentStatusSucceeded)
	case payments.EventIntentFailed:
		return s.applyWebhook(ctx, event.IntentID, payments.IntentStatusRequiresPaymentMethod)
	default:
		logging.FromContext(ctx).Info("ignoring webhook event", "type", event.Type)
		return nil
	}
}

func (s *PaymentService) applyWebhook(ctx context.Context, intentID, status string) error {
	order, err := s.Repo.GetOrderByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Warn("webhook for unknown intent", "intent_id", intentID)
			return nil
		}
		return err
	}

	applyIntentStatus(order, status)
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return err
	}

	s.publish(ctx, order.OrderNumber, map[string]any{
		"type":           "payment_webhook_applied",
		"order_id":       order.ID,
		"intent_id":      intentID,
		"payment_status": order.PaymentStatus,
	})

	return nil
}

func (s *PaymentService) PublicConfig() map[string]string {
	return map[string]string{"publishableKey": s.PublishableKey}
}

func applyIntentStatus(order *models.Order, status string) {
	switch status {
	case payments.IntentStatusSucceeded:
		order.PaymentStatus = models.PaymentStatusPaid
		order.Status = models.OrderStatusProcessing
	case payments.IntentStatusRequiresPaymentMethod:
		order.PaymentStatus = models.PaymentStatusFailed
	default:
		order.PaymentStatus = models.PaymentStatusPending
	}
}

func (s *PaymentService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicPaymentEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", mykafka.TopicPaymentEvents, "error", err)
	}
}
