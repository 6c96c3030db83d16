package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/mykafka"
	"github.com/prodesignco/apparel-shop/internal/payments"
	"github.com/prodesignco/apparel-shop/internal/transport"
)

type fakeProvider struct {
	createErr    error
	getErr       error
	intentStatus string
	webhookEvent *payments.WebhookEvent
	webhookErr   error

	lastAmountCents int64
}

func (f *fakeProvider) CreateIntent(_ context.Context, amountCents int64, _ map[string]string) (*payments.Intent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastAmountCents = amountCents
	return &payments.Intent{ID: "pi_test_123", ClientSecret: "pi_test_123_secret", Status: f.intentStatus}, nil
}

func (f *fakeProvider) GetIntent(_ context.Context, id string) (*payments.Intent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &payments.Intent{ID: id, Status: f.intentStatus}, nil
}

func (f *fakeProvider) VerifyWebhook(_ []byte, _ string) (*payments.WebhookEvent, error) {
	if f.webhookErr != nil {
		return nil, f.webhookErr
	}
	return f.webhookEvent, nil
}

func newPaymentService(t *testing.T, provider payments.Provider) *PaymentService {
	t.Helper()
	return &PaymentService{
		Repo:           newTestRepo(t),
		Provider:       provider,
		Producer:       &mykafka.Producer{},
		PublishableKey: "pk_test_placeholder",
	}
}

func placeOrder(t *testing.T, svc *PaymentService) *models.Order {
	t.Helper()

	product := seedProduct(t, svc.Repo, "Classic Black Tee", 25.00)
	orderSvc := &OrderService{Repo: svc.Repo, Producer: &mykafka.Producer{}}
	order, err := orderSvc.CreateOrder(context.Background(), transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	}, nil)
	require.NoError(t, err)
	return order
}

func TestCreateIntentConvertsDollarsToCents(t *testing.T) {
	provider := &fakeProvider{intentStatus: "requires_confirmation"}
	svc := newPaymentService(t, provider)

	res, err := svc.CreateIntent(context.Background(), 91.00, "guest@example.com", "Guest")
	require.NoError(t, err)
	assert.Equal(t, int64(9100), provider.lastAmountCents)
	assert.Equal(t, "pi_test_123", res.PaymentIntentID)
	assert.Equal(t, "pi_test_123_secret", res.ClientSecret)
}

func TestCreateIntentRejectsBelowMinimum(t *testing.T) {
	svc := newPaymentService(t, &fakeProvider{})

	_, err := svc.CreateIntent(context.Background(), 0.49, "", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestConfirmPaymentSucceeded(t *testing.T) {
	ctx := context.Background()
	svc := newPaymentService(t, &fakeProvider{intentStatus: payments.IntentStatusSucceeded})
	order := placeOrder(t, svc)

	updated, status, err := svc.ConfirmPayment(ctx, "pi_test_123", order.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.IntentStatusSucceeded, status)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.Equal(t, "pi_test_123", updated.PaymentIntentID)
}

func TestConfirmPaymentDeclined(t *testing.T) {
	ctx := context.Background()
	svc := newPaymentService(t, &fakeProvider{intentStatus: payments.IntentStatusRequiresPaymentMethod})
	order := placeOrder(t, svc)

	updated, _, err := svc.ConfirmPayment(ctx, "pi_test_123", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, updated.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestConfirmPaymentProviderUnreachableAssumesSuccess(t *testing.T) {
	ctx := context.Background()
	svc := newPaymentService(t, &fakeProvider{getErr: errors.New("connection refused")})
	order := placeOrder(t, svc)

	updated, _, err := svc.ConfirmPayment(ctx, "pi_test_123", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
}

func TestConfirmPaymentValidation(t *testing.T) {
	ctx := context.Background()
	svc := newPaymentService(t, &fakeProvider{})

	_, _, err := svc.ConfirmPayment(ctx, "", 1)
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.ConfirmPayment(ctx, "pi_test_123", 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHandleWebhookSucceeded(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{
		webhookEvent: &payments.WebhookEvent{Type: payments.EventIntentSucceeded, IntentID: "pi_hook"},
	}
	svc := newPaymentService(t, provider)
	order := placeOrder(t, svc)

	order.PaymentIntentID = "pi_hook"
	require.NoError(t, svc.Repo.SaveOrder(ctx, order))

	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	stored, err := svc.Repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, stored.Status)
}

func TestHandleWebhookFailed(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{
		webhookEvent: &payments.WebhookEvent{Type: payments.EventIntentFailed, IntentID: "pi_hook"},
	}
	svc := newPaymentService(t, provider)
	order := placeOrder(t, svc)

	order.PaymentIntentID = "pi_hook"
	require.NoError(t, svc.Repo.SaveOrder(ctx, order))

	require.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "sig"))

	stored, err := svc.Repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
}

func TestHandleWebhookBadSignature(t *testing.T) {
	svc := newPaymentService(t, &fakeProvider{webhookErr: errors.New("signature mismatch")})

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad")
	require.ErrorIs(t, err, ErrValidation)
}

func TestHandleWebhookUnknownIntentIsAcknowledged(t *testing.T) {
	provider := &fakeProvider{
		webhookEvent: &payments.WebhookEvent{Type: payments.EventIntentSucceeded, IntentID: "pi_nobody"},
	}
	svc := newPaymentService(t, provider)

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
}

func TestHandleWebhookIgnoresUnknownEventTypes(t *testing.T) {
	provider := &fakeProvider{
		webhookEvent: &payments.WebhookEvent{Type: "charge.refund.updated", IntentID: "pi_hook"},
	}
	svc := newPaymentService(t, provider)

	require.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
}

func TestPublicConfig(t *testing.T) {
	svc := newPaymentService(t, &fakeProvider{})
	assert.Equal(t, map[string]string{"publishableKey": "pk_test_placeholder"}, svc.PublicConfig())
}
