package payments

import "context"

// Intent statuses the order flow cares about. Anything else is treated as
// still pending.
const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
)

const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

type WebhookEvent struct {
	Type     string
	IntentID string
}

// Provider abstracts the external payment processor so the payment service
// and its tests never touch the SDK directly.
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
