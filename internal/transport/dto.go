package transport

import (
	"encoding/json"

	"github.com/prodesignco/apparel-shop/internal/models"
)

type CreateOrderItem struct {
	ProductID      uint   `json:"product_id"`
	VariantID      *uint  `json:"variant_id"`
	Quantity       int    `json:"quantity"`
	CustomText     string `json:"custom_text"`
	CustomImageURL string `json:"custom_image_url"`
	CustomNotes    string `json:"custom_notes"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	ShippingAddress json.RawMessage   `json:"shipping_address"`
	BillingAddress  json.RawMessage   `json:"billing_address"`
}

type CustomQuoteRequest struct {
	DesignType   string          `json:"design_type"`
	DesignData   json.RawMessage `json:"design_data"`
	FrontDesign  string          `json:"front_design"`
	BackDesign   string          `json:"back_design"`
	Notes        string          `json:"notes"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone"`
}

type CreateIntentRequest struct {
	Amount        float64 `json:"amount"`
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	OrderID         uint   `json:"order_id"`
}

type UpdateOrderStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

type VariantInput struct {
	Size          string `json:"size"`
	Color         string `json:"color"`
	StockQuantity *int   `json:"stock_quantity"`
	SKU           string `json:"sku"`
}

type CreateProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	BasePrice   float64        `json:"base_price"`
	ImageURL    string         `json:"image_url"`
	IsActive    *bool          `json:"is_active"`
	Variants    []VariantInput `json:"variants"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	BasePrice   *float64 `json:"base_price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateCustomOrderRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OrderResponse renders an order with its address blobs parsed back into JSON
// objects. Blobs that fail to parse are omitted rather than leaked as strings.
type OrderResponse struct {
	models.Order
	ShippingAddress json.RawMessage `json:"shipping_address,omitempty"`
	BillingAddress  json.RawMessage `json:"billing_address,omitempty"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		Order:           *o,
		ShippingAddress: rawJSON(o.ShippingAddress),
		BillingAddress:  rawJSON(o.BillingAddress),
	}
}

func NewOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

func rawJSON(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}
