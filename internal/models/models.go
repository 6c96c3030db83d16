package models

import (
	"time"
)

// Order lifecycle. No transition graph is enforced, matching the admin
// console's free-form status edits.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	CustomOrderStatusPendingApproval = "pending_approval"
	CustomOrderStatusApproved        = "approved"
	CustomOrderStatusInProduction    = "in_production"
	CustomOrderStatusCompleted       = "completed"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsAdmin      bool      `gorm:"default:false"            json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"not null"                 json:"name"`
	Description string           `json:"description"`
	Category    string           `gorm:"not null;index"           json:"category"`
	BasePrice   float64          `gorm:"not null"                 json:"base_price"`
	ImageURL    string           `json:"image_url"`
	IsActive    bool             `gorm:"default:true"             json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
}

type ProductVariant struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint   `gorm:"not null;index"           json:"product_id"`
	Size          string `gorm:"not null"                 json:"size"`
	Color         string `gorm:"default:Black"            json:"color"`
	StockQuantity int    `gorm:"default:100"              json:"stock_quantity"`
	SKU           string `gorm:"unique"                   json:"sku"`
}

type Order struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      *uint  `gorm:"index"                    json:"user_id"`
	OrderNumber string `gorm:"unique;not null"          json:"order_number"`
	Status      string `gorm:"not null;default:pending" json:"status"`

	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `gorm:"not null" json:"total"`

	PaymentStatus   string `gorm:"not null;default:pending" json:"payment_status"`
	PaymentIntentID string `gorm:"index"                    json:"payment_intent_id"`

	// Opaque serialized JSON blobs, rendered back to the client by the
	// transport layer.
	ShippingAddress string `gorm:"type:text" json:"-"`
	BillingAddress  string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint  `gorm:"not null;index"           json:"order_id"`
	ProductID uint  `gorm:"not null"                 json:"product_id"`
	VariantID *uint `json:"variant_id"`

	Quantity int `gorm:"not null;default:1;check:quantity>0" json:"quantity"`

	// Snapshot of the product's base price at order time, never recomputed.
	PriceAtPurchase float64 `gorm:"not null" json:"price_at_purchase"`

	CustomText     string `gorm:"type:text" json:"custom_text"`
	CustomImageURL string `json:"custom_image_url"`
	CustomNotes    string `gorm:"type:text" json:"custom_notes"`
}

type CustomOrder struct {
	ID      uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  *uint `gorm:"index"                    json:"user_id"`
	OrderID *uint `json:"order_id"`

	DesignType  string `json:"design_type"`
	DesignData  string `gorm:"type:text" json:"design_data"`
	FrontDesign string `json:"front_design"`
	BackDesign  string `json:"back_design"`
	Notes       string `gorm:"type:text" json:"notes"`

	Status     string `gorm:"not null;default:pending_approval" json:"status"`
	AdminNotes string `gorm:"type:text" json:"admin_notes"`

	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
