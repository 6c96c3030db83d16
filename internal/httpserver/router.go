package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/prodesignco/apparel-shop/internal/middleware/auth"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	PaymentHandler *PaymentHTTP
	AdminHandler   *AdminHTTP
	AuthHandler    *AuthHTTP
	Auth           *authmw.BearerAuth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.GET("/auth/me", d.AuthHandler.Me, d.Auth.RequireAuth)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/categories", d.CatalogHandler.ListCategories)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.GET("/:id/variants", d.CatalogHandler.GetVariants)

	orders := api.Group("/orders")
	orders.GET("", d.OrderHandler.GetUserOrders, d.Auth.RequireAuth)
	orders.POST("/create", d.OrderHandler.CreateOrder, d.Auth.OptionalAuth)
	orders.POST("/custom-quote", d.OrderHandler.RequestCustomQuote, d.Auth.OptionalAuth)
	orders.GET("/:id", d.OrderHandler.GetOrder, d.Auth.OptionalAuth)
	orders.GET("/:id/track", d.OrderHandler.TrackOrder)

	payment := api.Group("/payment")
	payment.POST("/create-payment-intent", d.PaymentHandler.CreateIntent)
	payment.POST("/confirm-payment", d.PaymentHandler.ConfirmPayment)
	payment.POST("/webhook", d.PaymentHandler.Webhook)
	payment.GET("/config", d.PaymentHandler.Config)

	admin := api.Group("/admin", d.Auth.RequireAdmin)
	admin.GET("/dashboard", d.AdminHandler.GetDashboard)
	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.PUT("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
	admin.GET("/products", d.AdminHandler.ListProducts)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", d.AdminHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)
	admin.GET("/custom-orders", d.AdminHandler.ListCustomOrders)
	admin.PUT("/custom-orders/:id", d.AdminHandler.UpdateCustomOrder)
	admin.GET("/customers", d.AdminHandler.ListCustomers)
}
