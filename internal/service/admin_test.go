package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/mykafka"
	"github.com/prodesignco/apparel-shop/internal/transport"
)

func newAdminService(t *testing.T) *AdminService {
	t.Helper()
	return &AdminService{Repo: newTestRepo(t), Producer: &mykafka.Producer{}}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)
	orderSvc := &OrderService{Repo: svc.Repo, Producer: &mykafka.Producer{}}

	product := seedProduct(t, svc.Repo, "Classic Black Tee", 25.00)

	require.NoError(t, svc.Repo.CreateUser(ctx, &models.User{Email: "c1@example.com", PasswordHash: "x"}))
	require.NoError(t, svc.Repo.CreateUser(ctx, &models.User{Email: "admin@example.com", PasswordHash: "x", IsAdmin: true}))

	paid, err := orderSvc.CreateOrder(ctx, transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
	}, nil)
	require.NoError(t, err)
	paid.PaymentStatus = models.PaymentStatusPaid
	require.NoError(t, svc.Repo.SaveOrder(ctx, paid))

	_, err = orderSvc.CreateOrder(ctx, transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	}, nil)
	require.NoError(t, err)

	_, err = orderSvc.RequestCustomQuote(ctx, transport.CustomQuoteRequest{DesignType: "tshirt"}, nil)
	require.NoError(t, err)

	dash, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, dash.Stats.TotalOrders)
	assert.InDelta(t, paid.Total, dash.Stats.TotalRevenue, 0.001)
	assert.EqualValues(t, 1, dash.Stats.TotalCustomers, "admins are not customers")
	assert.EqualValues(t, 1, dash.Stats.TotalProducts)
	assert.EqualValues(t, 2, dash.Stats.PendingOrders)
	assert.EqualValues(t, 1, dash.Stats.PendingCustomOrders)
	assert.Len(t, dash.RecentOrders, 2)
}

func TestAdminListOrdersPagination(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)
	orderSvc := &OrderService{Repo: svc.Repo, Producer: &mykafka.Producer{}}
	product := seedProduct(t, svc.Repo, "Classic Black Tee", 25.00)

	for i := 0; i < 5; i++ {
		_, err := orderSvc.CreateOrder(ctx, transport.CreateOrderRequest{
			Items: []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		}, nil)
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.EqualValues(t, 3, page.Pages)
	assert.Len(t, page.Orders, 2)

	last, err := svc.ListOrders(ctx, "", 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Orders, 1)

	none, err := svc.ListOrders(ctx, models.OrderStatusShipped, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, none.Total)
}

func TestUpdateOrderStatusPartial(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)
	orderSvc := &OrderService{Repo: svc.Repo, Producer: &mykafka.Producer{}}
	product := seedProduct(t, svc.Repo, "Classic Black Tee", 25.00)

	order, err := orderSvc.CreateOrder(ctx, transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(ctx, order.ID, transport.UpdateOrderStatusRequest{
		Status: strPtr(models.OrderStatusShipped),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus, "payment status untouched")

	_, err = svc.UpdateOrderStatus(ctx, 9999, transport.UpdateOrderStatusRequest{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdminCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)

	product, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Name:      "Performance Tee",
		Category:  "tshirt",
		BasePrice: 32.00,
		Variants: []transport.VariantInput{
			{Size: "M", SKU: "PERFORMANCE-TEE-M-BLK"},
			{Size: "L", SKU: "PERFORMANCE-TEE-L-BLK", Color: "White", StockQuantity: intPtr(25)},
		},
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	require.Len(t, product.Variants, 2)
	assert.Equal(t, "Black", product.Variants[0].Color)
	assert.Equal(t, 100, product.Variants[0].StockQuantity)
	assert.Equal(t, "White", product.Variants[1].Color)
	assert.Equal(t, 25, product.Variants[1].StockQuantity)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "", Category: "tshirt"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Name: "X", Category: "tshirt", BasePrice: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAdminUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)
	product := seedProduct(t, svc.Repo, "Classic Black Tee", 25.00)

	updated, err := svc.UpdateProduct(ctx, product.ID, transport.UpdateProductRequest{
		BasePrice: floatPtr(27.50),
		IsActive:  boolPtr(false),
	})
	require.NoError(t, err)
	assert.InDelta(t, 27.50, updated.BasePrice, 0.001)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Classic Black Tee", updated.Name, "unset fields keep their values")

	_, err = svc.UpdateProduct(ctx, product.ID, transport.UpdateProductRequest{BasePrice: floatPtr(-5)})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProduct(ctx, 9999, transport.UpdateProductRequest{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdminDeleteProductCascadesVariants(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)
	product := seedProduct(t, svc.Repo, "Classic Black Tee", 25.00)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	var variants int64
	require.NoError(t, svc.Repo.DB.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variants).Error)
	assert.Zero(t, variants)

	require.ErrorIs(t, svc.DeleteProduct(ctx, product.ID), ErrNotFound)
}

func TestUpdateCustomOrder(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)
	orderSvc := &OrderService{Repo: svc.Repo, Producer: &mykafka.Producer{}}

	quote, err := orderSvc.RequestCustomQuote(ctx, transport.CustomQuoteRequest{DesignType: "hoodie"}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateCustomOrder(ctx, quote.ID, transport.UpdateCustomOrderRequest{
		Status:     strPtr(models.CustomOrderStatusApproved),
		AdminNotes: strPtr("quoted at $450 for 20 units"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomOrderStatusApproved, updated.Status)
	assert.Equal(t, "quoted at $450 for 20 units", updated.AdminNotes)

	_, err = svc.UpdateCustomOrder(ctx, 9999, transport.UpdateCustomOrderRequest{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListCustomersExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	svc := newAdminService(t)

	require.NoError(t, svc.Repo.CreateUser(ctx, &models.User{Email: "c1@example.com", PasswordHash: "x"}))
	require.NoError(t, svc.Repo.CreateUser(ctx, &models.User{Email: "admin@example.com", PasswordHash: "x", IsAdmin: true}))

	customers, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "c1@example.com", customers[0].Email)
}
