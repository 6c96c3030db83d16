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
	"github.com/prodesignco/apparel-shop/internal/transport"
)

const (
	recentOrdersLimit = 10
	defaultPerPage    = 20
	maxPerPage        = 100
)

type AdminService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type Dashboard struct {
	Stats        *repo.DashboardStats `json:"stats"`
	RecentOrders []models.Order       `json:"recent_orders"`
}

func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.Repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.Repo.RecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Stats: stats, RecentOrders: recent}, nil
}

type OrderPage struct {
	Orders      []transport.OrderResponse `json:"orders"`
	Total       int64                     `json:"total"`
	Pages       int64                     `json:"pages"`
	CurrentPage int                       `json:"current_page"`
}

func (s *AdminService) ListOrders(ctx context.Context, status string, page, perPage int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, orders, err := s.Repo.ListOrders(ctx, status, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:      transport.NewOrderResponses(orders),
		Total:       total,
		Pages:       (total + int64(perPage) - 1) / int64(perPage),
		CurrentPage: page,
	}, nil
}

// UpdateOrderStatus is a partial update; any status string is accepted, the
// admin console is trusted to know the lifecycle.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, id uint, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		order.PaymentStatus = *req.PaymentStatus
	}

	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *AdminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListAllProducts(ctx)
}

func (s *AdminService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrValidation)
	}
	if req.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base_price cannot be negative", ErrValidation)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	for _, v := range req.Variants {
		variant := models.ProductVariant{
			Size:          v.Size,
			Color:         v.Color,
			StockQuantity: 100,
			SKU:           v.SKU,
		}
		if variant.Color == "" {
			variant.Color = "Black"
		}
		if v.StockQuantity != nil {
			variant.StockQuantity = *v.StockQuantity
		}
		product.Variants = append(product.Variants, variant)
	}

	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	s.publishProduct(ctx, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return &product, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, fmt.Errorf("%w: base_price cannot be negative", ErrValidation)
		}
		product.BasePrice = *req.BasePrice
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.publishProduct(ctx, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return product, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	s.publishProduct(ctx, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return nil
}

func (s *AdminService) ListCustomOrders(ctx context.Context, status string) ([]models.CustomOrder, error) {
	return s.Repo.ListCustomOrders(ctx, status)
}

func (s *AdminService) UpdateCustomOrder(ctx context.Context, id uint, req transport.UpdateCustomOrderRequest) (*models.CustomOrder, error) {
	co, err := s.Repo.GetCustomOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: custom order %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Status != nil {
		co.Status = *req.Status
	}
	if req.AdminNotes != nil {
		co.AdminNotes = *req.AdminNotes
	}

	if err := s.Repo.SaveCustomOrder(ctx, co); err != nil {
		return nil, err
	}
	return co, nil
}

func (s *AdminService) ListCustomers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListCustomers(ctx)
}

func (s *AdminService) publishProduct(ctx context.Context, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicProductEvents, fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", mykafka.TopicProductEvents, "error", err)
	}
}
