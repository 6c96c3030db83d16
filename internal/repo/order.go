package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/models"
)

const orderNumberRetries = 5

// CreateOrder persists an order and its items atomically. The order number is
// re-generated a few times if another order already holds it; random
// collisions are vanishingly rare but cheap to rule out here.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < orderNumberRetries; i++ {
			var taken int64
			if err := tx.Model(&models.Order{}).
				Where("order_number = ?", order.OrderNumber).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken == 0 {
				break
			}
			order.OrderNumber = models.NewOrderNumber()
		}
		return tx.Create(order).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("payment_intent_id = ?", intentID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

// DeleteOrder removes an order and its items. The items are deleted
// explicitly rather than relying on database-level cascade, so the behavior
// holds on backends without foreign-key enforcement.
func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *GormRepo) CreateCustomOrder(ctx context.Context, co *models.CustomOrder) error {
	return r.DB.WithContext(ctx).Create(co).Error
}

func (r *GormRepo) GetCustomOrder(ctx context.Context, id uint) (*models.CustomOrder, error) {
	co := models.CustomOrder{}
	if err := r.DB.WithContext(ctx).First(&co, id).Error; err != nil {
		return nil, err
	}
	return &co, nil
}

func (r *GormRepo) SaveCustomOrder(ctx context.Context, co *models.CustomOrder) error {
	return r.DB.WithContext(ctx).Save(co).Error
}
