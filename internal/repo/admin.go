package repo

import (
	"context"

	"github.com/prodesignco/apparel-shop/internal/models"
)

type DashboardStats struct {
	TotalOrders         int64   `json:"total_orders"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalCustomers      int64   `json:"total_customers"`
	TotalProducts       int64   `json:"total_products"`
	PendingOrders       int64   `json:"pending_orders"`
	PendingCustomOrders int64   `json:"pending_custom_orders"`
}

// GetDashboardStats aggregates the admin dashboard counters in one pass.
// Revenue sums paid orders only.
func (r *GormRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := r.DB.WithContext(ctx)
	stats := DashboardStats{}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).
		Where("is_admin = ?", false).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.CustomOrder{}).
		Where("status = ?", models.CustomOrderStatusPendingApproval).
		Count(&stats.PendingCustomOrders).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *GormRepo) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders returns one page of orders, newest first, optionally filtered by
// status, along with the unpaginated total.
func (r *GormRepo) ListOrders(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}

	return total, orders, nil
}

func (r *GormRepo) ListCustomOrders(ctx context.Context, status string) ([]models.CustomOrder, error) {
	q := r.DB.WithContext(ctx).Model(&models.CustomOrder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var customOrders []models.CustomOrder
	if err := q.Order("created_at DESC").Find(&customOrders).Error; err != nil {
		return nil, err
	}
	return customOrders, nil
}

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).
		Where("is_admin = ?", false).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
