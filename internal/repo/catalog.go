package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/models"
)

// ListActiveProducts returns active products, optionally narrowed to an exact
// category ("all" and "" mean no filter) and a case-insensitive substring
// match on the name.
func (r *GormRepo) ListActiveProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var products []models.Product
	if err := q.Preload("Variants").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Preload("Variants").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	if err := r.DB.WithContext(ctx).First(&models.Product{}, productID).Error; err != nil {
		return nil, err
	}

	var variants []models.ProductVariant
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// ListCategories returns the distinct categories of active products.
func (r *GormRepo) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAllProducts includes inactive products, for the admin console.
func (r *GormRepo) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Preload("Variants").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct persists a product together with any variants attached to it,
// in one transaction.
func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

// DeleteProduct removes a product and its variants.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}
