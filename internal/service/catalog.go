package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	return s.Repo.ListActiveProducts(ctx, category, search)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetVariants(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	variants, err := s.Repo.GetVariants(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}
	return variants, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.Repo.ListCategories(ctx)
}
