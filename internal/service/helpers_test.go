package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/config"
	"github.com/prodesignco/apparel-shop/internal/models"
	"github.com/prodesignco/apparel-shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return repo.New(db)
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:      name,
		Category:  "tshirt",
		BasePrice: price,
		IsActive:  true,
		Variants: []models.ProductVariant{
			{Size: "M", Color: "Black", StockQuantity: 100, SKU: name + "-M-BLK"},
			{Size: "L", Color: "Black", StockQuantity: 100, SKU: name + "-L-BLK"},
		},
	}
	require.NoError(t, r.CreateProduct(context.Background(), product))
	return product
}
