package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/prodesignco/apparel-shop/internal/hash"
	"github.com/prodesignco/apparel-shop/internal/logging"
	"github.com/prodesignco/apparel-shop/internal/models"
)

type seedProduct struct {
	Name        string
	Description string
	Category    string
	BasePrice   float64
	ImageURL    string
	Sizes       []string
}

var initialProducts = []seedProduct{
	{
		Name:        "Classic Black Tee",
		Description: "Premium quality 100% cotton t-shirt. Perfect for custom designs and everyday wear.",
		Category:    "tshirt",
		BasePrice:   25.00,
		ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL", "3XL"},
	},
	{
		Name:        "Custom Design Hoodie",
		Description: "Comfortable fleece hoodie with front pocket. Ideal for screen printing and embroidery.",
		Category:    "hoodie",
		BasePrice:   45.00,
		ImageURL:    "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
	},
	{
		Name:        "Graphic Print Tee",
		Description: "Soft cotton blend t-shirt perfect for vibrant custom graphics and designs.",
		Category:    "tshirt",
		BasePrice:   28.00,
		ImageURL:    "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL", "3XL", "4XL"},
	},
	{
		Name:        "Premium Cotton Tee",
		Description: "High-quality ring-spun cotton t-shirt. Excellent for detailed custom printing.",
		Category:    "tshirt",
		BasePrice:   30.00,
		ImageURL:    "https://images.unsplash.com/photo-1622445275463-afa2ab738c34?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL"},
	},
	{
		Name:        "Pullover Hoodie",
		Description: "Heavyweight pullover hoodie with adjustable drawstring. Perfect for custom logos.",
		Category:    "hoodie",
		BasePrice:   50.00,
		ImageURL:    "https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
	},
	{
		Name:        "Vintage Style Tee",
		Description: "Retro-inspired t-shirt with a worn-in feel. Great for vintage designs.",
		Category:    "tshirt",
		BasePrice:   26.00,
		ImageURL:    "https://images.unsplash.com/photo-1618354691373-d851c5c3a990?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
	},
	{
		Name:        "Zip-Up Hoodie",
		Description: "Full-zip hoodie with side pockets. Excellent for custom embroidery and printing.",
		Category:    "hoodie",
		BasePrice:   55.00,
		ImageURL:    "https://images.unsplash.com/photo-1620799140188-3b2a02fd9a77?w=500&h=600&fit=crop",
		Sizes:       []string{"M", "L", "XL", "2XL"},
	},
	{
		Name:        "Performance Tee",
		Description: "Moisture-wicking athletic t-shirt. Perfect for sports teams and active wear.",
		Category:    "tshirt",
		BasePrice:   32.00,
		ImageURL:    "https://images.unsplash.com/photo-1489987707025-afc232f7ea0f?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL", "3XL"},
	},
	{
		Name:        "Long Sleeve Tee",
		Description: "Comfortable long sleeve t-shirt. Great for cooler weather custom designs.",
		Category:    "tshirt",
		BasePrice:   35.00,
		ImageURL:    "https://images.unsplash.com/photo-1618517351616-38fb9c5210c6?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
	},
	{
		Name:        "Crewneck Sweatshirt",
		Description: "Classic crewneck sweatshirt with ribbed cuffs. Perfect for custom screen printing.",
		Category:    "hoodie",
		BasePrice:   42.00,
		ImageURL:    "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?w=500&h=600&fit=crop",
		Sizes:       []string{"S", "M", "L", "XL", "2XL", "3XL"},
	},
}

func variantSKU(name, size string) string {
	return fmt.Sprintf("%s-%s-BLK", strings.ToUpper(strings.ReplaceAll(name, " ", "-")), size)
}

// Products populates the catalog on first boot. A non-empty products table
// means a previous run (or an operator) already owns the data, so nothing is
// touched.
func Products(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sp := range initialProducts {
			product := models.Product{
				Name:        sp.Name,
				Description: sp.Description,
				Category:    sp.Category,
				BasePrice:   sp.BasePrice,
				ImageURL:    sp.ImageURL,
				IsActive:    true,
			}
			for _, size := range sp.Sizes {
				product.Variants = append(product.Variants, models.ProductVariant{
					Size:          size,
					Color:         "Black",
					StockQuantity: 100,
					SKU:           variantSKU(sp.Name, size),
				})
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("seeded catalog", "products", len(initialProducts))
	return nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	logging.FromContext(ctx).Info("created admin account", "email", email)
	return nil
}
