package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) GetMany(ctx context.Context, ids []string) (map[string]models.Product, error) {
	result := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinSize != nil {
		query = query.Where("system_size_kw >= ?", *filter.MinSize)
	}
	if filter.MaxSize != nil {
		query = query.Where("system_size_kw <= ?", *filter.MaxSize)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []models.Product
	err := query.Order("created_at ASC").Order("id").Offset(filter.Skip).Find(&products).Error
	return products, err
}

func (r *productRepository) Featured(ctx context.Context, category *models.ProductCategory, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("in_stock = ?", true)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var products []models.Product
	err := query.Order("rating DESC").Order("id").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, id string, update repository.ProductUpdate) (*models.Product, error) {
	var product models.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Inventory writes lock the same row, so the ceiling cannot move under them.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if update.Name != nil {
			updates["name"] = *update.Name
		}
		if update.Description != nil {
			updates["description"] = *update.Description
		}
		if update.Price != nil {
			updates["price"] = *update.Price
		}
		if update.OriginalPrice != nil {
			updates["original_price"] = *update.OriginalPrice
		}
		if update.ImageURL != nil {
			updates["image_url"] = *update.ImageURL
		}
		if update.InStock != nil {
			updates["in_stock"] = *update.InStock
		}

		if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if update.Price != nil {
			err := tx.Model(&models.VendorInventoryItem{}).
				Where("product_id = ? AND vendor_price > ?", id, *update.Price).
				Updates(map[string]interface{}{"vendor_price": *update.Price, "updated_at": time.Now()}).Error
			if err != nil {
				return err
			}
		}

		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if err := notFoundUnlessAffected(res); err != nil {
			return err
		}
		return tx.Delete(&models.VendorInventoryItem{}, "product_id = ?", id).Error
	})
}

func (r *productRepository) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("brand <> ''").
		Distinct().Order("brand").Pluck("brand", &brands).Error
	return brands, err
}

func (r *productRepository) Count(ctx context.Context, vendorID string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
