package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type inventoryRepository struct {
	db *gorm.DB
}

// lockProduct takes the row lock that serializes price checks against
// concurrent sell price changes.
func lockProduct(tx *gorm.DB, productID string) (*models.Product, error) {
	var product models.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", productID).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.VendorInventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := lockProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if item.VendorPrice > product.Price {
			return &repository.PriceCeilingError{Ceiling: product.Price}
		}

		var existing int64
		err = tx.Model(&models.VendorInventoryItem{}).
			Where("vendor_id = ? AND product_id = ?", item.VendorID, item.ProductID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return repository.ErrDuplicate
		}

		return translate(tx.Create(item).Error)
	})
}

func (r *inventoryRepository) Update(ctx context.Context, id, vendorID string, update repository.InventoryUpdate) (*models.VendorInventoryItem, error) {
	var item models.VendorInventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ? AND vendor_id = ?", id, vendorID).Error; err != nil {
			return translate(err)
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if update.VendorPrice != nil {
			product, err := lockProduct(tx, item.ProductID)
			if err != nil {
				return err
			}
			if *update.VendorPrice > product.Price {
				return &repository.PriceCeilingError{Ceiling: product.Price}
			}
			updates["vendor_price"] = *update.VendorPrice
		}
		if update.Quantity != nil {
			updates["quantity"] = *update.Quantity
		}
		if update.IsAvailable != nil {
			updates["is_available"] = *update.IsAvailable
		}
		if update.Location != nil {
			updates["location"] = *update.Location
		}

		if err := tx.Model(&models.VendorInventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&item, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id, vendorID string) error {
	res := r.db.WithContext(ctx).Delete(&models.VendorInventoryItem{}, "id = ? AND vendor_id = ?", id, vendorID)
	return notFoundUnlessAffected(res)
}

func (r *inventoryRepository) ListByVendor(ctx context.Context, vendorID string) ([]models.InventoryEntry, error) {
	var entries []models.InventoryEntry
	err := r.db.WithContext(ctx).
		Table("vendor_inventory").
		Select("vendor_inventory.*, products.name AS product_name, products.price AS sell_price").
		Joins("JOIN products ON products.id = vendor_inventory.product_id").
		Where("vendor_inventory.vendor_id = ?", vendorID).
		Order("vendor_inventory.updated_at DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *inventoryRepository) ListAvailable(ctx context.Context, productIDs []string) ([]models.VendorInventoryItem, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var items []models.VendorInventoryItem
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND is_available = ? AND quantity > 0", productIDs, true).
		Order("vendor_id").
		Find(&items).Error
	return items, err
}
