package database

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.AssignedVendorID != "" {
		query = query.Where("assigned_vendor_id = ?", filter.AssignedVendorID)
	}
	if filter.ContainsVendorID != "" {
		containment, err := json.Marshal([]map[string]string{{"vendor_id": filter.ContainsVendorID}})
		if err != nil {
			return nil, err
		}
		query = query.Where("items @> ?::jsonb", string(containment))
	}
	if filter.Unassigned {
		query = query.Where("(assigned_vendor_id IS NULL OR assigned_vendor_id = '')")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orders []models.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if err := notFoundUnlessAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) Assign(ctx context.Context, id string, assignment repository.Assignment) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if order.IsAssigned() {
			return repository.ErrStateChanged
		}

		err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
			"assigned_vendor_id":   assignment.VendorID,
			"assigned_vendor_name": assignment.VendorName,
			"assigned_by":          assignment.AssignedBy,
			"assignment_notes":     assignment.Notes,
			"assigned_at":          assignment.AssignedAt,
			"status":               models.OrderStatusAssigned,
			"updated_at":           time.Now(),
		}).Error
		if err != nil {
			return err
		}

		// Unconditional: stock may go negative and is then excluded from matching.
		for _, item := range order.Items {
			err := tx.Model(&models.VendorInventoryItem{}).
				Where("vendor_id = ? AND product_id = ?", assignment.VendorID, item.ProductID).
				Updates(map[string]interface{}{
					"quantity":   gorm.Expr("quantity - ?", item.Quantity),
					"updated_at": time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}

		return tx.First(&order, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("payment_intent_id", intentID)
	return notFoundUnlessAffected(res)
}
