package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type suggestionRepository struct {
	db *gorm.DB
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *models.ProductSuggestion) error {
	return translate(r.db.WithContext(ctx).Create(suggestion).Error)
}

func (r *suggestionRepository) GetByID(ctx context.Context, id string) (*models.ProductSuggestion, error) {
	var suggestion models.ProductSuggestion
	if err := r.db.WithContext(ctx).First(&suggestion, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &suggestion, nil
}

func (r *suggestionRepository) List(ctx context.Context, status *models.SuggestionStatus, vendorID string) ([]models.ProductSuggestion, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductSuggestion{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var suggestions []models.ProductSuggestion
	err := query.Order("created_at DESC").Find(&suggestions).Error
	return suggestions, err
}

// resolve moves a pending suggestion to a terminal status. Zero affected rows
// means either the suggestion is gone or someone else resolved it first.
func (r *suggestionRepository) resolve(tx *gorm.DB, id string, updates map[string]interface{}) error {
	res := tx.Model(&models.ProductSuggestion{}).
		Where("id = ? AND status = ?", id, models.SuggestionStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.ProductSuggestion{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrStateChanged
	}
	return nil
}

func (r *suggestionRepository) Approve(ctx context.Context, id, reviewerID string, product *models.Product) (*models.ProductSuggestion, error) {
	var suggestion models.ProductSuggestion

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return translate(err)
		}

		now := time.Now()
		err := r.resolve(tx, id, map[string]interface{}{
			"status":              models.SuggestionStatusApproved,
			"approved_product_id": product.ID,
			"reviewed_by":         reviewerID,
			"reviewed_at":         now,
			"updated_at":          now,
		})
		if err != nil {
			return err
		}
		return tx.First(&suggestion, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepository) Reject(ctx context.Context, id, reviewerID, reason string) (*models.ProductSuggestion, error) {
	var suggestion models.ProductSuggestion

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := r.resolve(tx, id, map[string]interface{}{
			"status":           models.SuggestionStatusRejected,
			"rejection_reason": reason,
			"reviewed_by":      reviewerID,
			"reviewed_at":      now,
			"updated_at":       now,
		})
		if err != nil {
			return err
		}
		return tx.First(&suggestion, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}
