package database

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type blogRepository struct {
	db *gorm.DB
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return translate(r.db.WithContext(ctx).Create(blog).Error)
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &blog, nil
}

func (r *blogRepository) IncrementViews(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	res := r.db.WithContext(ctx).Model(&blog).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if err := notFoundUnlessAffected(res); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, filter repository.BlogFilter) ([]models.Blog, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{})
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var blogs []models.Blog
	err := query.Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) Update(ctx context.Context, id string, update repository.BlogUpdate) (*models.Blog, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Content != nil {
		updates["content"] = *update.Content
	}
	if update.Excerpt != nil {
		updates["excerpt"] = *update.Excerpt
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.ImageURL != nil {
		updates["image_url"] = *update.ImageURL
	}
	if update.Tags != nil {
		updates["tags"] = pq.StringArray(update.Tags)
	}
	if update.IsPublished != nil {
		updates["is_published"] = *update.IsPublished
	}

	var blog models.Blog
	res := r.db.WithContext(ctx).Model(&blog).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if err := notFoundUnlessAffected(res); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	return notFoundUnlessAffected(r.db.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id))
}

type reviewRepository struct {
	db *gorm.DB
}

const recomputeRatingSQL = `
UPDATE products SET
	rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE product_id = @id), 0),
	review_count = (SELECT COUNT(*) FROM reviews WHERE product_id = @id),
	updated_at = @now
WHERE id = @id`

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) (*models.Product, error) {
	var product models.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", review.ProductID).Error; err != nil {
			return translate(err)
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		err := tx.Exec(recomputeRatingSQL, map[string]interface{}{"id": review.ProductID, "now": time.Now()}).Error
		if err != nil {
			return err
		}
		return tx.First(&product, "id = ?", review.ProductID).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).
		Order("created_at DESC").Limit(100).Find(&reviews).Error
	return reviews, err
}

type contactRepository struct {
	db *gorm.DB
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return translate(r.db.WithContext(ctx).Create(contact).Error)
}

func (r *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(500).Find(&contacts).Error
	return contacts, err
}

type chatRepository struct {
	db *gorm.DB
}

func (r *chatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	return translate(r.db.WithContext(ctx).Create(message).Error)
}

func (r *chatRepository) History(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
