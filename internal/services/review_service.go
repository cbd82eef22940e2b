package services

import (
	"context"
	"strings"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type ReviewService struct {
	reviews repository.ReviewRepository
}

type CreateReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=5000"`
}

type ReviewResult struct {
	Review  *models.Review  `json:"review"`
	Product *models.Product `json:"product"`
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Create stores the review and returns the product with its recomputed
// rating and review count.
func (s *ReviewService) Create(ctx context.Context, author *models.User, req *CreateReviewRequest) (*ReviewResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    author.ID,
		UserName:  author.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	product, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fromRepo("create review", "Product not found", err)
	}
	return &ReviewResult{Review: review, Product: product}, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, Internal("list reviews", err)
	}
	return reviews, nil
}
