package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type SuggestionService struct {
	suggestions repository.SuggestionRepository
}

type SuggestProductRequest struct {
	Name             string   `json:"name" validate:"required,min=3,max=255"`
	Description      string   `json:"description" validate:"required"`
	Category         string   `json:"category" validate:"required,product_category"`
	SystemSizeKW     float64  `json:"system_size_kw" validate:"required,gt=0"`
	SuggestedPrice   float64  `json:"suggested_price" validate:"required,gt=0"`
	EfficiencyRating float64  `json:"efficiency_rating" validate:"gte=0,lte=100"`
	WarrantyYears    int      `json:"warranty_years" validate:"gte=0,lte=50"`
	Brand            string   `json:"brand" validate:"required,max=100"`
	ImageURL         string   `json:"image_url" validate:"omitempty,url"`
	Features         []string `json:"features,omitempty"`
}

type ApproveSuggestionRequest struct {
	SellPrice float64 `json:"sell_price" form:"sell_price" validate:"required,gt=0"`
}

type RejectSuggestionRequest struct {
	Reason string `json:"reason" form:"reason" validate:"max=2000"`
}

func NewSuggestionService(suggestions repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{suggestions: suggestions}
}

func suggestionError(op string, err error) error {
	if errors.Is(err, repository.ErrStateChanged) {
		return &ServiceError{Kind: KindValidation, Message: "Suggestion is not pending", Err: err}
	}
	return fromRepo(op, "Suggestion not found", err)
}

func (s *SuggestionService) Suggest(ctx context.Context, vendor *models.User, req *SuggestProductRequest) (*models.ProductSuggestion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	suggestion := &models.ProductSuggestion{
		VendorID:         vendor.ID,
		VendorName:       vendor.DisplayName(),
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Category:         models.ProductCategory(req.Category),
		SystemSizeKW:     req.SystemSizeKW,
		SuggestedPrice:   req.SuggestedPrice,
		EfficiencyRating: req.EfficiencyRating,
		WarrantyYears:    req.WarrantyYears,
		Brand:            strings.TrimSpace(req.Brand),
		ImageURL:         req.ImageURL,
		Features:         req.Features,
		Status:           models.SuggestionStatusPending,
	}

	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, Internal("create suggestion", err)
	}
	return suggestion, nil
}

func (s *SuggestionService) ListPending(ctx context.Context) ([]models.ProductSuggestion, error) {
	status := models.SuggestionStatusPending
	suggestions, err := s.suggestions.List(ctx, &status, "")
	if err != nil {
		return nil, Internal("list suggestions", err)
	}
	return suggestions, nil
}

func (s *SuggestionService) ListForVendor(ctx context.Context, vendorID string) ([]models.ProductSuggestion, error) {
	suggestions, err := s.suggestions.List(ctx, nil, vendorID)
	if err != nil {
		return nil, Internal("list vendor suggestions", err)
	}
	return suggestions, nil
}

// Approve publishes the suggestion as a platform product priced at the
// admin's sell price. The vendor's suggested price becomes original_price.
func (s *SuggestionService) Approve(ctx context.Context, admin *models.User, id string, req *ApproveSuggestionRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	suggestion, err := s.suggestions.GetByID(ctx, id)
	if err != nil {
		return nil, suggestionError("get suggestion", err)
	}
	if suggestion.Status != models.SuggestionStatusPending {
		return nil, Validationf("Suggestion is not pending")
	}

	product := &models.Product{
		Name:             suggestion.Name,
		Description:      suggestion.Description,
		Category:         suggestion.Category,
		SystemSizeKW:     suggestion.SystemSizeKW,
		Price:            req.SellPrice,
		OriginalPrice:    suggestion.SuggestedPrice,
		EfficiencyRating: suggestion.EfficiencyRating,
		WarrantyYears:    suggestion.WarrantyYears,
		Brand:            suggestion.Brand,
		ImageURL:         suggestion.ImageURL,
		Features:         suggestion.Features,
		InStock:          true,
		VendorID:         models.PlatformVendorID,
		VendorName:       models.PlatformVendorName,
		Rating:           initialProductRating,
	}

	if _, err := s.suggestions.Approve(ctx, id, admin.ID, product); err != nil {
		return nil, suggestionError("approve suggestion", err)
	}

	logrus.WithFields(logrus.Fields{
		"suggestion_id": id,
		"product_id":    product.ID,
		"admin_id":      admin.ID,
	}).Info("Product suggestion approved")

	return product, nil
}

func (s *SuggestionService) Reject(ctx context.Context, admin *models.User, id string, req *RejectSuggestionRequest) (*models.ProductSuggestion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	suggestion, err := s.suggestions.Reject(ctx, id, admin.ID, strings.TrimSpace(req.Reason))
	if err != nil {
		return nil, suggestionError("reject suggestion", err)
	}
	return suggestion, nil
}
