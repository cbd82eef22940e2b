// internal/services/product_service.go
package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

// Rating shown for a product until its first review arrives.
const initialProductRating = 4.5

const defaultFeaturedLimit = 8

type ProductService struct {
	products repository.ProductRepository
}

type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required,min=3,max=255"`
	Description      string   `json:"description" validate:"required"`
	Category         string   `json:"category" validate:"required,product_category"`
	SystemSizeKW     float64  `json:"system_size_kw" validate:"required,gt=0"`
	Price            float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice    float64  `json:"original_price,omitempty" validate:"gte=0"`
	EfficiencyRating float64  `json:"efficiency_rating" validate:"gte=0,lte=100"`
	WarrantyYears    int      `json:"warranty_years" validate:"gte=0,lte=50"`
	Brand            string   `json:"brand" validate:"required,max=100"`
	ImageURL         string   `json:"image_url" validate:"omitempty,url"`
	Features         []string `json:"features,omitempty"`
	InStock          *bool    `json:"in_stock,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64 `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	ImageURL      *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	InStock       *bool    `json:"in_stock,omitempty"`
}

type ProductSearchParams struct {
	utils.Page
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinSize  *float64
	MaxSize  *float64
	Brand    string
	InStock  *bool
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func parseCategory(raw string) (*models.ProductCategory, error) {
	if raw == "" {
		return nil, nil
	}
	category, err := models.ParseProductCategory(raw)
	if err != nil {
		return nil, Validationf("category must be one of home, commercial")
	}
	return &category, nil
}

func (s *ProductService) List(ctx context.Context, params ProductSearchParams) ([]models.Product, error) {
	category, err := parseCategory(params.Category)
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, repository.ProductFilter{
		Category: category,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		MinSize:  params.MinSize,
		MaxSize:  params.MaxSize,
		Brand:    strings.TrimSpace(params.Brand),
		InStock:  params.InStock,
		Skip:     params.Skip,
		Limit:    params.Limit,
	})
	if err != nil {
		return nil, Internal("list products", err)
	}
	return products, nil
}

func (s *ProductService) Featured(ctx context.Context, rawCategory string, limit int) ([]models.Product, error) {
	category, err := parseCategory(rawCategory)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	products, err := s.products.Featured(ctx, category, limit)
	if err != nil {
		return nil, Internal("list featured products", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo("get product", "Product not found", err)
	}
	return product, nil
}

// Create lists a product under the calling vendor, or under the platform
// when an admin creates it.
func (s *ProductService) Create(ctx context.Context, actor *models.User, req *CreateProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Category:         models.ProductCategory(req.Category),
		SystemSizeKW:     req.SystemSizeKW,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		EfficiencyRating: req.EfficiencyRating,
		WarrantyYears:    req.WarrantyYears,
		Brand:            strings.TrimSpace(req.Brand),
		ImageURL:         req.ImageURL,
		Features:         req.Features,
		InStock:          req.InStock == nil || *req.InStock,
		Rating:           initialProductRating,
	}

	switch {
	case actor.IsAdmin():
		product.VendorID = models.PlatformVendorID
		product.VendorName = models.PlatformVendorName
	case actor.IsVendor():
		product.VendorID = actor.ID
		product.VendorName = actor.DisplayName()
	default:
		return nil, Forbiddenf("Vendor access required")
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, Internal("create product", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"vendor_id":  product.VendorID,
	}).Info("Product created")

	return product, nil
}

func (s *ProductService) authorizeOwner(ctx context.Context, actor *models.User, id string) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.VendorID != actor.ID && !actor.IsAdmin() {
		return nil, Forbiddenf("Not authorized to modify this product")
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, actor *models.User, id string, req *UpdateProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.authorizeOwner(ctx, actor, id); err != nil {
		return nil, err
	}

	product, err := s.products.Update(ctx, id, repository.ProductUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		InStock:       req.InStock,
	})
	if err != nil {
		return nil, fromRepo("update product", "Product not found", err)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.authorizeOwner(ctx, actor, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fromRepo("delete product", "Product not found", err)
	}

	logrus.WithFields(logrus.Fields{"product_id": id, "actor_id": actor.ID}).Info("Product deleted")
	return nil
}

func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	brands, err := s.products.Brands(ctx)
	if err != nil {
		return nil, Internal("list brands", err)
	}
	return brands, nil
}

func (s *ProductService) VendorProducts(ctx context.Context, vendorID string) ([]models.Product, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{VendorID: vendorID})
	if err != nil {
		return nil, Internal("list vendor products", err)
	}
	return products, nil
}
