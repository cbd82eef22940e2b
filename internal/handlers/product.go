// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	reviewService  *services.ReviewService
}

func NewProductHandler(productService *services.ProductService, reviewService *services.ReviewService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page := utils.GetPage(c)

	searchParams := services.ProductSearchParams{
		Page:     page,
		Category: c.Query("category"),
		MinPrice: utils.QueryFloat(c, "min_price"),
		MaxPrice: utils.QueryFloat(c, "max_price"),
		MinSize:  utils.QueryFloat(c, "min_size"),
		MaxSize:  utils.QueryFloat(c, "max_size"),
		Brand:    c.Query("brand"),
		InStock:  utils.QueryBool(c, "in_stock"),
	}

	products, err := h.productService.List(c.Request.Context(), searchParams)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, products, page, len(products))
}

// GET /products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	limit := utils.QueryLimit(c, 8)

	products, err := h.productService.Featured(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, i18n.KeyProductDeleted)
}

// GET /brands
func (h *ProductHandler) GetBrands(c *gin.Context) {
	brands, err := h.productService.Brands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, brands)
}

// POST /reviews
func (h *ProductHandler) CreateReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reviewService.Create(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyReviewSubmitted),
		"id":      result.Review.ID,
		"product": result.Product,
	})
}

// GET /reviews/:product_id
func (h *ProductHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, reviews)
}
