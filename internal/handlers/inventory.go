// internal/handlers/inventory.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

// InventoryHandler serves the vendor inventory overlay and product suggestions.
type InventoryHandler struct {
	inventoryService  *services.InventoryService
	suggestionService *services.SuggestionService
}

func NewInventoryHandler(inventoryService *services.InventoryService, suggestionService *services.SuggestionService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService:  inventoryService,
		suggestionService: suggestionService,
	}
}

// GET /vendor/inventory
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.inventoryService.List(c.Request.Context(), vendor)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, entries)
}

// POST /vendor/inventory
func (h *InventoryHandler) AddInventory(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), vendor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, item)
}

// PUT /vendor/inventory/:id
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateInventoryRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), vendor, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyInventoryUpdated),
		"item":    item,
	})
}

// DELETE /vendor/inventory/:id
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), vendor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, i18n.KeyInventoryDeleted)
}

// POST /vendor/suggest-product
func (h *InventoryHandler) SuggestProduct(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.SuggestProductRequest
	if !bindJSON(c, &req) {
		return
	}

	suggestion, err := h.suggestionService.Suggest(c.Request.Context(), vendor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(utils.GetLangFromContext(c), i18n.KeySuggestionSubmitted),
		"id":         suggestion.ID,
		"suggestion": suggestion,
	})
}

// GET /vendor/suggestions
func (h *InventoryHandler) MySuggestions(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}

	suggestions, err := h.suggestionService.ListForVendor(c.Request.Context(), vendor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, suggestions)
}

// GET /admin/product-suggestions
func (h *InventoryHandler) PendingSuggestions(c *gin.Context) {
	suggestions, err := h.suggestionService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, suggestions)
}

// PUT /admin/product-suggestions/:id/approve
func (h *InventoryHandler) ApproveSuggestion(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.ApproveSuggestionRequest
	if !bindParams(c, &req) {
		return
	}

	product, err := h.suggestionService.Approve(c.Request.Context(), admin, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(utils.GetLangFromContext(c), i18n.KeySuggestionApproved),
		"product_id": product.ID,
		"product":    product,
	})
}

// PUT /admin/product-suggestions/:id/reject
func (h *InventoryHandler) RejectSuggestion(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.RejectSuggestionRequest
	if !bindParams(c, &req) {
		return
	}

	if _, err := h.suggestionService.Reject(c.Request.Context(), admin, c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, i18n.KeySuggestionRejected)
}
