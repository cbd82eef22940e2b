package services

import (
	"context"
	"errors"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

// InventoryService manages a vendor's stock and cost overlay on shared products.
type InventoryService struct {
	inventory repository.InventoryRepository
}

type CreateInventoryRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	VendorPrice float64 `json:"vendor_price" validate:"required,gt=0"`
	Location    string  `json:"location,omitempty" validate:"max=255"`
}

type UpdateInventoryRequest struct {
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	VendorPrice *float64 `json:"vendor_price,omitempty" validate:"omitempty,gt=0"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=255"`
}

func NewInventoryService(inventory repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventory: inventory}
}

func inventoryError(op string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return &ServiceError{Kind: KindConflict, Message: "Product already in your inventory", Err: err}
	}
	return fromRepo(op, "Inventory item not found", err)
}

func (s *InventoryService) List(ctx context.Context, vendor *models.User) ([]models.InventoryEntry, error) {
	entries, err := s.inventory.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, Internal("list inventory", err)
	}
	for i := range entries {
		entries[i].VendorName = vendor.DisplayName()
	}
	return entries, nil
}

func (s *InventoryService) Create(ctx context.Context, vendor *models.User, req *CreateInventoryRequest) (*models.VendorInventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item := &models.VendorInventoryItem{
		VendorID:    vendor.ID,
		VendorName:  vendor.DisplayName(),
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		VendorPrice: req.VendorPrice,
		IsAvailable: true,
		Location:    req.Location,
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{Kind: KindNotFound, Message: "Product not found", Err: err}
		}
		return nil, inventoryError("create inventory", err)
	}
	return item, nil
}

// Update revalidates a new vendor price against the product's current price
// inside the storage transaction.
func (s *InventoryService) Update(ctx context.Context, vendor *models.User, id string, req *UpdateInventoryRequest) (*models.VendorInventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item, err := s.inventory.Update(ctx, id, vendor.ID, repository.InventoryUpdate{
		Quantity:    req.Quantity,
		VendorPrice: req.VendorPrice,
		IsAvailable: req.IsAvailable,
		Location:    req.Location,
	})
	if err != nil {
		return nil, inventoryError("update inventory", err)
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, vendor *models.User, id string) error {
	if err := s.inventory.Delete(ctx, id, vendor.ID); err != nil {
		return inventoryError("delete inventory", err)
	}
	return nil
}
