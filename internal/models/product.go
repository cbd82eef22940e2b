// internal/models/product.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name             string          `json:"name" gorm:"size:255;not null"`
	Description      string          `json:"description" gorm:"type:text"`
	Category         ProductCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	SystemSizeKW     float64         `json:"system_size_kw" gorm:"not null"`
	Price            float64         `json:"price" gorm:"type:decimal(12,2);not null"`
	OriginalPrice    float64         `json:"original_price,omitempty" gorm:"type:decimal(12,2)"`
	EfficiencyRating float64         `json:"efficiency_rating"`
	WarrantyYears    int             `json:"warranty_years"`
	Brand            string          `json:"brand" gorm:"size:100;index"`
	ImageURL         string          `json:"image_url" gorm:"type:text"`
	Features         pq.StringArray  `json:"features" gorm:"type:text[]"`
	InStock          bool            `json:"in_stock" gorm:"not null"`
	VendorID         string          `json:"vendor_id" gorm:"type:varchar(36);not null;index"`
	VendorName       string          `json:"vendor_name" gorm:"size:255"`
	Rating           float64         `json:"rating" gorm:"type:decimal(3,1)"`
	ReviewCount      int             `json:"review_count"`
}

// VendorInventoryItem is a vendor's stock and cost layered on a shared product.
type VendorInventoryItem struct {
	BaseModel
	VendorID    string  `json:"vendor_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_vendor_product"`
	VendorName  string  `json:"vendor_name" gorm:"size:255"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_vendor_product;index"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	VendorPrice float64 `json:"vendor_price" gorm:"type:decimal(12,2);not null"`
	IsAvailable bool    `json:"is_available" gorm:"not null"`
	Location    string  `json:"location,omitempty" gorm:"size:255"`
}

func (VendorInventoryItem) TableName() string {
	return "vendor_inventory"
}

// InventoryEntry is an inventory row joined with its product.
type InventoryEntry struct {
	VendorInventoryItem
	ProductName string  `json:"product_name"`
	SellPrice   float64 `json:"sell_price"`
}

type ProductSuggestion struct {
	BaseModel
	VendorID          string           `json:"vendor_id" gorm:"type:varchar(36);not null;index"`
	VendorName        string           `json:"vendor_name" gorm:"size:255"`
	Name              string           `json:"name" gorm:"size:255;not null"`
	Description       string           `json:"description" gorm:"type:text"`
	Category          ProductCategory  `json:"category" gorm:"type:varchar(20);not null"`
	SystemSizeKW      float64          `json:"system_size_kw"`
	SuggestedPrice    float64          `json:"suggested_price" gorm:"type:decimal(12,2)"`
	EfficiencyRating  float64          `json:"efficiency_rating"`
	WarrantyYears     int              `json:"warranty_years"`
	Brand             string           `json:"brand" gorm:"size:100"`
	ImageURL          string           `json:"image_url" gorm:"type:text"`
	Features          pq.StringArray   `json:"features" gorm:"type:text[]"`
	Status            SuggestionStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ApprovedProductID string           `json:"approved_product_id,omitempty" gorm:"type:varchar(36)"`
	RejectionReason   string           `json:"rejection_reason,omitempty" gorm:"type:text"`
	ReviewedBy        string           `json:"reviewed_by,omitempty" gorm:"type:varchar(36)"`
	ReviewedAt        *time.Time       `json:"reviewed_at,omitempty"`
}

type Review struct {
	BaseModel
	ProductID string `json:"product_id" gorm:"type:varchar(36);not null;index"`
	UserID    string `json:"user_id" gorm:"type:varchar(36);not null"`
	UserName  string `json:"user_name" gorm:"size:255"`
	Rating    int    `json:"rating" gorm:"not null"`
	Comment   string `json:"comment" gorm:"type:text"`
}
