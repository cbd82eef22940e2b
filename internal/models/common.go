// internal/models/common.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformVendorID owns products created from approved suggestions.
const (
	PlatformVendorID   = "platform"
	PlatformVendorName = "SolarSavers"
)

// Base model with common fields
type BaseModel struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnsureID assigns a fresh UUID when the record has none yet.
func (b *BaseModel) EnsureID() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	b.EnsureID()
	return nil
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}

func parseEnum[T ~string](value string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if string(a) == value {
			return a, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, must be one of %v", value, allowed)
}

// Enums
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	return parseEnum(s, RoleCustomer, RoleVendor, RoleAdmin)
}

type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "pending"
	VendorStatusApproved VendorStatus = "approved"
)

type ProductCategory string

const (
	CategoryHome       ProductCategory = "home"
	CategoryCommercial ProductCategory = "commercial"
)

func ParseProductCategory(s string) (ProductCategory, error) {
	return parseEnum(s, CategoryHome, CategoryCommercial)
}

type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusApproved SuggestionStatus = "approved"
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

func ParseSuggestionStatus(s string) (SuggestionStatus, error) {
	return parseEnum(s, SuggestionStatusPending, SuggestionStatusApproved, SuggestionStatusRejected)
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAssigned   OrderStatus = "assigned"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusAssigned, OrderStatusProcessing, OrderStatusShipped,
	OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	return parseEnum(s, OrderStatuses...)
}

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	return parseEnum(s, TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed)
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

func ParseTicketPriority(s string) (TicketPriority, error) {
	return parseEnum(s, TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh)
}

type TicketCategory string

const (
	TicketCategoryGeneral   TicketCategory = "general"
	TicketCategoryOrder     TicketCategory = "order"
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryBilling   TicketCategory = "billing"
)

func ParseTicketCategory(s string) (TicketCategory, error) {
	return parseEnum(s, TicketCategoryGeneral, TicketCategoryOrder, TicketCategoryTechnical, TicketCategoryBilling)
}

type BlogCategory string

const (
	BlogCategoryNews       BlogCategory = "news"
	BlogCategoryTips       BlogCategory = "tips"
	BlogCategoryGuides     BlogCategory = "guides"
	BlogCategoryTechnology BlogCategory = "technology"
)

func ParseBlogCategory(s string) (BlogCategory, error) {
	return parseEnum(s, BlogCategoryNews, BlogCategoryTips, BlogCategoryGuides, BlogCategoryTechnology)
}
