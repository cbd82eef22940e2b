// Package repository declares the storage boundary. Implementations live in
// internal/database (PostgreSQL via gorm) and internal/database/memory.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/solarsavers/solarsavers-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrStateChanged is returned when a conditional write finds the record
	// no longer in the state it was read in.
	ErrStateChanged = errors.New("record state changed")
)

// PriceCeilingError rejects a vendor price above the product's sell price.
type PriceCeilingError struct {
	Ceiling float64
}

func (e *PriceCeilingError) Error() string {
	return fmt.Sprintf("vendor price must be less than or equal to sell price (%.2f)", e.Ceiling)
}

type UserFilter struct {
	Role   *models.Role
	Status *models.VendorStatus
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	SetVendorStatus(ctx context.Context, id string, status models.VendorStatus) (*models.User, error)
	Count(ctx context.Context, role models.Role) (int64, error)
}

type ProductFilter struct {
	Category *models.ProductCategory
	MinPrice *float64
	MaxPrice *float64
	MinSize  *float64
	MaxSize  *float64
	Brand    string
	InStock  *bool
	VendorID string
	Skip     int
	Limit    int
}

type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	ImageURL      *string
	InStock       *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetMany returns the products that exist among ids, keyed by id.
	GetMany(ctx context.Context, ids []string) (map[string]models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Featured(ctx context.Context, category *models.ProductCategory, limit int) ([]models.Product, error)
	// Update lowers any inventory price above a new sell price in the same transaction.
	Update(ctx context.Context, id string, update ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Brands(ctx context.Context) ([]string, error)
	// Count counts all products, or one vendor's when vendorID is set.
	Count(ctx context.Context, vendorID string) (int64, error)
}

type InventoryUpdate struct {
	Quantity    *int
	VendorPrice *float64
	IsAvailable *bool
	Location    *string
}

type InventoryRepository interface {
	// Create fails with ErrNotFound for an unknown product, *PriceCeilingError
	// above the sell price and ErrDuplicate for an existing (vendor, product) pair.
	Create(ctx context.Context, item *models.VendorInventoryItem) error
	Update(ctx context.Context, id, vendorID string, update InventoryUpdate) (*models.VendorInventoryItem, error)
	Delete(ctx context.Context, id, vendorID string) error
	ListByVendor(ctx context.Context, vendorID string) ([]models.InventoryEntry, error)
	// ListAvailable returns available rows with positive quantity for any of productIDs.
	ListAvailable(ctx context.Context, productIDs []string) ([]models.VendorInventoryItem, error)
}

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *models.ProductSuggestion) error
	GetByID(ctx context.Context, id string) (*models.ProductSuggestion, error)
	List(ctx context.Context, status *models.SuggestionStatus, vendorID string) ([]models.ProductSuggestion, error)
	// Approve creates product and marks the pending suggestion approved atomically.
	Approve(ctx context.Context, id, reviewerID string, product *models.Product) (*models.ProductSuggestion, error)
	Reject(ctx context.Context, id, reviewerID, reason string) (*models.ProductSuggestion, error)
}

type OrderFilter struct {
	UserID           string
	AssignedVendorID string
	ContainsVendorID string
	Unassigned       bool
	Status           *models.OrderStatus
	Limit            int
}

type Assignment struct {
	VendorID   string
	VendorName string
	AssignedBy string
	Notes      string
	AssignedAt time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// List returns matching orders newest first.
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	// Assign binds the order to a vendor and decrements that vendor's
	// inventory by each line's quantity in one transaction. An order that is
	// already assigned yields ErrStateChanged.
	Assign(ctx context.Context, id string, assignment Assignment) (*models.Order, error)
	SetPaymentIntent(ctx context.Context, id, intentID string) error
}

type TicketFilter struct {
	UserID string
	Status *models.TicketStatus
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	// List returns matching tickets by most recent activity.
	List(ctx context.Context, filter TicketFilter) ([]models.Ticket, error)
	AppendReply(ctx context.Context, id string, reply models.TicketReply) (*models.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status models.TicketStatus) (*models.Ticket, error)
	UpdatePriority(ctx context.Context, id string, priority models.TicketPriority) (*models.Ticket, error)
}

type BlogFilter struct {
	Category      *models.BlogCategory
	PublishedOnly bool
	Limit         int
}

type BlogUpdate struct {
	Title       *string
	Content     *string
	Excerpt     *string
	Category    *models.BlogCategory
	ImageURL    *string
	Tags        []string
	IsPublished *bool
}

type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	// IncrementViews bumps the view counter and returns the post as updated.
	IncrementViews(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]models.Blog, error)
	Update(ctx context.Context, id string, update BlogUpdate) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	// Create stores the review and recomputes the product's rating and count.
	Create(ctx context.Context, review *models.Review) (*models.Product, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
}

type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	// History returns the latest limit exchanges of a session, oldest first.
	History(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

// Store groups the repositories of one backend.
type Store struct {
	Users       UserRepository
	Products    ProductRepository
	Inventory   InventoryRepository
	Suggestions SuggestionRepository
	Orders      OrderRepository
	Tickets     TicketRepository
	Blogs       BlogRepository
	Reviews     ReviewRepository
	Contacts    ContactRepository
	Chat        ChatRepository
}
