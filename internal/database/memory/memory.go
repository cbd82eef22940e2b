// Package memory is an in-process implementation of the repository
// interfaces. Every operation runs under one lock, which gives it the same
// atomicity the PostgreSQL store gets from transactions and row locks.
package memory

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type db struct {
	mu   sync.RWMutex
	last time.Time

	users       map[string]*models.User
	products    map[string]*models.Product
	inventory   map[string]*models.VendorInventoryItem
	suggestions map[string]*models.ProductSuggestion
	orders      map[string]*models.Order
	tickets     map[string]*models.Ticket
	blogs       map[string]*models.Blog
	reviews     map[string]*models.Review
	contacts    map[string]*models.Contact
	chat        map[string]*models.ChatMessage
}

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	d := &db{
		users:       make(map[string]*models.User),
		products:    make(map[string]*models.Product),
		inventory:   make(map[string]*models.VendorInventoryItem),
		suggestions: make(map[string]*models.ProductSuggestion),
		orders:      make(map[string]*models.Order),
		tickets:     make(map[string]*models.Ticket),
		blogs:       make(map[string]*models.Blog),
		reviews:     make(map[string]*models.Review),
		contacts:    make(map[string]*models.Contact),
		chat:        make(map[string]*models.ChatMessage),
	}
	return &repository.Store{
		Users:       &userRepository{d},
		Products:    &productRepository{d},
		Inventory:   &inventoryRepository{d},
		Suggestions: &suggestionRepository{d},
		Orders:      &orderRepository{d},
		Tickets:     &ticketRepository{d},
		Blogs:       &blogRepository{d},
		Reviews:     &reviewRepository{d},
		Contacts:    &contactRepository{d},
		Chat:        &chatRepository{d},
	}
}

// now is strictly increasing so that ordering by timestamp is stable. Callers hold mu.
func (d *db) now() time.Time {
	t := time.Now()
	if !t.After(d.last) {
		t = d.last.Add(time.Microsecond)
	}
	d.last = t
	return t
}

func (d *db) stamp(b *models.BaseModel) {
	b.EnsureID()
	t := d.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = t
	}
	b.UpdatedAt = t
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func copyProduct(p *models.Product) models.Product {
	c := *p
	c.Features = cloneStrings(p.Features)
	return c
}

func copySuggestion(s *models.ProductSuggestion) models.ProductSuggestion {
	c := *s
	c.Features = cloneStrings(s.Features)
	return c
}

func copyOrder(o *models.Order) models.Order {
	c := *o
	c.Items = append(models.OrderItems(nil), o.Items...)
	return c
}

func copyTicket(t *models.Ticket) models.Ticket {
	c := *t
	c.Replies = append(models.TicketReplies{}, t.Replies...)
	return c
}

func copyBlog(b *models.Blog) models.Blog {
	c := *b
	c.Tags = cloneStrings(b.Tags)
	return c
}

func newestFirst[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
