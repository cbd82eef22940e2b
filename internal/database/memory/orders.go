package memory

import (
	"context"
	"sort"
	"time"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type orderRepository struct{ d *db }

func (r *orderRepository) Create(_ context.Context, order *models.Order) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	r.d.stamp(&order.BaseModel)
	c := copyOrder(order)
	r.d.orders[order.ID] = &c
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	o, ok := r.d.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyOrder(o)
	return &c, nil
}

func containsVendor(o *models.Order, vendorID string) bool {
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}

func (r *orderRepository) List(_ context.Context, f repository.OrderFilter) ([]models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range r.d.orders {
		switch {
		case f.UserID != "" && o.UserID != f.UserID,
			f.AssignedVendorID != "" && o.AssignedVendorID != f.AssignedVendorID,
			f.ContainsVendorID != "" && !containsVendor(o, f.ContainsVendorID),
			f.Unassigned && o.IsAssigned(),
			f.Status != nil && o.Status != *f.Status:
			continue
		}
		orders = append(orders, copyOrder(o))
	}
	newestFirst(orders, func(o models.Order) time.Time { return o.CreatedAt })
	if f.Limit > 0 && len(orders) > f.Limit {
		orders = orders[:f.Limit]
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	o, ok := r.d.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = r.d.now()
	c := copyOrder(o)
	return &c, nil
}

func (r *orderRepository) Assign(_ context.Context, id string, a repository.Assignment) (*models.Order, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	o, ok := r.d.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if o.IsAssigned() {
		return nil, repository.ErrStateChanged
	}

	at := a.AssignedAt
	o.AssignedVendorID = a.VendorID
	o.AssignedVendorName = a.VendorName
	o.AssignedBy = a.AssignedBy
	o.AssignmentNotes = a.Notes
	o.AssignedAt = &at
	o.Status = models.OrderStatusAssigned
	o.UpdatedAt = r.d.now()

	for _, line := range o.Items {
		for _, item := range r.d.inventory {
			if item.VendorID == a.VendorID && item.ProductID == line.ProductID {
				item.Quantity -= line.Quantity
				item.UpdatedAt = r.d.now()
			}
		}
	}

	c := copyOrder(o)
	return &c, nil
}

func (r *orderRepository) SetPaymentIntent(_ context.Context, id, intentID string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	o, ok := r.d.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.PaymentIntentID = intentID
	o.UpdatedAt = r.d.now()
	return nil
}

type ticketRepository struct{ d *db }

func (r *ticketRepository) Create(_ context.Context, t *models.Ticket) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if t.Replies == nil {
		t.Replies = models.TicketReplies{}
	}
	r.d.stamp(&t.BaseModel)
	c := copyTicket(t)
	r.d.tickets[t.ID] = &c
	return nil
}

func (r *ticketRepository) GetByID(_ context.Context, id string) (*models.Ticket, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	t, ok := r.d.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyTicket(t)
	return &c, nil
}

func (r *ticketRepository) List(_ context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	tickets := []models.Ticket{}
	for _, t := range r.d.tickets {
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		tickets = append(tickets, copyTicket(t))
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].UpdatedAt.After(tickets[j].UpdatedAt)
	})
	return tickets, nil
}

func (r *ticketRepository) mutate(id string, fn func(t *models.Ticket)) (*models.Ticket, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	t, ok := r.d.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(t)
	t.UpdatedAt = r.d.now()
	c := copyTicket(t)
	return &c, nil
}

func (r *ticketRepository) AppendReply(_ context.Context, id string, reply models.TicketReply) (*models.Ticket, error) {
	return r.mutate(id, func(t *models.Ticket) {
		t.Replies = append(t.Replies, reply)
	})
}

func (r *ticketRepository) UpdateStatus(_ context.Context, id string, status models.TicketStatus) (*models.Ticket, error) {
	return r.mutate(id, func(t *models.Ticket) { t.Status = status })
}

func (r *ticketRepository) UpdatePriority(_ context.Context, id string, priority models.TicketPriority) (*models.Ticket, error) {
	return r.mutate(id, func(t *models.Ticket) { t.Priority = priority })
}
