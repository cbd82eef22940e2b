package database

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type ticketRepository struct {
	db *gorm.DB
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	if ticket.Replies == nil {
		ticket.Replies = models.TicketReplies{}
	}
	return translate(r.db.WithContext(ctx).Create(ticket).Error)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter repository.TicketFilter) ([]models.Ticket, error) {
	query := r.db.WithContext(ctx).Model(&models.Ticket{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var tickets []models.Ticket
	err := query.Order("updated_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) AppendReply(ctx context.Context, id string, reply models.TicketReply) (*models.Ticket, error) {
	payload, err := json.Marshal([]models.TicketReply{reply})
	if err != nil {
		return nil, err
	}
	return r.update(ctx, id, map[string]interface{}{
		"replies":    gorm.Expr("COALESCE(replies, '[]'::jsonb) || ?::jsonb", string(payload)),
		"updated_at": reply.CreatedAt,
	})
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status models.TicketStatus) (*models.Ticket, error) {
	return r.update(ctx, id, map[string]interface{}{"status": status, "updated_at": time.Now()})
}

func (r *ticketRepository) UpdatePriority(ctx context.Context, id string, priority models.TicketPriority) (*models.Ticket, error) {
	return r.update(ctx, id, map[string]interface{}{"priority": priority, "updated_at": time.Now()})
}

func (r *ticketRepository) update(ctx context.Context, id string, updates map[string]interface{}) (*models.Ticket, error) {
	var ticket models.Ticket
	res := r.db.WithContext(ctx).Model(&ticket).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if err := notFoundUnlessAffected(res); err != nil {
		return nil, err
	}
	return &ticket, nil
}
