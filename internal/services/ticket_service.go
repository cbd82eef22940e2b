package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type TicketService struct {
	tickets       repository.TicketRepository
	notifications *NotificationService
}

type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,max=255"`
	Message  string `json:"message" validate:"required,max=10000"`
	Category string `json:"category,omitempty" validate:"omitempty,ticket_category"`
	OrderID  string `json:"order_id,omitempty" validate:"max=36"`
}

type TicketReplyRequest struct {
	Message string `json:"message" validate:"required,max=10000"`
}

type TicketStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required"`
}

type TicketPriorityRequest struct {
	Priority string `json:"priority" form:"priority" validate:"required"`
}

func NewTicketService(tickets repository.TicketRepository, notifications *NotificationService) *TicketService {
	return &TicketService{
		tickets:       tickets,
		notifications: notifications,
	}
}

func (s *TicketService) Create(ctx context.Context, user *models.User, req *CreateTicketRequest) (*models.Ticket, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := models.TicketCategoryGeneral
	if req.Category != "" {
		category = models.TicketCategory(req.Category)
	}

	ticket := &models.Ticket{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		Category:  category,
		OrderID:   strings.TrimSpace(req.OrderID),
		Status:    models.TicketStatusOpen,
		Priority:  models.TicketPriorityMedium,
		Replies:   models.TicketReplies{},
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, Internal("create ticket", err)
	}
	return ticket, nil
}

func (s *TicketService) ListOwn(ctx context.Context, user *models.User) ([]models.Ticket, error) {
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{UserID: user.ID})
	if err != nil {
		return nil, Internal("list tickets", err)
	}
	return tickets, nil
}

// ListAll is the admin view, optionally narrowed to one status.
func (s *TicketService) ListAll(ctx context.Context, rawStatus string) ([]models.Ticket, error) {
	var filter repository.TicketFilter
	if rawStatus != "" {
		status, err := models.ParseTicketStatus(rawStatus)
		if err != nil {
			return nil, Validationf("status must be one of open, in_progress, resolved, closed")
		}
		filter.Status = &status
	}

	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, Internal("list tickets", err)
	}
	return tickets, nil
}

func (s *TicketService) authorize(ctx context.Context, user *models.User, id string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo("get ticket", "Ticket not found", err)
	}
	if ticket.UserID != user.ID && !user.IsAdmin() {
		return nil, Forbiddenf("Access denied")
	}
	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, user *models.User, id string) (*models.Ticket, error) {
	return s.authorize(ctx, user, id)
}

// Reply appends exactly one reply and advances updated_at.
func (s *TicketService) Reply(ctx context.Context, user *models.User, id string, req *TicketReplyRequest) (*models.TicketReply, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	ticket, err := s.authorize(ctx, user, id)
	if err != nil {
		return nil, err
	}

	reply := models.TicketReply{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		IsAdmin:   user.IsAdmin(),
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.tickets.AppendReply(ctx, ticket.ID, reply); err != nil {
		return nil, fromRepo("append ticket reply", "Ticket not found", err)
	}

	// Only staff answers to someone else's ticket are mailed out.
	if reply.IsAdmin && ticket.UserID != user.ID && s.notifications != nil {
		s.notifications.Dispatch("ticket_reply", func() error {
			return s.notifications.SendTicketReplyEmail(ticket, reply)
		})
	}

	return &reply, nil
}

func (s *TicketService) UpdateStatus(ctx context.Context, id string, req *TicketStatusRequest) (*models.Ticket, error) {
	status, err := models.ParseTicketStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, Validationf("status must be one of open, in_progress, resolved, closed")
	}

	ticket, err := s.tickets.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fromRepo("update ticket status", "Ticket not found", err)
	}
	return ticket, nil
}

func (s *TicketService) UpdatePriority(ctx context.Context, id string, req *TicketPriorityRequest) (*models.Ticket, error) {
	priority, err := models.ParseTicketPriority(strings.TrimSpace(req.Priority))
	if err != nil {
		return nil, Validationf("priority must be one of low, medium, high")
	}

	ticket, err := s.tickets.UpdatePriority(ctx, id, priority)
	if err != nil {
		return nil, fromRepo("update ticket priority", "Ticket not found", err)
	}
	return ticket, nil
}
