package services

import (
	"context"
	"strings"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

const contactStatusNew = "new"

type ContactService struct {
	contacts repository.ContactRepository
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=10000"`
}

func NewContactService(contacts repository.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Submit(ctx context.Context, req *ContactRequest) (*models.Contact, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   normalizeEmail(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
		Status:  contactStatusNew,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, Internal("create contact", err)
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return nil, Internal("list contacts", err)
	}
	return contacts, nil
}
