// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

const cardPaymentMethod = "card"

// PaymentIntent is the gateway's view of one payment attempt.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentGateway creates and reads payment intents. Amounts are in the
// currency's minor unit.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

type stripeGateway struct{}

// NewStripeGateway configures the Stripe client with the secret key.
func NewStripeGateway(secretKey string) PaymentGateway {
	stripe.Key = secretKey
	return stripeGateway{}
}

func (stripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (stripeGateway) GetIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return &PaymentIntent{ID: pi.ID, Status: string(pi.Status)}, nil
}

type PaymentService struct {
	orders   repository.OrderRepository
	gateway  PaymentGateway
	currency string
}

type PaymentIntentResponse struct {
	OrderID      string  `json:"order_id"`
	ClientSecret string  `json:"client_secret"`
	PaymentID    string  `json:"payment_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

type ConfirmPaymentResponse struct {
	Order         *models.Order `json:"order"`
	PaymentStatus string        `json:"payment_status"`
}

// NewPaymentService uses Stripe when a secret key is configured. gateway
// overrides it when non-nil.
func NewPaymentService(orders repository.OrderRepository, cfg config.PaymentConfig, gateway PaymentGateway) *PaymentService {
	if gateway == nil && cfg.StripeSecretKey != "" {
		gateway = NewStripeGateway(cfg.StripeSecretKey)
	}

	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = "inr"
	}

	return &PaymentService{
		orders:   orders,
		gateway:  gateway,
		currency: currency,
	}
}

func (s *PaymentService) payableOrder(ctx context.Context, customer *models.User, orderID string) (*models.Order, error) {
	if s.gateway == nil {
		return nil, Validationf("Payments are not configured")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fromRepo("get order", "Order not found", err)
	}
	if order.UserID != customer.ID {
		return nil, Forbiddenf("Access denied")
	}
	if !strings.EqualFold(order.PaymentMethod, cardPaymentMethod) {
		return nil, Validationf("Order payment method is %s, not card", order.PaymentMethod)
	}
	return order, nil
}

// CreateOrderPaymentIntent opens a card payment for the order total.
func (s *PaymentService) CreateOrderPaymentIntent(ctx context.Context, customer *models.User, orderID string) (*PaymentIntentResponse, error) {
	order, err := s.payableOrder(ctx, customer, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, Validationf("Order is already %s", order.Status)
	}

	amount := int64(math.Round(order.TotalAmount * 100))
	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency, map[string]string{
		"order_id": order.ID,
		"user_id":  customer.ID,
	})
	if err != nil {
		return nil, Internal("create payment intent", err)
	}

	if err := s.orders.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		return nil, fromRepo("store payment intent", "Order not found", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"payment_id": intent.ID,
		"amount":     amount,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		OrderID:      order.ID,
		ClientSecret: intent.ClientSecret,
		PaymentID:    intent.ID,
		Status:       intent.Status,
		Amount:       order.TotalAmount,
		Currency:     s.currency,
	}, nil
}

// ConfirmPayment moves a pending order to processing once its intent has
// succeeded. Any other intent status leaves the order unchanged.
func (s *PaymentService) ConfirmPayment(ctx context.Context, customer *models.User, orderID string, req *ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.payableOrder(ctx, customer, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentIntentID != req.PaymentIntentID {
		return nil, Validationf("Payment does not belong to this order")
	}

	intent, err := s.gateway.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, Internal("get payment intent", err)
	}

	if intent.Status != string(stripe.PaymentIntentStatusSucceeded) || order.Status != models.OrderStatusPending {
		return &ConfirmPaymentResponse{Order: order, PaymentStatus: intent.Status}, nil
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing)
	if err != nil {
		return nil, fromRepo("update order status", "Order not found", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"payment_id": intent.ID,
	}).Info("Payment confirmed")

	return &ConfirmPaymentResponse{Order: updated, PaymentStatus: intent.Status}, nil
}
