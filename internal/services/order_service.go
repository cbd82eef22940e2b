package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/metrics"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

const orderListLimit = 100

type OrderService struct {
	orders        repository.OrderRepository
	products      repository.ProductRepository
	users         repository.UserRepository
	inventory     repository.InventoryRepository
	notifications *NotificationService
}

type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type CreateOrderRequest struct {
	Items           []CartItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string     `json:"shipping_address" validate:"required,max=1000"`
	PaymentMethod   string     `json:"payment_method" validate:"required,max=50"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewOrderService(store *repository.Store, notifications *NotificationService) *OrderService {
	return &OrderService{
		orders:        store.Orders,
		products:      store.Products,
		users:         store.Users,
		inventory:     store.Inventory,
		notifications: notifications,
	}
}

// Create snapshots each cart line from the current catalog. Lines whose
// product no longer exists are dropped; if none survive the order is still
// recorded, empty and with a zero total.
func (s *OrderService) Create(ctx context.Context, customer *models.User, req *CreateOrderRequest) (*models.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, Internal("load order products", err)
	}

	items := models.OrderItems{}
	var total float64
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			logrus.WithField("product_id", line.ProductID).Debug("Skipping order line for missing product")
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			VendorID:  product.VendorID,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		UserID:          customer.ID,
		UserEmail:       customer.Email,
		Items:           items,
		TotalAmount:     round2(total),
		Status:          models.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, Internal("create order", err)
	}

	metrics.OrdersCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  customer.ID,
		"lines":    len(items),
		"total":    order.TotalAmount,
	}).Info("Order created")

	return order, nil
}

// List returns the caller's orders, or every order for an admin.
func (s *OrderService) List(ctx context.Context, actor *models.User) ([]models.Order, error) {
	filter := repository.OrderFilter{Limit: orderListLimit}
	if !actor.IsAdmin() {
		filter.UserID = actor.ID
	}
	return s.list(ctx, "list orders", filter)
}

// VendorOrders lists orders containing at least one of the vendor's products.
func (s *OrderService) VendorOrders(ctx context.Context, vendorID string) ([]models.Order, error) {
	return s.list(ctx, "list vendor orders", repository.OrderFilter{ContainsVendorID: vendorID, Limit: orderListLimit})
}

func (s *OrderService) AssignedOrders(ctx context.Context, vendorID string) ([]models.Order, error) {
	return s.list(ctx, "list assigned orders", repository.OrderFilter{AssignedVendorID: vendorID, Limit: orderListLimit})
}

func (s *OrderService) PendingAssignment(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, "list unassigned orders", repository.OrderFilter{Unassigned: true, Limit: orderListLimit})
}

func (s *OrderService) list(ctx context.Context, op string, filter repository.OrderFilter) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, Internal(op, err)
	}
	return orders, nil
}

func (s *OrderService) getOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo("get order", "Order not found", err)
	}
	return order, nil
}

// Get is allowed for the customer, the assigned vendor and admins.
func (s *OrderService) Get(ctx context.Context, actor *models.User, id string) (*models.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || order.UserID == actor.ID || (order.IsAssigned() && order.AssignedVendorID == actor.ID) {
		return order, nil
	}
	return nil, Forbiddenf("Access denied")
}

// UpdateStatus accepts any status in the fixed set. Vendors may only touch
// orders assigned to them; customers may only cancel their own orders.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *models.User, id string, req *UpdateOrderStatusRequest) (*models.Order, error) {
	status, err := models.ParseOrderStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, Validationf("Invalid status. Valid: %v", models.OrderStatuses)
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleVendor:
		if order.AssignedVendorID != actor.ID {
			return nil, Forbiddenf("You can only update orders assigned to you")
		}
	default:
		if order.UserID != actor.ID || status != models.OrderStatusCancelled {
			return nil, Forbiddenf("You can only cancel your own orders")
		}
	}

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fromRepo("update order status", "Order not found", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"actor_id": actor.ID,
		"from":     order.Status,
		"to":       status,
	}).Info("Order status updated")

	return updated, nil
}
