// internal/services/admin_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type AdminService struct {
	users         repository.UserRepository
	products      repository.ProductRepository
	orders        repository.OrderRepository
	notifications *NotificationService
}

type AdminDashboardStats struct {
	TotalCustomers int64   `json:"total_customers"`
	TotalVendors   int64   `json:"total_vendors"`
	TotalProducts  int64   `json:"total_products"`
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	PendingOrders  int     `json:"pending_orders"`
}

type AdminUserFilter struct {
	Role   string `form:"role" validate:"omitempty,role"`
	Status string `form:"status" validate:"omitempty,oneof=pending approved"`
}

func NewAdminService(store *repository.Store, notifications *NotificationService) *AdminService {
	return &AdminService{
		users:         store.Users,
		products:      store.Products,
		orders:        store.Orders,
		notifications: notifications,
	}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	var err error

	if stats.TotalCustomers, err = s.users.Count(ctx, models.RoleCustomer); err != nil {
		return nil, Internal("count customers", err)
	}
	if stats.TotalVendors, err = s.users.Count(ctx, models.RoleVendor); err != nil {
		return nil, Internal("count vendors", err)
	}
	if stats.TotalProducts, err = s.products.Count(ctx, ""); err != nil {
		return nil, Internal("count products", err)
	}

	orders, err := s.orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, Internal("list orders", err)
	}
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		stats.TotalRevenue += o.TotalAmount
		if o.Status == models.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)

	return stats, nil
}

func (s *AdminService) GetUsers(ctx context.Context, filter AdminUserFilter) ([]models.User, error) {
	if err := validateRequest(&filter); err != nil {
		return nil, err
	}

	var repoFilter repository.UserFilter
	if filter.Role != "" {
		role := models.Role(filter.Role)
		repoFilter.Role = &role
	}
	if filter.Status != "" {
		status := models.VendorStatus(filter.Status)
		repoFilter.Status = &status
	}

	users, err := s.users.List(ctx, repoFilter)
	if err != nil {
		return nil, Internal("list users", err)
	}
	return users, nil
}

func (s *AdminService) ApproveVendor(ctx context.Context, vendorID, adminID string) (*models.User, error) {
	existing, err := s.users.GetByID(ctx, vendorID)
	if err != nil {
		return nil, fromRepo("get vendor", "Vendor not found", err)
	}
	if !existing.IsVendor() {
		return nil, NotFoundf("Vendor not found")
	}

	vendor, err := s.users.SetVendorStatus(ctx, vendorID, models.VendorStatusApproved)
	if err != nil {
		return nil, fromRepo("approve vendor", "Vendor not found", err)
	}

	logrus.WithFields(logrus.Fields{
		"vendor_id": vendor.ID,
		"admin_id":  adminID,
	}).Info("Vendor approved")

	if s.notifications != nil {
		s.notifications.Dispatch("vendor_approved", func() error {
			return s.notifications.SendVendorApprovedEmail(vendor)
		})
	}

	return vendor, nil
}
