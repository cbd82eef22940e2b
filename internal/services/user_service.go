// internal/services/user_service.go
package services

import (
	"context"
	"math"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

// UserService serves vendor directory and vendor dashboard reads.
type UserService struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
}

type VendorDashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	PendingOrders int     `json:"pending_orders"`
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{
		users:    store.Users,
		products: store.Products,
		orders:   store.Orders,
	}
}

func (s *UserService) ListVendors(ctx context.Context) ([]models.User, error) {
	role := models.RoleVendor
	vendors, err := s.users.List(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		return nil, Internal("list vendors", err)
	}
	return vendors, nil
}

func (s *UserService) GetVendor(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo("get vendor", "Vendor not found", err)
	}
	if !user.IsVendor() {
		return nil, NotFoundf("Vendor not found")
	}
	return user, nil
}

// GetVendorDashboard summarizes the orders that contain the vendor's products.
// Revenue counts only the vendor's own lines.
func (s *UserService) GetVendorDashboard(ctx context.Context, vendorID string) (*VendorDashboardStats, error) {
	products, err := s.products.Count(ctx, vendorID)
	if err != nil {
		return nil, Internal("count vendor products", err)
	}

	orders, err := s.orders.List(ctx, repository.OrderFilter{ContainsVendorID: vendorID})
	if err != nil {
		return nil, Internal("list vendor orders", err)
	}

	stats := &VendorDashboardStats{
		TotalProducts: products,
		TotalOrders:   len(orders),
	}
	for i := range orders {
		stats.TotalRevenue += orders[i].VendorTotal(vendorID)
		if orders[i].Status == models.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
