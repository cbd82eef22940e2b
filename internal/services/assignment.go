package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/metrics"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type VendorCandidate struct {
	VendorID         string  `json:"vendor_id"`
	VendorName       string  `json:"vendor_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	Location         string  `json:"location,omitempty"`
	TotalVendorPrice float64 `json:"total_vendor_price"`
}

type AssignmentOptions struct {
	OrderID          string            `json:"order_id"`
	OrderTotal       float64           `json:"order_total"`
	AvailableVendors []VendorCandidate `json:"available_vendors"`
}

type AssignOrderRequest struct {
	VendorID        string `json:"vendor_id" validate:"required"`
	AssignmentNotes string `json:"assignment_notes,omitempty" validate:"max=2000"`
}

type vendorCost struct {
	vendorID string
	cost     float64
}

// rankVendors keeps vendors whose stock covers every product of the order
// and orders them by what fulfilling the order would cost, cheapest first.
// Ties go to the lower vendor id.
func rankVendors(items models.OrderItems, stock []models.VendorInventoryItem) []vendorCost {
	required := items.QuantityByProduct()

	covered := make(map[string]map[string]bool)
	costs := make(map[string]float64)
	for _, row := range stock {
		qty, ok := required[row.ProductID]
		if !ok || !row.IsAvailable || row.Quantity <= 0 {
			continue
		}
		if covered[row.VendorID] == nil {
			covered[row.VendorID] = make(map[string]bool)
		}
		if covered[row.VendorID][row.ProductID] {
			continue
		}
		covered[row.VendorID][row.ProductID] = true
		costs[row.VendorID] += row.VendorPrice * float64(qty)
	}

	ranked := make([]vendorCost, 0, len(covered))
	for vendorID, products := range covered {
		if len(products) == len(required) {
			ranked = append(ranked, vendorCost{vendorID: vendorID, cost: round2(costs[vendorID])})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].cost != ranked[j].cost {
			return ranked[i].cost < ranked[j].cost
		}
		return ranked[i].vendorID < ranked[j].vendorID
	})
	return ranked
}

// AvailableVendors lists the vendors able to fulfil the whole order.
func (s *OrderService) AvailableVendors(ctx context.Context, orderID string) (*AssignmentOptions, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	stock, err := s.inventory.ListAvailable(ctx, order.Items.ProductIDs())
	if err != nil {
		return nil, Internal("load vendor inventory", err)
	}

	options := &AssignmentOptions{
		OrderID:          order.ID,
		OrderTotal:       order.TotalAmount,
		AvailableVendors: []VendorCandidate{},
	}

	for _, ranked := range rankVendors(order.Items, stock) {
		vendor, err := s.users.GetByID(ctx, ranked.vendorID)
		if err != nil {
			// Inventory of a deleted vendor account is not assignable.
			logrus.WithError(err).WithField("vendor_id", ranked.vendorID).Warn("Skipping vendor candidate")
			continue
		}
		options.AvailableVendors = append(options.AvailableVendors, VendorCandidate{
			VendorID:         vendor.ID,
			VendorName:       vendor.DisplayName(),
			Email:            vendor.Email,
			Phone:            vendor.Phone,
			Location:         vendor.Location,
			TotalVendorPrice: ranked.cost,
		})
	}

	return options, nil
}

// Assign binds the order to the vendor and draws the vendor's stock down by
// each line's quantity in the same transaction.
func (s *OrderService) Assign(ctx context.Context, admin *models.User, orderID string, req *AssignOrderRequest) (*models.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsAssigned() {
		return nil, Conflictf("Order already assigned to %s", order.AssignedVendorName)
	}

	vendor, err := s.users.GetByID(ctx, req.VendorID)
	if err != nil {
		return nil, fromRepo("get vendor", "Vendor not found", err)
	}
	if !vendor.IsVendor() {
		return nil, NotFoundf("Vendor not found")
	}

	assigned, err := s.orders.Assign(ctx, orderID, repository.Assignment{
		VendorID:   vendor.ID,
		VendorName: vendor.DisplayName(),
		AssignedBy: admin.ID,
		Notes:      strings.TrimSpace(req.AssignmentNotes),
		AssignedAt: time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrStateChanged) {
		return nil, Conflictf("Order already assigned")
	}
	if err != nil {
		return nil, fromRepo("assign order", "Order not found", err)
	}

	metrics.OrderAssignments.Inc()
	logrus.WithFields(logrus.Fields{
		"order_id":  orderID,
		"vendor_id": vendor.ID,
		"admin_id":  admin.ID,
	}).Info("Order assigned")

	if s.notifications != nil {
		s.notifications.Dispatch("order_assigned", func() error {
			return s.notifications.SendOrderAssignedEmail(vendor, assigned)
		})
	}

	return assigned, nil
}
