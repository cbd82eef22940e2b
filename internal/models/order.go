// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// OrderItem is the snapshot of a product taken when the order is placed.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	VendorID  string  `json:"vendor_id"`
}

type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func (o *OrderItems) Scan(value interface{}) error {
	return scanJSON(value, o)
}

// ProductIDs returns the distinct product ids in line order.
func (o OrderItems) ProductIDs() []string {
	seen := make(map[string]bool, len(o))
	ids := make([]string, 0, len(o))
	for _, item := range o {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// QuantityByProduct sums line quantities per product.
func (o OrderItems) QuantityByProduct() map[string]int {
	q := make(map[string]int, len(o))
	for _, item := range o {
		q[item.ProductID] += item.Quantity
	}
	return q
}

type Order struct {
	BaseModel
	UserID             string      `json:"user_id" gorm:"type:varchar(36);not null;index"`
	UserEmail          string      `json:"user_email" gorm:"size:255"`
	Items              OrderItems  `json:"items" gorm:"type:jsonb;not null"`
	TotalAmount        float64     `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status             OrderStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ShippingAddress    string      `json:"shipping_address" gorm:"type:text"`
	PaymentMethod      string      `json:"payment_method" gorm:"size:50"`
	PaymentIntentID    string      `json:"payment_intent_id,omitempty" gorm:"size:255"`
	AssignedVendorID   string      `json:"assigned_vendor_id,omitempty" gorm:"type:varchar(36);index"`
	AssignedVendorName string      `json:"assigned_vendor_name,omitempty" gorm:"size:255"`
	AssignedBy         string      `json:"assigned_by,omitempty" gorm:"type:varchar(36)"`
	AssignmentNotes    string      `json:"assignment_notes,omitempty" gorm:"type:text"`
	AssignedAt         *time.Time  `json:"assigned_at,omitempty"`
}

func (o *Order) IsAssigned() bool {
	return o.AssignedVendorID != ""
}

// VendorTotal is the value of the lines that originated from vendorID.
func (o *Order) VendorTotal(vendorID string) float64 {
	var total float64
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			total += item.Price * float64(item.Quantity)
		}
	}
	return total
}
