package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnumsRejectUnknownValues(t *testing.T) {
	_, err := ParseRole("superuser")
	assert.Error(t, err)

	role, err := ParseRole("vendor")
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, role)

	_, err = ParseOrderStatus("returned")
	assert.Error(t, err)

	for _, s := range OrderStatuses {
		parsed, err := ParseOrderStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err = ParseTicketPriority("urgent")
	assert.Error(t, err)
	_, err = ParseTicketStatus("in_progress")
	assert.NoError(t, err)
}

func TestPasswordHashing(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("sunshine"))

	assert.NotEqual(t, "sunshine", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("sunshine"))
	assert.Error(t, u.CheckPassword("moonlight"))

	other := &User{}
	require.NoError(t, other.SetPassword("sunshine"))
	assert.NotEqual(t, u.PasswordHash, other.PasswordHash)
}

func TestOrderItemsHelpers(t *testing.T) {
	items := OrderItems{
		{ProductID: "a", Price: 100, Quantity: 2, VendorID: "v1"},
		{ProductID: "b", Price: 50, Quantity: 1, VendorID: "v2"},
		{ProductID: "a", Price: 100, Quantity: 1, VendorID: "v1"},
	}

	assert.Equal(t, []string{"a", "b"}, items.ProductIDs())
	assert.Equal(t, map[string]int{"a": 3, "b": 1}, items.QuantityByProduct())

	order := &Order{Items: items}
	assert.Equal(t, 300.0, order.VendorTotal("v1"))
	assert.False(t, order.IsAssigned())
}

func TestOrderItemsScan(t *testing.T) {
	var items OrderItems
	require.NoError(t, items.Scan([]byte(`[{"product_id":"p1","name":"Kit","price":10,"quantity":3,"vendor_id":"v"}]`)))
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	var replies TicketReplies
	require.NoError(t, replies.Scan(`[]`))
	assert.Empty(t, replies)
}

func TestDisplayName(t *testing.T) {
	u := &User{Name: "Asha"}
	assert.Equal(t, "Asha", u.DisplayName())
	u.BusinessName = "SunCo"
	assert.Equal(t, "SunCo", u.DisplayName())
}
