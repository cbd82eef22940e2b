package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarsavers/solarsavers-api/internal/models"
)

func TestRankVendors(t *testing.T) {
	items := models.OrderItems{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 1},
	}
	inv := []models.VendorInventoryItem{
		{VendorID: "v3", ProductID: "a", Quantity: 5, VendorPrice: 90, IsAvailable: true},
		{VendorID: "v3", ProductID: "b", Quantity: 5, VendorPrice: 70, IsAvailable: true},
		{VendorID: "v1", ProductID: "a", Quantity: 1, VendorPrice: 100, IsAvailable: true},
		{VendorID: "v1", ProductID: "b", Quantity: 1, VendorPrice: 50, IsAvailable: true},
		// v2 cannot supply b.
		{VendorID: "v2", ProductID: "a", Quantity: 9, VendorPrice: 10, IsAvailable: true},
		{VendorID: "v4", ProductID: "a", Quantity: 9, VendorPrice: 10, IsAvailable: true},
		{VendorID: "v4", ProductID: "b", Quantity: 0, VendorPrice: 10, IsAvailable: true},
		{VendorID: "v5", ProductID: "a", Quantity: 9, VendorPrice: 1, IsAvailable: true},
		{VendorID: "v5", ProductID: "b", Quantity: 9, VendorPrice: 1, IsAvailable: false},
		{VendorID: "v6", ProductID: "a", Quantity: 9, VendorPrice: 60, IsAvailable: true},
		{VendorID: "v6", ProductID: "b", Quantity: 9, VendorPrice: 60, IsAvailable: true},
	}

	ranked := rankVendors(items, inv)
	require.Len(t, ranked, 3)
	assert.Equal(t, vendorCost{vendorID: "v6", cost: 180}, ranked[0])
	assert.Equal(t, vendorCost{vendorID: "v1", cost: 250}, ranked[1])
	assert.Equal(t, vendorCost{vendorID: "v3", cost: 250}, ranked[2])
}

func TestRankVendorsSumsDuplicateProductLines(t *testing.T) {
	items := models.OrderItems{
		{ProductID: "a", Quantity: 1},
		{ProductID: "a", Quantity: 2},
	}
	inv := []models.VendorInventoryItem{
		{VendorID: "v1", ProductID: "a", Quantity: 3, VendorPrice: 10, IsAvailable: true},
	}

	ranked := rankVendors(items, inv)
	require.Len(t, ranked, 1)
	assert.Equal(t, 30.0, ranked[0].cost)
}

type orderFixture struct {
	orders   *OrderService
	mail     *mailRecorder
	notif    *NotificationService
	customer *models.User
	vendor   *models.User
	admin    *models.User
	panel    *models.Product
	battery  *models.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	store := newTestStore()
	notif, mail := newRecordingNotifications()
	f := &orderFixture{
		orders:   NewOrderService(store, notif),
		mail:     mail,
		notif:    notif,
		customer: createUser(t, store, "cust@example.com", models.RoleCustomer),
		vendor:   createUser(t, store, "vend@example.com", models.RoleVendor),
		admin:    createUser(t, store, "admin@example.com", models.RoleAdmin),
	}
	f.panel = createProduct(t, store, f.vendor, "Panel kit", 1000)
	f.battery = createProduct(t, store, f.vendor, "Battery", 250.5)
	stock(t, store, f.vendor, f.panel, 5, 800)
	stock(t, store, f.vendor, f.battery, 5, 200)
	return f
}

func (f *orderFixture) placeOrder(t *testing.T, paymentMethod string) *models.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), f.customer, &CreateOrderRequest{
		Items: []CartItem{
			{ProductID: f.panel.ID, Quantity: 2},
			{ProductID: f.battery.ID, Quantity: 1},
		},
		ShippingAddress: "12 MG Road, Pune",
		PaymentMethod:   paymentMethod,
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderSnapshotsCatalog(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.Create(context.Background(), f.customer, &CreateOrderRequest{
		Items: []CartItem{
			{ProductID: f.panel.ID, Quantity: 2},
			{ProductID: "gone", Quantity: 4},
			{ProductID: f.battery.ID, Quantity: 1},
		},
		ShippingAddress: "12 MG Road, Pune",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Panel kit", order.Items[0].Name)
	assert.Equal(t, f.vendor.ID, order.Items[0].VendorID)
	assert.Equal(t, 2250.5, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, f.customer.Email, order.UserEmail)
}

func TestCreateOrderWithOnlyMissingProducts(t *testing.T) {
	f := newOrderFixture(t)

	ctx := context.Background()
	order, err := f.orders.Create(ctx, f.customer, &CreateOrderRequest{
		Items:           []CartItem{{ProductID: "gone", Quantity: 1}},
		ShippingAddress: "x",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)
	assert.Empty(t, order.Items)
	assert.Equal(t, 0.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	stored, err := f.orders.Get(ctx, f.customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)

	options, err := f.orders.AvailableVendors(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, options.AvailableVendors)

	// A request without lines is still invalid.
	_, err = f.orders.Create(context.Background(), f.customer, &CreateOrderRequest{
		ShippingAddress: "x",
		PaymentMethod:   "cod",
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestOrderVisibility(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order := f.placeOrder(t, "cod")

	_, err := f.orders.Get(ctx, f.customer, order.ID)
	assert.NoError(t, err)
	_, err = f.orders.Get(ctx, f.admin, order.ID)
	assert.NoError(t, err)
	_, err = f.orders.Get(ctx, f.vendor, order.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	mine, err := f.orders.List(ctx, f.customer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	all, err := f.orders.List(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	theirs, err := f.orders.List(ctx, f.vendor)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	contains, err := f.orders.VendorOrders(ctx, f.vendor.ID)
	require.NoError(t, err)
	assert.Len(t, contains, 1)
}

func TestUpdateOrderStatusRules(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order := f.placeOrder(t, "cod")

	_, err := f.orders.UpdateStatus(ctx, f.admin, order.ID, &UpdateOrderStatusRequest{Status: "teleported"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.orders.UpdateStatus(ctx, f.customer, order.ID, &UpdateOrderStatusRequest{Status: "shipped"})
	assert.Equal(t, KindForbidden, KindOf(err))

	// Not yet assigned to the vendor.
	_, err = f.orders.UpdateStatus(ctx, f.vendor, order.ID, &UpdateOrderStatusRequest{Status: "shipped"})
	assert.Equal(t, KindForbidden, KindOf(err))

	updated, err := f.orders.UpdateStatus(ctx, f.admin, order.ID, &UpdateOrderStatusRequest{Status: "processing"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	cancelled, err := f.orders.UpdateStatus(ctx, f.customer, order.ID, &UpdateOrderStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	_, err = f.orders.UpdateStatus(ctx, f.admin, "missing", &UpdateOrderStatusRequest{Status: "shipped"})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestAssignOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order := f.placeOrder(t, "cod")

	pending, err := f.orders.PendingAssignment(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	options, err := f.orders.AvailableVendors(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, options.AvailableVendors, 1)
	candidate := options.AvailableVendors[0]
	assert.Equal(t, f.vendor.ID, candidate.VendorID)
	assert.Equal(t, "vend Solar", candidate.VendorName)
	assert.Equal(t, 1800.0, candidate.TotalVendorPrice)
	assert.Equal(t, order.TotalAmount, options.OrderTotal)

	_, err = f.orders.Assign(ctx, f.admin, order.ID, &AssignOrderRequest{VendorID: f.customer.ID})
	assert.Equal(t, KindNotFound, KindOf(err))

	assigned, err := f.orders.Assign(ctx, f.admin, order.ID, &AssignOrderRequest{VendorID: f.vendor.ID, AssignmentNotes: " call first "})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAssigned, assigned.Status)
	assert.Equal(t, f.vendor.ID, assigned.AssignedVendorID)
	assert.Equal(t, f.admin.ID, assigned.AssignedBy)
	assert.Equal(t, "call first", assigned.AssignmentNotes)
	require.NotNil(t, assigned.AssignedAt)

	_, err = f.orders.Assign(ctx, f.admin, order.ID, &AssignOrderRequest{VendorID: f.vendor.ID})
	assert.Equal(t, KindConflict, KindOf(err))

	entries, err := f.orders.inventory.ListByVendor(ctx, f.vendor.ID)
	require.NoError(t, err)
	remaining := map[string]int{}
	for _, e := range entries {
		remaining[e.ProductID] = e.Quantity
	}
	assert.Equal(t, 3, remaining[f.panel.ID])
	assert.Equal(t, 4, remaining[f.battery.ID])

	// The assigned vendor can now move the order along.
	shipped, err := f.orders.UpdateStatus(ctx, f.vendor, order.ID, &UpdateOrderStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, shipped.Status)

	mine, err := f.orders.AssignedOrders(ctx, f.vendor.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	f.notif.Wait()
	sent := f.mail.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, f.vendor.Email, sent[0].to)
	assert.Contains(t, sent[0].subject, order.ID)
}

func TestConcurrentAssignDrawsStockOnce(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order := f.placeOrder(t, "cod")

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orders.Assign(ctx, f.admin, order.ID, &AssignOrderRequest{VendorID: f.vendor.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case KindOf(err) == KindConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()
	f.notif.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	entries, err := f.orders.inventory.ListByVendor(ctx, f.vendor.ID)
	require.NoError(t, err)
	for _, e := range entries {
		switch e.ProductID {
		case f.panel.ID:
			assert.Equal(t, 3, e.Quantity)
		case f.battery.ID:
			assert.Equal(t, 4, e.Quantity)
		}
	}
}

func TestVendorDashboardCountsOwnLines(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	orders := NewOrderService(store, nil)
	users := NewUserService(store)
	customer := createUser(t, store, "c@example.com", models.RoleCustomer)
	mine := createUser(t, store, "mine@example.com", models.RoleVendor)
	theirs := createUser(t, store, "theirs@example.com", models.RoleVendor)
	a := createProduct(t, store, mine, "Mine", 100)
	b := createProduct(t, store, theirs, "Theirs", 900)

	_, err := orders.Create(ctx, customer, &CreateOrderRequest{
		Items:           []CartItem{{ProductID: a.ID, Quantity: 3}, {ProductID: b.ID, Quantity: 1}},
		ShippingAddress: "x",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	stats, err := users.GetVendorDashboard(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 300.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.PendingOrders)

	admin := NewAdminService(store, nil)
	overall, err := admin.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overall.TotalCustomers)
	assert.Equal(t, int64(2), overall.TotalVendors)
	assert.Equal(t, 1200.0, overall.TotalRevenue)
}
