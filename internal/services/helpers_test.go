package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/database/memory"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:8000"},
		JWT:    config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 24},
		Email:  config.EmailConfig{FromName: "SolarSavers", FromEmail: "noreply@solarsavers.com"},
	}
}

type sentMail struct {
	to      string
	subject string
	body    string
}

// mailRecorder captures notification emails instead of sending them.
type mailRecorder struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *mailRecorder) send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *mailRecorder) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func newRecordingNotifications() (*NotificationService, *mailRecorder) {
	rec := &mailRecorder{}
	return NewNotificationService(testConfig()).WithMailer(rec.send), rec
}

func newTestStore() *repository.Store {
	return memory.NewStore()
}

func createUser(t *testing.T, store *repository.Store, email string, role models.Role) *models.User {
	t.Helper()

	name := strings.Split(email, "@")[0]
	user := &models.User{Email: email, Name: name, Role: role}
	if role == models.RoleVendor {
		user.BusinessName = name + " Solar"
		user.Status = models.VendorStatusApproved
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func createProduct(t *testing.T, store *repository.Store, vendor *models.User, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:         name,
		Description:  name + " system",
		Category:     models.CategoryHome,
		SystemSizeKW: 3,
		Price:        price,
		Brand:        "SunPower",
		InStock:      true,
		Rating:       initialProductRating,
		VendorID:     vendor.ID,
		VendorName:   vendor.DisplayName(),
	}
	require.NoError(t, store.Products.Create(context.Background(), product))
	return product
}

func stock(t *testing.T, store *repository.Store, vendor *models.User, product *models.Product, qty int, price float64) *models.VendorInventoryItem {
	t.Helper()

	item, err := NewInventoryService(store.Inventory).Create(context.Background(), vendor, &CreateInventoryRequest{
		ProductID:   product.ID,
		Quantity:    qty,
		VendorPrice: price,
	})
	require.NoError(t, err)
	return item
}
