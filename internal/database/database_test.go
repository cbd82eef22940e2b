package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

// PostgresTestSuite runs the gorm repositories against a live database.
// Set TEST_DATABASE_URL to a disposable database to enable it.
type PostgresTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *repository.Store
	ctx   context.Context
}

func (suite *PostgresTestSuite) SetupSuite() {
	db, err := Initialize(config.DatabaseConfig{
		URL:          os.Getenv("TEST_DATABASE_URL"),
		MaxOpenConns: 10,
		MaxIdleConns: 2,
		MaxLifetime:  60,
		LogLevel:     "silent",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(RunMigrations(db))

	suite.db = db
	suite.store = NewStore(db)
	suite.ctx = context.Background()
}

func (suite *PostgresTestSuite) TearDownSuite() {
	Close(suite.db)
}

func (suite *PostgresTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE users, products, vendor_inventory, product_suggestions, orders, tickets, blogs, reviews, contacts, chat_messages",
	).Error)
}

func (suite *PostgresTestSuite) product(vendorID string, price float64) *models.Product {
	p := &models.Product{
		Name:     "Rooftop kit",
		Category: models.CategoryHome,
		Price:    price,
		Brand:    "Tata Power",
		VendorID: vendorID,
		InStock:  true,
		Rating:   4.5,
	}
	suite.Require().NoError(suite.store.Products.Create(suite.ctx, p))
	return p
}

func (suite *PostgresTestSuite) TestPriceDropClampsInventory() {
	p := suite.product("v1", 1500)
	item := &models.VendorInventoryItem{VendorID: "v2", ProductID: p.ID, Quantity: 3, VendorPrice: 1400, IsAvailable: true}
	suite.Require().NoError(suite.store.Inventory.Create(suite.ctx, item))

	err := suite.store.Inventory.Create(suite.ctx, &models.VendorInventoryItem{VendorID: "v3", ProductID: p.ID, VendorPrice: 1600})
	var ceiling *repository.PriceCeilingError
	suite.ErrorAs(err, &ceiling)

	price := 1200.0
	_, err = suite.store.Products.Update(suite.ctx, p.ID, repository.ProductUpdate{Price: &price})
	suite.Require().NoError(err)

	entries, err := suite.store.Inventory.ListByVendor(suite.ctx, "v2")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(1200.0, entries[0].VendorPrice)
}

func (suite *PostgresTestSuite) TestAssignDecrementsOnce() {
	p := suite.product("v1", 500)
	suite.Require().NoError(suite.store.Inventory.Create(suite.ctx,
		&models.VendorInventoryItem{VendorID: "v2", ProductID: p.ID, Quantity: 1, VendorPrice: 450, IsAvailable: true}))

	order := &models.Order{
		UserID: "c1",
		Items:  models.OrderItems{{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 2, VendorID: "v1"}},
		Status: models.OrderStatusPending,
	}
	suite.Require().NoError(suite.store.Orders.Create(suite.ctx, order))

	byVendor, err := suite.store.Orders.List(suite.ctx, repository.OrderFilter{ContainsVendorID: "v1"})
	suite.Require().NoError(err)
	suite.Len(byVendor, 1)

	a := repository.Assignment{VendorID: "v2", VendorName: "Sun", AssignedBy: "a1", AssignedAt: time.Now()}
	assigned, err := suite.store.Orders.Assign(suite.ctx, order.ID, a)
	suite.Require().NoError(err)
	suite.Equal(models.OrderStatusAssigned, assigned.Status)

	_, err = suite.store.Orders.Assign(suite.ctx, order.ID, a)
	suite.ErrorIs(err, repository.ErrStateChanged)

	entries, err := suite.store.Inventory.ListByVendor(suite.ctx, "v2")
	suite.Require().NoError(err)
	suite.Equal(-1, entries[0].Quantity)

	available, err := suite.store.Inventory.ListAvailable(suite.ctx, []string{p.ID})
	suite.Require().NoError(err)
	suite.Empty(available)
}

func (suite *PostgresTestSuite) TestReviewRecomputesRating() {
	p := suite.product("v1", 500)
	var updated *models.Product
	for _, rating := range []int{5, 4, 4} {
		var err error
		updated, err = suite.store.Reviews.Create(suite.ctx, &models.Review{ProductID: p.ID, UserID: "u1", Rating: rating})
		suite.Require().NoError(err)
	}
	suite.Equal(4.3, updated.Rating)
	suite.Equal(3, updated.ReviewCount)
}

func (suite *PostgresTestSuite) TestTicketRepliesAppend() {
	ticket := &models.Ticket{
		UserID:   "u1",
		Subject:  "Inverter noise",
		Message:  "Humming at night",
		Category: models.TicketCategoryTechnical,
		Status:   models.TicketStatusOpen,
		Priority: models.TicketPriorityMedium,
	}
	suite.Require().NoError(suite.store.Tickets.Create(suite.ctx, ticket))

	for _, msg := range []string{"first", "second"} {
		_, err := suite.store.Tickets.AppendReply(suite.ctx, ticket.ID, models.TicketReply{ID: msg, UserID: "u1", Message: msg, CreatedAt: time.Now()})
		suite.Require().NoError(err)
	}

	got, err := suite.store.Tickets.GetByID(suite.ctx, ticket.ID)
	suite.Require().NoError(err)
	suite.Require().Len(got.Replies, 2)
	suite.Equal("first", got.Replies[0].Message)
	suite.Equal("second", got.Replies[1].Message)
}

func (suite *PostgresTestSuite) TestBlogViewsIncrement() {
	blog := &models.Blog{Title: "Net metering", Content: "...", Category: models.BlogCategoryGuides, IsPublished: true}
	suite.Require().NoError(suite.store.Blogs.Create(suite.ctx, blog))

	_, err := suite.store.Blogs.IncrementViews(suite.ctx, blog.ID)
	suite.Require().NoError(err)
	again, err := suite.store.Blogs.IncrementViews(suite.ctx, blog.ID)
	suite.Require().NoError(err)
	suite.Equal(2, again.Views)

	_, err = suite.store.Blogs.IncrementViews(suite.ctx, "00000000-0000-0000-0000-000000000000")
	suite.ErrorIs(err, repository.ErrNotFound)
}

func TestPostgresTestSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(PostgresTestSuite))
}
