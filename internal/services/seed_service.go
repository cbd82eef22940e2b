package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

const (
	seedAdminEmail    = "admin@solarsavers.com"
	seedAdminPassword = "admin123"
	seedVendorEmail   = "vendor@solarsavers.com"
	seedVendorPass    = "vendor123"
	seedVendorName    = "SolarTech Solutions"
)

type SeedService struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

type SeedResult struct {
	Seeded        bool `json:"seeded"`
	ProductsCount int  `json:"products_count,omitempty"`
}

func NewSeedService(store *repository.Store) *SeedService {
	return &SeedService{
		users:    store.Users,
		products: store.Products,
	}
}

// Seed creates the admin, the demo vendor and the starter catalog. It does
// nothing once any product exists.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.products.Count(ctx, "")
	if err != nil {
		return nil, Internal("count products", err)
	}
	if existing > 0 {
		return &SeedResult{Seeded: false}, nil
	}

	if _, err := s.ensureUser(ctx, &models.User{
		Email: seedAdminEmail,
		Name:  "Admin",
		Role:  models.RoleAdmin,
	}, seedAdminPassword); err != nil {
		return nil, err
	}

	vendor, err := s.ensureUser(ctx, &models.User{
		Email:        seedVendorEmail,
		Name:         seedVendorName,
		Role:         models.RoleVendor,
		BusinessName: seedVendorName,
		Description:  "Premium solar panel manufacturer",
		Phone:        "+1-555-0100",
		Status:       models.VendorStatusApproved,
	}, seedVendorPass)
	if err != nil {
		return nil, err
	}

	catalog := seedCatalog()
	for i := range catalog {
		catalog[i].VendorID = vendor.ID
		catalog[i].VendorName = vendor.DisplayName()
		catalog[i].InStock = true
		if err := s.products.Create(ctx, &catalog[i]); err != nil {
			return nil, Internal("seed product", err)
		}
	}

	logrus.WithField("products", len(catalog)).Info("Database seeded")
	return &SeedResult{Seeded: true, ProductsCount: len(catalog)}, nil
}

func (s *SeedService) ensureUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, Internal("lookup seed user", err)
	}

	if err := user.SetPassword(password); err != nil {
		return nil, Internal("hash password", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, Internal("seed user", err)
	}
	return user, nil
}

func seedCatalog() []models.Product {
	return []models.Product{
		{
			Name:             "Home Starter 3kW Solar System",
			Description:      "Perfect entry-level solar system for small homes. Includes monocrystalline panels and hybrid inverter.",
			Category:         models.CategoryHome,
			SystemSizeKW:     3,
			Price:            5999,
			OriginalPrice:    7499,
			EfficiencyRating: 19.5,
			WarrantyYears:    25,
			Brand:            "SolarTech",
			ImageURL:         "https://images.unsplash.com/photo-1509391366360-2e959784a276?w=600",
			Features:         []string{"Monocrystalline Panels", "Hybrid Inverter", "WiFi Monitoring", "25 Year Warranty"},
			Rating:           4.7,
			ReviewCount:      124,
		},
		{
			Name:             "Home Essential 5kW Solar System",
			Description:      "Ideal for medium-sized homes. High-efficiency panels with battery backup option.",
			Category:         models.CategoryHome,
			SystemSizeKW:     5,
			Price:            8999,
			OriginalPrice:    10999,
			EfficiencyRating: 21.0,
			WarrantyYears:    25,
			Brand:            "SolarTech",
			ImageURL:         "https://images.unsplash.com/photo-1508514177221-188b1cf16e9d?w=600",
			Features:         []string{"High-Efficiency Panels", "Battery Compatible", "Smart Monitoring", "Free Installation"},
			Rating:           4.8,
			ReviewCount:      256,
		},
		{
			Name:             "Home Premium 8kW Solar System",
			Description:      "Complete solar solution for large homes with high energy consumption.",
			Category:         models.CategoryHome,
			SystemSizeKW:     8,
			Price:            13999,
			OriginalPrice:    16999,
			EfficiencyRating: 22.0,
			WarrantyYears:    30,
			Brand:            "SunPower",
			ImageURL:         "https://images.unsplash.com/photo-1559302504-64aae6ca6b6d?w=600",
			Features:         []string{"Premium Panels", "10kWh Battery", "EV Charger Ready", "30 Year Warranty"},
			Rating:           4.9,
			ReviewCount:      89,
		},
		{
			Name:             "Home Max 10kW Solar System",
			Description:      "Maximum power for energy-intensive homes. Full off-grid capable.",
			Category:         models.CategoryHome,
			SystemSizeKW:     10,
			Price:            17999,
			OriginalPrice:    21999,
			EfficiencyRating: 22.5,
			WarrantyYears:    30,
			Brand:            "LG Solar",
			ImageURL:         "https://images.unsplash.com/photo-1624397640148-949b1732bb0a?w=600",
			Features:         []string{"LG NeON Panels", "15kWh Battery", "Off-Grid Ready", "Premium Support"},
			Rating:           4.9,
			ReviewCount:      67,
		},
		{
			Name:             "Commercial 25kW Solar System",
			Description:      "Entry-level commercial solution for small businesses and offices.",
			Category:         models.CategoryCommercial,
			SystemSizeKW:     25,
			Price:            35999,
			OriginalPrice:    42999,
			EfficiencyRating: 21.5,
			WarrantyYears:    25,
			Brand:            "Canadian Solar",
			ImageURL:         "https://images.unsplash.com/photo-1466611653911-95081537e5b7?w=600",
			Features:         []string{"Commercial Grade", "String Inverters", "Remote Monitoring", "Tax Credit Eligible"},
			Rating:           4.6,
			ReviewCount:      45,
		},
		{
			Name:             "Commercial Pro 50kW Solar System",
			Description:      "Mid-size commercial installation for warehouses and manufacturing facilities.",
			Category:         models.CategoryCommercial,
			SystemSizeKW:     50,
			Price:            65999,
			OriginalPrice:    79999,
			EfficiencyRating: 22.0,
			WarrantyYears:    25,
			Brand:            "JinkoSolar",
			ImageURL:         "https://images.unsplash.com/photo-1545209463-e2a9e07c8693?w=600",
			Features:         []string{"Industrial Panels", "Central Inverter", "SCADA Integration", "Turnkey Installation"},
			Rating:           4.7,
			ReviewCount:      32,
		},
		{
			Name:             "Commercial Elite 100kW Solar System",
			Description:      "Large-scale commercial solution for factories and large facilities.",
			Category:         models.CategoryCommercial,
			SystemSizeKW:     100,
			Price:            119999,
			OriginalPrice:    149999,
			EfficiencyRating: 22.5,
			WarrantyYears:    30,
			Brand:            "Trina Solar",
			ImageURL:         "https://images.unsplash.com/photo-1497440001374-f26997328c1b?w=600",
			Features:         []string{"Utility Grade", "Battery Storage Option", "Grid Export Ready", "O&M Package"},
			Rating:           4.8,
			ReviewCount:      18,
		},
		{
			Name:             "Industrial 250kW Solar System",
			Description:      "Mega installation for industrial complexes and large commercial properties.",
			Category:         models.CategoryCommercial,
			SystemSizeKW:     250,
			Price:            275000,
			OriginalPrice:    325000,
			EfficiencyRating: 23.0,
			WarrantyYears:    30,
			Brand:            "First Solar",
			ImageURL:         "https://images.unsplash.com/photo-1509391366360-2e959784a276?w=600",
			Features:         []string{"Thin-Film Technology", "Ground Mount Option", "PPA Available", "Dedicated Account Manager"},
			Rating:           4.9,
			ReviewCount:      8,
		},
	}
}
