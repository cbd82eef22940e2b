// internal/tests/marketplace_test.go
package tests

import (
	"net/http"
)

type productPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	VendorID string  `json:"vendor_id"`
	Rating   float64 `json:"rating"`
}

func (suite *APITestSuite) TestSeedIsIdempotent() {
	var first map[string]interface{}
	suite.decode(suite.do(http.MethodPost, "/api/seed", "", nil), http.StatusOK, &first)
	suite.Equal(float64(8), first["products_count"])

	var second map[string]interface{}
	suite.decode(suite.do(http.MethodPost, "/api/seed", "", nil), http.StatusOK, &second)
	suite.Equal("Database already seeded", second["message"])

	var products []productPayload
	suite.decode(suite.do(http.MethodGet, "/api/products?limit=100", "", nil), http.StatusOK, &products)
	suite.Len(products, 8)
}

func (suite *APITestSuite) TestProductFilters() {
	suite.seeded()

	var home []productPayload
	suite.decode(suite.do(http.MethodGet, "/api/products?category=home&max_price=50000", "", nil), http.StatusOK, &home)
	suite.NotEmpty(home)
	for _, p := range home {
		suite.LessOrEqual(p.Price, 50000.0)
	}

	w := suite.do(http.MethodGet, "/api/products?category=industrial", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	var brands []string
	suite.decode(suite.do(http.MethodGet, "/api/brands", "", nil), http.StatusOK, &brands)
	suite.NotEmpty(brands)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/products/missing", "", nil).Code)
}

func (suite *APITestSuite) TestMarketplaceFlow() {
	adminToken, vendorToken := suite.seeded()
	customer := suite.register("buyer@example.com", "Buyer").AccessToken

	var products []productPayload
	suite.decode(suite.do(http.MethodGet, "/api/products", "", nil), http.StatusOK, &products)
	suite.Require().NotEmpty(products)
	product := products[0]

	// Vendor stock is capped at the sell price.
	w := suite.do(http.MethodPost, "/api/vendor/inventory", vendorToken, map[string]interface{}{
		"product_id":   product.ID,
		"quantity":     3,
		"vendor_price": product.Price + 1,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var item struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/vendor/inventory", vendorToken, map[string]interface{}{
		"product_id":   product.ID,
		"quantity":     3,
		"vendor_price": product.Price - 100,
	}), http.StatusCreated, &item)

	var order struct {
		ID          string  `json:"id"`
		Status      string  `json:"status"`
		TotalAmount float64 `json:"total_amount"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/orders", customer, map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": product.ID, "quantity": 2}},
		"shipping_address": "7 Park Street, Kolkata",
		"payment_method":   "cod",
	}), http.StatusCreated, &order)
	suite.Equal("pending", order.Status)
	suite.InDelta(product.Price*2, order.TotalAmount, 0.001)

	var options struct {
		AvailableVendors []struct {
			VendorID         string  `json:"vendor_id"`
			TotalVendorPrice float64 `json:"total_vendor_price"`
		} `json:"available_vendors"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/admin/orders/"+order.ID+"/available-vendors", adminToken, nil), http.StatusOK, &options)
	suite.Require().Len(options.AvailableVendors, 1)
	vendorID := options.AvailableVendors[0].VendorID

	suite.decode(suite.do(http.MethodPut, "/api/admin/orders/"+order.ID+"/assign", adminToken, map[string]interface{}{
		"vendor_id": vendorID,
	}), http.StatusOK, nil)
	suite.Equal(http.StatusConflict, suite.do(http.MethodPut, "/api/admin/orders/"+order.ID+"/assign", adminToken, map[string]interface{}{
		"vendor_id": vendorID,
	}).Code)

	var assigned []struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/vendor/assigned-orders", vendorToken, nil), http.StatusOK, &assigned)
	suite.Require().Len(assigned, 1)
	suite.Equal(order.ID, assigned[0].ID)

	var inventory []struct {
		Quantity int `json:"quantity"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/vendor/inventory", vendorToken, nil), http.StatusOK, &inventory)
	suite.Require().Len(inventory, 1)
	suite.Equal(1, inventory[0].Quantity)

	var shipped struct {
		Status string `json:"status"`
	}
	suite.decode(suite.do(http.MethodPut, "/api/orders/"+order.ID+"/status", vendorToken, map[string]interface{}{
		"status": "shipped",
	}), http.StatusOK, &shipped)
	suite.Equal("shipped", shipped.Status)

	suite.Equal([]string{"vendor@solarsavers.com"}, suite.mailedTo())
}

func (suite *APITestSuite) TestSuggestionApproval() {
	adminToken, vendorToken := suite.seeded()

	var suggestion struct {
		Suggestion struct {
			ID string `json:"id"`
		} `json:"suggestion"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/vendor/suggest-product", vendorToken, map[string]interface{}{
		"name":            "Hybrid 8kW",
		"description":     "With lithium storage",
		"category":        "home",
		"system_size_kw":  8,
		"suggested_price": 400000,
		"brand":           "Luminous",
	}), http.StatusCreated, &suggestion)
	id := suggestion.Suggestion.ID
	suite.Require().NotEmpty(id)

	// Sell price as a query parameter.
	var approved struct {
		Product productPayload `json:"product"`
	}
	suite.decode(suite.do(http.MethodPut, "/api/admin/product-suggestions/"+id+"/approve?sell_price=425000", adminToken, nil), http.StatusOK, &approved)
	suite.Equal("platform", approved.Product.VendorID)
	suite.Equal(425000.0, approved.Product.Price)
	suite.Equal(4.5, approved.Product.Rating)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPut, "/api/admin/product-suggestions/"+id+"/reject", adminToken, map[string]interface{}{
		"reason": "too late",
	}).Code)
}

func (suite *APITestSuite) TestReviews() {
	suite.seeded()
	customer := suite.register("rev@example.com", "Reviewer").AccessToken

	var products []productPayload
	suite.decode(suite.do(http.MethodGet, "/api/products?limit=1", "", nil), http.StatusOK, &products)
	suite.Require().Len(products, 1)

	var created struct {
		Product productPayload `json:"product"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/reviews", customer, map[string]interface{}{
		"product_id": products[0].ID,
		"rating":     3,
		"comment":    "Decent output",
	}), http.StatusCreated, &created)
	suite.Equal(3.0, created.Product.Rating)

	var reviews []struct {
		Comment string `json:"comment"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/reviews/"+products[0].ID, "", nil), http.StatusOK, &reviews)
	suite.Require().Len(reviews, 1)
	suite.Equal("Decent output", reviews[0].Comment)
}

func (suite *APITestSuite) TestCalculator() {
	var result struct {
		RecommendedSizeKW float64 `json:"recommended_size_kw"`
		EstimatedCost     float64 `json:"estimated_cost"`
		Breakdown         *struct {
			PanelCount int `json:"panel_count"`
		} `json:"breakdown"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/calculator/calculate?breakdown=true", "", map[string]interface{}{
		"monthly_bill":  3000,
		"property_type": "home",
		"city":          "Chennai",
	}), http.StatusOK, &result)
	suite.Equal(4.0, result.RecommendedSizeKW)
	suite.Equal(102000.0, result.EstimatedCost)
	suite.Require().NotNil(result.Breakdown)
	suite.Equal(10, result.Breakdown.PanelCount)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/calculator", "", map[string]interface{}{
		"monthly_bill": -5,
		"city":         "Pune",
	}).Code)
}

func (suite *APITestSuite) TestImageUpload() {
	_, vendorToken := suite.seeded()
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	var result struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
	suite.decode(suite.upload("/api/uploads/images", vendorToken, "panel.png", png), http.StatusCreated, &result)
	suite.Contains(result.URL, "/uploads/products/")

	w := suite.do(http.MethodGet, "/uploads/"+result.Key, "", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.Equal(http.StatusBadRequest, suite.upload("/api/uploads/images", vendorToken, "notes.png", []byte("plain text")).Code)
}
