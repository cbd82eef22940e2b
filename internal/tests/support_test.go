// internal/tests/support_test.go
package tests

import (
	"net/http"
)

func (suite *APITestSuite) TestTicketFlow() {
	adminToken, _ := suite.seeded()
	owner := suite.register("owner@example.com", "Owner").AccessToken
	stranger := suite.register("stranger@example.com", "Stranger").AccessToken

	var ticket struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/tickets", owner, map[string]interface{}{
		"subject":  "Inverter fault",
		"message":  "Red light blinking",
		"category": "technical",
	}), http.StatusCreated, &ticket)
	suite.Equal("open", ticket.Status)

	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/tickets/"+ticket.ID, stranger, nil).Code)

	suite.decode(suite.do(http.MethodPost, "/api/tickets/"+ticket.ID+"/reply", adminToken, map[string]interface{}{
		"message": "Please send a photo",
	}), http.StatusCreated, nil)

	// Status via query parameter, priority via body.
	suite.decode(suite.do(http.MethodPut, "/api/admin/tickets/"+ticket.ID+"/status?status=in_progress", adminToken, nil), http.StatusOK, nil)
	suite.decode(suite.do(http.MethodPut, "/api/admin/tickets/"+ticket.ID+"/priority", adminToken, map[string]interface{}{
		"priority": "high",
	}), http.StatusOK, nil)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPut, "/api/admin/tickets/"+ticket.ID+"/priority?priority=urgent", adminToken, nil).Code)

	var got struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
		Replies  []struct {
			IsAdmin bool `json:"is_admin"`
		} `json:"replies"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/tickets/"+ticket.ID, owner, nil), http.StatusOK, &got)
	suite.Equal("in_progress", got.Status)
	suite.Equal("high", got.Priority)
	suite.Require().Len(got.Replies, 1)
	suite.True(got.Replies[0].IsAdmin)

	var inProgress []struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/admin/tickets?status=in_progress", adminToken, nil), http.StatusOK, &inProgress)
	suite.Len(inProgress, 1)

	suite.Equal([]string{"owner@example.com"}, suite.mailedTo())
}

func (suite *APITestSuite) TestBlogs() {
	adminToken, _ := suite.seeded()

	var post struct {
		ID    string `json:"id"`
		Views int    `json:"views"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/admin/blogs", adminToken, map[string]interface{}{
		"title":    "PM Surya Ghar explained",
		"content":  "Subsidy walkthrough",
		"category": "guides",
	}), http.StatusCreated, &post)
	suite.decode(suite.do(http.MethodPost, "/api/admin/blogs", adminToken, map[string]interface{}{
		"title":        "Unpublished",
		"content":      "draft",
		"category":     "news",
		"is_published": false,
	}), http.StatusCreated, nil)

	var public []struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/blogs", "", nil), http.StatusOK, &public)
	suite.Require().Len(public, 1)
	suite.Equal(post.ID, public[0].ID)

	var all []struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/blogs?published_only=false", "", nil), http.StatusOK, &all)
	suite.Len(all, 2)

	suite.decode(suite.do(http.MethodGet, "/api/blogs/"+post.ID, "", nil), http.StatusOK, nil)
	var viewed struct {
		Views int `json:"views"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/blogs/"+post.ID, "", nil), http.StatusOK, &viewed)
	suite.Equal(post.Views+2, viewed.Views)

	suite.decode(suite.do(http.MethodDelete, "/api/admin/blogs/"+post.ID, adminToken, nil), http.StatusOK, nil)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/blogs/"+post.ID, "", nil).Code)
}

func (suite *APITestSuite) TestContactAndChat() {
	adminToken, _ := suite.seeded()

	suite.decode(suite.do(http.MethodPost, "/api/contact", "", map[string]interface{}{
		"name":    "Meera",
		"email":   "meera@example.com",
		"message": "Need a quote for my school",
	}), http.StatusCreated, nil)

	var contacts []struct {
		Email string `json:"email"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/admin/contacts", adminToken, nil), http.StatusOK, &contacts)
	suite.Require().Len(contacts, 1)
	suite.Equal("meera@example.com", contacts[0].Email)

	var reply struct {
		Response  string `json:"response"`
		SessionID string `json:"session_id"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/chat", "", map[string]interface{}{
		"message": "How long does install take?",
	}), http.StatusOK, &reply)
	suite.NotEmpty(reply.SessionID)
	suite.Contains(reply.Response, "Installation typically takes")

	// A bad token on an optional-auth route is treated as anonymous.
	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/chat", "expired", map[string]interface{}{
		"message":    "thanks",
		"session_id": reply.SessionID,
	}).Code)
}

func (suite *APITestSuite) TestPaymentsNotConfigured() {
	suite.seeded()
	customer := suite.register("pay@example.com", "Payer").AccessToken

	var products []struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/products?limit=1", "", nil), http.StatusOK, &products)
	suite.Require().Len(products, 1)

	var order struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodPost, "/api/orders", customer, map[string]interface{}{
		"items":            []map[string]interface{}{{"product_id": products[0].ID, "quantity": 1}},
		"shipping_address": "1 Residency Road, Bengaluru",
		"payment_method":   "card",
	}), http.StatusCreated, &order)

	w := suite.do(http.MethodPost, "/api/payments/orders/"+order.ID+"/intent", customer, nil)
	env := suite.decode(w, http.StatusBadRequest, nil)
	suite.Equal("Payments are not configured", env.Error.Message)
}
