// internal/tests/auth_test.go
package tests

import (
	"net/http"
)

func (suite *APITestSuite) TestRootAndHealth() {
	w := suite.do(http.MethodGet, "/api/", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"version":"1.0.0"`)

	env := suite.decode(suite.do(http.MethodGet, "/health", "", nil), http.StatusOK, nil)
	suite.True(env.Success)
}

func (suite *APITestSuite) TestUserRegistration() {
	auth := suite.register("Test@Example.com", "Test User")

	suite.NotEmpty(auth.AccessToken)
	suite.Equal("test@example.com", auth.User.Email)
	suite.Equal("customer", auth.User.Role)

	// Same address in another case is still taken.
	w := suite.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "TEST@example.com",
		"name":     "Other",
		"password": "secret123",
	})
	env := suite.decode(w, http.StatusConflict, nil)
	suite.False(env.Success)
	suite.Equal("CONFLICT", env.Error.Code)
}

func (suite *APITestSuite) TestRegistrationValidation() {
	w := suite.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "not-an-email",
		"name":     "X",
		"password": "123",
	})
	env := suite.decode(w, http.StatusBadRequest, nil)
	suite.Equal("VALIDATION_ERROR", env.Error.Code)
}

func (suite *APITestSuite) TestUserLogin() {
	suite.register("login@example.com", "Login User")

	token := suite.login("LOGIN@example.com", "secret123")
	suite.NotEmpty(token)

	var me struct {
		Email string `json:"email"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/auth/me", token, nil), http.StatusOK, &me)
	suite.Equal("login@example.com", me.Email)

	w := suite.do(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "login@example.com",
		"password": "wrong",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestProtectedRoutes() {
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/auth/me", "", nil).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/auth/me", "garbage", nil).Code)

	customer := suite.register("c@example.com", "Customer").AccessToken
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/vendor/dashboard", customer, nil).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/admin/dashboard", customer, nil).Code)
}

func (suite *APITestSuite) TestVendorRegistrationAndApproval() {
	var vendor authPayload
	suite.decode(suite.do(http.MethodPost, "/api/vendors/register", "", map[string]interface{}{
		"email":         "ravi@sunworks.in",
		"name":          "Ravi",
		"password":      "secret123",
		"business_name": "Sun Works",
		"phone":         "+91-98000-00000",
	}), http.StatusCreated, &vendor)
	suite.Equal("vendor", vendor.User.Role)
	suite.Equal("pending", vendor.User.Status)

	adminToken, _ := suite.seeded()

	var pending []struct {
		ID string `json:"id"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/admin/users?role=vendor&status=pending", adminToken, nil), http.StatusOK, &pending)
	suite.Require().Len(pending, 1)
	suite.Equal(vendor.User.ID, pending[0].ID)

	suite.decode(suite.do(http.MethodPut, "/api/admin/vendors/"+vendor.User.ID+"/approve", adminToken, nil), http.StatusOK, nil)

	var listed struct {
		Status string `json:"status"`
	}
	suite.decode(suite.do(http.MethodGet, "/api/vendors/"+vendor.User.ID, "", nil), http.StatusOK, &listed)
	suite.Equal("approved", listed.Status)

	suite.Equal([]string{"ravi@sunworks.in"}, suite.mailedTo())
}
