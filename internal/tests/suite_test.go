// internal/tests/suite_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/database/memory"
	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/repository"
	"github.com/solarsavers/solarsavers-api/internal/router"
	"github.com/solarsavers/solarsavers-api/internal/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type clearSky struct{}

func (clearSky) Factor(context.Context, string) float64 { return 0.85 }

type APITestSuite struct {
	suite.Suite
	store         *repository.Store
	router        *gin.Engine
	notifications *services.NotificationService

	mu   sync.Mutex
	sent []string
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("en"))
}

// SetupTest gives every test an empty store and a fresh router.
func (suite *APITestSuite) SetupTest() {
	cfg := &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{BaseURL: "http://localhost:8000"},
		JWT:         config.JWTConfig{SecretKey: "suite-secret", AccessTokenTTL: 24},
		AWS:         config.AWSConfig{LocalUploadDir: suite.T().TempDir()},
		Email:       config.EmailConfig{FromName: "SolarSavers"},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
	}

	suite.sent = nil
	suite.store = memory.NewStore()
	suite.notifications = services.NewNotificationService(cfg).WithMailer(func(to, subject, body string) error {
		suite.mu.Lock()
		defer suite.mu.Unlock()
		suite.sent = append(suite.sent, to)
		return nil
	})

	r, err := router.Initialize(router.Dependencies{
		Store:         suite.store,
		Config:        cfg,
		Notifications: suite.notifications,
		Weather:       clearSky{},
	})
	suite.Require().NoError(err)
	suite.router = r
}

func (suite *APITestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) upload(path, token, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(mw.WriteField("category", "products"))
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// decode checks the status and unmarshals the envelope's data into out.
func (suite *APITestSuite) decode(w *httptest.ResponseRecorder, status int, out interface{}) envelope {
	suite.Require().Equal(status, w.Code, w.Body.String())

	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		suite.Require().NoError(json.Unmarshal(env.Data, out))
	}
	return env
}

type authPayload struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		Status string `json:"status"`
	} `json:"user"`
}

func (suite *APITestSuite) register(email, name string) authPayload {
	var auth authPayload
	suite.decode(suite.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    email,
		"name":     name,
		"password": "secret123",
	}), http.StatusCreated, &auth)
	return auth
}

func (suite *APITestSuite) login(email, password string) string {
	var auth authPayload
	suite.decode(suite.do(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	}), http.StatusOK, &auth)
	return auth.AccessToken
}

// seeded runs the seed endpoint and returns admin and vendor tokens.
func (suite *APITestSuite) seeded() (adminToken, vendorToken string) {
	suite.decode(suite.do(http.MethodPost, "/api/seed", "", nil), http.StatusOK, nil)
	return suite.login("admin@solarsavers.com", "admin123"), suite.login("vendor@solarsavers.com", "vendor123")
}

func (suite *APITestSuite) mailedTo() []string {
	suite.notifications.Wait()
	suite.mu.Lock()
	defer suite.mu.Unlock()
	return append([]string(nil), suite.sent...)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
