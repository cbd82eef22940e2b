// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/metrics"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Password string      `json:"password" validate:"required,min=6,max=72"`
	Role     models.Role `json:"role,omitempty" validate:"omitempty,role"`
}

type VendorRegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	BusinessName string `json:"business_name" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=2000"`
	Phone        string `json:"phone" validate:"required,max=50"`
	Location     string `json:"location,omitempty" validate:"max=255"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	return &AuthService{
		users: users,
		cfg:   cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	// Admin accounts are only created by the seed.
	if role == models.RoleAdmin {
		return nil, Validationf("role must be customer or vendor")
	}

	user := &models.User{
		Email: normalizeEmail(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Role:  role,
	}
	if role == models.RoleVendor {
		user.Status = models.VendorStatusPending
	}

	resp, err := s.createAccount(ctx, user, req.Password)
	metrics.RecordAuth("register", err == nil)
	return resp, err
}

func (s *AuthService) RegisterVendor(ctx context.Context, req *VendorRegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        normalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		Role:         models.RoleVendor,
		BusinessName: strings.TrimSpace(req.BusinessName),
		Description:  req.Description,
		Phone:        req.Phone,
		Location:     req.Location,
		Status:       models.VendorStatusPending,
	}

	resp, err := s.createAccount(ctx, user, req.Password)
	metrics.RecordAuth("register_vendor", err == nil)
	return resp, err
}

func (s *AuthService) createAccount(ctx context.Context, user *models.User, password string) (*AuthResponse, error) {
	// Check if user already exists
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, Conflictf("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Internal("lookup user", err)
	}

	if err := user.SetPassword(password); err != nil {
		return nil, Internal("hash password", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Conflictf("Email already registered")
		}
		return nil, Internal("create user", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("Account registered")

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		metrics.RecordAuth("login", false)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Unauthorizedf("Invalid email or password")
		}
		return nil, Internal("lookup user", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		metrics.RecordAuth("login", false)
		return nil, Unauthorizedf("Invalid email or password")
	}

	metrics.RecordAuth("login", true)
	return s.issueToken(user)
}

// Verify resolves a bearer token to its live account.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, Unauthorizedf("Authentication required")
	}

	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return nil, &ServiceError{Kind: KindUnauthorized, Message: "Invalid or expired token", Err: err}
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fromRepo("load token subject", "User not found", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	ttl := time.Duration(s.cfg.JWT.AccessTokenTTL) * time.Hour

	token, err := utils.GenerateJWT(user.ID, string(user.Role), ttl)
	if err != nil {
		return nil, Internal("generate access token", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}
