package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	auth := NewAuthService(store.Users, testConfig())

	resp, err := auth.Register(ctx, &RegisterRequest{
		Email:    "  Priya@Example.com ",
		Name:     "Priya",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", resp.User.Email)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 24*3600, resp.ExpiresIn)
	assert.NotEmpty(t, resp.AccessToken)

	login, err := auth.Login(ctx, &LoginRequest{Email: "PRIYA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	user, err := auth.Verify(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(newTestStore().Users, testConfig())

	req := &RegisterRequest{Email: "dup@example.com", Name: "Dup", Password: "secret123"}
	_, err := auth.Register(ctx, req)
	require.NoError(t, err)

	req.Email = "DUP@example.com"
	_, err = auth.Register(ctx, req)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	auth := NewAuthService(newTestStore().Users, testConfig())

	_, err := auth.Register(context.Background(), &RegisterRequest{
		Email: "boss@example.com", Name: "Boss", Password: "secret123", Role: models.RoleAdmin,
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRegisterVendorStartsPending(t *testing.T) {
	auth := NewAuthService(newTestStore().Users, testConfig())

	resp, err := auth.RegisterVendor(context.Background(), &VendorRegisterRequest{
		Email:        "sun@example.com",
		Name:         "Ravi",
		Password:     "secret123",
		BusinessName: "Sun Works",
		Phone:        "+91-98000-00000",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, resp.User.Role)
	assert.Equal(t, models.VendorStatusPending, resp.User.Status)
	assert.Equal(t, "Sun Works", resp.User.DisplayName())
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	auth := NewAuthService(store.Users, testConfig())
	createUser(t, store, "known@example.com", models.RoleCustomer)

	_, err := auth.Login(ctx, &LoginRequest{Email: "known@example.com", Password: "wrong-password"})
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = auth.Login(ctx, &LoginRequest{Email: "unknown@example.com", Password: "secret123"})
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = auth.Login(ctx, &LoginRequest{Email: "not-an-email", Password: "secret123"})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestVerifyRejectsExpiredAndOrphanedTokens(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	auth := NewAuthService(store.Users, testConfig())
	user := createUser(t, store, "tok@example.com", models.RoleCustomer)

	expired, err := utils.GenerateJWT(user.ID, string(user.Role), -time.Minute)
	require.NoError(t, err)
	_, err = auth.Verify(ctx, expired)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	orphan, err := utils.GenerateJWT("deleted-account", "customer", time.Hour)
	require.NoError(t, err)
	_, err = auth.Verify(ctx, orphan)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = auth.Verify(ctx, "")
	assert.Equal(t, KindUnauthorized, KindOf(err))
}
