// internal/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

// TokenVerifier resolves a bearer token to the account that owns it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setUser(c *gin.Context, user *models.User) {
	c.Set("user", user)
	c.Set("user_id", user.ID)
	c.Set("user_role", user.Role)
}

func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		token, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			switch services.KindOf(err) {
			case services.KindUnauthorized:
				utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			case services.KindNotFound:
				// A valid token whose account was deleted.
				utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyAuthUserNotFound))
			default:
				logrus.WithError(err).WithField("path", c.FullPath()).Error("Token verification failed")
				utils.InternalErrorResponse(c, "")
			}
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// VendorRequired admits vendors and admins. Must run after AuthRequired.
func VendorRequired() gin.HandlerFunc {
	return roleGate(i18n.KeyAuthVendorRequired, models.RoleVendor, models.RoleAdmin)
}

func AdminRequired() gin.HandlerFunc {
	return roleGate(i18n.KeyAuthAdminRequired, models.RoleAdmin)
}

func roleGate(messageKey string, allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := utils.GetUserRoleFromContext(c)
		if exists {
			for _, r := range allowed {
				if role == r {
					c.Next()
					return
				}
			}
		}

		utils.ForbiddenResponse(c, i18n.T(utils.GetLangFromContext(c), messageKey))
		c.Abort()
	}
}

// OptionalAuth attaches the caller when a valid token is present and never
// rejects the request.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if user, err := verifier.Verify(c.Request.Context(), token); err == nil {
			setUser(c, user)
		}
		c.Next()
	}
}
