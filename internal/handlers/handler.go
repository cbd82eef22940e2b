// internal/handlers/handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/solarsavers/solarsavers-api/internal/i18n"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/services"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

const apiVersion = "1.0.0"

// respondError writes err in the response envelope with the status its
// kind maps to.
func respondError(c *gin.Context, err error) {
	var se *services.ServiceError
	if !errors.As(err, &se) {
		se = services.Internal("unclassified", err)
	}

	switch se.Kind {
	case services.KindValidation:
		if details := utils.GetValidationErrors(err); len(details) > 0 {
			utils.ValidationErrorResponse(c, details)
			return
		}
		utils.BadRequestResponse(c, se.Message, nil)
	case services.KindUnauthorized:
		utils.UnauthorizedResponse(c, se.Message)
	case services.KindForbidden:
		utils.ForbiddenResponse(c, se.Message)
	case services.KindNotFound:
		utils.NotFoundResponse(c, se.Message)
	case services.KindConflict:
		utils.ConflictResponse(c, se.Message)
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// bindParams accepts the request either as query parameters or as a body.
func bindParams(c *gin.Context, req interface{}) bool {
	var err error
	if c.Request.ContentLength == 0 {
		err = c.ShouldBindQuery(req)
	} else {
		err = c.ShouldBind(req)
	}
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// currentUser returns the authenticated account. Routes without an auth
// gate never call it.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return user, ok
}

// GET /api/
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyAPIWelcome),
		"version": apiVersion,
	})
}

// GET /health
func Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"status":  "ok",
		"version": apiVersion,
	})
}
