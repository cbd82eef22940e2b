// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/solarsavers/solarsavers-api/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("role", enumValidator(models.ParseRole))
	validate.RegisterValidation("product_category", enumValidator(models.ParseProductCategory))
	validate.RegisterValidation("order_status", enumValidator(models.ParseOrderStatus))
	validate.RegisterValidation("ticket_status", enumValidator(models.ParseTicketStatus))
	validate.RegisterValidation("ticket_priority", enumValidator(models.ParseTicketPriority))
	validate.RegisterValidation("ticket_category", enumValidator(models.ParseTicketCategory))
	validate.RegisterValidation("blog_category", enumValidator(models.ParseBlogCategory))
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// enumValidator accepts empty values; combine with required where needed.
func enumValidator[T ~string](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := parse(value)
		return err == nil
	}
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "role":
		return "Role must be one of customer, vendor, admin"
	case "product_category":
		return "Category must be one of home, commercial"
	case "order_status":
		return "Status must be one of pending, assigned, processing, shipped, delivered, completed, cancelled"
	case "ticket_status":
		return "Status must be one of open, in_progress, resolved, closed"
	case "ticket_priority":
		return "Priority must be one of low, medium, high"
	case "ticket_category":
		return "Category must be one of general, order, technical, billing"
	case "blog_category":
		return "Category must be one of news, tips, guides, technology"
	default:
		return e.Field() + " is invalid"
	}
}
