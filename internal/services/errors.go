package services

import (
	"errors"
	"fmt"

	"github.com/solarsavers/solarsavers-api/internal/repository"
	"github.com/solarsavers/solarsavers-api/internal/utils"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// ServiceError carries a caller-facing message and the kind that decides the
// HTTP status.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *ServiceError {
	return newError(KindValidation, format, args...)
}

func Unauthorizedf(format string, args ...interface{}) *ServiceError {
	return newError(KindUnauthorized, format, args...)
}

func Forbiddenf(format string, args ...interface{}) *ServiceError {
	return newError(KindForbidden, format, args...)
}

func NotFoundf(format string, args ...interface{}) *ServiceError {
	return newError(KindNotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *ServiceError {
	return newError(KindConflict, format, args...)
}

func Internal(op string, err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: "internal error", Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf reports KindInternal for errors that are not ServiceErrors.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// fromRepo translates storage errors. notFound names the missing resource.
func fromRepo(op, notFound string, err error) error {
	if err == nil {
		return nil
	}

	var ceiling *repository.PriceCeilingError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &ServiceError{Kind: KindNotFound, Message: notFound, Err: err}
	case errors.Is(err, repository.ErrDuplicate):
		return &ServiceError{Kind: KindConflict, Message: "already exists", Err: err}
	case errors.Is(err, repository.ErrStateChanged):
		return &ServiceError{Kind: KindValidation, Message: "resource is not in the expected state", Err: err}
	case errors.As(err, &ceiling):
		return &ServiceError{
			Kind:    KindValidation,
			Message: fmt.Sprintf("Vendor price must be less than or equal to sell price (₹%.2f)", ceiling.Ceiling),
			Err:     err,
		}
	default:
		return Internal(op, err)
	}
}

func validateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return &ServiceError{Kind: KindValidation, Message: "validation failed", Err: err}
	}
	return nil
}
