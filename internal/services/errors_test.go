package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solarsavers/solarsavers-api/internal/repository"
)

func TestFromRepo(t *testing.T) {
	assert.Nil(t, fromRepo("op", "x", nil))

	err := fromRepo("get order", "Order not found", fmt.Errorf("wrapped: %w", repository.ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Order not found", err.Error())

	assert.Equal(t, KindConflict, KindOf(fromRepo("op", "", repository.ErrDuplicate)))
	assert.Equal(t, KindValidation, KindOf(fromRepo("op", "", repository.ErrStateChanged)))

	err = fromRepo("op", "", &repository.PriceCeilingError{Ceiling: 1500})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "1500.00")

	err = fromRepo("list orders", "", errors.New("connection reset"))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorContains(t, errors.Unwrap(err), "list orders: connection reset")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("ctx: %w", Forbiddenf("no"))))
	assert.Equal(t, "forbidden", KindForbidden.String())
}
