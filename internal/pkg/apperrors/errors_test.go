package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("saving area: %w", NewValidationError("areaId", "area not in community"))

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "saving area: area not in community", err.Error())

	var ce *CustomError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "areaId", ce.Details["field"])
}

func TestIsMatchesAnyInList(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrTokenRevoked)

	assert.True(t, Is(err, ErrTokenExpired, ErrTokenInvalid, ErrTokenRevoked))
	assert.False(t, Is(err, ErrTokenExpired, ErrTokenInvalid))
}

func TestCustomErrorFallsBackToWrapped(t *testing.T) {
	assert.Equal(t, "thread not found", (&CustomError{Err: ErrThreadNotFound}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
