package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading order: %w", NewNotFoundError("order 7 not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order 7 not found", notFoundErr.Message)
}

func TestConflictError_IsConflictError(t *testing.T) {
	var err error = NewConflictError("order is not available for claiming")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "order is not available for claiming", ce.Error())

	_, ok = IsForbiddenError(err)
	assert.False(t, ok)
}

func TestForbiddenError_IsForbiddenError(t *testing.T) {
	err := NewForbiddenError("only freelancers can claim orders")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "only freelancers can claim orders", fe.Message)
}

func TestUnauthorizedError_IsUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("authentication required")

	ue, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "authentication required", ue.Error())

	_, ok = IsUnauthorizedError(NewForbiddenError("nope"))
	assert.False(t, ok)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "email", Message: "invalid email"},
		{Field: "name", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := fmt.Errorf("creating order: %w", NewValidationError("invalid", ValidationDetail{Field: "price", Message: "price must be positive"}))

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "price", ve.Details[0].Field)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
