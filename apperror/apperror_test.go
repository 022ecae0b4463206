package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    int
	}{
		{InvalidCredentialsError, http.StatusUnauthorized},
		{UnauthorizedError, http.StatusUnauthorized},
		{ForbiddenError, http.StatusForbidden},
		{ConfigError, http.StatusInternalServerError},
		{DuplicateKeyError, http.StatusConflict},
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{NotFoundError, http.StatusNotFound},
		{DatabaseError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{MigrationError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.errType.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, NewAppError(tc.errType, "x", nil).StatusCode())
		})
	}
}

func TestToResponse_HidesServerDetail(t *testing.T) {
	err := NewDatabaseError("select users failed on replica 3", errors.New("conn reset"))
	assert.Equal(t, "Internal server error", err.ToResponse().Error)

	err = NewForbiddenError("Not Authorized", nil)
	assert.Equal(t, "Not Authorized", err.ToResponse().Error)
}

func TestFromError_Wrapped(t *testing.T) {
	inner := NewDuplicateKeyError("UserID already exists", nil)
	wrapped := fmt.Errorf("create user: %w", inner)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, IsDuplicateKey(wrapped))
	assert.False(t, IsNotFound(wrapped))

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestError_IncludesUnderlying(t *testing.T) {
	err := NewInternalError("hash failed", errors.New("boom"))
	assert.Equal(t, "hash failed: boom", err.Error())
	assert.Equal(t, "boom", errors.Unwrap(err).Error())
}
