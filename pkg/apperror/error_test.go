package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-resume-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("handler: %w", apperror.NotFound("Candidate not found"))
	appErr, ok := apperror.As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	_, ok = apperror.As(cause)
	assert.False(t, ok)
}
