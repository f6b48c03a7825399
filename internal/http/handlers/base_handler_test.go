package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabway/internal/modules/booking"
	"cabway/internal/modules/transit"
)

func runDomainError(t *testing.T, err error) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writeDomainError(c, err)
	return w, c
}

func TestWriteDomainErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"not found", transit.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unreachable", transit.ErrNoRoute, http.StatusUnprocessableEntity, "unreachable"},
		{"conflict", booking.ErrConflict, http.StatusConflict, "conflict"},
		{"referential conflict", transit.ErrReferenced, http.StatusConflict, "referential_conflict"},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"validation", booking.ErrValidation, http.StatusBadRequest, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runDomainError(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.kind)
			assert.Empty(t, c.Errors, "expected errors are not logged as failures")
		})
	}
}

func TestWriteDomainErrorUnexpected(t *testing.T) {
	cause := errors.New("pg: connection refused")
	w, c := runDomainError(t, cause)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal")
	assert.NotContains(t, w.Body.String(), "connection refused", "internal detail must not leak")

	// the cause is attached to the context so the logging middleware
	// records it
	require.Len(t, c.Errors, 1)
	assert.ErrorIs(t, c.Errors[0].Err, cause)
}
