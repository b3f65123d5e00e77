package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWalksWrappedErrors(t *testing.T) {
	err := fmt.Errorf("loading booking: %w", NewNotFound("Booking not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestHTTPStatus(t *testing.T) {
	tests := map[ErrorKind]int{
		KindUnauthorized:     http.StatusUnauthorized,
		KindForbidden:        http.StatusForbidden,
		KindNotFound:         http.StatusNotFound,
		KindInvalidInput:     http.StatusBadRequest,
		KindInvalidState:     http.StatusBadRequest,
		KindPaymentDeclined:  http.StatusPaymentRequired,
		KindConflict:         http.StatusConflict,
		KindStoreUnavailable: http.StatusServiceUnavailable,
		KindInternal:         http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}

func TestStoreUnavailableUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailable("failed to update booking", cause)
	assert.ErrorIs(t, err, cause)
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("secret driver message"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Contains(t, w.Body.String(), `"error":"Internal"`)
}
