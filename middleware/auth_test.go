package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"laborlink/models"
	"laborlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/customer", JWTAuthMiddleware(), RequireRole(models.RoleCustomer), func(c *gin.Context) {
		userID, role := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
	})
	return r
}

func token(t *testing.T, sub, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateToken(sub, role, ttl)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"expired", "Bearer " + token(t, "c1", "customer", -time.Minute), http.StatusUnauthorized},
		{"unknown role", "Bearer " + token(t, "c1", "guest", time.Hour), http.StatusUnauthorized},
		{"wrong role", "Bearer " + token(t, "l1", "labor", time.Hour), http.StatusForbidden},
		{"customer", "Bearer " + token(t, "c1", "customer", time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/customer", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
