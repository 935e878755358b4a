package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(discardLogger()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	known := uuid.NewString()
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"missing", "", false},
		{"canonical uuid is echoed", known, true},
		{"oversized value is replaced", strings.Repeat("x", 4096), false},
		{"control characters are replaced", "abc\r\nforged: 1", false},
		{"braced uuid is replaced", "{" + known + "}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			if tt.keep {
				assert.Equal(t, tt.header, got)
				return
			}
			assert.NotEqual(t, tt.header, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestAuthMiddleware_RejectsOversizedSubject(t *testing.T) {
	const secret = "middleware-secret"
	r := gin.New()
	r.Use(AuthMiddleware(secret, ""))
	r.GET("/me", func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, identity)
	})

	call := func(subject string) int {
		claims := Claims{
			Role: domain.RoleEmployee,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call(strings.Repeat("E", domain.MaxIdentifierLength)))
	assert.Equal(t, http.StatusUnauthorized, call(strings.Repeat("E", domain.MaxIdentifierLength+1)))
}
