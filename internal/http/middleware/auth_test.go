// README: Tests for JWT auth middleware and role gates.
package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cabway/internal/auth"
	"cabway/internal/http/middleware"
)

// stubValidator is a test double for middleware.TokenValidator.
type stubValidator struct {
	ident *auth.Identity
	err   error
}

func (s *stubValidator) ValidateToken(string) (*auth.Identity, error) {
	return s.ident, s.err
}

func newTestRouter(validator middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", middleware.Auth(validator))
	authed.GET("/me", func(c *gin.Context) {
		ident := middleware.CallerIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": ident.Email, "role": ident.Role})
	})
	authed.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	authed.GET("/driver", middleware.RequireDriver(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r := newTestRouter(&stubValidator{ident: &auth.Identity{Email: "a@example.com", Role: "user"}})
	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthNonBearerHeader(t *testing.T) {
	r := newTestRouter(&stubValidator{ident: &auth.Identity{Email: "a@example.com", Role: "user"}})
	w := doGet(r, "/me", "Token sometoken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	r := newTestRouter(&stubValidator{err: errors.New("bad signature")})
	w := doGet(r, "/me", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	r := newTestRouter(&stubValidator{ident: &auth.Identity{UserID: "u1", Email: "a@example.com", Role: "user"}})
	w := doGet(r, "/me", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"a@example.com","role":"user"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	r := newTestRouter(&stubValidator{ident: &auth.Identity{Email: "a@example.com", Role: "user"}})
	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", "Bearer good").Code)

	r = newTestRouter(&stubValidator{ident: &auth.Identity{Email: "root@example.com", Role: "admin"}})
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", "Bearer good").Code)
}

func TestRequireDriver(t *testing.T) {
	r := newTestRouter(&stubValidator{ident: &auth.Identity{Email: "a@example.com", Role: "user"}})
	assert.Equal(t, http.StatusForbidden, doGet(r, "/driver", "Bearer good").Code)

	r = newTestRouter(&stubValidator{ident: &auth.Identity{Email: "d@example.com", Role: "cabDriver"}})
	assert.Equal(t, http.StatusOK, doGet(r, "/driver", "Bearer good").Code)
}
