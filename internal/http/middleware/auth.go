// README: JWT auth middleware and role gates.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabway/internal/auth"
)

const identityKey = "cabway.identity"

// TokenValidator verifies a bearer token and returns the caller
// identity. Implemented by auth.Service; stubbed in tests.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Identity, error)
}

// Auth rejects requests without a valid Bearer token and stores the
// verified identity in the request context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		ident, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAdmin gates a route to admin callers. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CallerIdentity(c)
		if ident == nil || !ident.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// RequireDriver gates a route to driver callers. Must run after Auth.
func RequireDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CallerIdentity(c)
		if ident == nil || !ident.IsDriver() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "driver access required"})
			return
		}
		c.Next()
	}
}

// CallerIdentity returns the identity stored by Auth, or nil on
// unauthenticated routes.
func CallerIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return ident
}
