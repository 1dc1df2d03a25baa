package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gearph-api/internal/domain"
	"gearph-api/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionStore is the slice of the session store the router needs.
type SessionStore interface {
	Create(ctx context.Context, data session.Data) (string, error)
	Get(ctx context.Context, token string) (*session.Data, error)
	Delete(ctx context.Context, token string) error
	TTL() time.Duration
}

const (
	ctxSessionKey = "gearph.session"
	ctxTokenKey   = "gearph.sessionToken"
)

type roleSet int

const (
	roleUserOrAdmin roleSet = iota
	roleAdminOnly
)

// sessionMiddleware resolves the session cookie, if any, into the gin
// context. Missing or stale cookies are not an error here; the role
// guards decide what is required.
func sessionMiddleware(store SessionStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		data, err := store.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			c.Next()
			return
		}
		c.Set(ctxSessionKey, data)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// ensureSession creates a guest session when none exists, so anonymous
// visitors can hold a cart before signing in.
func ensureSession(store SessionStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentSession(c); ok {
			c.Next()
			return
		}
		data := session.Data{Role: domain.RoleGuest}
		token, err := store.Create(c.Request.Context(), data)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.SetCookie(cookieName, token, int(store.TTL().Seconds()), "/", "", false, true)
		c.Set(ctxSessionKey, &data)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// requireRole rejects the request before handler dispatch: 401 without
// an account session, 403 with the wrong role.
func requireRole(roles roleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := currentSession(c)
		if !ok || data.Role == domain.RoleGuest {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if roles == roleAdminOnly && data.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) (*session.Data, bool) {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil, false
	}
	data, ok := v.(*session.Data)
	return data, ok && data != nil
}

func currentToken(c *gin.Context) string {
	v, ok := c.Get(ctxTokenKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}
