package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/careerinsights/internal/identity"
	"github.com/muhammadolammi/careerinsights/internal/logger"
)

const identityKey = "identity"

// sessionCookie is where Clerk keeps the session token for same-origin requests.
const sessionCookie = "__session"

// Authenticate attaches the caller's identity to the context when a valid
// session token is present. Missing or invalid tokens leave the request
// anonymous and handlers decide what it may do. Any other provider failure
// aborts with 502.
func Authenticate(provider identity.Provider, log *logger.Logger) gin.HandlerFunc {
	log = log.With("middleware", "Authenticate")
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		id, err := provider.CurrentUser(c.Request.Context(), token)
		if errors.Is(err, identity.ErrInvalidToken) {
			log.Debug("ignoring session token", "error", err)
			c.Next()
			return
		}
		if err != nil {
			log.Error("identity lookup failed", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "identity provider unavailable"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Authenticate, or nil.
func CurrentIdentity(c *gin.Context) *identity.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*identity.Identity)
	return id
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}
