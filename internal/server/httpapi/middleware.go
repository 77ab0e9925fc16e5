package httpapi

import (
	"net/http"

	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireSession resolves the session cookie to a live administrator and
// aborts with 401 otherwise. Every protected route goes through this path:
// token claims alone are never trusted for identity, so a deleted account is
// locked out even while its token is still unexpired.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := h.sessions.Resolve(c.Request.Context(), sessionToken(c))
		if err != nil {
			// Whatever the reason (missing, expired, forged, orphaned), the
			// client only learns that it is not authenticated.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(identityKey, *identity)
		c.Next()
	}
}

// currentIdentity returns the administrator resolved by RequireSession.
func currentIdentity(c *gin.Context) models.Identity {
	v, _ := c.Get(identityKey)
	identity, _ := v.(models.Identity)
	return identity
}
