package httpapi

import (
	"net/http"

	"github.com/admintieri/tractoradmin/internal/common"
	"github.com/gin-gonic/gin"
)

// setSessionCookie attaches the session token to the response. In production
// the console is served cross-origin from the API, so the cookie must be
// Secure with SameSite=None; elsewhere Lax keeps local development on plain
// HTTP working.
func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if h.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(common.SessionCookieName, token, maxAge, "/", "", h.cfg.IsProduction(), true)
}

// clearSessionCookie removes the session cookie. Name, path and flags must
// match the ones used when setting it or browsers will keep the original.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
}

// sessionToken extracts the raw token from the request cookie, or "" when
// the cookie is absent.
func sessionToken(c *gin.Context) string {
	token, err := c.Cookie(common.SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}
