package httpapi

import (
	"errors"
	"net/http"

	"github.com/admintieri/tractoradmin/internal/common"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and, on success, sets the session cookie and
// returns the public identity. Exactly one cookie is set per successful
// call; failures set none.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	identity, token, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		case errors.Is(err, common.ErrInvalidCredentials):
			// Unknown email and wrong password share this answer.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		default:
			h.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	h.setSessionCookie(c, token, h.sessions.TokenTTL())
	h.audit.Record("login", "auth", *identity, nil, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, identity)
}

// Me reports the identity of the current session. RequireSession has already
// re-fetched the administrator, so the response reflects profile edits made
// after the token was minted.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentIdentity(c))
}

// Logout clears the session cookie. It succeeds from the caller's point of
// view whether or not a cookie was present; clearing is idempotent and the
// client discards its cached identity regardless.
func (h *Handler) Logout(c *gin.Context) {
	// Best-effort attribution of the audit record; an anonymous logout is
	// still a 200.
	if identity, err := h.sessions.Resolve(c.Request.Context(), sessionToken(c)); err == nil {
		h.audit.Record("logout", "auth", *identity, nil, c.ClientIP(), c.Request.UserAgent())
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
