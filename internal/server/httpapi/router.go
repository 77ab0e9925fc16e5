package httpapi

import (
	"net/http"

	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the REST surface. Auth endpoints are public (login/logout
// must work without a session); everything else sits behind RequireSession.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.RequireSession(), h.Me)

	protected := api.Group("", h.RequireSession())

	for path, condition := range map[string]models.Condition{
		"/trattori/nuovi": models.ConditionNew,
		"/trattori/usati": models.ConditionUsed,
	} {
		g := protected.Group(path)
		g.GET("", h.ListTractors(condition))
		g.POST("", h.CreateTractor(condition))
		g.GET("/:id", h.GetTractor(condition))
		g.PATCH("/:id", h.UpdateTractor(condition))
		g.DELETE("/:id", h.DeleteTractor(condition))
	}

	protected.GET("/audit", h.ListAudit)
	protected.GET("/users", h.ListUsers)
	protected.POST("/uploads/presign", h.PresignUpload)

	return r
}
