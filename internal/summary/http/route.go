package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes mounts the summary view; the caller wraps the group
// with the admin auth middleware.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/summary", h.Get)
}
