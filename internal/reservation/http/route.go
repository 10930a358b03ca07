package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/schedule/:date/slots", h.Slots)
	g.GET("/availability", h.Availability)
	g.GET("/suggestions", h.Suggestions)

	parties := g.Group("/parties/:partyId")
	{
		parties.POST("/reservation", h.Create)
		parties.DELETE("/reservation", h.Cancel)
		parties.GET("/history", h.History)
		parties.GET("/cancellable", h.Cancellable)
	}
}

// RegisterAdminRoutes mounts the admin-only reservation views; the caller
// wraps the group with the admin auth middleware.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/reservations", h.AdminList)
}
