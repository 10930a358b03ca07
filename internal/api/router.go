package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mbbarber/barber-booking-backend/internal/auth"
	reservationHttp "github.com/mbbarber/barber-booking-backend/internal/reservation/http"
	summaryHttp "github.com/mbbarber/barber-booking-backend/internal/summary/http"
)

// Config carries everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	ReservationHandler *reservationHttp.Handler
	SummaryHandler     *summaryHttp.Handler

	AuthHandler *AuthHandler
	JWTManager  *auth.JWTManager
}

// NewRouter assembles middleware (logging, recovery, CORS) and registers
// the public booking routes and the admin surface.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	adminMiddleware := auth.AdminRequired(cfg.JWTManager)

	v1 := r.Group("/v1")
	{
		reservationHttp.RegisterRoutes(v1, cfg.ReservationHandler)

		admin := v1.Group("/admin")
		{
			admin.POST("/login", cfg.AuthHandler.Login)

			protected := admin.Group("")
			protected.Use(adminMiddleware)
			{
				reservationHttp.RegisterAdminRoutes(protected, cfg.ReservationHandler)
				summaryHttp.RegisterAdminRoutes(protected, cfg.SummaryHandler)
			}
		}
	}

	return r
}
