package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbbarber/barber-booking-backend/internal/api"
	"github.com/mbbarber/barber-booking-backend/internal/auth"
	"github.com/mbbarber/barber-booking-backend/internal/config"
	"github.com/mbbarber/barber-booking-backend/internal/notify"
	"github.com/mbbarber/barber-booking-backend/internal/reservation"
	reservationHttp "github.com/mbbarber/barber-booking-backend/internal/reservation/http"
	"github.com/mbbarber/barber-booking-backend/internal/schedule"
	"github.com/mbbarber/barber-booking-backend/internal/summary"
	summaryHttp "github.com/mbbarber/barber-booking-backend/internal/summary/http"
)

const webhookTimeout = 10 * time.Second

// Container holds the initialized components the entrypoint needs.
type Container struct {
	Router        *gin.Engine
	SummaryRunner *summary.Runner
}

// NewContainer wires all modules from configuration. The pool may be nil
// when the memory backend is configured.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	cal, err := schedule.NewCalendar(cfg.OpenTime, cfg.CloseTime, cfg.SlotInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid operating window: %w", err)
	}

	var store reservation.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if pool == nil {
			return nil, fmt.Errorf("postgres backend configured without a database pool")
		}
		store = reservation.NewPgxStore(pool)
	default:
		store = reservation.NewMemoryStore()
	}

	var notifier notify.Notifier
	if cfg.AdminWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.AdminWebhookURL, webhookTimeout)
	} else {
		notifier = notify.NewLogNotifier()
	}

	reservationService := reservation.NewService(store, cal, notifier, reservation.Options{
		SuggestLimit:        cfg.SuggestLimit,
		CancelNotice:        cfg.CancelNotice,
		StrictParse:         cfg.StrictParsing,
		AllowMultipleActive: cfg.AllowMultipleActive,
	})
	reservationHandler := reservationHttp.NewHandler(reservationService)

	summaryService := summary.NewService(store, cal)
	summaryHandler := summaryHttp.NewHandler(summaryService)
	summaryRunner := summary.NewRunner(summaryService, notifier, cfg.SummaryTime)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	authHandler := api.NewAuthHandler(cfg.AdminPasswordHash, auth.NewBcryptPasswordHasher(), jwtManager)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		ReservationHandler: reservationHandler,
		SummaryHandler:     summaryHandler,
		AuthHandler:        authHandler,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:        router,
		SummaryRunner: summaryRunner,
	}, nil
}
