package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbbarber/barber-booking-backend/internal/app"
	"github.com/mbbarber/barber-booking-backend/internal/config"
	"github.com/mbbarber/barber-booking-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB only when the durable backend is configured.
	var pool *pgxpool.Pool
	if cfg.StoreBackend == config.BackendPostgres {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool, !cfg.AllowMultipleActive); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
	}

	container, err := app.NewContainer(cfg, pool)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	// Morning schedule report for the admin.
	go container.SummaryRunner.Run(ctx)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
