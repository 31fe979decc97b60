package main

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bitecare/clinic-backend/config"
	"github.com/bitecare/clinic-backend/internal/routes"
	"github.com/bitecare/clinic-backend/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()
	db := mariadb.Connect()

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		})
		if err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	reminderService := routes.Init(e, db, cfg)
	reminderService.StartCron()

	log.Printf("Server running on port %s...", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
