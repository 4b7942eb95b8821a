package main

import (
	"Pantry-Tracker/cmd/config"
	migration "Pantry-Tracker/cmd/database/migrate"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/pkg/notify"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	utils.LoadConfig()
	utils.SetLogLevel(utils.GetConfig("LOG_LEVEL"))
	log := utils.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := migration.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb, err := config.ConnectRedis(ctx)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	app, err := config.NewApp(db, rdb)
	if err != nil {
		log.WithError(err).Fatal("app setup failed")
	}

	if hours := utils.GetConfigInt("DIGEST_INTERVAL_HOURS", 0); hours > 0 {
		go runDigests(ctx, app.Notify, time.Duration(hours)*time.Hour)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown")
		}
	}()

	port := utils.GetConfig("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Fiber.Listen(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func runDigests(ctx context.Context, svc notify.NotifyService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.SendAllDigests(ctx); err != nil {
				utils.LogError("main", "runDigests", "sending digests", nil, err)
			}
		}
	}
}
