package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"course-upgrade-service/internal/client"
	"course-upgrade-service/internal/config"
	"course-upgrade-service/internal/handler"
	"course-upgrade-service/internal/logging"
	"course-upgrade-service/internal/repository"
	"course-upgrade-service/internal/router"
	"course-upgrade-service/internal/server"
	"course-upgrade-service/internal/service"
	"course-upgrade-service/internal/upgrade"
	"course-upgrade-service/internal/ws"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.Setup(cfg.Log)

	db, err := client.InitSQLiteClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	recordStore := repository.NewPurchaseRecordRepository(db)
	eventRepo := repository.NewAnalyticsEventRepository(db)

	hub := ws.NewHub(log)
	go hub.Run()

	wsRouter := router.NewWSRouter(hub, log)
	analytics := service.NewAnalyticsService(eventRepo, log)
	helper := upgrade.NewHelper(wsRouter, analytics, recordStore, wsRouter, cfg.Support.Email, log)
	session := service.NewUpgradeSession(hub, log)

	upgradeHandler := handler.NewUpgradeHandler(helper, session, recordStore, wsRouter)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(upgradeHandler, hub)

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
