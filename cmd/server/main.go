package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wisewolf-edu/onboarding-service/internal/billing"
	"github.com/wisewolf-edu/onboarding-service/internal/config"
	"github.com/wisewolf-edu/onboarding-service/internal/crypto"
	httpapi "github.com/wisewolf-edu/onboarding-service/internal/http"
	"github.com/wisewolf-edu/onboarding-service/internal/monitoring"
	"github.com/wisewolf-edu/onboarding-service/internal/store"
	"github.com/wisewolf-edu/onboarding-service/internal/workflow"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	cipher, err := crypto.New([]byte(cfg.EncryptionKey))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cipher")
	}

	ctx := context.Background()
	st, err := store.New(ctx, store.Config{
		DSN:           cfg.DSN(),
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		Cipher:        cipher,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to store")
	}
	defer st.Close()

	monitoring.InitMetrics()

	provisioner := workflow.NewProvisioner(st, cfg.BaseDomain, cfg.AppBaseURL)
	enroller := workflow.NewEnroller(st, billing.NewRESTProvider(cfg.BillingAPIURL))
	handler := httpapi.NewHandler(enroller, provisioner)

	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		log.Info().Msgf("Starting Onboarding Service on port %d", cfg.HTTPPort)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("API server error")
		}
	}()

	// Ops server exposes health checks and metrics separately from the API.
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		mux.Handle("/metrics", promhttp.Handler())

		opsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.OpsPort),
			Handler: mux,
		}

		log.Info().Msgf("HTTP server for health checks and metrics started on port %d", cfg.OpsPort)
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Ops server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server exiting")
}
