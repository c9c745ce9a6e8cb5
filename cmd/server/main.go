package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaimebancar/backend/internal/config"
	"github.com/vaimebancar/backend/internal/handler"
	"github.com/vaimebancar/backend/internal/logging"
	"github.com/vaimebancar/backend/internal/repository"
	"github.com/vaimebancar/backend/internal/service"
	"github.com/vaimebancar/backend/pkg/boleto"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("config load failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("database connect failed", "error", err)
	}
	defer pool.Close()

	donationRepo := repository.NewPgDonationRepository(pool)
	projectRepo := repository.NewPgProjectRepository(pool)

	dayLoc := cfg.DayLocation()

	aggregationService := service.NewAggregationService(donationRepo)
	rankingService := service.NewRankingService(donationRepo)
	infoService := service.NewProjectInfoService(projectRepo, aggregationService, rankingService, dayLoc, cfg.SnapshotCacheTTL)
	projectService := service.NewProjectService(projectRepo, aggregationService)

	asaas := boleto.NewClient(cfg.AsaasBaseURL, cfg.AsaasAPIKey, cfg.AsaasWebhookToken)
	var gateway service.BoletoIssuer
	if asaas.Configured() {
		gateway = asaas
	} else {
		slog.Warn("asaas gateway not configured, boleto issuing disabled")
	}
	donationService := service.NewDonationService(donationRepo, projectRepo, gateway, infoService, cfg.OverdueAutoSettle)

	h := handler.New(pool, cfg.FrontendURL)
	projectHandler := handler.NewProjectHandler(projectService, donationService, infoService)
	donationHandler := handler.NewDonationHandler(donationService)
	webhookHandler := handler.NewWebhookHandler(donationService, asaas, dayLoc)

	rl := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	limited := func(next http.HandlerFunc) http.Handler {
		return rl.Middleware(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.HandleFunc("GET /api/projects/{id}/donates", projectHandler.Donates)
	mux.HandleFunc("GET /api/projects/{id}/info", projectHandler.Info)
	mux.Handle("POST /api/projects", limited(projectHandler.Create))
	mux.Handle("PATCH /api/projects/{id}/status", limited(projectHandler.PatchStatus))

	mux.Handle("POST /api/donates/boleto", limited(donationHandler.CreateBoleto))

	// Gateway notifications authenticate via token, not rate limiting.
	mux.HandleFunc("POST /api/webhooks/asaas", webhookHandler.Receive)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h.CORS(handler.SecurityHeaders(handler.RequestLogger(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "day_timezone", cfg.DayTimezone)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
