package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/pmerrill/mortgage-ledger/internal/config"
	"github.com/pmerrill/mortgage-ledger/internal/handler"
	"github.com/pmerrill/mortgage-ledger/internal/repository"
	"github.com/pmerrill/mortgage-ledger/internal/service"
	"github.com/pmerrill/mortgage-ledger/pkg/response"
	"github.com/pmerrill/mortgage-ledger/pkg/utils"
)

func main() {
	// Load .env into the process environment before config reads it
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var db *sqlx.DB
	var repo repository.SnapshotRepository
	if cfg.Storage.DatabaseURL != "" {
		db, err = sqlx.Connect("postgres", cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := repository.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to ensure database schema: %v", err)
		}
		repo = repository.NewPostgresRepository(db)
	} else {
		repo = repository.NewFileRepository(cfg.Storage.DataFile)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	ledgerService, err := service.NewLedgerService(ctx, repo, cfg.DefaultLoanConfig(), redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize ledger: %v", err)
	}

	stats := ledgerService.Summary(ctx)
	loanConfig := ledgerService.Config()
	log.Printf("Tracking %q, remaining balance %s", loanConfig.Nickname, utils.FormatUSD(stats.CurrentBalance))

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(ledgerHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func setupRoutes(ledgerHandler *handler.LedgerHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/summary", ledgerHandler.GetSummary).Methods("GET")
	api.HandleFunc("/ledger", ledgerHandler.GetLedger).Methods("GET")
	api.HandleFunc("/payments", ledgerHandler.CreatePayment).Methods("POST")
	api.HandleFunc("/payments/{id}", ledgerHandler.UpdatePayment).Methods("PUT")
	api.HandleFunc("/payments/{id}", ledgerHandler.DeletePayment).Methods("DELETE")
	api.HandleFunc("/split", ledgerHandler.SuggestSplit).Methods("POST")
	api.HandleFunc("/export/json", ledgerHandler.ExportJSON).Methods("GET")
	api.HandleFunc("/export/csv", ledgerHandler.ExportCSV).Methods("GET")
	api.HandleFunc("/import", ledgerHandler.ImportLedger).Methods("POST")
	api.HandleFunc("/reset", ledgerHandler.ResetLedger).Methods("POST")
	api.HandleFunc("/config", ledgerHandler.GetConfig).Methods("GET")
	api.HandleFunc("/config", ledgerHandler.UpdateConfig).Methods("PUT")

	return router
}
