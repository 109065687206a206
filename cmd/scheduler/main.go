package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/pmerrill/mortgage-ledger/internal/config"
	"github.com/pmerrill/mortgage-ledger/internal/ledger"
	"github.com/pmerrill/mortgage-ledger/internal/repository"
	"github.com/pmerrill/mortgage-ledger/pkg/utils"
)

func main() {
	log.Println("Starting backup scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, cleanup, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to open ledger storage: %v", err)
	}
	defer cleanup()

	c := cron.New(cron.WithSeconds())

	_, err = c.AddFunc(cfg.Backup.Schedule, func() {
		if err := runBackup(repo, cfg.Backup.Dir); err != nil {
			log.Printf("Backup failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule backup job: %v", err)
	}

	c.Start()
	log.Printf("Backup scheduled (%s) into %s", cfg.Backup.Schedule, cfg.Backup.Dir)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func openRepository(cfg *config.Config) (repository.SnapshotRepository, func(), error) {
	if cfg.Storage.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(db), func() { db.Close() }, nil
	}
	return repository.NewFileRepository(cfg.Storage.DataFile), func() {}, nil
}

// runBackup writes a timestamped JSON export of the full ledger.
func runBackup(repo repository.SnapshotRepository, dir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		log.Println("Nothing persisted yet, skipping backup")
		return nil
	}

	data, err := ledger.ExportJSON(snap.Records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	name := fmt.Sprintf("payments-backup-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	stats := ledger.Summarize(snap.Records, snap.Config)
	log.Printf("Backed up %d records to %s (balance %s)", len(snap.Records), path, utils.FormatUSD(stats.CurrentBalance))
	return nil
}
