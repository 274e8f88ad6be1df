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

	"github.com/senyabanana/access-service/internal/db"
	"github.com/senyabanana/access-service/internal/handlers"
	"github.com/senyabanana/access-service/internal/metrics"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/router"
	"github.com/senyabanana/access-service/internal/router/config"
	"github.com/senyabanana/access-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbSource, err := db.ConnString(cfg)
	if err != nil {
		log.Fatal("cannot build database url:", err)
	}
	runDBMigration(cfg.MigrationURL, dbSource)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.InitDb(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	tenderRepo := repository.NewPostgresTenderRepository(dbPool)
	rulesRepo := repository.NewPostgresRulesRepository(dbPool)
	historyRepo := repository.NewPostgresHistoryRepository(dbPool)

	itemsService := services.NewItemsService(tenderRepo)
	tenderService := services.NewTenderService(tenderRepo, itemsService)
	criteriaService := services.NewCriteriaService(tenderRepo)
	frameworkService := services.NewFrameworkService(tenderRepo, rulesRepo)

	commandHandler := handlers.NewCommandHandler(
		itemsService,
		tenderService,
		criteriaService,
		frameworkService,
		historyRepo,
		metrics.New(),
		logger,
		cfg.RequestTimeout,
	)
	pingHandler := handlers.NewPingHandler(dbPool, logger, cfg.RequestTimeout)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router.InitRoutes(commandHandler, pingHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("server is listening on %s...", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
