package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"ghost_migrator/internal/archive"
	"ghost_migrator/internal/config"
	"ghost_migrator/internal/export"
	"ghost_migrator/internal/ghost"
	"ghost_migrator/internal/publisher"
	"ghost_migrator/internal/service"
	"ghost_migrator/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	auto := flag.Bool("auto", false, "import the export into Ghost and reconcile")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Optional run-history store
	var runs service.RunStore
	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to database")
		runs = postgres.NewRunStore(db)
	}

	// Optional event publisher
	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	client := ghost.New(ghost.Config{
		APIURL:   cfg.Ghost.APIURL,
		SiteURL:  cfg.Ghost.SiteURL,
		Username: cfg.Ghost.Username,
		Password: cfg.Ghost.Password,
		Version:  cfg.Ghost.Version,
		Timeout:  cfg.Ghost.Timeout,
	}, logger)

	exporter := export.New(cfg.Content.AuthorsDir, cfg.Content.PostsDir, cfg.Migration.AdminUserList(), logger)
	packager := archive.New(cfg.Images.PostsDir, cfg.Images.AuthorsDir, logger)

	migration := service.NewMigrationService(
		exporter,
		packager,
		client,
		runs,
		events,
		logger,
		cfg.Migration,
		cfg.Output,
	)

	logger.Info("starting migration",
		"site", cfg.Ghost.SiteURL,
		"auto_import", *auto,
	)

	if _, err := migration.Run(ctx, *auto); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if !*auto {
		logger.Info("export completed; import the artifacts via Ghost Dashboard -> Settings -> Labs",
			"package", cfg.Output.PackagePath(),
			"archive", cfg.Output.ArchivePath(),
		)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
