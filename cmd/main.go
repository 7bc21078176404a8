package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/proposal-service/internal/db"
	"github.com/senyabanana/proposal-service/internal/handlers"
	"github.com/senyabanana/proposal-service/internal/metrics"
	"github.com/senyabanana/proposal-service/internal/repository"
	"github.com/senyabanana/proposal-service/internal/router"
	"github.com/senyabanana/proposal-service/internal/router/config"
	"github.com/senyabanana/proposal-service/internal/services"
	"github.com/senyabanana/proposal-service/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "proposal-service",
		Short: "Business proposal lifecycle tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "Directory with app.env")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("cannot load config: %w", err)
			}
			return runDBMigration(cfg, newLogger(cfg.LogLevel))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import-members <file.csv>",
		Short: "Import team members from a CSV file (name,role,alias,email)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importMembers(cmd.Context(), configPath, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("proposal-service version %s\n", version)
		},
	})
	return cmd
}

// app собирает зависимости, общие для всех команд.
type app struct {
	cfg       config.Config
	logger    *logrus.Logger
	pool      *pgxpool.Pool
	metrics   *metrics.Metrics
	clients   *services.ClientService
	members   *services.TeamMemberService
	proposals *services.ProposalService
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	a := &app{cfg: cfg, logger: logger, metrics: m}

	var (
		clientRepo   repository.ClientRepository
		memberRepo   repository.TeamMemberRepository
		proposalRepo repository.ProposalRepository
	)
	switch cfg.StorageDriver {
	case config.PostgresStorage:
		if err := runDBMigration(cfg, logger); err != nil {
			return nil, err
		}
		a.pool, err = db.InitDb(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		clientRepo = repository.NewPostgresClientRepository(a.pool)
		memberRepo = repository.NewPostgresTeamMemberRepository(a.pool)
		proposalRepo = repository.NewPostgresProposalRepository(a.pool)
	default:
		store := repository.NewMemoryStore()
		clientRepo, memberRepo, proposalRepo = store, store, store
	}

	if cfg.SeedDemoData {
		if err := repository.SeedDemoData(ctx, clientRepo, memberRepo); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		logger.Info("demo data seeded")
	}

	opts := []services.ProposalOption{services.WithMetrics(m)}
	switch cfg.BlobDriver {
	case config.MemoryBlobs:
		opts = append(opts, services.WithBlobStore(storage.NewMemoryBlobStore()))
	case config.S3Blobs:
		blobs, err := storage.NewS3BlobStore(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		opts = append(opts, services.WithBlobStore(blobs))
	}

	locks := services.NewLocker()
	a.clients = services.NewClientService(clientRepo, proposalRepo, locks, m)
	a.members = services.NewTeamMemberService(memberRepo, proposalRepo, locks, m)
	a.proposals = services.NewProposalService(proposalRepo, clientRepo, memberRepo, locks, opts...)
	return a, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func serve(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	timeout := a.cfg.RequestTimeout
	h := router.Handlers{
		Clients:   handlers.NewClientHandler(a.clients, a.logger, timeout),
		Members:   handlers.NewTeamMemberHandler(a.members, a.logger, timeout),
		Proposals: handlers.NewProposalHandler(a.proposals, a.logger, timeout),
	}
	if a.pool != nil {
		h.HealthCheck = a.pool.Ping
	}

	server := &http.Server{
		Addr:              a.cfg.ServerAddress,
		Handler:           router.InitRoutes(h, a.metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithFields(logrus.Fields{
			"address": a.cfg.ServerAddress,
			"storage": a.cfg.StorageDriver,
			"blobs":   a.cfg.BlobDriver,
		}).Info("server is listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func importMembers(ctx context.Context, configPath, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close()

	imported, err := a.members.ImportCSV(ctx, string(content))
	if err != nil {
		return fmt.Errorf("import failed after %d members: %w", len(imported), err)
	}
	for _, m := range imported {
		fmt.Printf("%s\t%s\t%s\n", m.ID, m.Name, m.Role)
	}
	a.logger.WithField("imported", len(imported)).Info("team members imported")
	return nil
}

func runDBMigration(cfg config.Config, logger *logrus.Logger) error {
	dbSource, err := cfg.DatabaseURL()
	if err != nil {
		return err
	}
	migration, err := migrate.New(cfg.MigrationURL, dbSource)
	if err != nil {
		return fmt.Errorf("cannot create a new migrate instance: %w", err)
	}
	defer migration.Close()

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}
	logger.Info("db migrated successfully")
	return nil
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
