package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	audittrail "skypolls/contexts/audit/audit-trail"
	auditpostgres "skypolls/contexts/audit/audit-trail/adapters/postgres"
	auditapp "skypolls/contexts/audit/audit-trail/application"
	auditworkers "skypolls/contexts/audit/audit-trail/application/workers"
	userdirectory "skypolls/contexts/identity-access/user-directory"
	directorymemory "skypolls/contexts/identity-access/user-directory/adapters/memory"
	directorypostgres "skypolls/contexts/identity-access/user-directory/adapters/postgres"
	pollservice "skypolls/contexts/polling/poll-service"
	pollpostgres "skypolls/contexts/polling/poll-service/adapters/postgres"
	pollports "skypolls/contexts/polling/poll-service/ports"
	"skypolls/internal/platform/config"
	"skypolls/internal/platform/db"
	"skypolls/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server    *httpserver.Server
	audit     audittrail.Module
	databases []*db.Postgres
	logger    *slog.Logger
}

type WorkerApp struct {
	sweeper       auditworkers.IntegritySweeper
	sweepInterval time.Duration
	databases     []*db.Postgres
	logger        *slog.Logger
}

// BuildAPI wires the three contexts together. With POSTGRES_DSN set the
// stores are Postgres-backed and migrated on boot; without it everything
// runs on the in-memory adapters with the demo user roster.
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var (
		directoryModule userdirectory.Module
		auditModule     audittrail.Module
		databases       []*db.Postgres
		pollDeps        pollservice.Dependencies
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		databases = append(databases, pg)

		ctx := context.Background()
		directoryRepo := directorypostgres.NewRepository(pg.DB, logger)
		if err := directoryRepo.Migrate(ctx); err != nil {
			return nil, err
		}
		if err := directoryRepo.Seed(ctx, directorymemory.SeedDemoUsers()); err != nil {
			return nil, err
		}
		directoryModule = userdirectory.NewModule(userdirectory.Dependencies{
			Users:  directoryRepo,
			Logger: logger,
		})

		pollRepo := pollpostgres.NewRepository(pg.DB, logger)
		if err := pollRepo.Migrate(ctx); err != nil {
			return nil, err
		}
		pollDeps = pollservice.Dependencies{
			Polls:  pollRepo,
			Clock:  pollpostgres.SystemClock{},
			IDGen:  pollpostgres.UUIDGenerator{},
			Logger: logger,
		}

		auditDB := pg
		if cfg.AuditPostgresDSN != cfg.PostgresDSN {
			auditDB, err = db.Connect(cfg.AuditPostgresDSN)
			if err != nil {
				return nil, err
			}
			databases = append(databases, auditDB)
		}
		auditRepo := auditpostgres.NewRepository(auditDB.DB, logger)
		if err := auditRepo.Migrate(ctx); err != nil {
			return nil, err
		}
		auditModule = audittrail.NewModule(audittrail.Dependencies{
			Entries:   auditRepo,
			Clock:     auditpostgres.SystemClock{},
			IDGen:     auditpostgres.UUIDGenerator{},
			Secret:    cfg.AuditSecret,
			QueueSize: cfg.AuditQueueSize,
			Logger:    logger,
		})
	} else {
		logger.Warn("no postgres dsn configured; using in-memory stores",
			"event", "bootstrap_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		directoryModule = userdirectory.NewInMemoryModule(directorymemory.SeedDemoUsers(), logger)
		auditModule = audittrail.NewInMemoryModule(cfg.AuditSecret, logger)

		pollModule := pollservice.NewInMemoryModule(
			directoryIdentityAdapter{directory: directoryModule},
			directoryCreatorAdapter{directory: directoryModule},
			resolveAuditRecorder(cfg, auditModule),
			logger,
		)
		server := httpserver.New(directoryModule, pollModule, auditModule, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{
			server: server,
			audit:  auditModule,
			logger: logger,
		}, nil
	}

	pollDeps.Identity = directoryIdentityAdapter{directory: directoryModule}
	pollDeps.Creators = directoryCreatorAdapter{directory: directoryModule}
	pollDeps.Audit = resolveAuditRecorder(cfg, auditModule)
	pollModule := pollservice.NewModule(pollDeps)

	server := httpserver.New(directoryModule, pollModule, auditModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:    server,
		audit:     auditModule,
		databases: databases,
		logger:    logger,
	}, nil
}

// BuildWorker wires the audit integrity sweeper against the audit database.
// The sweep only makes sense over persisted entries, so a DSN is mandatory;
// only the verification side is constructed, no recorder runs here.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	if strings.TrimSpace(cfg.AuditPostgresDSN) == "" {
		return nil, errors.New("AUDIT_POSTGRES_DSN or POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.AuditPostgresDSN)
	if err != nil {
		return nil, err
	}

	auditRepo := auditpostgres.NewRepository(pg.DB, logger)
	if err := auditRepo.Migrate(context.Background()); err != nil {
		return nil, err
	}
	verifier := &auditapp.Verifier{
		Entries: auditRepo,
		Secret:  cfg.AuditSecret,
		Logger:  logger,
	}

	return &WorkerApp{
		sweeper: auditworkers.IntegritySweeper{
			Verifier: verifier,
			Logger:   logger,
		},
		sweepInterval: cfg.AuditSweepInterval,
		databases:     []*db.Postgres{pg},
		logger:        logger,
	}, nil
}

func resolveAuditRecorder(cfg config.Config, audit audittrail.Module) pollports.AuditRecorder {
	if !cfg.EnableAuditTrail {
		return noopAuditRecorder{}
	}
	return auditRecorderAdapter{recorder: audit.Recorder}
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	a.audit.Close()
	for _, pg := range a.databases {
		if err := pg.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"sweep_interval", w.sweepInterval.String(),
	)

	for {
		if err := w.sweeper.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	for _, pg := range w.databases {
		if err := pg.Close(); err != nil {
			return err
		}
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
