// Package app wires configuration, the database, services, and the HTTP
// server into a running application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/casetrace/casetrace-backend/internal/adapter/filestore"
	"github.com/casetrace/casetrace-backend/internal/adapter/postgres"
	attachmentrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/attachment"
	casefilerepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/casefile"
	catalogrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/catalog"
	evidencerepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/evidence"
	historyrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/history"
	participantrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/participant"
	tokenrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/token"
	traceevidencerepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/traceevidence"
	userrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/user"
	jwtauth "github.com/casetrace/casetrace-backend/internal/auth"
	"github.com/casetrace/casetrace-backend/internal/config"
	"github.com/casetrace/casetrace-backend/internal/service/attachment"
	"github.com/casetrace/casetrace-backend/internal/service/auth"
	"github.com/casetrace/casetrace-backend/internal/service/casefile"
	"github.com/casetrace/casetrace-backend/internal/service/catalog"
	"github.com/casetrace/casetrace-backend/internal/service/evidence"
	"github.com/casetrace/casetrace-backend/internal/service/participant"
	"github.com/casetrace/casetrace-backend/internal/service/user"
	"github.com/casetrace/casetrace-backend/internal/transport/middleware"
	"github.com/casetrace/casetrace-backend/internal/transport/rest"
	"github.com/casetrace/casetrace-backend/migrations"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires repositories, services, and handlers, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := applyMigrations(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	store, err := filestore.New(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	var (
		attachments = attachmentrepo.New(pool)
		caseFiles   = casefilerepo.New(pool)
		catalogs    = catalogrepo.New(pool)
		evidences   = evidencerepo.New(pool)
		history     = historyrepo.New(pool)
		parts       = participantrepo.New(pool)
		tokens      = tokenrepo.New(pool)
		traces      = traceevidencerepo.New(pool)
		users       = userrepo.New(pool)
		txm         = postgres.NewTxManager(pool)
	)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authSvc := auth.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	caseFileSvc := casefile.NewService(logger, caseFiles, history, txm)
	evidenceSvc := evidence.NewService(logger, evidences, traces, caseFiles, catalogs, history, txm)
	participantSvc := participant.NewService(logger, parts, caseFiles, users, history, txm)
	attachmentSvc := attachment.NewService(logger, attachments, caseFiles, history, txm, store, cfg.Upload)
	userSvc := user.NewService(logger, users, tokens, cfg.Auth)
	catalogSvc := catalog.NewService(logger, catalogs)

	handlers := rest.Handlers{
		Auth:        rest.NewAuthHandler(authSvc, logger),
		CaseFile:    rest.NewCaseFileHandler(caseFileSvc, logger),
		Evidence:    rest.NewEvidenceHandler(evidenceSvc, logger),
		Participant: rest.NewParticipantHandler(participantSvc, logger),
		Attachment:  rest.NewAttachmentHandler(attachmentSvc, cfg.Upload.MaxFileSize, logger),
		User:        rest.NewUserHandler(userSvc, logger),
		Catalog:     rest.NewCatalogHandler(catalogSvc, logger),
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
	)(rest.NewRouter(handlers, middleware.Auth(jwtManager)))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// applyMigrations runs the embedded goose migrations. goose requires a
// *sql.DB, so this opens a short-lived database/sql connection separate
// from the pgx pool.
func applyMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
