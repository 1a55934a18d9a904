package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/apperr"
	httpapi "github.com/aussiebroadwan/taskflow/internal/taskflow/http"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/mail"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store/drivers/postgres"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application holds the TaskFlow API server and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	sessionRows bool

	tokenService        *service.TokenService
	authService         *service.AuthService
	twoFactorService    *service.TwoFactorService
	invitationService   *service.InvitationService
	businessService     *service.BusinessService
	projectService      *service.ProjectService
	taskService         *service.TaskService
	timeService         *service.TimeService
	invoiceService      *service.InvoiceService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and builds the application. Nothing is listening yet.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskflow",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	apperr.ExposeDetails(!cfg.IsProduction())

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("taskflow starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"session_rows", app.sessionRows,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskflow...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskflow stopped")
	return nil
}

// initDatabase opens the configured driver, applies migrations and decides
// whether session rows are written.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		db, err = postgres.NewStore(connectCtx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseURL)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)

	if app.cfg.SessionPersistence {
		ok, err := db.HasTable(ctx, "sessions")
		if err != nil {
			app.logger.Warn("could not check for sessions table; session rows disabled", "error", err)
		}
		app.sessionRows = ok && err == nil
	}
	return nil
}

func (app *Application) initServices() error {
	secret, err := SigningSecret(app.cfg, app.logger)
	if err != nil {
		return err
	}
	tokens, err := service.NewTokenService(secret, app.cfg.AuthIssuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokenService = tokens

	sealer, err := TwoFactorSealer(app.cfg, secret, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize 2fa sealer: %w", err)
	}

	mailer, err := app.newMailer()
	if err != nil {
		return err
	}

	hasher := cryptox.Hasher{}
	authz := &service.Authorizer{Store: app.db}

	app.authService = &service.AuthService{
		Store:           app.db,
		Tokens:          tokens,
		Hasher:          hasher,
		PersistSessions: app.sessionRows,
	}
	app.twoFactorService = &service.TwoFactorService{
		Store:  app.db,
		Issuer: app.cfg.TwoFactorIssuer,
		Sealer: sealer,
	}
	app.invitationService = &service.InvitationService{
		Store:   app.db,
		Authz:   authz,
		Auth:    app.authService,
		Mailer:  mailer,
		Hasher:  hasher,
		BaseURL: app.cfg.AppBaseURL,
		TTL:     app.cfg.InvitationTTL,
	}
	app.businessService = &service.BusinessService{Store: app.db, Authz: authz}
	app.projectService = &service.ProjectService{Store: app.db, Authz: authz}
	app.taskService = &service.TaskService{Store: app.db, Authz: authz}
	app.timeService = &service.TimeService{Store: app.db, Authz: authz}
	app.invoiceService = &service.InvoiceService{Store: app.db, Authz: authz}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.sessionRows,
	)
	return nil
}

func (app *Application) newMailer() (mail.Mailer, error) {
	if app.cfg.SMTPHost == "" {
		app.logger.Info("SMTP_HOST not set; invitation emails are logged, not sent")
		return mail.LogMailer{}, nil
	}
	m, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	return m, nil
}

func (app *Application) initHTTP() {
	sessions := &session.Manager{
		Policy:    session.PolicyFor(app.cfg.Env),
		Users:     app.authService,
		Tokens:    app.tokenService,
		TwoFactor: app.twoFactorService,
	}

	router := httpapi.NewRouter(BuildVersion, app.db, sessions, app.logger)
	// Validate has already parsed the list.
	trusted, _ := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	router.ClientIP = httpx.ClientIP{TrustedProxies: trusted}
	router.SessionRows = app.sessionRows
	router.AuthService = app.authService
	router.TwoFactorService = app.twoFactorService
	router.InvitationService = app.invitationService
	router.BusinessService = app.businessService
	router.ProjectService = app.projectService
	router.TaskService = app.taskService
	router.TimeService = app.timeService
	router.InvoiceService = app.invoiceService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
