package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/vasudha-ag/gatekeeper/internal/gatekeeper/http"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/identity/identitytest"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store/drivers/sqlite"
	"github.com/vasudha-ag/gatekeeper/pkg/jwtx"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the gatekeeper service together: profile store,
// identity provider client, admission and authorization services, and
// the HTTP surface.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	provider *identity.Client
	verifier jwtx.Verifier

	// embeddedProvider serves an in-process identity provider on a
	// loopback port when ProviderMode is "embedded". Nil otherwise.
	embeddedProvider *http.Server

	registerService     *service.RegisterService
	loginService        *service.LoginService
	guardService        *service.GuardService
	approvalService     *service.ApprovalService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeeper",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.ProviderJWTSecret == "" {
		return nil, fmt.Errorf("PROVIDER_JWT_SECRET is required to verify session tokens")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initProvider(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("gatekeeper starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("provider_mode", app.cfg.ProviderMode),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.Any("signal", sig))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the HTTP server, background workers, and
// the database connection.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekeeper...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeepingService.Stop()

	if app.embeddedProvider != nil {
		if err := app.embeddedProvider.Close(); err != nil {
			app.logger.Error("error closing embedded provider", slog.Any("error", err))
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("gatekeeper stopped")
	return nil
}

// initDatabase opens the profile database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initProvider builds the identity provider client and the token
// verifier. In embedded mode an in-process provider is started on a
// loopback port first, then dialled like any remote one.
func (app *Application) initProvider() error {
	providerURL := app.cfg.ProviderURL

	if app.cfg.ProviderMode == "embedded" {
		url, err := app.startEmbeddedProvider()
		if err != nil {
			return fmt.Errorf("failed to start embedded provider: %w", err)
		}
		providerURL = url
		app.logger.Info("embedded identity provider started", slog.String("url", providerURL))
	}

	if providerURL == "" {
		return fmt.Errorf("PROVIDER_URL is required unless PROVIDER_MODE=embedded")
	}

	app.provider = identity.NewClient(providerURL, app.cfg.ProviderAnonKey, app.cfg.ProviderServiceKey)
	app.verifier = jwtx.NewHS256Verifier([]byte(app.cfg.ProviderJWTSecret), jwtx.VerifyOptions{})

	return nil
}

// startEmbeddedProvider runs the in-memory identity provider on a
// loopback listener. Meant for development and end-to-end testing,
// where standing up a real provider deployment is overkill.
func (app *Application) startEmbeddedProvider() (string, error) {
	fake := identitytest.New(identitytest.Options{
		JWTSecret:  []byte(app.cfg.ProviderJWTSecret),
		AnonKey:    app.cfg.ProviderAnonKey,
		ServiceKey: app.cfg.ProviderServiceKey,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	srv := &http.Server{
		Handler:           fake.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			app.logger.Error("embedded provider stopped", slog.Any("error", err))
		}
	}()
	app.embeddedProvider = srv

	return fmt.Sprintf("http://%s", ln.Addr().String()), nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	policy := service.ParseApprovalPolicy(app.cfg.ApprovalPolicy)

	app.registerService = &service.RegisterService{
		Store:    app.db,
		Provider: app.provider,
		Policy:   policy,
	}
	// Admin-created identities (with rollback on profile failure) need
	// the privileged key. Without it registration falls back to the
	// provider's self-service signup.
	if app.cfg.ProviderServiceKey != "" {
		app.registerService.Admin = app.provider
	}

	app.loginService = &service.LoginService{
		Store:    app.db,
		Provider: app.provider,
		Policy:   policy,
	}
	app.guardService = &service.GuardService{
		Store:    app.db,
		Provider: app.provider,
	}
	app.approvalService = &service.ApprovalService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.MaxPendingAgeDays,
	)
}

// initHTTP builds the router and HTTP server.
func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.cfg.PublicDir,
		app.db,
		app.logger,
	)
	app.router.RegisterService = app.registerService
	app.router.LoginService = app.loginService
	app.router.GuardService = app.guardService
	app.router.ApprovalService = app.approvalService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
