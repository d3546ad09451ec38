package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/store"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
	"github.com/vasudha-ag/gatekeeper/pkg/jwtx"
	"github.com/vasudha-ag/gatekeeper/pkg/slogx"

	_ "github.com/vasudha-ag/gatekeeper/api/gatekeeper" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	publicDir    string

	store           store.Store
	RegisterService *service.RegisterService
	LoginService    *service.LoginService
	GuardService    *service.GuardService
	ApprovalService *service.ApprovalService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	publicDir string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		publicDir:    publicDir,
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerSystem()
	r.registerPages()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeeper API
//	@version		0.1.0
//	@description	Account admission and session authorization service. Registration runs
//	@description	through admission rules before any identity is created; login and page
//	@description	access are gated on per-profile approval and block flags.
//
//	@contact.name	Gatekeeper Team
//	@contact.url	https://github.com/vasudha-ag/gatekeeper
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Provider-issued session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /api/register - strict rate limit (abuse prevention)
	r.Mux.Handle("POST /api/register",
		httpx.Chain(&RegisterHandler{RegisterService: r.RegisterService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/login - strict rate limit (credential guessing)
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{LoginService: r.LoginService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/logout - authenticated, moderate limit keyed by user
	r.Mux.Handle("POST /api/logout",
		httpx.Chain(&LogoutHandler{LoginService: r.LoginService},
			httpx.AuthnMiddleware(r.verifier, SessionCookie),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /api/session - authenticated, moderate limit keyed by user
	r.Mux.Handle("GET /api/session",
		httpx.Chain(&SessionHandler{GuardService: r.GuardService},
			httpx.AuthnMiddleware(r.verifier, SessionCookie),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	authn := httpx.AuthnMiddleware(r.verifier, SessionCookie)
	admin := RequireAdmin(r.GuardService)
	limit := httpx.RateLimitByUser(httpx.ModerateLimit)

	decisions := &AdminDecisionHandler{ApprovalService: r.ApprovalService}

	r.Mux.Handle("GET /api/admin/pending",
		httpx.Chain(&AdminPendingHandler{ApprovalService: r.ApprovalService}, authn, limit, admin),
	)
	r.Mux.Handle("POST /api/admin/profiles/{id}/approve",
		httpx.Chain(http.HandlerFunc(decisions.HandleApprove), authn, limit, admin),
	)
	r.Mux.Handle("POST /api/admin/profiles/{id}/revoke",
		httpx.Chain(http.HandlerFunc(decisions.HandleRevoke), authn, limit, admin),
	)
	r.Mux.Handle("POST /api/admin/profiles/{id}/block",
		httpx.Chain(http.HandlerFunc(decisions.HandleBlock), authn, limit, admin),
	)
	r.Mux.Handle("POST /api/admin/profiles/{id}/unblock",
		httpx.Chain(http.HandlerFunc(decisions.HandleUnblock), authn, limit, admin),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

// registerPages mounts the static site behind the page guard. Skipped when
// no public directory is configured (API-only deployments).
func (r *Router) registerPages() {
	if r.publicDir == "" {
		return
	}

	guard := &PageGuard{Guard: r.GuardService, Verifier: r.verifier}

	r.Mux.Handle("/", httpx.Chain(
		http.FileServer(http.Dir(r.publicDir)),
		httpx.RateLimitByIP(httpx.PublicLimit),
		guard.Middleware(),
	))
}
