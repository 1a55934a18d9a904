package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"

	_ "github.com/aussiebroadwan/taskflow/api/taskflow" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles used by the routes.
type Limits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultLimits returns httpx's profiles, including any RATELIMIT_*
// overrides from the environment.
func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	Limits Limits

	// ClientIP decides which forwarding headers are believed when keying
	// rate limits. The zero value uses the remote address only.
	ClientIP httpx.ClientIP

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	sessions *session.Manager

	// SessionRows is reported by /readyz.
	SessionRows bool

	AuthService       *service.AuthService
	TwoFactorService  *service.TwoFactorService
	InvitationService *service.InvitationService
	BusinessService   *service.BusinessService
	ProjectService    *service.ProjectService
	TaskService       *service.TaskService
	TimeService       *service.TimeService
	InvoiceService    *service.InvoiceService
}

func NewRouter(buildVersion string, st store.Store, sessions *session.Manager, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		Limits:       DefaultLimits(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		sessions:     sessions,
	}

	// The session middleware runs after the logger so cookie resolution
	// failures are logged with the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		sessions.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTwoFactor()
	r.registerInvitations()
	r.registerBusinesses()
	r.registerWork()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskFlow API
//	@version		0.1.0
//	@description	Multi-tenant project management: businesses, projects, tasks, time tracking and invoices.
//	@description
//	@description	Authentication uses an HttpOnly auth_token cookie set by signup, login and invitation accept.
//	@description	Users with two-factor enabled must also pass POST /api/auth/2fa/verify.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/taskflow
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// verified is the chain for routes that need a signed-in user who has
// passed 2FA when it is enabled.
func (r *Router) verified(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		r.sessions.RequireVerified,
		r.ClientIP.ByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService}

	// Signup and login are the brute force targets; login is keyed on the
	// email as well so one address cannot be hammered from many IPs cheaply.
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			r.ClientIP.ByIP(r.Limits.Strict),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			r.ClientIP.ByIPAndJSONField(r.Limits.Strict, "email"),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.ClientIP.ByIP(r.Limits.Lenient),
		),
	)

	// /me is reachable before the 2FA challenge so the client can see it
	// is pending.
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.sessions.RequireUser,
			r.ClientIP.ByUser(r.Limits.Lenient),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{TwoFactor: r.TwoFactorService}

	r.Mux.Handle("POST /api/auth/2fa/setup", r.verified(h.HandleSetup, r.Limits.Moderate))
	r.Mux.Handle("POST /api/auth/2fa/enable", r.verified(h.HandleEnable, r.Limits.Moderate))
	r.Mux.Handle("POST /api/auth/2fa/disable", r.verified(h.HandleDisable, r.Limits.Moderate))
	r.Mux.Handle("POST /api/auth/2fa/backup-codes", r.verified(h.HandleRegenerateBackupCodes, r.Limits.Moderate))

	// The challenge itself only needs the first factor. Attempts are
	// counted per user, whatever address they come from.
	r.Mux.Handle("POST /api/auth/2fa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.sessions.RequireUser,
			httpx.RateLimitMiddleware(r.Limits.Strict, httpx.UserIDKeyExtractor),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationHandler{Invitations: r.InvitationService, TwoFactor: r.TwoFactorService}

	r.Mux.Handle("POST /api/businesses/{id}/invitations", r.verified(h.HandleCreate, r.Limits.Moderate))

	r.Mux.Handle("GET /api/invitations/{token}",
		httpx.Chain(http.HandlerFunc(h.HandlePreview),
			r.ClientIP.ByIP(r.Limits.Moderate),
		),
	)
	r.Mux.Handle("POST /api/invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			r.ClientIP.ByIP(r.Limits.Strict),
		),
	)
}

func (r *Router) registerBusinesses() {
	h := &BusinessHandler{Businesses: r.BusinessService}

	r.Mux.Handle("GET /api/businesses", r.verified(h.HandleList, r.Limits.Lenient))
	r.Mux.Handle("GET /api/businesses/{id}/members", r.verified(h.HandleMembers, r.Limits.Lenient))
	r.Mux.Handle("PATCH /api/businesses/{id}/members/{userId}", r.verified(h.HandleUpdateMember, r.Limits.Moderate))
	r.Mux.Handle("DELETE /api/businesses/{id}/members/{userId}", r.verified(h.HandleRemoveMember, r.Limits.Moderate))

	// System admins only; business roles do not apply here.
	r.Mux.Handle("GET /api/admin/businesses",
		httpx.Chain(http.HandlerFunc(h.HandleListAll),
			r.sessions.RequireVerified,
			httpx.RequireAnyRole(domain.RoleAdmin),
			r.ClientIP.ByUser(r.Limits.Lenient),
		),
	)
}

func (r *Router) registerWork() {
	h := &WorkHandler{
		Projects: r.ProjectService,
		Tasks:    r.TaskService,
		Time:     r.TimeService,
		Invoices: r.InvoiceService,
	}

	r.Mux.Handle("GET /api/businesses/{id}/projects", r.verified(h.HandleListProjects, r.Limits.Lenient))
	r.Mux.Handle("POST /api/businesses/{id}/projects", r.verified(h.HandleCreateProject, r.Limits.Lenient))
	r.Mux.Handle("GET /api/projects/{id}", r.verified(h.HandleGetProject, r.Limits.Lenient))
	r.Mux.Handle("PATCH /api/projects/{id}", r.verified(h.HandleUpdateProject, r.Limits.Lenient))
	r.Mux.Handle("DELETE /api/projects/{id}", r.verified(h.HandleDeleteProject, r.Limits.Moderate))

	r.Mux.Handle("GET /api/projects/{id}/tasks", r.verified(h.HandleListTasks, r.Limits.Lenient))
	r.Mux.Handle("POST /api/projects/{id}/tasks", r.verified(h.HandleCreateTask, r.Limits.Lenient))
	r.Mux.Handle("PATCH /api/tasks/{id}", r.verified(h.HandleUpdateTask, r.Limits.Lenient))
	r.Mux.Handle("DELETE /api/tasks/{id}", r.verified(h.HandleDeleteTask, r.Limits.Lenient))

	r.Mux.Handle("GET /api/projects/{id}/time-entries", r.verified(h.HandleListTime, r.Limits.Lenient))
	r.Mux.Handle("POST /api/projects/{id}/time-entries", r.verified(h.HandleLogTime, r.Limits.Lenient))

	r.Mux.Handle("GET /api/businesses/{id}/invoices", r.verified(h.HandleListInvoices, r.Limits.Lenient))
	r.Mux.Handle("POST /api/businesses/{id}/invoices", r.verified(h.HandleCreateInvoice, r.Limits.Moderate))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.ClientIP.ByIP(r.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.SessionRows),
			r.ClientIP.ByIP(r.Limits.Public),
		),
	)
}
