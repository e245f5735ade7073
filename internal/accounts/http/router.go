package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"

	_ "github.com/aussiebroadwan/accounts/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	issuer       jwtx.Issuer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AccountService *service.AccountService
	AuthService    *service.AuthService
}

func NewRouter(
	issuer jwtx.Issuer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(func(req *http.Request, v any) {
			slogx.FromContext(req.Context()).Error("handler panic", "panic", fmt.Sprint(v))
		}),
	}

	return r
}

// ApplyRoutes registers every route. Each path is also served with a single
// trailing slash.
func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerToken()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Accounts Service API
//	@version		0.1.0
//	@description	User account management and password login issuing HS256 signed tokens.
//	@description
//	@description	Tokens carry the user id and expire 60 days after issue by default.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/accounts
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

// handle registers pattern and its trailing slash twin.
func (r *Router) handle(method, path string, h http.HandlerFunc) {
	r.Mux.Handle(method+" "+path, h)
	r.Mux.Handle(method+" "+path+"/{$}", h)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	r.handle(http.MethodPost, "/users", h.Create)
	r.handle(http.MethodGet, "/users", h.List)
	r.handle(http.MethodGet, "/users/{id}", h.Get)
	r.handle(http.MethodPatch, "/users/{id}", h.Update)
	r.handle(http.MethodPut, "/users/{id}", h.Update)
	r.handle(http.MethodDelete, "/users/{id}", h.Delete)
}

func (r *Router) registerToken() {
	h := &LoginHandler{AuthService: r.AuthService}
	r.handle(http.MethodPost, "/api-token-auth", h.ServeHTTP)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.issuer))
}
