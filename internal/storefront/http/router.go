package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/storefront" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	limits       httpx.RateLimits
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService      *service.AuthService
	UserService      *service.UserService
	ProductService   *service.ProductService
	CheckoutService  *service.CheckoutService
	BootstrapService *service.BootstrapService
}

func NewRouter(buildVersion string, st store.Store, limits httpx.RateLimits, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		limits:       limits,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerProducts()
	r.registerCart()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront API
//	@version		0.1.0
//	@description	Product catalog, accounts and server-side cart pricing.
//	@description
//	@description				Access tokens are HS256 JWTs issued by /v1/auth/login and /v1/auth/register.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints - strict rate limit by IP against guessing
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{UserService: r.UserService}

	authed := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.AuthService),
			httpx.RateLimitBySubject(r.limits.Moderate),
		)
	}

	r.Mux.Handle("GET /v1/profile", authed(h.HandleGet))
	r.Mux.Handle("PUT /v1/profile", authed(h.HandleUpdate))
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{ProductService: r.ProductService}

	// Catalog reads are public
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(r.limits.Public))
	}

	// Catalog writes need an admin token
	admin := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.AuthService),
			httpx.RequireAdmin(r.AuthService),
			httpx.RateLimitBySubject(r.limits.Moderate),
		)
	}

	r.Mux.Handle("GET /v1/products", public(h.HandleList))
	r.Mux.Handle("GET /v1/products/{id}", public(h.HandleGet))
	r.Mux.Handle("POST /v1/products", admin(h.HandleCreate))
	r.Mux.Handle("PUT /v1/products/{id}", admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/products/{id}", admin(h.HandleDelete))
}

func (r *Router) registerCart() {
	h := &CartHandler{CheckoutService: r.CheckoutService}
	r.Mux.Handle("POST /v1/cart/price",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.limits.Moderate),
		),
	)
}

func (r *Router) registerBootstrap() {
	// One-time setup endpoint - strict rate limit by IP
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
