package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucifer43562/wastelink-backend/api/controllers"
	"github.com/lucifer43562/wastelink-backend/api/middleware"
	"github.com/lucifer43562/wastelink-backend/internal/auth"
	"github.com/lucifer43562/wastelink-backend/internal/locator"
	"github.com/lucifer43562/wastelink-backend/internal/requests"
	"github.com/lucifer43562/wastelink-backend/pkg/auth/session"
	"github.com/lucifer43562/wastelink-backend/pkg/config"
	"github.com/lucifer43562/wastelink-backend/pkg/enums"
	"github.com/lucifer43562/wastelink-backend/pkg/logger"
	"github.com/lucifer43562/wastelink-backend/pkg/metrics"
	"github.com/lucifer43562/wastelink-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.ReadinessPinger
	Redis           *redis.Client
	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics
	SessionManager  sessionManager
	AuthService     auth.Service
	RegisterService auth.RegisterService
	RequestsService requests.Service
	LocatorService  locator.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.ReadinessPinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/requests", controllers.ListRequests(deps.RequestsService, logg))
		r.Post("/requests", controllers.CreateRequest(deps.RequestsService, logg))
		r.With(middleware.RequireRole(string(enums.AccountRoleCompany), logg)).
			Post("/requests/{requestId}/status", controllers.UpdateRequestStatus(deps.RequestsService, logg))
		r.With(middleware.RequireRole(string(enums.AccountRoleCustomer), logg)).
			Delete("/requests/{requestId}", controllers.DeleteRequest(deps.RequestsService, logg))

		r.Post("/companies/nearby", controllers.CompaniesNearby(deps.LocatorService, logg))
	})

	return r
}
