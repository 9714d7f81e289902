package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crunchperks/crunchperks-backend/api/controllers"
	"github.com/crunchperks/crunchperks-backend/api/middleware"
	"github.com/crunchperks/crunchperks-backend/internal/ads"
	"github.com/crunchperks/crunchperks-backend/internal/applications"
	"github.com/crunchperks/crunchperks-backend/internal/partners"
	"github.com/crunchperks/crunchperks-backend/pkg/config"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
	"github.com/crunchperks/crunchperks-backend/pkg/metrics"
	"github.com/crunchperks/crunchperks-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics
	Redis   *redis.Client

	Applications applications.Service
	Partners     partners.Service
	Ads          ads.Service
	Intake       *ads.IntakeGuard

	ReadyChecks []controllers.ReadyCheck
}

// NewRouter assembles the full route tree. Public intake and auth endpoints
// sit behind fixed-window rate limits; everything else requires a session.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks...))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/applications", func(r chi.Router) {
		r.With(rateLimit(signupPolicy, deps.Redis, logg)).
			Post("/submit", controllers.SubmitApplication(deps.Applications, logg))
		r.Get("/{id}", controllers.GetApplicationStatus(deps.Applications, logg))
	})

	r.Route("/api/v1/auth/partner", func(r chi.Router) {
		r.With(rateLimit(signupPolicy, deps.Redis, logg)).
			Post("/signup", controllers.PartnerSignup(deps.Partners, logg))
		r.With(rateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.PartnerLogin(deps.Partners, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Partners, logg))
			r.Use(middleware.RequirePartner(logg))
			r.Get("/me", controllers.PartnerMe(deps.Partners, logg))
		})
	})

	r.Route("/api/v1/ads", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Partners, logg))
		r.Use(middleware.RequirePartner(logg))

		r.Post("/create", controllers.CreateAd(deps.Ads, deps.Intake, cfg.Ads, logg))
		r.Get("/", controllers.ListAds(deps.Ads, logg))
		r.Get("/{id}", controllers.GetAd(deps.Ads, logg))
		r.Put("/{id}", controllers.UpdateAd(deps.Ads, logg))
		r.Delete("/{id}", controllers.DeleteAd(deps.Ads, logg))
		r.Post("/{id}/submit", controllers.SubmitAdForReview(deps.Ads, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(rateLimit(loginPolicy, deps.Redis, logg)).
			Post("/auth/login", controllers.AdminLogin(deps.Partners, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Partners, logg))
			r.Use(middleware.RequireAdmin(logg))

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", controllers.AdminListApplications(deps.Applications, logg))
				r.Get("/{id}", controllers.AdminGetApplication(deps.Applications, logg))
				r.Post("/{id}/review", controllers.AdminReviewApplication(deps.Applications, logg))
			})

			r.Post("/partners/{id}/status", controllers.AdminSetPartnerStatus(deps.Partners, logg))

			r.Route("/ads", func(r chi.Router) {
				r.Post("/{id}/review", controllers.AdminReviewAd(deps.Ads, logg))
				r.Post("/{id}/activate", controllers.AdminActivateAd(deps.Ads, logg))
				r.Post("/{id}/pause", controllers.AdminPauseAd(deps.Ads, logg))
			})
		})
	})

	return r
}

// rateLimit skips the limiter entirely when no store is wired, since a nil
// concrete client inside the interface would dodge the middleware's check.
func rateLimit(policy middleware.AuthRateLimitPolicy, store *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.AuthRateLimit(policy, store, logg)
}
