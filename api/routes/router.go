package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prodexlabs/prodex-backend/api/controllers"
	"github.com/prodexlabs/prodex-backend/api/middleware"
	professionalsvc "github.com/prodexlabs/prodex-backend/internal/professionals"
	"github.com/prodexlabs/prodex-backend/pkg/config"
	"github.com/prodexlabs/prodex-backend/pkg/db"
	"github.com/prodexlabs/prodex-backend/pkg/logger"
	"github.com/prodexlabs/prodex-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	professionalService professionalsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var cachePinger redis.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cachePinger, logg))
	})

	r.Get("/ping", controllers.Ping())

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	writeMiddlewares := make([]func(http.Handler) http.Handler, 0, 2)
	if redisClient != nil {
		writePolicy := middleware.NewWriteRateLimitPolicy(
			"professional-writes",
			cfg.WriteRateLimit.Window,
			cfg.WriteRateLimit.IPLimit,
		)
		writeMiddlewares = append(writeMiddlewares,
			middleware.WriteRateLimit(writePolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg, cfg.Idempotency.TTL),
		)
	}

	r.Route("/v1/professionals", func(r chi.Router) {
		r.Get("/", controllers.ListProfessionals(professionalService, logg))
		r.With(writeMiddlewares...).Post("/", controllers.CreateProfessional(professionalService, logg))
		r.With(writeMiddlewares...).Post("/bulk", controllers.BulkUpsertProfessionals(professionalService, logg))
	})

	return r
}
