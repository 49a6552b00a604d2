package controllers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/prodexlabs/prodex-backend/api/responses"
	"github.com/prodexlabs/prodex-backend/pkg/config"
	pkgerrors "github.com/prodexlabs/prodex-backend/pkg/errors"
	"github.com/prodexlabs/prodex-backend/pkg/logger"
)

type dependencyPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Prodex-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and fails the probe when any is down.
func HealthReady(cfg *config.Config, db, cache dependencyPinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Prodex-Env", cfg.App.Env)

		var errs []error
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				errs = append(errs, fmt.Errorf("postgres: %w", err))
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				errs = append(errs, fmt.Errorf("redis: %w", err))
			}
		}

		if combined := multierr.Combine(errs...); combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
