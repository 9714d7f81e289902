package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/crunchperks/crunchperks-backend/api/responses"
	"github.com/crunchperks/crunchperks-backend/pkg/config"
	pkgerrors "github.com/crunchperks/crunchperks-backend/pkg/errors"
	"github.com/crunchperks/crunchperks-backend/pkg/logger"
)

const readyCheckTimeout = 5 * time.Second

// ReadyCheck is one named dependency probe for the readiness endpoint.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthLive reports that the process is up.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CrunchPerks-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes each dependency and reports per-check results. Any
// failing probe turns the whole response into a dependency error.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CrunchPerks-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		healthy := true
		for _, check := range checks {
			if check.Check == nil {
				continue
			}
			if err := check.Check(ctx); err != nil {
				results[check.Name] = "unavailable"
				healthy = false
				continue
			}
			results[check.Name] = "ok"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "a dependency is unavailable").
				WithDetails(results)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": results,
		})
	}
}
