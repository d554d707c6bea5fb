package controllers

import (
	"context"
	"net/http"

	"github.com/lucifer43562/wastelink-backend/api/responses"
	"github.com/lucifer43562/wastelink-backend/pkg/config"
	pkgerrors "github.com/lucifer43562/wastelink-backend/pkg/errors"
	"github.com/lucifer43562/wastelink-backend/pkg/logger"
)

// ReadinessPinger is any dependency the readiness probe should reach.
type ReadinessPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WasteLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]ReadinessPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WasteLink-Env", cfg.App.Env)

		checks := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "missing"
				healthy = false
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				ctx := logg.WithFields(r.Context(), map[string]any{"dependency": name})
				logg.Error(ctx, "health.dependency_unreachable", err)
				checks[name] = "unreachable"
				healthy = false
				continue
			}
			checks[name] = "ok"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unreachable").
				WithDetails(map[string]any{"checks": checks})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
