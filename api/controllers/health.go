package controllers

import (
	"net/http"

	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/db"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pronto-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, redis. A nil cache
// pinger means redis is disabled and is reported as such.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pronto-Env", cfg.App.Env)
		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		}

		redisStatus := "disabled"
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
			redisStatus = "ok"
		}

		responses.WriteSuccess(w, map[string]string{
			"status":   "ready",
			"database": "ok",
			"redis":    redisStatus,
		})
	}
}
