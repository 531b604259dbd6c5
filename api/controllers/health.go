package controllers

import (
	"net/http"

	"github.com/dishpatch/dishpatch-backend/api/responses"
	"github.com/dishpatch/dishpatch-backend/pkg/config"
	"github.com/dishpatch/dishpatch-backend/pkg/logger"
	"github.com/dishpatch/dishpatch-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dishpatch-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The cart store is the only hard
// dependency, so readiness is a redis ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Dishpatch-Env", cfg.App.Env)

		status := map[string]string{"status": "ready", "redis": "ok"}
		if redisClient == nil {
			status["redis"] = "not configured"
		} else if err := redisClient.Ping(ctx); err != nil {
			if logg != nil {
				logg.Error(ctx, "redis readiness check failed", err)
			}
			status["status"] = "degraded"
			status["redis"] = "unreachable"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
