package controllers

import (
	"context"
	"net/http"

	"github.com/liquorcabinet/backend/api/responses"
	"github.com/liquorcabinet/backend/pkg/config"
	"github.com/liquorcabinet/backend/pkg/db"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
	"github.com/liquorcabinet/backend/pkg/logger"
)

type redisPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cabinet-Env", cfg.App.Env)
		responses.WriteSuccess(w, responses.Envelope{"status": "live"})
	}
}

// HealthReady verifies the datastore connections before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, cache redisPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cabinet-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, responses.Envelope{"status": "ready"})
	}
}
