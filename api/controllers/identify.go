package controllers

import (
	"net/http"

	"github.com/liquorcabinet/backend/api/responses"
	"github.com/liquorcabinet/backend/api/validators"
	"github.com/liquorcabinet/backend/internal/identify"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
	"github.com/liquorcabinet/backend/pkg/logger"
)

type identifyRequest struct {
	Image string `json:"image" validate:"required"`
}

// IdentifyBottle sends a base64 data URI photo to the vision model and
// returns the structured identification.
func IdentifyBottle(svc *identify.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identify service unavailable"))
			return
		}

		var payload identifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bottle, err := svc.Identify(r.Context(), payload.Image)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"bottle": bottle})
	}
}
