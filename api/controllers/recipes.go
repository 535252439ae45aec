package controllers

import (
	"net/http"

	"github.com/liquorcabinet/backend/api/responses"
	"github.com/liquorcabinet/backend/api/validators"
	"github.com/liquorcabinet/backend/internal/recipes"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
	"github.com/liquorcabinet/backend/pkg/logger"
)

type recipeSearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// RecipeSuggestions asks the model for cocktails built around the cabinet
// and annotates each ingredient against the live inventory.
func RecipeSuggestions(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Suggest(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		envelope := responses.Envelope{
			"recipes":     result.Recipes,
			"bottleCount": result.BottleCount,
		}
		if result.Message != "" {
			envelope["message"] = result.Message
		}
		responses.WriteSuccess(w, envelope)
	}
}

// RecipeSearch looks up a single cocktail by name.
func RecipeSearch(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recipeSearchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipe, err := svc.Search(r.Context(), userID, payload.Query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"recipe": recipe})
	}
}
