package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/liquorcabinet/backend/api/middleware"
	"github.com/liquorcabinet/backend/api/responses"
	"github.com/liquorcabinet/backend/api/validators"
	"github.com/liquorcabinet/backend/internal/bottles"
	"github.com/liquorcabinet/backend/pkg/enums"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
	"github.com/liquorcabinet/backend/pkg/logger"
	"github.com/liquorcabinet/backend/pkg/pagination"
)

type addBottleRequest struct {
	Brand           string   `json:"brand" validate:"required"`
	ProductName     string   `json:"product_name" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	SubCategory     *string  `json:"sub_category"`
	CountryOfOrigin *string  `json:"country_of_origin"`
	Region          *string  `json:"region"`
	ABV             *float64 `json:"abv"`
	SizeML          *int     `json:"size_ml"`
	Description     *string  `json:"description"`
	TastingNotes    *string  `json:"tasting_notes"`
	Notes           *string  `json:"notes"`
	DanMurphysURL   *string  `json:"dan_murphys_url"`
	ImageURL        *string  `json:"image_url"`
	Quantity        *int     `json:"quantity" validate:"omitempty,min=1"`
	PurchasePrice   *float64 `json:"purchase_price"`
	PurchaseSource  *string  `json:"purchase_source"`
}

func (r addBottleRequest) toInput() (bottles.AddBottleInput, error) {
	category, err := enums.ParseBottleCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return bottles.AddBottleInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid bottle category")
	}

	return bottles.AddBottleInput{
		Brand:           r.Brand,
		ProductName:     r.ProductName,
		Category:        category,
		SubCategory:     r.SubCategory,
		CountryOfOrigin: r.CountryOfOrigin,
		Region:          r.Region,
		ABV:             r.ABV,
		SizeML:          r.SizeML,
		Description:     r.Description,
		TastingNotes:    r.TastingNotes,
		Notes:           r.Notes,
		DanMurphysURL:   r.DanMurphysURL,
		ImageURL:        r.ImageURL,
		Quantity:        r.Quantity,
		PurchasePrice:   r.PurchasePrice,
		PurchaseSource:  r.PurchaseSource,
	}, nil
}

type updateBottleRequest struct {
	Brand           *string  `json:"brand"`
	ProductName     *string  `json:"product_name"`
	Category        *string  `json:"category"`
	SubCategory     *string  `json:"sub_category"`
	CountryOfOrigin *string  `json:"country_of_origin"`
	Region          *string  `json:"region"`
	ABV             *float64 `json:"abv"`
	SizeML          *int     `json:"size_ml"`
	Description     *string  `json:"description"`
	TastingNotes    *string  `json:"tasting_notes"`
	Notes           *string  `json:"notes"`
	DanMurphysURL   *string  `json:"dan_murphys_url"`
	ImageURL        *string  `json:"image_url"`
	Quantity        *int     `json:"quantity" validate:"omitempty,min=0"`
	EventType       *string  `json:"event_type"`
	QuantityChange  *int     `json:"quantity_change"`
}

func (r updateBottleRequest) toInput() (bottles.UpdateBottleInput, error) {
	input := bottles.UpdateBottleInput{
		Brand:           r.Brand,
		ProductName:     r.ProductName,
		SubCategory:     r.SubCategory,
		CountryOfOrigin: r.CountryOfOrigin,
		Region:          r.Region,
		ABV:             r.ABV,
		SizeML:          r.SizeML,
		Description:     r.Description,
		TastingNotes:    r.TastingNotes,
		Notes:           r.Notes,
		DanMurphysURL:   r.DanMurphysURL,
		ImageURL:        r.ImageURL,
		Quantity:        r.Quantity,
		QuantityChange:  r.QuantityChange,
	}

	if r.Category != nil {
		category, err := enums.ParseBottleCategory(strings.TrimSpace(*r.Category))
		if err != nil {
			return bottles.UpdateBottleInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid bottle category")
		}
		input.Category = &category
	}
	if r.EventType != nil {
		eventType, err := enums.ParseInventoryEventType(strings.TrimSpace(*r.EventType))
		if err != nil {
			return bottles.UpdateBottleInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid event type")
		}
		input.EventType = &eventType
	}

	return input, nil
}

func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}

func bottleIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "bottleId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bottle id")
	}
	return id, nil
}

// BottleAdd creates a bottle, or tops up the active row with the same identity.
func BottleAdd(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addBottleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bottle, err := svc.Add(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, responses.Envelope{"bottle": bottle})
	}
}

// BottleList returns the active inventory, newest first.
func BottleList(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"bottles": items})
	}
}

func BottleGet(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := bottleIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bottle, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"bottle": bottle})
	}
}

func BottleUpdate(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := bottleIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBottleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bottle, err := svc.Update(r.Context(), userID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"bottle": bottle})
	}
}

// BottleFinish marks one serving gone and floors the quantity at zero.
func BottleFinish(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := bottleIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bottle, err := svc.Finish(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{"bottle": bottle})
	}
}

// BottleDelete removes the bottle and its event history.
func BottleDelete(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := bottleIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{})
	}
}

// BottleEvents pages through the bottle's inventory event feed.
func BottleEvents(svc bottles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bottle service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := bottleIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			params.Limit = limit
		}

		page, err := svc.Events(r.Context(), userID, id, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, responses.Envelope{
			"events":      page.Events,
			"next_cursor": page.NextCursor,
		})
	}
}
