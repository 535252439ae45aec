package bottles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liquorcabinet/backend/pkg/db"
	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/enums"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
	"github.com/liquorcabinet/backend/pkg/pagination"
)

const bottleNotFoundMessage = "bottle not found"

// Service defines the behavior needed by the bottles and stats controllers.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, input AddBottleInput) (*BottleDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]BottleDTO, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*BottleDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateBottleInput) (*BottleDTO, error)
	Finish(ctx context.Context, userID, id uuid.UUID) (*BottleDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Events(ctx context.Context, userID, id uuid.UUID, params pagination.Params) (*EventPage, error)
	Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*StatsDTO, error)
}

type service struct {
	db *db.Client
}

// NewService constructs a bottles service over the shared DB client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

// Add merges into the active case-insensitive (brand, product_name) match via
// an atomic conditional increment, inserting a fresh row when none matches.
// Insert races on the partial unique index resolve by retrying the increment
// once. Exactly one `added` event is appended either way.
func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddBottleInput) (*BottleDTO, error) {
	brand := strings.TrimSpace(input.Brand)
	productName := strings.TrimSpace(input.ProductName)
	if brand == "" || productName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand and product_name are required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid bottle category")
	}
	qty := 1
	if input.Quantity != nil {
		qty = *input.Quantity
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	input.Brand = brand
	input.ProductName = productName

	var result *models.Bottle
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		bottle, err := repo.IncrementActive(ctx, userID, brand, productName, qty)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bottle = input.toModel(userID, qty)
			if createErr := repo.Create(ctx, bottle); createErr != nil {
				if !db.IsUniqueViolation(createErr, "idx_bottles_active_identity") {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, createErr, "create bottle")
				}
				// Lost an insert race; the winner's row is now active.
				bottle, err = repo.IncrementActive(ctx, userID, brand, productName, qty)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge bottle after conflict")
				}
			}
		} else if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge bottle")
		}

		event := &models.InventoryEvent{
			UserID:         userID,
			BottleID:       bottle.ID,
			EventType:      enums.InventoryEventTypeAdded,
			QuantityChange: qty,
			PurchasePrice:  input.PurchasePrice,
			PurchaseSource: input.PurchaseSource,
		}
		if err := repo.AppendEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append added event")
		}

		result = bottle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(result), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]BottleDTO, error) {
	repo := NewRepository(s.db.DB())
	items, err := repo.ListActive(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bottles")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*BottleDTO, error) {
	repo := NewRepository(s.db.DB())
	bottle, err := repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, bottleNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bottle")
	}
	return FromModel(bottle), nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateBottleInput) (*BottleDTO, error) {
	fields, err := updateFieldMap(input)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	var result *models.Bottle
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		if err := repo.UpdateFields(ctx, userID, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, bottleNotFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update bottle")
		}

		if input.Quantity != nil && input.EventType != nil && input.QuantityChange != nil {
			event := &models.InventoryEvent{
				UserID:         userID,
				BottleID:       id,
				EventType:      *input.EventType,
				QuantityChange: *input.QuantityChange,
			}
			if err := repo.AppendEvent(ctx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append adjustment event")
			}
		}

		bottle, err := repo.FindByID(ctx, userID, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload bottle")
		}
		result = bottle
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return FromModel(result), nil
}

// Finish floors the quantity at zero without a precondition and always
// appends one `finished` event with a delta of -1.
func (s *service) Finish(ctx context.Context, userID, id uuid.UUID) (*BottleDTO, error) {
	var result *models.Bottle
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		if err := repo.DecrementFloor(ctx, userID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, bottleNotFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement bottle")
		}

		event := &models.InventoryEvent{
			UserID:         userID,
			BottleID:       id,
			EventType:      enums.InventoryEventTypeFinished,
			QuantityChange: -1,
		}
		if err := repo.AppendEvent(ctx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append finished event")
		}

		bottle, err := repo.FindByID(ctx, userID, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload bottle")
		}
		result = bottle
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return FromModel(result), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if err := repo.Delete(ctx, userID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, bottleNotFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete bottle")
		}
		return nil
	})
}

// Stats summarizes the caller's cabinet. finishedThisMonth counts finished
// events on or after the first of the current month at local midnight.
// Events pages through the bottle's audit trail, newest first. The bottle
// must belong to the caller; a foreign or unknown id is a not-found.
func (s *service) Events(ctx context.Context, userID, id uuid.UUID, params pagination.Params) (*EventPage, error) {
	repo := NewRepository(s.db.DB())

	if _, err := repo.FindByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, bottleNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bottle")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := repo.ListEvents(ctx, userID, id, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list events")
	}

	page := &EventPage{Events: make([]EventDTO, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{Timestamp: last.EventDate, ID: last.ID})
		page.NextCursor = &next
	}
	for i := range rows {
		page.Events = append(page.Events, eventFromModel(&rows[i]))
	}
	return page, nil
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*StatsDTO, error) {
	repo := NewRepository(s.db.DB())

	total, err := repo.SumQuantities(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum quantities")
	}

	categories, err := repo.CountActiveCategories(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count categories")
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	finished, err := repo.SumFinishedSince(ctx, userID, monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum finished events")
	}

	return &StatsDTO{
		TotalBottles:       total,
		Categories:         categories,
		CocktailsAvailable: nil,
		FinishedThisMonth:  finished,
	}, nil
}

func updateFieldMap(input UpdateBottleInput) (map[string]any, error) {
	fields := map[string]any{}

	if input.Brand != nil {
		trimmed := strings.TrimSpace(*input.Brand)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand cannot be empty")
		}
		fields["brand"] = trimmed
	}
	if input.ProductName != nil {
		trimmed := strings.TrimSpace(*input.ProductName)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name cannot be empty")
		}
		fields["product_name"] = trimmed
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid bottle category")
		}
		fields["category"] = *input.Category
	}
	if input.SubCategory != nil {
		fields["sub_category"] = *input.SubCategory
	}
	if input.CountryOfOrigin != nil {
		fields["country_of_origin"] = *input.CountryOfOrigin
	}
	if input.Region != nil {
		fields["region"] = *input.Region
	}
	if input.ABV != nil {
		fields["abv"] = *input.ABV
	}
	if input.SizeML != nil {
		fields["size_ml"] = *input.SizeML
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.TastingNotes != nil {
		fields["tasting_notes"] = *input.TastingNotes
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.DanMurphysURL != nil {
		fields["dan_murphys_url"] = *input.DanMurphysURL
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		fields["quantity"] = *input.Quantity
	}
	if input.EventType != nil && !input.EventType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event type")
	}

	return fields, nil
}
