package recipes

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/liquorcabinet/backend/pkg/config"
	"github.com/liquorcabinet/backend/pkg/db/models"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
	"github.com/liquorcabinet/backend/pkg/logger"
)

const emptyCabinetMessage = "Add some bottles to get recipe suggestions"

// Service defines the behavior needed by the recipes controller.
type Service interface {
	Suggest(ctx context.Context, userID uuid.UUID) (*SuggestResult, error)
	Search(ctx context.Context, userID uuid.UUID, query string) (*Recipe, error)
}

type completionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type thumbnailClient interface {
	SearchThumbnail(ctx context.Context, name string) (string, error)
}

type inventorySource interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]models.Bottle, error)
}

type service struct {
	inventory inventorySource
	ai        completionClient
	images    thumbnailClient
	cfg       config.RecipesConfig
	log       *logger.Logger
}

// ServiceParams bundles the dependencies required to build a recipes service.
type ServiceParams struct {
	Inventory inventorySource
	AI        completionClient
	Images    thumbnailClient
	Config    config.RecipesConfig
	Logger    *logger.Logger
}

// NewService constructs a recipes service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Inventory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inventory source required")
	}
	if params.AI == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ai client required")
	}
	if params.Images == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "thumbnail client required")
	}
	return &service{
		inventory: params.Inventory,
		ai:        params.AI,
		images:    params.Images,
		cfg:       params.Config,
		log:       params.Logger,
	}, nil
}

// Suggest asks for a batch of cocktails matched to the cabinet, annotates
// each against the inventory, enriches images concurrently, and orders the
// result by readiness.
func (s *service) Suggest(ctx context.Context, userID uuid.UUID) (*SuggestResult, error) {
	bottles, err := s.inventory.ListActive(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to load inventory")
	}
	if len(bottles) == 0 {
		return &SuggestResult{Recipes: []Recipe{}, Message: emptyCabinetMessage}, nil
	}

	text, err := s.ai.Complete(ctx, suggestPrompt(bottles, s.cfg.SuggestionCount))
	if err != nil {
		return nil, err
	}

	var raw []rawRecipe
	if err := json.Unmarshal([]byte(cleanJSONResponse(text)), &raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to parse recipe suggestions")
	}

	images := s.fetchImages(ctx, raw)

	idx := buildInventoryIndex(bottles)
	recipes := make([]Recipe, 0, len(raw))
	for i, r := range raw {
		recipes = append(recipes, annotate(r, idx, images[i]))
	}
	sortByReadiness(recipes)

	return &SuggestResult{Recipes: recipes, BottleCount: len(bottles)}, nil
}

// Search asks for exactly one named cocktail and annotates it the same way.
// The model reporting an unknown cocktail maps to a not-found failure.
func (s *service) Search(ctx context.Context, userID uuid.UUID, query string) (*Recipe, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Search query is required")
	}

	bottles, err := s.inventory.ListActive(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to load inventory")
	}

	text, err := s.ai.Complete(ctx, searchPrompt(trimmed))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		rawRecipe
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(text)), &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to parse recipe")
	}
	if parsed.Error != "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, parsed.Error)
	}

	imageURL := s.lookupImage(ctx, parsed.Name)

	recipe := annotate(parsed.rawRecipe, buildInventoryIndex(bottles), imageURL)
	return &recipe, nil
}

// fetchImages resolves one thumbnail per suggestion concurrently. A failed or
// empty lookup yields a nil entry; the batch never fails as a whole.
func (s *service) fetchImages(ctx context.Context, raw []rawRecipe) []*string {
	images := make([]*string, len(raw))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, r := range raw {
		i, r := i, r
		group.Go(func() error {
			images[i] = s.lookupImage(groupCtx, r.Name)
			return nil
		})
	}
	_ = group.Wait()
	return images
}

func (s *service) lookupImage(ctx context.Context, name string) *string {
	thumb, err := s.images.SearchThumbnail(ctx, name)
	if err != nil {
		if s.log != nil {
			logCtx := s.log.WithFields(ctx, map[string]any{"cocktail": name, "error": err.Error()})
			s.log.Warn(logCtx, "thumbnail lookup failed")
		}
		return nil
	}
	if thumb == "" {
		return nil
	}
	return &thumb
}
