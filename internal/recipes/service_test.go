package recipes

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/liquorcabinet/backend/pkg/config"
	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/enums"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
)

type stubInventory struct {
	bottles []models.Bottle
	err     error
}

func (s stubInventory) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Bottle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bottles, nil
}

type stubCompletion struct {
	text       string
	err        error
	lastPrompt string
}

func (s *stubCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type stubThumbnails struct {
	mu     sync.Mutex
	thumbs map[string]string
	errFor map[string]error
	calls  []string
}

func (s *stubThumbnails) SearchThumbnail(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	if err, ok := s.errFor[name]; ok {
		return "", err
	}
	return s.thumbs[name], nil
}

func ginInventory() []models.Bottle {
	return []models.Bottle{
		{Brand: "Four Pillars", ProductName: "Rare Dry Gin", Category: enums.BottleCategoryGin},
	}
}

func newRecipesService(t *testing.T, inv stubInventory, ai *stubCompletion, images *stubThumbnails) Service {
	t.Helper()
	if images.thumbs == nil {
		images.thumbs = map[string]string{}
	}
	svc, err := NewService(ServiceParams{
		Inventory: inv,
		AI:        ai,
		Images:    images,
		Config:    config.RecipesConfig{SuggestionCount: 8},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSuggestEmptyCabinet(t *testing.T) {
	ai := &stubCompletion{}
	svc := newRecipesService(t, stubInventory{}, ai, &stubThumbnails{})

	result, err := svc.Suggest(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(result.Recipes) != 0 {
		t.Fatalf("expected no recipes, got %d", len(result.Recipes))
	}
	if result.Message != "Add some bottles to get recipe suggestions" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if ai.lastPrompt != "" {
		t.Fatal("expected no completion call for an empty cabinet")
	}
}

func TestSuggestAnnotatesAndSorts(t *testing.T) {
	responseJSON := `[
		{"name": "Vesper", "difficulty": "medium", "ingredients": [
			{"item": "Gin", "amount": "60 ml", "isSpirit": true},
			{"item": "Vodka", "amount": "20 ml", "isSpirit": true},
			{"item": "Lillet Blanc", "amount": "10 ml", "isSpirit": true}
		], "instructions": "Shake and strain.", "glassType": "Coupe", "garnish": "Lemon twist"},
		{"name": "Gin and Tonic", "difficulty": "easy", "ingredients": [
			{"item": "Gin", "amount": "45 ml", "isSpirit": true},
			{"item": "Tonic Water", "amount": "120 ml", "isSpirit": false}
		], "instructions": "Build over ice.", "glassType": "Highball", "garnish": "Lime wedge"}
	]`
	ai := &stubCompletion{text: "```json\n" + responseJSON + "\n```"}
	images := &stubThumbnails{
		thumbs: map[string]string{"Gin and Tonic": "https://img.test/gt.jpg"},
		errFor: map[string]error{"Vesper": errors.New("lookup failed")},
	}
	svc := newRecipesService(t, stubInventory{bottles: ginInventory()}, ai, images)

	result, err := svc.Suggest(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}

	if result.BottleCount != 1 {
		t.Fatalf("expected bottleCount 1, got %d", result.BottleCount)
	}
	if len(result.Recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(result.Recipes))
	}

	// can_make sorts ahead of need_shopping.
	if result.Recipes[0].Name != "Gin and Tonic" {
		t.Fatalf("expected Gin and Tonic first, got %s", result.Recipes[0].Name)
	}
	if result.Recipes[0].Category != enums.ReadinessCanMake {
		t.Fatalf("unexpected category %s", result.Recipes[0].Category)
	}
	if result.Recipes[1].Category != enums.ReadinessNeedShopping {
		t.Fatalf("unexpected category %s", result.Recipes[1].Category)
	}

	// Image enrichment degrades per item.
	if result.Recipes[0].ImageURL == nil || *result.Recipes[0].ImageURL != "https://img.test/gt.jpg" {
		t.Fatal("expected thumbnail on Gin and Tonic")
	}
	if result.Recipes[1].ImageURL != nil {
		t.Fatal("expected nil image after failed lookup")
	}
	if len(images.calls) != 2 {
		t.Fatalf("expected one lookup per recipe, got %d", len(images.calls))
	}

	if !strings.Contains(ai.lastPrompt, "- Four Pillars Rare Dry Gin (gin)") {
		t.Fatalf("bottle list missing from prompt:\n%s", ai.lastPrompt)
	}
	if !strings.Contains(ai.lastPrompt, "Suggest 8 cocktails") {
		t.Fatal("suggestion count missing from prompt")
	}
}

func TestSuggestParseFailure(t *testing.T) {
	ai := &stubCompletion{text: "I cannot help with that."}
	svc := newRecipesService(t, stubInventory{bottles: ginInventory()}, ai, &stubThumbnails{})

	_, err := svc.Suggest(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestSearchReturnsAnnotatedRecipe(t *testing.T) {
	ai := &stubCompletion{text: `{"name": "Negroni", "difficulty": "easy", "ingredients": [
		{"item": "Gin", "amount": "30 ml", "isSpirit": true},
		{"item": "Campari", "amount": "30 ml", "isSpirit": true},
		{"item": "Sweet Vermouth", "amount": "30 ml", "isSpirit": true}
	], "instructions": "Stir over ice and strain.", "glassType": "Rocks", "garnish": "Orange peel"}`}
	images := &stubThumbnails{thumbs: map[string]string{"Negroni": "https://img.test/negroni.jpg"}}
	svc := newRecipesService(t, stubInventory{bottles: ginInventory()}, ai, images)

	recipe, err := svc.Search(context.Background(), uuid.New(), "negroni")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if recipe.Name != "Negroni" {
		t.Fatalf("unexpected name %s", recipe.Name)
	}
	if recipe.MissingSpirits != 2 {
		t.Fatalf("expected 2 missing spirits, got %d", recipe.MissingSpirits)
	}
	if recipe.ImageURL == nil || *recipe.ImageURL != "https://img.test/negroni.jpg" {
		t.Fatal("expected thumbnail on recipe")
	}
	if !strings.Contains(ai.lastPrompt, `Give me the recipe for: "negroni"`) {
		t.Fatalf("query missing from prompt:\n%s", ai.lastPrompt)
	}
}

func TestSearchCocktailNotFound(t *testing.T) {
	ai := &stubCompletion{text: `{"error": "Cocktail not found"}`}
	svc := newRecipesService(t, stubInventory{bottles: ginInventory()}, ai, &stubThumbnails{})

	_, err := svc.Search(context.Background(), uuid.New(), "definitely not a drink")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if typed.Message() != "Cocktail not found" {
		t.Fatalf("expected the model's message, got %q", typed.Message())
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newRecipesService(t, stubInventory{}, &stubCompletion{}, &stubThumbnails{})

	_, err := svc.Search(context.Background(), uuid.New(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
