package recipes

import (
	"github.com/liquorcabinet/backend/pkg/enums"
)

// RecipeIngredient carries the tri-state have flag: true/false for tracked
// spirits, nil for mixers and other untracked items.
type RecipeIngredient struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	IsSpirit bool   `json:"isSpirit"`
	Have     *bool  `json:"have"`
}

// Recipe is a cocktail suggestion annotated against the caller's inventory.
type Recipe struct {
	Name           string                  `json:"name"`
	Difficulty     enums.RecipeDifficulty  `json:"difficulty"`
	Ingredients    []RecipeIngredient      `json:"ingredients"`
	Instructions   string                  `json:"instructions"`
	GlassType      string                  `json:"glassType"`
	Garnish        string                  `json:"garnish"`
	MissingSpirits int                     `json:"missingSpirits"`
	Category       enums.ReadinessCategory `json:"category"`
	ImageURL       *string                 `json:"imageUrl"`
}

// SuggestResult is the payload for the suggestions endpoint. Message is set
// only when the cabinet is empty.
type SuggestResult struct {
	Recipes     []Recipe
	BottleCount int
	Message     string
}

type rawIngredient struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	IsSpirit bool   `json:"isSpirit"`
}

type rawRecipe struct {
	Name         string                 `json:"name"`
	Difficulty   enums.RecipeDifficulty `json:"difficulty"`
	Ingredients  []rawIngredient        `json:"ingredients"`
	Instructions string                 `json:"instructions"`
	GlassType    string                 `json:"glassType"`
	Garnish      string                 `json:"garnish"`
}
