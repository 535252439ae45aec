package recipes

import (
	"sort"
	"strings"

	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/enums"
)

// commonMixers are ingredients treated as always available without inventory
// tracking. An ingredient whose name contains any of these is untracked.
var commonMixers = []string{
	"soda water",
	"tonic water",
	"cola",
	"ginger beer",
	"ginger ale",
	"lemon juice",
	"lime juice",
	"orange juice",
	"pineapple juice",
	"cranberry juice",
	"grapefruit juice",
	"simple syrup",
	"sugar",
	"honey",
	"egg white",
	"cream",
	"milk",
	"coconut cream",
	"coffee",
	"water",
	"ice",
}

// inventoryIndex holds the lowercased bottle names and category strings the
// matcher compares ingredients against.
type inventoryIndex struct {
	names      []string
	categories []string
}

func buildInventoryIndex(bottles []models.Bottle) inventoryIndex {
	idx := inventoryIndex{
		names:      make([]string, 0, len(bottles)),
		categories: make([]string, 0, len(bottles)),
	}
	for _, b := range bottles {
		idx.names = append(idx.names, strings.ToLower(b.Brand+" "+b.ProductName))
		cat := string(b.Category)
		if b.SubCategory != nil && *b.SubCategory != "" {
			cat = *b.SubCategory
		}
		idx.categories = append(idx.categories, strings.ToLower(cat))
	}
	return idx
}

// matchIngredient applies the substring heuristic: mixers and non-spirits are
// untracked (nil); a spirit is on hand when its name overlaps a bottle's full
// name, the first word of a bottle name, or a category string. The rule is
// loose on purpose and kept exactly as observed.
func matchIngredient(item string, isSpirit bool, idx inventoryIndex) *bool {
	itemLower := strings.ToLower(item)

	for _, mixer := range commonMixers {
		if strings.Contains(itemLower, mixer) {
			return nil
		}
	}
	if !isSpirit {
		return nil
	}

	have := false
	for _, name := range idx.names {
		firstWord, _, _ := strings.Cut(name, " ")
		if strings.Contains(name, itemLower) || strings.Contains(itemLower, firstWord) {
			have = true
			break
		}
	}
	if !have {
		for _, cat := range idx.categories {
			if strings.Contains(itemLower, cat) || strings.Contains(cat, itemLower) {
				have = true
				break
			}
		}
	}
	return &have
}

// annotate marks each ingredient, counts missing spirits, and buckets the
// recipe into a readiness category.
func annotate(raw rawRecipe, idx inventoryIndex, imageURL *string) Recipe {
	ingredients := make([]RecipeIngredient, 0, len(raw.Ingredients))
	missingSpirits := 0
	for _, ing := range raw.Ingredients {
		have := matchIngredient(ing.Item, ing.IsSpirit, idx)
		if ing.IsSpirit && have != nil && !*have {
			missingSpirits++
		}
		ingredients = append(ingredients, RecipeIngredient{
			Item:     ing.Item,
			Amount:   ing.Amount,
			IsSpirit: ing.IsSpirit,
			Have:     have,
		})
	}

	return Recipe{
		Name:           raw.Name,
		Difficulty:     raw.Difficulty,
		Ingredients:    ingredients,
		Instructions:   raw.Instructions,
		GlassType:      raw.GlassType,
		Garnish:        raw.Garnish,
		MissingSpirits: missingSpirits,
		Category:       enums.ReadinessFor(missingSpirits),
		ImageURL:       imageURL,
	}
}

// sortByReadiness orders can_make before almost before need_shopping while
// preserving relative input order within each bucket.
func sortByReadiness(recipes []Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].Category.Rank() < recipes[j].Category.Rank()
	})
}
