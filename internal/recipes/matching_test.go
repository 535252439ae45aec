package recipes

import (
	"testing"

	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/enums"
)

func strPtr(value string) *string {
	return &value
}

func testInventory() inventoryIndex {
	return buildInventoryIndex([]models.Bottle{
		{Brand: "Maker's Mark", ProductName: "Bourbon", Category: enums.BottleCategoryWhisky, SubCategory: strPtr("bourbon")},
		{Brand: "Four Pillars", ProductName: "Rare Dry Gin", Category: enums.BottleCategoryGin},
		{Brand: "Bacardi", ProductName: "Carta Blanca", Category: enums.BottleCategoryRum, SubCategory: strPtr("white rum")},
	})
}

func TestMatchIngredientCommonMixerAlwaysUntracked(t *testing.T) {
	idx := testInventory()

	// Mixer-list hits stay untracked even when flagged as a spirit.
	for _, item := range []string{"Lime Juice", "fresh lime juice", "Soda Water", "simple syrup", "Crushed Ice"} {
		if have := matchIngredient(item, true, idx); have != nil {
			t.Fatalf("expected %q untracked, got %v", item, *have)
		}
	}
}

func TestMatchIngredientNonSpiritUntracked(t *testing.T) {
	idx := testInventory()
	if have := matchIngredient("Angostura Bitters", false, idx); have != nil {
		t.Fatalf("expected non-spirit untracked, got %v", *have)
	}
}

func TestMatchIngredientSpiritMatching(t *testing.T) {
	idx := testInventory()

	cases := []struct {
		item string
		want bool
	}{
		// Ingredient contains the sub-category string.
		{"Bourbon", true},
		// Ingredient contains the category string.
		{"Gin", true},
		{"London Dry Gin", true},
		// Ingredient contains the first word of a bottle name.
		{"bacardi superior", true},
		// Bottle name contains the ingredient.
		{"rare dry", true},
		// No overlap with any bottle or category.
		{"Tequila", false},
		{"Green Chartreuse", false},
	}
	for _, tc := range cases {
		have := matchIngredient(tc.item, true, idx)
		if have == nil {
			t.Fatalf("expected %q tracked", tc.item)
		}
		if *have != tc.want {
			t.Fatalf("expected have=%v for %q, got %v", tc.want, tc.item, *have)
		}
	}
}

func TestAnnotateCountsMissingSpiritsAndBuckets(t *testing.T) {
	idx := testInventory()

	raw := rawRecipe{
		Name:       "Last Word",
		Difficulty: enums.RecipeDifficultyMedium,
		Ingredients: []rawIngredient{
			{Item: "Gin", Amount: "22 ml", IsSpirit: true},
			{Item: "Green Chartreuse", Amount: "22 ml", IsSpirit: true},
			{Item: "Maraschino Liqueur", Amount: "22 ml", IsSpirit: true},
			{Item: "Lime Juice", Amount: "22 ml", IsSpirit: false},
		},
	}

	recipe := annotate(raw, idx, nil)

	if recipe.MissingSpirits != 2 {
		t.Fatalf("expected 2 missing spirits, got %d", recipe.MissingSpirits)
	}
	if recipe.Category != enums.ReadinessNeedShopping {
		t.Fatalf("expected need_shopping, got %s", recipe.Category)
	}
	if recipe.Ingredients[0].Have == nil || !*recipe.Ingredients[0].Have {
		t.Fatal("expected gin to be on hand")
	}
	if recipe.Ingredients[3].Have != nil {
		t.Fatal("expected lime juice untracked")
	}
}

func TestAnnotateReadinessBoundaries(t *testing.T) {
	idx := testInventory()

	oneMissing := rawRecipe{
		Name: "Gin Sour Variant",
		Ingredients: []rawIngredient{
			{Item: "Gin", Amount: "60 ml", IsSpirit: true},
			{Item: "Amaro Montenegro", Amount: "15 ml", IsSpirit: true},
		},
	}
	if got := annotate(oneMissing, idx, nil).Category; got != enums.ReadinessAlmost {
		t.Fatalf("expected almost, got %s", got)
	}

	noneMissing := rawRecipe{
		Name: "Gin and Tonic",
		Ingredients: []rawIngredient{
			{Item: "Gin", Amount: "45 ml", IsSpirit: true},
			{Item: "Tonic Water", Amount: "120 ml", IsSpirit: false},
		},
	}
	if got := annotate(noneMissing, idx, nil).Category; got != enums.ReadinessCanMake {
		t.Fatalf("expected can_make, got %s", got)
	}
}

func TestSortByReadinessStable(t *testing.T) {
	recipes := []Recipe{
		{Name: "A", Category: enums.ReadinessNeedShopping},
		{Name: "B", Category: enums.ReadinessCanMake},
		{Name: "C", Category: enums.ReadinessAlmost},
		{Name: "D", Category: enums.ReadinessCanMake},
	}

	sortByReadiness(recipes)

	want := []string{"B", "D", "C", "A"}
	for i, name := range want {
		if recipes[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, recipes[i].Name)
		}
	}
}
