package recipes

import (
	"fmt"
	"strings"

	"github.com/liquorcabinet/backend/pkg/db/models"
)

// bottleLines renders the inventory as the bullet list the prompts embed,
// preferring the sub-category over the broad category.
func bottleLines(bottles []models.Bottle) string {
	lines := make([]string, 0, len(bottles))
	for _, b := range bottles {
		kind := string(b.Category)
		if b.SubCategory != nil && *b.SubCategory != "" {
			kind = *b.SubCategory
		}
		lines = append(lines, fmt.Sprintf("- %s %s (%s)", b.Brand, b.ProductName, kind))
	}
	return strings.Join(lines, "\n")
}

func suggestPrompt(bottles []models.Bottle, count int) string {
	return fmt.Sprintf(`Given these bottles in my bar:
%s

Suggest %d cocktails I can make or almost make. Prioritize cocktails where I have the main spirit(s).

IMPORTANT: Use well-known, classic cocktail names when possible (e.g., "Aperol Spritz", "Piña Colada", "Margarita", "Mojito") so images can be found in cocktail databases.

For each cocktail return a JSON object with:
{
  "name": "Cocktail name",
  "difficulty": "easy|medium|hard",
  "ingredients": [
    {"item": "Ingredient name", "amount": "amount with unit", "isSpirit": true/false}
  ],
  "instructions": "Step by step instructions in 2-4 sentences",
  "glassType": "Type of glass",
  "garnish": "Garnish suggestion"
}

Rules:
- isSpirit should be true ONLY for liquors/spirits/liqueurs (not mixers like juice, soda, syrup, bitters)
- Include classic cocktails that use my bottles
- Include some creative or lesser-known options
- Vary the difficulty levels
- Keep instructions concise but complete

Return ONLY a valid JSON array, no markdown, no code blocks, no explanation.`, bottleLines(bottles), count)
}

func searchPrompt(query string) string {
	return fmt.Sprintf(`Give me the recipe for: "%s"

If this is a known cocktail, return a JSON object with:
{
  "name": "Official cocktail name",
  "difficulty": "easy|medium|hard",
  "ingredients": [
    {"item": "Ingredient name", "amount": "amount with unit", "isSpirit": true/false}
  ],
  "instructions": "Step by step instructions in 2-4 sentences",
  "glassType": "Type of glass",
  "garnish": "Garnish suggestion"
}

Rules:
- isSpirit should be true ONLY for liquors/spirits/liqueurs (not mixers like juice, soda, syrup, bitters)
- Use standard measurements (oz is fine)
- Keep instructions concise but complete
- If the cocktail doesn't exist or you don't recognize it, return: {"error": "Cocktail not found"}

Return ONLY valid JSON, no markdown, no code blocks, no explanation.`, query)
}

// cleanJSONResponse strips one optional leading/trailing markdown code fence.
func cleanJSONResponse(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		if strings.HasPrefix(strings.ToLower(cleaned), "json") {
			cleaned = cleaned[len("json"):]
		}
		cleaned = strings.TrimLeft(cleaned, " \t")
		cleaned = strings.TrimPrefix(cleaned, "\n")
	}
	if strings.HasSuffix(strings.TrimRight(cleaned, " \t"), "```") {
		cleaned = strings.TrimRight(cleaned, " \t")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "\n")
	}
	return strings.TrimSpace(cleaned)
}
