package enums

import "fmt"

// BottleCategory represents the canonical spirit categories supported by the cabinet.
type BottleCategory string

const (
	BottleCategoryWhisky  BottleCategory = "whisky"
	BottleCategoryGin     BottleCategory = "gin"
	BottleCategoryRum     BottleCategory = "rum"
	BottleCategoryVodka   BottleCategory = "vodka"
	BottleCategoryTequila BottleCategory = "tequila"
	BottleCategoryBrandy  BottleCategory = "brandy"
	BottleCategoryLiqueur BottleCategory = "liqueur"
	BottleCategoryWine    BottleCategory = "wine"
	BottleCategoryBeer    BottleCategory = "beer"
	BottleCategoryOther   BottleCategory = "other"
)

var validBottleCategories = []BottleCategory{
	BottleCategoryWhisky,
	BottleCategoryGin,
	BottleCategoryRum,
	BottleCategoryVodka,
	BottleCategoryTequila,
	BottleCategoryBrandy,
	BottleCategoryLiqueur,
	BottleCategoryWine,
	BottleCategoryBeer,
	BottleCategoryOther,
}

// String implements fmt.Stringer.
func (c BottleCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known BottleCategory.
func (c BottleCategory) IsValid() bool {
	for _, candidate := range validBottleCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseBottleCategory converts raw input into a BottleCategory.
func ParseBottleCategory(value string) (BottleCategory, error) {
	for _, candidate := range validBottleCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bottle category %q", value)
}
