package enums

// RecipeDifficulty is the difficulty tier reported for a cocktail recipe.
type RecipeDifficulty string

const (
	RecipeDifficultyEasy   RecipeDifficulty = "easy"
	RecipeDifficultyMedium RecipeDifficulty = "medium"
	RecipeDifficultyHard   RecipeDifficulty = "hard"
)

// ReadinessCategory buckets a recipe by how many spirits are missing from the cabinet.
type ReadinessCategory string

const (
	ReadinessCanMake      ReadinessCategory = "can_make"
	ReadinessAlmost       ReadinessCategory = "almost"
	ReadinessNeedShopping ReadinessCategory = "need_shopping"
)

var readinessRank = map[ReadinessCategory]int{
	ReadinessCanMake:      0,
	ReadinessAlmost:       1,
	ReadinessNeedShopping: 2,
}

// Rank returns the sort order for the category (can_make < almost < need_shopping).
func (c ReadinessCategory) Rank() int {
	if rank, ok := readinessRank[c]; ok {
		return rank
	}
	return len(readinessRank)
}

// ReadinessFor derives the readiness bucket from a missing-spirit count.
func ReadinessFor(missingSpirits int) ReadinessCategory {
	switch {
	case missingSpirits == 0:
		return ReadinessCanMake
	case missingSpirits == 1:
		return ReadinessAlmost
	default:
		return ReadinessNeedShopping
	}
}
