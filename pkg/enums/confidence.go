package enums

// IdentificationConfidence is the confidence tier reported by the vision model.
// The value is passed through as-is; the caller does not second-guess it.
type IdentificationConfidence string

const (
	ConfidenceHigh   IdentificationConfidence = "high"
	ConfidenceMedium IdentificationConfidence = "medium"
	ConfidenceLow    IdentificationConfidence = "low"
)
