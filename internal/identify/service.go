package identify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/liquorcabinet/backend/pkg/enums"
	pkgerrors "github.com/liquorcabinet/backend/pkg/errors"
)

var dataURIPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

var allowedMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// BottleIdentification is the model's structured guess, not persisted until
// the caller confirms it as a bottle add.
type BottleIdentification struct {
	Brand           string                         `json:"brand"`
	ProductName     string                         `json:"productName"`
	Category        enums.BottleCategory           `json:"category"`
	SubCategory     *string                        `json:"subCategory,omitempty"`
	CountryOfOrigin *string                        `json:"countryOfOrigin,omitempty"`
	Region          *string                        `json:"region,omitempty"`
	ABV             *float64                       `json:"abv,omitempty"`
	SizeML          *int                           `json:"sizeMl,omitempty"`
	Description     *string                        `json:"description,omitempty"`
	TastingNotes    *string                        `json:"tastingNotes,omitempty"`
	Confidence      enums.IdentificationConfidence `json:"confidence"`
}

type visionClient interface {
	IdentifyImage(ctx context.Context, mediaType, base64Data, prompt string) (string, error)
}

// Service turns a photo data URI into a structured bottle identification.
type Service struct {
	ai visionClient
}

// NewService constructs the identification service.
func NewService(ai visionClient) (*Service, error) {
	if ai == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ai client required")
	}
	return &Service{ai: ai}, nil
}

// Identify validates the data URI and asks the vision model for a single
// strict-JSON object. This path does not tolerate markdown fences; the model
// is instructed to return bare JSON and anything else is a parse failure.
func (s *Service) Identify(ctx context.Context, imageDataURI string) (*BottleIdentification, error) {
	if strings.TrimSpace(imageDataURI) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No image provided")
	}

	matches := dataURIPattern.FindStringSubmatch(imageDataURI)
	if matches == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid image format")
	}
	mediaType, payload := matches[1], matches[2]

	if _, ok := allowedMediaTypes[mediaType]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Unsupported image type")
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid image format")
	}

	text, err := s.ai.IdentifyImage(ctx, mediaType, payload, identifyPrompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		BottleIdentification
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to identify bottle")
	}
	if parsed.Error != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, parsed.Error)
	}

	result := parsed.BottleIdentification
	return &result, nil
}
