package bottles

import (
	"time"

	"github.com/google/uuid"

	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/enums"
)

// BottleDTO is the transport shape for one inventory line.
type BottleDTO struct {
	ID              uuid.UUID            `json:"id"`
	Brand           string               `json:"brand"`
	ProductName     string               `json:"product_name"`
	Category        enums.BottleCategory `json:"category"`
	SubCategory     *string              `json:"sub_category,omitempty"`
	CountryOfOrigin *string              `json:"country_of_origin,omitempty"`
	Region          *string              `json:"region,omitempty"`
	ABV             *float64             `json:"abv,omitempty"`
	SizeML          *int                 `json:"size_ml,omitempty"`
	Description     *string              `json:"description,omitempty"`
	TastingNotes    *string              `json:"tasting_notes,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	DanMurphysURL   *string              `json:"dan_murphys_url,omitempty"`
	ImageURL        *string              `json:"image_url,omitempty"`
	Quantity        int                  `json:"quantity"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// AddBottleInput carries the fields accepted when adding a bottle. Quantity
// defaults to 1 when nil.
type AddBottleInput struct {
	Brand           string
	ProductName     string
	Category        enums.BottleCategory
	SubCategory     *string
	CountryOfOrigin *string
	Region          *string
	ABV             *float64
	SizeML          *int
	Description     *string
	TastingNotes    *string
	Notes           *string
	DanMurphysURL   *string
	ImageURL        *string
	Quantity        *int
	PurchasePrice   *float64
	PurchaseSource  *string
}

// UpdateBottleInput applies only the non-nil fields. When Quantity is set
// alongside EventType and QuantityChange, a matching event is appended.
type UpdateBottleInput struct {
	Brand           *string
	ProductName     *string
	Category        *enums.BottleCategory
	SubCategory     *string
	CountryOfOrigin *string
	Region          *string
	ABV             *float64
	SizeML          *int
	Description     *string
	TastingNotes    *string
	Notes           *string
	DanMurphysURL   *string
	ImageURL        *string
	Quantity        *int
	EventType       *enums.InventoryEventType
	QuantityChange  *int
}

// StatsDTO is the inventory summary returned by the stats endpoint.
// CocktailsAvailable is always null; the client computes it from recipes.
type StatsDTO struct {
	TotalBottles       int  `json:"totalBottles"`
	Categories         int  `json:"categories"`
	CocktailsAvailable *int `json:"cocktailsAvailable"`
	FinishedThisMonth  int  `json:"finishedThisMonth"`
}

func FromModel(b *models.Bottle) *BottleDTO {
	if b == nil {
		return nil
	}

	return &BottleDTO{
		ID:              b.ID,
		Brand:           b.Brand,
		ProductName:     b.ProductName,
		Category:        b.Category,
		SubCategory:     b.SubCategory,
		CountryOfOrigin: b.CountryOfOrigin,
		Region:          b.Region,
		ABV:             b.ABV,
		SizeML:          b.SizeML,
		Description:     b.Description,
		TastingNotes:    b.TastingNotes,
		Notes:           b.Notes,
		DanMurphysURL:   b.DanMurphysURL,
		ImageURL:        b.ImageURL,
		Quantity:        b.Quantity,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func FromModels(items []models.Bottle) []BottleDTO {
	dtos := make([]BottleDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos
}

func (in AddBottleInput) toModel(userID uuid.UUID, quantity int) *models.Bottle {
	return &models.Bottle{
		UserID:          userID,
		Brand:           in.Brand,
		ProductName:     in.ProductName,
		Category:        in.Category,
		SubCategory:     in.SubCategory,
		CountryOfOrigin: in.CountryOfOrigin,
		Region:          in.Region,
		ABV:             in.ABV,
		SizeML:          in.SizeML,
		Description:     in.Description,
		TastingNotes:    in.TastingNotes,
		Notes:           in.Notes,
		DanMurphysURL:   in.DanMurphysURL,
		ImageURL:        in.ImageURL,
		Quantity:        quantity,
	}
}

// EventDTO is the transport shape for one inventory event.
type EventDTO struct {
	ID             uuid.UUID                `json:"id"`
	BottleID       uuid.UUID                `json:"bottle_id"`
	EventType      enums.InventoryEventType `json:"event_type"`
	QuantityChange int                      `json:"quantity_change"`
	PurchasePrice  *float64                 `json:"purchase_price,omitempty"`
	PurchaseSource *string                  `json:"purchase_source,omitempty"`
	Notes          *string                  `json:"notes,omitempty"`
	EventDate      time.Time                `json:"event_date"`
}

// EventPage is one page of the event feed. NextCursor is nil on the last page.
type EventPage struct {
	Events     []EventDTO `json:"events"`
	NextCursor *string    `json:"next_cursor"`
}

func eventFromModel(e *models.InventoryEvent) EventDTO {
	return EventDTO{
		ID:             e.ID,
		BottleID:       e.BottleID,
		EventType:      e.EventType,
		QuantityChange: e.QuantityChange,
		PurchasePrice:  e.PurchasePrice,
		PurchaseSource: e.PurchaseSource,
		Notes:          e.Notes,
		EventDate:      e.EventDate,
	}
}
