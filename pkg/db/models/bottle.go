package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liquorcabinet/backend/pkg/enums"
)

// Bottle is one inventory line in a user's cabinet. At most one row per
// (user, brand, product_name) may be active (quantity > 0) at a time; adds
// that match an active row merge by incrementing quantity instead.
type Bottle struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Brand           string               `gorm:"column:brand;not null"`
	ProductName     string               `gorm:"column:product_name;not null"`
	Category        enums.BottleCategory `gorm:"column:category;type:text;not null"`
	SubCategory     *string              `gorm:"column:sub_category"`
	CountryOfOrigin *string              `gorm:"column:country_of_origin"`
	Region          *string              `gorm:"column:region"`
	ABV             *float64             `gorm:"column:abv"`
	SizeML          *int                 `gorm:"column:size_ml"`
	Description     *string              `gorm:"column:description"`
	TastingNotes    *string              `gorm:"column:tasting_notes"`
	Notes           *string              `gorm:"column:notes"`
	DanMurphysURL   *string              `gorm:"column:dan_murphys_url"`
	ImageURL        *string              `gorm:"column:image_url"`
	Quantity        int                  `gorm:"column:quantity;not null;default:0"`
	Events          []InventoryEvent     `gorm:"foreignKey:BottleID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Bottle) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
