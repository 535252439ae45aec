package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liquorcabinet/backend/pkg/enums"
)

// InventoryEvent records an immutable quantity-change event tied to a bottle.
// Rows are insert-only and removed solely via bottle cascade delete.
type InventoryEvent struct {
	ID             uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	UserID         uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	BottleID       uuid.UUID                `gorm:"column:bottle_id;type:uuid;not null;index"`
	EventType      enums.InventoryEventType `gorm:"column:event_type;type:text;not null"`
	QuantityChange int                      `gorm:"column:quantity_change;not null"`
	PurchasePrice  *float64                 `gorm:"column:purchase_price"`
	PurchaseSource *string                  `gorm:"column:purchase_source"`
	Notes          *string                  `gorm:"column:notes"`
	EventDate      time.Time                `gorm:"column:event_date;autoCreateTime"`
}

func (e *InventoryEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
