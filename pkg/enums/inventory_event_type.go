package enums

import "fmt"

// InventoryEventType maps to the inventory_event_type enum in Postgres.
type InventoryEventType string

const (
	InventoryEventTypeAdded    InventoryEventType = "added"
	InventoryEventTypeFinished InventoryEventType = "finished"
	InventoryEventTypeAdjusted InventoryEventType = "adjusted"
)

var validInventoryEventTypes = []InventoryEventType{
	InventoryEventTypeAdded,
	InventoryEventTypeFinished,
	InventoryEventTypeAdjusted,
}

// IsValid reports whether the value matches the canonical event type enum.
func (t InventoryEventType) IsValid() bool {
	for _, candidate := range validInventoryEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseInventoryEventType converts raw input into InventoryEventType.
func ParseInventoryEventType(value string) (InventoryEventType, error) {
	for _, candidate := range validInventoryEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory event type %q", value)
}
