package bottles

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/enums"
	"github.com/liquorcabinet/backend/pkg/pagination"
)

// Repository exposes bottle and inventory-event persistence operations. All
// queries are scoped to the owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a bottles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IncrementActive atomically bumps the quantity of the caller's active bottle
// matching (brand, product_name) case-insensitively. Returns
// gorm.ErrRecordNotFound when no active row matches.
func (r *Repository) IncrementActive(ctx context.Context, userID uuid.UUID, brand, productName string, qty int) (*models.Bottle, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Bottle{}).
		Where("user_id = ? AND LOWER(brand) = LOWER(?) AND LOWER(product_name) = LOWER(?) AND quantity > 0", userID, brand, productName).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var bottle models.Bottle
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(brand) = LOWER(?) AND LOWER(product_name) = LOWER(?) AND quantity > 0", userID, brand, productName).
		First(&bottle).Error
	if err != nil {
		return nil, err
	}
	return &bottle, nil
}

// Create inserts a new bottle row.
func (r *Repository) Create(ctx context.Context, bottle *models.Bottle) error {
	return r.db.WithContext(ctx).Create(bottle).Error
}

// AppendEvent inserts one immutable inventory event.
func (r *Repository) AppendEvent(ctx context.Context, event *models.InventoryEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListActive returns the caller's bottles with quantity > 0, newest first.
func (r *Repository) ListActive(ctx context.Context, userID uuid.UUID) ([]models.Bottle, error) {
	var items []models.Bottle
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quantity > 0", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads one bottle owned by the caller.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Bottle, error) {
	var bottle models.Bottle
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&bottle).Error
	if err != nil {
		return nil, err
	}
	return &bottle, nil
}

// UpdateFields applies the provided column map to the caller's bottle.
// Returns gorm.ErrRecordNotFound when the row does not exist or is not owned.
func (r *Repository) UpdateFields(ctx context.Context, userID, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Bottle{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementFloor drops the bottle's quantity by one, never below zero, in a
// single statement. The CASE expression keeps the query portable between
// Postgres and sqlite.
func (r *Repository) DecrementFloor(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.Bottle{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]any{
			"quantity":   gorm.Expr("CASE WHEN quantity > 0 THEN quantity - 1 ELSE 0 END"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the bottle and its events. Events cascade in Postgres; the
// explicit delete keeps sqlite behavior identical.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND bottle_id = ?", userID, id).
		Delete(&models.InventoryEvent{}).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Bottle{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumQuantities totals the quantity column over all of the caller's rows,
// finished bottles included.
func (r *Repository) SumQuantities(ctx context.Context, userID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.Bottle{}).
		Where("user_id = ?", userID).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CountActiveCategories counts distinct categories across active rows.
func (r *Repository) CountActiveCategories(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bottle{}).
		Where("user_id = ? AND quantity > 0", userID).
		Distinct("category").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// SumFinishedSince totals the absolute quantity_change of finished events on
// or after the cutoff.
func (r *Repository) SumFinishedSince(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.InventoryEvent{}).
		Where("user_id = ? AND event_type = ? AND event_date >= ?", userID, enums.InventoryEventTypeFinished, cutoff).
		Select("SUM(ABS(quantity_change))").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// ListEvents returns the bottle's event feed, newest first, keyed by
// (event_date, id) so pages stay stable while new events arrive.
func (r *Repository) ListEvents(ctx context.Context, userID, bottleID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.InventoryEvent, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND bottle_id = ?", userID, bottleID).
		Order("event_date DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("event_date < ? OR (event_date = ? AND id < ?)", cursor.Timestamp, cursor.Timestamp, cursor.ID)
	}

	var events []models.InventoryEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
