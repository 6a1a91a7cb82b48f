package linerepo

import (
	"context"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
	"tableside/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLineRepository implements LineRepository using GORM.
type GormLineRepository struct {
	db *gorm.DB
}

// NewGormLineRepository creates a new GORM line repository.
func NewGormLineRepository(db *gorm.DB) *GormLineRepository {
	return &GormLineRepository{db: db}
}

// Add saves a new order line to the database.
func (r *GormLineRepository) Add(ctx context.Context, l *line.OrderLine) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order line to the database.
func (r *GormLineRepository) Update(ctx context.Context, l *line.OrderLine) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	result := r.db.WithContext(ctx).Model(&OrderLineDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("lineId", l.ID().String())
	}

	return nil
}

// Get retrieves an order line by ID.
func (r *GormLineRepository) Get(ctx context.Context, id kernel.UUID) (*line.OrderLine, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order line by ID under a row-level lock.
// Concurrent status changes on the same line serialize on this lock, so the
// second writer revalidates against the first writer's committed status.
// Must be called inside a transaction.
func (r *GormLineRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*line.OrderLine, error) {
	return r.get(ctx, id, true)
}

func (r *GormLineRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*line.OrderLine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderLineDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("lineId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForTable retrieves every line belonging to one table, newest first.
func (r *GormLineRepository) GetAllForTable(ctx context.Context, tableID kernel.UUID) ([]*line.OrderLine, error) {
	if err := tableID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderLineDTO
	err := r.db.WithContext(ctx).
		Order("placed_at DESC, id DESC").
		Find(&dtos, "table_id = ?", tableID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	lines := make([]*line.OrderLine, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, nil
}

// DeleteByID deletes one line and reports how many rows went away.
func (r *GormLineRepository) DeleteByID(ctx context.Context, id kernel.UUID) (int64, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Delete(&OrderLineDTO{}, "id = ?", id.Bytes())
	return result.RowsAffected, result.Error
}

// DeleteByStatuses deletes every line in any of the given statuses.
func (r *GormLineRepository) DeleteByStatuses(ctx context.Context, statuses []line.Status) (int64, error) {
	values := make([]int, 0, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return 0, err
		}
		values = append(values, int(s))
	}

	result := r.db.WithContext(ctx).Delete(&OrderLineDTO{}, "status IN ?", values)
	return result.RowsAffected, result.Error
}

// DeleteAll deletes every line.
func (r *GormLineRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&OrderLineDTO{})
	return result.RowsAffected, result.Error
}
