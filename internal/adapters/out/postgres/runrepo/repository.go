package runrepo

import (
	"context"
	"errors"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/run"
	"runplanner/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRunRepository(db *gorm.DB, tracker aggregateTracker) *GormRunRepository {
	return &GormRunRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRunRepository) Add(ctx context.Context, aggregate *run.Run) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes status and the soft-delete flag. Date, type and fleet
// references are fixed at creation.
func (r *GormRunRepository) Update(ctx context.Context, aggregate *run.Run) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RunDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "deleted": dto.Deleted})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("run", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormRunRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRunRepository) get(db *gorm.DB, id kernel.UUID) (*run.Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RunDTO
	if err := db.First(&dto, "id = ? AND deleted = ?", id.Bytes(), false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("run", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
