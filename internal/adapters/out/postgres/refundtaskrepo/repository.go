package refundtaskrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/refund"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRefundTaskRepository implements RefundTaskRepository using GORM.
type GormRefundTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRefundTaskRepository creates a new GORM refund task repository.
func NewGormRefundTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormRefundTaskRepository {
	return &GormRefundTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new refund task to the database.
func (r *GormRefundTaskRepository) Add(ctx context.Context, task *refund.RefundTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Update saves an existing refund task to the database.
func (r *GormRefundTaskRepository) Update(ctx context.Context, task *refund.RefundTask) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	result := r.db.WithContext(ctx).
		Model(&RefundTaskDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("refund task", task.ID().String())
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Get retrieves a refund task by ID.
func (r *GormRefundTaskRepository) Get(ctx context.Context, id kernel.UUID) (*refund.RefundTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RefundTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("refund task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves tasks whose wallet credit has not been confirmed yet,
// oldest first.
func (r *GormRefundTaskRepository) GetAllPending(ctx context.Context) ([]*refund.RefundTask, error) {
	var dtos []RefundTaskDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", int(refund.StatusPending)).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*refund.RefundTask, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
