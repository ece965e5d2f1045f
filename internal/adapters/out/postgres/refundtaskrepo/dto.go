// Package refundtaskrepo provides data transfer objects and mapping functions for refund
// task persistence. This package implements the repository pattern for the refund task
// aggregate, handling the conversion between domain entities and database representations.
package refundtaskrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/refund"

	"github.com/google/uuid"
)

// RefundTaskDTO represents the database structure for persisting refund tasks.
// The idempotency key is unique: one approved cancellation produces exactly one
// wallet credit regardless of retries.
type RefundTaskDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null"`
	Amount         int64     `gorm:"not null"`
	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Status         int       `gorm:"not null;index"`
	Attempts       int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	LastAttemptAt  *time.Time
}

// TableName specifies the database table name for refund task entities.
// Overrides GORM's default naming convention to use "refund_tasks".
func (RefundTaskDTO) TableName() string {
	return "refund_tasks"
}

// fromDomain converts a refund task to its database representation.
func fromDomain(task *refund.RefundTask) RefundTaskDTO {
	return RefundTaskDTO{
		ID:             task.ID().Bytes(),
		OrderID:        task.OrderID().Bytes(),
		CustomerID:     task.CustomerID().Bytes(),
		Amount:         task.Amount().Amount(),
		IdempotencyKey: task.IdempotencyKey(),
		Status:         int(task.Status()),
		Attempts:       task.Attempts(),
		CreatedAt:      task.CreatedAt(),
		LastAttemptAt:  task.LastAttemptAt(),
	}
}

// toDomain converts a database DTO to a refund task using RestoreRefundTask.
func toDomain(dto RefundTaskDTO) (*refund.RefundTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return refund.RestoreRefundTask(
		id,
		orderID,
		customerID,
		amount,
		dto.IdempotencyKey,
		refund.TaskStatus(dto.Status),
		dto.Attempts,
		dto.CreatedAt,
		dto.LastAttemptAt,
	)
}
