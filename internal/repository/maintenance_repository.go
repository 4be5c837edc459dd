package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

type MaintenanceFilter struct {
	RobotID   *uuid.UUID
	Type      *model.MaintenanceType
	StartDate *time.Time
	EndDate   *time.Time
}

type MaintenanceRepository interface {
	List(ctx context.Context, filter MaintenanceFilter) ([]model.MaintenanceEvent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceEvent, error)
	Create(ctx context.Context, event *model.MaintenanceEvent) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.MaintenanceEvent, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) List(ctx context.Context, filter MaintenanceFilter) ([]model.MaintenanceEvent, error) {
	q := r.db.WithContext(ctx).Preload("Robot").Preload("PerformedBy")
	if filter.RobotID != nil {
		q = q.Where("robot_id = ?", *filter.RobotID)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.StartDate != nil {
		q = q.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("timestamp <= ?", *filter.EndDate)
	}

	var events []model.MaintenanceEvent
	if err := q.Order("timestamp DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceEvent, error) {
	var event model.MaintenanceEvent
	if err := r.db.WithContext(ctx).Preload("Robot").Preload("PerformedBy").First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, event *model.MaintenanceEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *maintenanceRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.MaintenanceEvent, error) {
	var event model.MaintenanceEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&event).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Preload("Robot").Preload("PerformedBy").First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.MaintenanceEvent{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
