package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

type PredictionFilter struct {
	RobotID        *uuid.UUID
	PredictionType *model.PredictionType
	StartDate      *time.Time
	EndDate        *time.Time
}

type PredictionRepository interface {
	List(ctx context.Context, filter PredictionFilter) ([]model.Prediction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error)
	Create(ctx context.Context, prediction *model.Prediction) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Prediction, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) List(ctx context.Context, filter PredictionFilter) ([]model.Prediction, error) {
	q := r.db.WithContext(ctx).Preload("Robot")
	if filter.RobotID != nil {
		q = q.Where("robot_id = ?", *filter.RobotID)
	}
	if filter.PredictionType != nil {
		q = q.Where("prediction_type = ?", *filter.PredictionType)
	}
	if filter.StartDate != nil {
		q = q.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("timestamp <= ?", *filter.EndDate)
	}

	var predictions []model.Prediction
	if err := q.Order("timestamp DESC").Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	var prediction model.Prediction
	if err := r.db.WithContext(ctx).Preload("Robot").First(&prediction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) Create(ctx context.Context, prediction *model.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Prediction, error) {
	var prediction model.Prediction
	if err := r.db.WithContext(ctx).First(&prediction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&prediction).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Preload("Robot").First(&prediction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Prediction{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
