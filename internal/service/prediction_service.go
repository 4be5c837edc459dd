package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

type CreatePredictionParams struct {
	RobotID        uuid.UUID
	PredictionType model.PredictionType
	Value          float64
	ModelVersion   string
	Timestamp      *time.Time
}

type PredictionUpdate struct {
	PredictionType Optional[model.PredictionType]
	Value          Optional[float64]
	ModelVersion   Optional[string]
	Timestamp      Optional[time.Time]
}

type PredictionService interface {
	List(ctx context.Context, filter repository.PredictionFilter) ([]model.Prediction, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Prediction, error)
	Create(ctx context.Context, params CreatePredictionParams) (*model.Prediction, error)
	Update(ctx context.Context, id uuid.UUID, upd PredictionUpdate) (*model.Prediction, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type predictionService struct {
	predictions repository.PredictionRepository
	robots      repository.RobotRepository
	audit       AuditRecorder
	log         *zap.Logger
}

func NewPredictionService(
	predictions repository.PredictionRepository,
	robots repository.RobotRepository,
	audit AuditRecorder,
	log *zap.Logger,
) PredictionService {
	return &predictionService{predictions: predictions, robots: robots, audit: audit, log: log}
}

func (s *predictionService) List(ctx context.Context, filter repository.PredictionFilter) ([]model.Prediction, error) {
	return s.predictions.List(ctx, filter)
}

func (s *predictionService) Get(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	prediction, err := s.predictions.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "prediction", id)
	}
	return prediction, nil
}

func (s *predictionService) Create(ctx context.Context, params CreatePredictionParams) (*model.Prediction, error) {
	if _, err := s.robots.GetByID(ctx, params.RobotID); err != nil {
		return nil, wrapNotFound(err, "robot", params.RobotID)
	}

	ts := time.Now()
	if params.Timestamp != nil {
		ts = *params.Timestamp
	}

	prediction := &model.Prediction{
		RobotID:        params.RobotID,
		Timestamp:      ts,
		PredictionType: params.PredictionType,
		Value:          params.Value,
		ModelVersion:   params.ModelVersion,
	}
	if err := s.predictions.Create(ctx, prediction); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "create", "prediction", prediction.ID, map[string]interface{}{"predictionType": string(prediction.PredictionType)})
	return s.Get(ctx, prediction.ID)
}

func (s *predictionService) Update(ctx context.Context, id uuid.UUID, upd PredictionUpdate) (*model.Prediction, error) {
	for name, field := range map[string]interface{ IsNull() bool }{
		"predictionType": upd.PredictionType,
		"value":          upd.Value,
		"modelVersion":   upd.ModelVersion,
		"timestamp":      upd.Timestamp,
	} {
		if field.IsNull() {
			return nil, fmt.Errorf("field %s cannot be null", name)
		}
	}

	updates := map[string]interface{}{}
	upd.PredictionType.apply(updates, "prediction_type")
	upd.Value.apply(updates, "value")
	upd.ModelVersion.apply(updates, "model_version")
	upd.Timestamp.apply(updates, "timestamp")

	prediction, err := s.predictions.Update(ctx, id, updates)
	if err != nil {
		return nil, wrapNotFound(err, "prediction", id)
	}

	s.audit.Record(ctx, "update", "prediction", id, map[string]interface{}{"fields": columnNames(updates)})
	return prediction, nil
}

func (s *predictionService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.predictions.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.audit.Record(ctx, "delete", "prediction", id, nil)
	}
	return deleted, nil
}
