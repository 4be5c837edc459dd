package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

// DefaultTelemetryLimit truncates telemetry listings when the caller
// does not ask for a specific page size.
const DefaultTelemetryLimit = 100

type CreateTelemetryParams struct {
	RobotID     uuid.UUID
	MetricName  string
	MetricValue float64
	Timestamp   *time.Time
	Metadata    interface{}
}

type TelemetryUpdate struct {
	MetricName  Optional[string]
	MetricValue Optional[float64]
	Timestamp   Optional[time.Time]
	Metadata    Optional[interface{}]
}

type TelemetryService interface {
	List(ctx context.Context, filter repository.TelemetryFilter, limit *int) ([]model.TelemetryPoint, error)
	Get(ctx context.Context, id uuid.UUID) (*model.TelemetryPoint, error)
	Statistics(ctx context.Context, filter repository.TelemetryFilter) (*repository.TelemetryStats, error)
	Anomalies(ctx context.Context, robotID *uuid.UUID, metricName string, thresholdMultiplier float64) ([]model.TelemetryPoint, error)
	Create(ctx context.Context, params CreateTelemetryParams) (*model.TelemetryPoint, error)
	Update(ctx context.Context, id uuid.UUID, upd TelemetryUpdate) (*model.TelemetryPoint, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Cleanup(ctx context.Context, daysToKeep int, metricNames []string) (int64, error)
}

type telemetryService struct {
	telemetry repository.TelemetryRepository
	robots    repository.RobotRepository
	audit     AuditRecorder
	events    EventPublisher
	log       *zap.Logger
}

func NewTelemetryService(
	telemetry repository.TelemetryRepository,
	robots repository.RobotRepository,
	audit AuditRecorder,
	events EventPublisher,
	log *zap.Logger,
) TelemetryService {
	return &telemetryService{telemetry: telemetry, robots: robots, audit: audit, events: events, log: log}
}

func (s *telemetryService) List(ctx context.Context, filter repository.TelemetryFilter, limit *int) ([]model.TelemetryPoint, error) {
	n := DefaultTelemetryLimit
	if limit != nil {
		n = *limit
	}
	return s.telemetry.List(ctx, filter, n)
}

func (s *telemetryService) Get(ctx context.Context, id uuid.UUID) (*model.TelemetryPoint, error) {
	point, err := s.telemetry.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "telemetry point", id)
	}
	return point, nil
}

// Statistics returns nil on an empty filtered set, never a zero-filled
// aggregate.
func (s *telemetryService) Statistics(ctx context.Context, filter repository.TelemetryFilter) (*repository.TelemetryStats, error) {
	return s.telemetry.Stats(ctx, filter)
}

func (s *telemetryService) Anomalies(ctx context.Context, robotID *uuid.UUID, metricName string, thresholdMultiplier float64) ([]model.TelemetryPoint, error) {
	points, err := s.telemetry.ListByMetric(ctx, metricName, robotID)
	if err != nil {
		return nil, err
	}
	return FilterAnomalies(points, thresholdMultiplier), nil
}

func (s *telemetryService) Create(ctx context.Context, params CreateTelemetryParams) (*model.TelemetryPoint, error) {
	if _, err := s.robots.GetByID(ctx, params.RobotID); err != nil {
		return nil, wrapNotFound(err, "robot", params.RobotID)
	}

	ts := time.Now()
	if params.Timestamp != nil {
		ts = *params.Timestamp
	}

	metadata := datatypes.JSON([]byte("{}"))
	if params.Metadata != nil {
		b, err := json.Marshal(params.Metadata)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
		metadata = b
	}

	point := &model.TelemetryPoint{
		RobotID:     params.RobotID,
		Timestamp:   ts,
		MetricName:  params.MetricName,
		MetricValue: params.MetricValue,
		Metadata:    metadata,
	}
	if err := s.telemetry.Create(ctx, point); err != nil {
		return nil, err
	}

	topic := fmt.Sprintf("fleet/telemetry/%s", params.RobotID)
	if err := s.events.Publish(topic, point); err != nil {
		s.log.Warn("telemetry publish failed", zap.String("robot_id", params.RobotID.String()), zap.Error(err))
	}

	s.audit.Record(ctx, "create", "telemetry_point", point.ID, map[string]interface{}{"metricName": point.MetricName})
	return s.Get(ctx, point.ID)
}

func (s *telemetryService) Update(ctx context.Context, id uuid.UUID, upd TelemetryUpdate) (*model.TelemetryPoint, error) {
	for name, field := range map[string]interface{ IsNull() bool }{
		"metricName":  upd.MetricName,
		"metricValue": upd.MetricValue,
		"timestamp":   upd.Timestamp,
	} {
		if field.IsNull() {
			return nil, fmt.Errorf("field %s cannot be null", name)
		}
	}

	updates := map[string]interface{}{}
	upd.MetricName.apply(updates, "metric_name")
	upd.MetricValue.apply(updates, "metric_value")
	upd.Timestamp.apply(updates, "timestamp")
	if upd.Metadata.IsNull() {
		updates["metadata"] = nil
	} else if md, ok := upd.Metadata.Get(); ok {
		b, err := json.Marshal(md)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
		updates["metadata"] = datatypes.JSON(b)
	}

	point, err := s.telemetry.Update(ctx, id, updates)
	if err != nil {
		return nil, wrapNotFound(err, "telemetry point", id)
	}

	s.audit.Record(ctx, "update", "telemetry_point", id, map[string]interface{}{"fields": columnNames(updates)})
	return point, nil
}

func (s *telemetryService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.telemetry.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.audit.Record(ctx, "delete", "telemetry_point", id, nil)
	}
	return deleted, nil
}

func (s *telemetryService) Cleanup(ctx context.Context, daysToKeep int, metricNames []string) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	deleted, err := s.telemetry.DeleteOlderThan(ctx, cutoff, metricNames)
	if err != nil {
		return 0, err
	}
	s.log.Info("telemetry cleanup",
		zap.Int64("deleted", deleted),
		zap.Int("days_to_keep", daysToKeep),
		zap.Strings("metric_names", metricNames))
	return deleted, nil
}
