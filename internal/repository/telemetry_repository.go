package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

// TelemetryFilter is shared by the point listing and the statistics
// aggregation so both operate on exactly the same set.
type TelemetryFilter struct {
	RobotID    *uuid.UUID
	MetricName *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TelemetryStats is the aggregate over a filtered telemetry set.
// Repositories return nil instead of a zero-filled struct when the
// set is empty.
type TelemetryStats struct {
	Count           int64
	AverageValue    float64
	MinValue        float64
	MaxValue        float64
	LatestTimestamp time.Time
}

type TelemetryRepository interface {
	List(ctx context.Context, filter TelemetryFilter, limit int) ([]model.TelemetryPoint, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.TelemetryPoint, error)
	Stats(ctx context.Context, filter TelemetryFilter) (*TelemetryStats, error)
	ListByMetric(ctx context.Context, metricName string, robotID *uuid.UUID) ([]model.TelemetryPoint, error)
	CountByRobot(ctx context.Context) (map[uuid.UUID]int, error)
	Create(ctx context.Context, point *model.TelemetryPoint) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.TelemetryPoint, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time, metricNames []string) (int64, error)
}

type telemetryRepository struct {
	db *gorm.DB
}

func NewTelemetryRepository(db *gorm.DB) TelemetryRepository {
	return &telemetryRepository{db: db}
}

func (r *telemetryRepository) filtered(ctx context.Context, filter TelemetryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.TelemetryPoint{})
	if filter.RobotID != nil {
		q = q.Where("robot_id = ?", *filter.RobotID)
	}
	if filter.MetricName != nil {
		q = q.Where("metric_name = ?", *filter.MetricName)
	}
	if filter.StartDate != nil {
		q = q.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("timestamp <= ?", *filter.EndDate)
	}
	return q
}

func (r *telemetryRepository) List(ctx context.Context, filter TelemetryFilter, limit int) ([]model.TelemetryPoint, error) {
	var points []model.TelemetryPoint
	q := r.filtered(ctx, filter).Preload("Robot").Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *telemetryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TelemetryPoint, error) {
	var point model.TelemetryPoint
	if err := r.db.WithContext(ctx).Preload("Robot").First(&point, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *telemetryRepository) Stats(ctx context.Context, filter TelemetryFilter) (*TelemetryStats, error) {
	var row struct {
		Count  int64
		Avg    float64
		Min    float64
		Max    float64
		Latest time.Time
	}
	err := r.filtered(ctx, filter).
		Select("COUNT(*) AS count, COALESCE(AVG(metric_value), 0) AS avg, COALESCE(MIN(metric_value), 0) AS min, COALESCE(MAX(metric_value), 0) AS max, COALESCE(MAX(timestamp), 'epoch'::timestamptz) AS latest").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.Count == 0 {
		return nil, nil
	}
	return &TelemetryStats{
		Count:           row.Count,
		AverageValue:    row.Avg,
		MinValue:        row.Min,
		MaxValue:        row.Max,
		LatestTimestamp: row.Latest,
	}, nil
}

func (r *telemetryRepository) ListByMetric(ctx context.Context, metricName string, robotID *uuid.UUID) ([]model.TelemetryPoint, error) {
	q := r.db.WithContext(ctx).Preload("Robot").Where("metric_name = ?", metricName)
	if robotID != nil {
		q = q.Where("robot_id = ?", *robotID)
	}
	var points []model.TelemetryPoint
	err := q.Order("timestamp DESC").Find(&points).Error
	return points, err
}

func (r *telemetryRepository) CountByRobot(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		RobotID uuid.UUID
		Count   int
	}
	err := r.db.WithContext(ctx).
		Model(&model.TelemetryPoint{}).
		Select("robot_id, COUNT(*) AS count").
		Group("robot_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.RobotID] = row.Count
	}
	return counts, nil
}

func (r *telemetryRepository) Create(ctx context.Context, point *model.TelemetryPoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *telemetryRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.TelemetryPoint, error) {
	var point model.TelemetryPoint
	if err := r.db.WithContext(ctx).First(&point, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&point).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Preload("Robot").First(&point, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *telemetryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.TelemetryPoint{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *telemetryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, metricNames []string) (int64, error) {
	q := r.db.WithContext(ctx).Where("timestamp < ?", cutoff)
	if len(metricNames) > 0 {
		q = q.Where("metric_name IN ?", metricNames)
	}
	res := q.Delete(&model.TelemetryPoint{})
	return res.RowsAffected, res.Error
}
