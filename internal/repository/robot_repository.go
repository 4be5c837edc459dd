package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

// RobotFilter carries the optional predicates of the robots query.
// Nil fields impose no constraint; present fields are ANDed.
type RobotFilter struct {
	Model    *string
	Status   *model.RobotStatus
	Location *string
	Serial   *string
}

type RobotRepository interface {
	List(ctx context.Context, filter RobotFilter) ([]model.Robot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Robot, error)
	GetBySerial(ctx context.Context, serial string) (*model.Robot, error)
	ListByCapability(ctx context.Context, capability string) ([]model.Robot, error)
	ListByStatuses(ctx context.Context, statuses []model.RobotStatus) ([]model.Robot, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Robot, error)
	Search(ctx context.Context, term string) ([]model.Robot, error)
	ListActiveSince(ctx context.Context, cutoff time.Time) ([]model.Robot, error)
	Create(ctx context.Context, robot *model.Robot) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Robot, error)
	UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status model.RobotStatus) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[model.RobotStatus]int, error)
	AverageTaskCount(ctx context.Context) (float64, error)
	CountWithMaintenance(ctx context.Context) (int64, error)
}

type robotRepository struct {
	db *gorm.DB
}

func NewRobotRepository(db *gorm.DB) RobotRepository {
	return &robotRepository{db: db}
}

func (r *robotRepository) List(ctx context.Context, filter RobotFilter) ([]model.Robot, error) {
	q := r.db.WithContext(ctx)
	if filter.Model != nil {
		q = q.Where("model ILIKE ?", "%"+*filter.Model+"%")
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Location != nil {
		q = q.Where("location ILIKE ?", "%"+*filter.Location+"%")
	}
	if filter.Serial != nil {
		q = q.Where("serial ILIKE ?", "%"+*filter.Serial+"%")
	}

	var robots []model.Robot
	if err := q.Order("serial ASC").Find(&robots).Error; err != nil {
		return nil, err
	}
	return robots, nil
}

func (r *robotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Robot, error) {
	var robot model.Robot
	if err := r.db.WithContext(ctx).First(&robot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &robot, nil
}

func (r *robotRepository) GetBySerial(ctx context.Context, serial string) (*model.Robot, error) {
	var robot model.Robot
	if err := r.db.WithContext(ctx).First(&robot, "serial = ?", serial).Error; err != nil {
		return nil, err
	}
	return &robot, nil
}

func (r *robotRepository) ListByCapability(ctx context.Context, capability string) ([]model.Robot, error) {
	var robots []model.Robot
	err := r.db.WithContext(ctx).
		Where("capabilities @> ?", datatypes.NewJSONSlice([]string{capability})).
		Order("serial ASC").
		Find(&robots).Error
	return robots, err
}

func (r *robotRepository) ListByStatuses(ctx context.Context, statuses []model.RobotStatus) ([]model.Robot, error) {
	var robots []model.Robot
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("serial ASC").
		Find(&robots).Error
	return robots, err
}

func (r *robotRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Robot, error) {
	var robots []model.Robot
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("serial ASC").
		Find(&robots).Error
	return robots, err
}

func (r *robotRepository) Search(ctx context.Context, term string) ([]model.Robot, error) {
	pattern := "%" + term + "%"
	var robots []model.Robot
	err := r.db.WithContext(ctx).
		Where("serial ILIKE ? OR model ILIKE ? OR location ILIKE ?", pattern, pattern, pattern).
		Order("serial ASC").
		Find(&robots).Error
	return robots, err
}

func (r *robotRepository) ListActiveSince(ctx context.Context, cutoff time.Time) ([]model.Robot, error) {
	var robots []model.Robot
	err := r.db.WithContext(ctx).
		Where(`last_seen >= @cutoff
			OR EXISTS (SELECT 1 FROM telemetry_points tp WHERE tp.robot_id = robots.id AND tp.timestamp >= @cutoff)
			OR EXISTS (SELECT 1 FROM tasks t WHERE t.assigned_robot_id = robots.id AND t.created_at >= @cutoff)`,
			sql.Named("cutoff", cutoff)).
		Order("serial ASC").
		Find(&robots).Error
	return robots, err
}

func (r *robotRepository) Create(ctx context.Context, robot *model.Robot) error {
	return r.db.WithContext(ctx).Create(robot).Error
}

func (r *robotRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Robot, error) {
	var robot model.Robot
	if err := r.db.WithContext(ctx).First(&robot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&robot).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).First(&robot, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}
	return &robot, nil
}

func (r *robotRepository) UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status model.RobotStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Robot{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

func (r *robotRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Robot{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *robotRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Robot{}).Count(&n).Error
	return n, err
}

func (r *robotRepository) CountByStatus(ctx context.Context) (map[model.RobotStatus]int, error) {
	var rows []struct {
		Status model.RobotStatus
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Robot{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.RobotStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// AverageTaskCount averages assigned-task counts over robots that have
// at least one task. Robots without tasks do not drag the average down.
func (r *robotRepository) AverageTaskCount(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Raw(`SELECT AVG(task_count) FROM (
			SELECT COUNT(*) AS task_count FROM tasks
			WHERE assigned_robot_id IS NOT NULL
			GROUP BY assigned_robot_id
		) per_robot`).
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *robotRepository) CountWithMaintenance(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceEvent{}).
		Distinct("robot_id").
		Count(&n).Error
	return n, err
}
