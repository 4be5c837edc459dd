package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

// TaskFilter carries the optional predicates of the tasks query.
// PriorityMin/PriorityMax/HasDeadline are pointers so that zero and
// false still count as provided.
type TaskFilter struct {
	Status      *model.TaskStatus
	PriorityMin *int
	PriorityMax *int
	RobotID     *uuid.UUID
	HasDeadline *bool
}

type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	ListAll(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListHighPriority(ctx context.Context, minPriority int) ([]model.Task, error)
	ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error)
	ListPendingByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Task, error)
	CountOpenByRobot(ctx context.Context) (map[uuid.UUID]int, error)
	Create(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// defaultTaskOrder mirrors the dashboard ordering: most important
// first, then earliest deadline, then oldest.
const defaultTaskOrder = "priority DESC, deadline ASC NULLS LAST, created_at ASC"

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Preload("AssignedRobot")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.PriorityMin != nil {
		q = q.Where("priority >= ?", *filter.PriorityMin)
	}
	if filter.PriorityMax != nil {
		q = q.Where("priority <= ?", *filter.PriorityMax)
	}
	if filter.RobotID != nil {
		q = q.Where("assigned_robot_id = ?", *filter.RobotID)
	}
	if filter.HasDeadline != nil {
		if *filter.HasDeadline {
			q = q.Where("deadline IS NOT NULL")
		} else {
			q = q.Where("deadline IS NULL")
		}
	}

	var tasks []model.Task
	if err := q.Order(defaultTaskOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedRobot").
		Order(defaultTaskOrder).
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("AssignedRobot").First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListHighPriority(ctx context.Context, minPriority int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedRobot").
		Where("priority >= ?", minPriority).
		Order("priority DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("AssignedRobot").
		Where("deadline < ? AND status IN ?", now, model.OpenTaskStatuses).
		Order("deadline ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListPendingByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, model.TaskStatusPending).
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) CountOpenByRobot(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		AssignedRobotID uuid.UUID
		Count           int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select("assigned_robot_id, COUNT(*) AS count").
		Where("assigned_robot_id IS NOT NULL AND status IN ?", model.OpenTaskStatuses).
		Group("assigned_robot_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.AssignedRobotID] = row.Count
	}
	return counts, nil
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Preload("AssignedRobot").First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
