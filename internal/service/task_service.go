package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

type CreateTaskParams struct {
	RequiredCapabilities []string
	Priority             *int
	Deadline             *time.Time
	AssignedRobotID      *uuid.UUID
	Status               *model.TaskStatus
}

// TaskUpdate is a partial update. Deadline and AssignedRobotID are
// nullable columns; an explicit null clears them.
type TaskUpdate struct {
	RequiredCapabilities Optional[[]string]
	Priority             Optional[int]
	Deadline             Optional[time.Time]
	AssignedRobotID      Optional[uuid.UUID]
	Status               Optional[model.TaskStatus]
}

type TaskService interface {
	List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	HighPriority(ctx context.Context, minPriority int) ([]model.Task, error)
	Overdue(ctx context.Context) ([]model.Task, error)
	ByUrgency(ctx context.Context, minScore float64) ([]model.Task, error)
	Create(ctx context.Context, params CreateTaskParams) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, upd TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	AssignByCapability(ctx context.Context, taskIDs []uuid.UUID) ([]model.Task, error)
}

type taskService struct {
	tasks  repository.TaskRepository
	robots repository.RobotRepository
	audit  AuditRecorder
	log    *zap.Logger
}

func NewTaskService(
	tasks repository.TaskRepository,
	robots repository.RobotRepository,
	audit AuditRecorder,
	log *zap.Logger,
) TaskService {
	return &taskService{tasks: tasks, robots: robots, audit: audit, log: log}
}

func (s *taskService) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.tasks.List(ctx, filter)
}

func (s *taskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "task", id)
	}
	return task, nil
}

func (s *taskService) HighPriority(ctx context.Context, minPriority int) ([]model.Task, error) {
	return s.tasks.ListHighPriority(ctx, minPriority)
}

func (s *taskService) Overdue(ctx context.Context) ([]model.Task, error) {
	return s.tasks.ListOverdue(ctx, time.Now())
}

func (s *taskService) ByUrgency(ctx context.Context, minScore float64) ([]model.Task, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankByUrgency(tasks, minScore, time.Now()), nil
}

func (s *taskService) Create(ctx context.Context, params CreateTaskParams) (*model.Task, error) {
	// Resolve the robot before any write so a bad reference never
	// leaves a half-created task behind.
	if params.AssignedRobotID != nil {
		if _, err := s.robots.GetByID(ctx, *params.AssignedRobotID); err != nil {
			return nil, wrapNotFound(err, "robot", *params.AssignedRobotID)
		}
	}

	task := &model.Task{
		RequiredCapabilities: datatypes.NewJSONSlice(params.RequiredCapabilities),
		Status:               model.TaskStatusPending,
		AssignedRobotID:      params.AssignedRobotID,
		Deadline:             params.Deadline,
	}
	if params.RequiredCapabilities == nil {
		task.RequiredCapabilities = datatypes.NewJSONSlice([]string{})
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.Status != nil {
		task.Status = *params.Status
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "create", "task", task.ID, map[string]interface{}{"priority": task.Priority})
	return s.Get(ctx, task.ID)
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, upd TaskUpdate) (*model.Task, error) {
	for name, field := range map[string]interface{ IsNull() bool }{
		"requiredCapabilities": upd.RequiredCapabilities,
		"priority":             upd.Priority,
		"status":               upd.Status,
	} {
		if field.IsNull() {
			return nil, fmt.Errorf("field %s cannot be null", name)
		}
	}

	if robotID, ok := upd.AssignedRobotID.Get(); ok {
		if _, err := s.robots.GetByID(ctx, robotID); err != nil {
			return nil, wrapNotFound(err, "robot", robotID)
		}
	}

	updates := map[string]interface{}{}
	upd.Priority.apply(updates, "priority")
	upd.Status.apply(updates, "status")
	upd.Deadline.apply(updates, "deadline")
	upd.AssignedRobotID.apply(updates, "assigned_robot_id")
	if caps, ok := upd.RequiredCapabilities.Get(); ok {
		updates["required_capabilities"] = datatypes.NewJSONSlice(caps)
	}

	task, err := s.tasks.Update(ctx, id, updates)
	if err != nil {
		return nil, wrapNotFound(err, "task", id)
	}

	s.audit.Record(ctx, "update", "task", id, map[string]interface{}{"fields": columnNames(updates)})
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.audit.Record(ctx, "delete", "task", id, nil)
	}
	return deleted, nil
}

// AssignByCapability matches each pending task among the given ids to
// the least-loaded IDLE/ACTIVE robot holding every required
// capability. Tasks with no eligible robot are returned unchanged.
func (s *taskService) AssignByCapability(ctx context.Context, taskIDs []uuid.UUID) ([]model.Task, error) {
	tasks, err := s.tasks.ListPendingByIDs(ctx, taskIDs)
	if err != nil {
		return nil, err
	}

	available, err := s.robots.ListByStatuses(ctx, []model.RobotStatus{
		model.RobotStatusIdle,
		model.RobotStatusActive,
	})
	if err != nil {
		return nil, err
	}

	openCounts, err := s.tasks.CountOpenByRobot(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		task := &tasks[i]
		candidates := MatchingRobots(available, task.RequiredCapabilities)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		for _, robot := range candidates[1:] {
			if openCounts[robot.ID] < openCounts[best.ID] {
				best = robot
			}
		}

		task.AssignedRobotID = &best.ID
		task.Status = model.TaskStatusAssigned
		if err := s.tasks.Save(ctx, task); err != nil {
			return nil, err
		}
		openCounts[best.ID]++

		s.audit.Record(ctx, "assign", "task", task.ID, map[string]interface{}{"robotId": best.ID.String()})
	}
	return tasks, nil
}
