package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

type MockRobotRepository struct {
	mock.Mock
}

func (m *MockRobotRepository) List(ctx context.Context, filter repository.RobotFilter) ([]model.Robot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Robot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotRepository) GetBySerial(ctx context.Context, serial string) (*model.Robot, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotRepository) ListByCapability(ctx context.Context, capability string) ([]model.Robot, error) {
	args := m.Called(ctx, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotRepository) ListByStatuses(ctx context.Context, statuses []model.RobotStatus) ([]model.Robot, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Robot, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotRepository) Search(ctx context.Context, term string) ([]model.Robot, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotRepository) ListActiveSince(ctx context.Context, cutoff time.Time) ([]model.Robot, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotRepository) Create(ctx context.Context, robot *model.Robot) error {
	args := m.Called(ctx, robot)
	return args.Error(0)
}

func (m *MockRobotRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Robot, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotRepository) UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status model.RobotStatus) error {
	args := m.Called(ctx, ids, status)
	return args.Error(0)
}

func (m *MockRobotRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRobotRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRobotRepository) CountByStatus(ctx context.Context) (map[model.RobotStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.RobotStatus]int), args.Error(1)
}

func (m *MockRobotRepository) AverageTaskCount(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRobotRepository) CountWithMaintenance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListHighPriority(ctx context.Context, minPriority int) ([]model.Task, error) {
	args := m.Called(ctx, minPriority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListPendingByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) CountOpenByRobot(ctx context.Context) (map[uuid.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.Task, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockTelemetryRepository struct {
	mock.Mock
}

func (m *MockTelemetryRepository) List(ctx context.Context, filter repository.TelemetryFilter, limit int) ([]model.TelemetryPoint, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TelemetryPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryRepository) Stats(ctx context.Context, filter repository.TelemetryFilter) (*repository.TelemetryStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TelemetryStats), args.Error(1)
}

func (m *MockTelemetryRepository) ListByMetric(ctx context.Context, metricName string, robotID *uuid.UUID) ([]model.TelemetryPoint, error) {
	args := m.Called(ctx, metricName, robotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryRepository) CountByRobot(ctx context.Context) (map[uuid.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *MockTelemetryRepository) Create(ctx context.Context, point *model.TelemetryPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockTelemetryRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.TelemetryPoint, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTelemetryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, metricNames []string) (int64, error) {
	args := m.Called(ctx, cutoff, metricNames)
	return args.Get(0).(int64), args.Error(1)
}

// nopAudit satisfies AuditRecorder for services under test.
type nopAudit struct{}

func (nopAudit) Record(ctx context.Context, action, targetType string, targetID uuid.UUID, details map[string]interface{}) {
}

// capturePublisher records every published event so tests can assert
// topics and payloads.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturePublisher) Publish(topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *capturePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}
