package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
	"github.com/fleetops/fleet-api/internal/service"
)

type MockRobotService struct {
	mock.Mock
}

func (m *MockRobotService) List(ctx context.Context, filter repository.RobotFilter) ([]model.Robot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotService) Get(ctx context.Context, id uuid.UUID) (*model.Robot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotService) GetBySerial(ctx context.Context, serial string) (*model.Robot, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotService) Search(ctx context.Context, term string) ([]model.Robot, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotService) ListByCapability(ctx context.Context, capability string) ([]model.Robot, error) {
	args := m.Called(ctx, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotService) ListWithMinTelemetry(ctx context.Context, minPoints int) ([]model.Robot, error) {
	args := m.Called(ctx, minPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotService) SortedByCapabilityCount(ctx context.Context, reverse bool) ([]model.Robot, error) {
	args := m.Called(ctx, reverse)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotService) ListActiveWithin(ctx context.Context, hours int) ([]model.Robot, error) {
	args := m.Called(ctx, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

func (m *MockRobotService) Statistics(ctx context.Context) (*service.RobotStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RobotStatistics), args.Error(1)
}

func (m *MockRobotService) Create(ctx context.Context, params service.CreateRobotParams) (*model.Robot, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotService) Update(ctx context.Context, id uuid.UUID, upd service.RobotUpdate) (*model.Robot, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Robot), args.Error(1)
}

func (m *MockRobotService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRobotService) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status model.RobotStatus) ([]model.Robot, error) {
	args := m.Called(ctx, ids, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Robot), args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) HighPriority(ctx context.Context, minPriority int) ([]model.Task, error) {
	args := m.Called(ctx, minPriority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Overdue(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) ByUrgency(ctx context.Context, minScore float64) ([]model.Task, error) {
	args := m.Called(ctx, minScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, params service.CreateTaskParams) (*model.Task, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, upd service.TaskUpdate) (*model.Task, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskService) AssignByCapability(ctx context.Context, taskIDs []uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, taskIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

type MockTelemetryService struct {
	mock.Mock
}

func (m *MockTelemetryService) List(ctx context.Context, filter repository.TelemetryFilter, limit *int) ([]model.TelemetryPoint, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryService) Get(ctx context.Context, id uuid.UUID) (*model.TelemetryPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryService) Statistics(ctx context.Context, filter repository.TelemetryFilter) (*repository.TelemetryStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TelemetryStats), args.Error(1)
}

func (m *MockTelemetryService) Anomalies(ctx context.Context, robotID *uuid.UUID, metricName string, thresholdMultiplier float64) ([]model.TelemetryPoint, error) {
	args := m.Called(ctx, robotID, metricName, thresholdMultiplier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryService) Create(ctx context.Context, params service.CreateTelemetryParams) (*model.TelemetryPoint, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryService) Update(ctx context.Context, id uuid.UUID, upd service.TelemetryUpdate) (*model.TelemetryPoint, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TelemetryPoint), args.Error(1)
}

func (m *MockTelemetryService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTelemetryService) Cleanup(ctx context.Context, daysToKeep int, metricNames []string) (int64, error) {
	args := m.Called(ctx, daysToKeep, metricNames)
	return args.Get(0).(int64), args.Error(1)
}

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) List(ctx context.Context, filter repository.MaintenanceFilter) ([]model.MaintenanceEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MaintenanceEvent), args.Error(1)
}

func (m *MockMaintenanceService) Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaintenanceEvent), args.Error(1)
}

func (m *MockMaintenanceService) Create(ctx context.Context, params service.CreateMaintenanceParams) (*model.MaintenanceEvent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaintenanceEvent), args.Error(1)
}

func (m *MockMaintenanceService) Update(ctx context.Context, id uuid.UUID, upd service.MaintenanceUpdate) (*model.MaintenanceEvent, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaintenanceEvent), args.Error(1)
}

func (m *MockMaintenanceService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) List(ctx context.Context, filter repository.PredictionFilter) ([]model.Prediction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Prediction), args.Error(1)
}

func (m *MockPredictionService) Get(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prediction), args.Error(1)
}

func (m *MockPredictionService) Create(ctx context.Context, params service.CreatePredictionParams) (*model.Prediction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prediction), args.Error(1)
}

func (m *MockPredictionService) Update(ctx context.Context, id uuid.UUID, upd service.PredictionUpdate) (*model.Prediction, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prediction), args.Error(1)
}

func (m *MockPredictionService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, role *model.UserRole) ([]model.UserProfile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProfile), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, params service.CreateUserParams) (*model.UserProfile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

type testServices struct {
	robots      *MockRobotService
	tasks       *MockTaskService
	telemetry   *MockTelemetryService
	maintenance *MockMaintenanceService
	predictions *MockPredictionService
	users       *MockUserService
}

func newTestServices() (*Services, *testServices) {
	mocks := &testServices{
		robots:      new(MockRobotService),
		tasks:       new(MockTaskService),
		telemetry:   new(MockTelemetryService),
		maintenance: new(MockMaintenanceService),
		predictions: new(MockPredictionService),
		users:       new(MockUserService),
	}
	return &Services{
		Robots:      mocks.robots,
		Tasks:       mocks.tasks,
		Telemetry:   mocks.telemetry,
		Maintenance: mocks.maintenance,
		Predictions: mocks.predictions,
		Users:       mocks.users,
	}, mocks
}
