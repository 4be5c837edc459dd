package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

func newRobotService(robots *MockRobotRepository, telemetry *MockTelemetryRepository, events EventPublisher) RobotService {
	if events == nil {
		events = &capturePublisher{}
	}
	return NewRobotService(robots, telemetry, nopAudit{}, events, zap.NewNop())
}

func TestCreateRobot(t *testing.T) {
	mockRepo := new(MockRobotRepository)
	svc := newRobotService(mockRepo, new(MockTelemetryRepository), nil)
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Robot")).Return(nil).Once()

		robot, err := svc.Create(ctx, CreateRobotParams{Serial: "RX-100", Model: "hauler"})

		assert.NoError(t, err)
		assert.Equal(t, "RX-100", robot.Serial)
		assert.Equal(t, model.RobotStatusIdle, robot.Status)
		assert.NotNil(t, robot.Capabilities)
		assert.Empty(t, robot.Capabilities)
		assert.Empty(t, robot.Location)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ExplicitFields", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Robot")).Return(nil).Once()

		status := model.RobotStatusActive
		location := "bay 4"
		robot, err := svc.Create(ctx, CreateRobotParams{
			Serial:       "RX-101",
			Model:        "hauler",
			Capabilities: []string{"lifting"},
			Location:     &location,
			Status:       &status,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RobotStatusActive, robot.Status)
		assert.Equal(t, "bay 4", robot.Location)
		assert.Equal(t, []string{"lifting"}, []string(robot.Capabilities))
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateRobot(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("RejectsNullOnRequiredField", func(t *testing.T) {
		mockRepo := new(MockRobotRepository)
		svc := newRobotService(mockRepo, new(MockTelemetryRepository), nil)

		_, err := svc.Update(ctx, id, RobotUpdate{Serial: Null[string]()})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "serial")
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("OnlySetFieldsApplied", func(t *testing.T) {
		mockRepo := new(MockRobotRepository)
		svc := newRobotService(mockRepo, new(MockTelemetryRepository), nil)
		updated := &model.Robot{ID: id, Location: "bay 9"}
		mockRepo.On("Update", ctx, id, map[string]interface{}{"location": "bay 9"}).
			Return(updated, nil).Once()

		robot, err := svc.Update(ctx, id, RobotUpdate{Location: Value("bay 9")})

		assert.NoError(t, err)
		assert.Equal(t, "bay 9", robot.Location)
		mockRepo.AssertExpectations(t)
	})

	t.Run("StatusChangePublishes", func(t *testing.T) {
		mockRepo := new(MockRobotRepository)
		events := &capturePublisher{}
		svc := newRobotService(mockRepo, new(MockTelemetryRepository), events)
		updated := &model.Robot{ID: id, Status: model.RobotStatusMaintenance}
		mockRepo.On("Update", ctx, id, map[string]interface{}{"status": model.RobotStatusMaintenance}).
			Return(updated, nil).Once()

		_, err := svc.Update(ctx, id, RobotUpdate{Status: Value(model.RobotStatusMaintenance)})

		assert.NoError(t, err)
		assert.Equal(t, []string{"fleet/robots/" + id.String() + "/status"}, events.published())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRobotRepository)
		svc := newRobotService(mockRepo, new(MockTelemetryRepository), nil)
		mockRepo.On("Update", ctx, id, mock.Anything).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, id, RobotUpdate{Model: Value("hauler")})

		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestDeleteRobot(t *testing.T) {
	mockRepo := new(MockRobotRepository)
	svc := newRobotService(mockRepo, new(MockTelemetryRepository), nil)
	ctx := context.Background()
	id := uuid.New()

	t.Run("MissingIDIsFalseNotError", func(t *testing.T) {
		mockRepo.On("Delete", ctx, id).Return(false, nil).Once()

		deleted, err := svc.Delete(ctx, id)

		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("Deleted", func(t *testing.T) {
		mockRepo.On("Delete", ctx, id).Return(true, nil).Once()

		deleted, err := svc.Delete(ctx, id)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestRobotStatistics(t *testing.T) {
	mockRepo := new(MockRobotRepository)
	svc := newRobotService(mockRepo, new(MockTelemetryRepository), nil)
	ctx := context.Background()

	mockRepo.On("Count", ctx).Return(int64(3), nil).Once()
	mockRepo.On("CountByStatus", ctx).
		Return(map[model.RobotStatus]int{model.RobotStatusActive: 2, model.RobotStatusIdle: 1}, nil).Once()
	mockRepo.On("AverageTaskCount", ctx).Return(2.5, nil).Once()
	mockRepo.On("CountWithMaintenance", ctx).Return(int64(1), nil).Once()

	stats, err := svc.Statistics(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRobots)
	assert.Equal(t, 2.5, stats.AverageTasksPerRobot)
	assert.Equal(t, int64(1), stats.RobotsWithMaintenance)

	// every status key present, zero-filled
	assert.Len(t, stats.RobotsByStatus, len(model.RobotStatuses))
	assert.Equal(t, 2, stats.RobotsByStatus[model.RobotStatusActive])
	assert.Equal(t, 0, stats.RobotsByStatus[model.RobotStatusOffline])
	assert.Equal(t, 0, stats.RobotsByStatus[model.RobotStatusError])
	mockRepo.AssertExpectations(t)
}

func TestListWithMinTelemetry(t *testing.T) {
	mockRepo := new(MockRobotRepository)
	mockTelemetry := new(MockTelemetryRepository)
	svc := newRobotService(mockRepo, mockTelemetry, nil)
	ctx := context.Background()

	busy := model.Robot{ID: uuid.New()}
	quiet := model.Robot{ID: uuid.New()}
	mockRepo.On("List", ctx, repository.RobotFilter{}).Return([]model.Robot{busy, quiet}, nil).Once()
	mockTelemetry.On("CountByRobot", ctx).
		Return(map[uuid.UUID]int{busy.ID: 40, quiet.ID: 2}, nil).Once()

	robots, err := svc.ListWithMinTelemetry(ctx, 10)

	assert.NoError(t, err)
	assert.Len(t, robots, 1)
	assert.Equal(t, busy.ID, robots[0].ID)
}

func TestBulkUpdateStatus(t *testing.T) {
	mockRepo := new(MockRobotRepository)
	events := &capturePublisher{}
	svc := newRobotService(mockRepo, new(MockTelemetryRepository), events)
	ctx := context.Background()

	known := uuid.New()
	missing := uuid.New()
	ids := []uuid.UUID{known, missing}
	mockRepo.On("UpdateStatusBulk", ctx, ids, model.RobotStatusOffline).Return(nil).Once()
	mockRepo.On("ListByIDs", ctx, ids).
		Return([]model.Robot{{ID: known, Status: model.RobotStatusOffline}}, nil).Once()

	robots, err := svc.BulkUpdateStatus(ctx, ids, model.RobotStatusOffline)

	assert.NoError(t, err)
	// missing ids are skipped, not errors
	assert.Len(t, robots, 1)
	assert.Equal(t, known, robots[0].ID)
	assert.Len(t, events.published(), 1)
	mockRepo.AssertExpectations(t)
}
