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

type CreateRobotParams struct {
	Serial          string
	Model           string
	Capabilities    []string
	Location        *string
	Status          *model.RobotStatus
	FirmwareVersion *string
}

// RobotUpdate is a partial update: only set fields are written.
// LastSeen is the sole nullable column, so it alone honors an explicit
// null as "clear".
type RobotUpdate struct {
	Serial          Optional[string]
	Model           Optional[string]
	Capabilities    Optional[[]string]
	Location        Optional[string]
	Status          Optional[model.RobotStatus]
	FirmwareVersion Optional[string]
	LastSeen        Optional[time.Time]
}

// RobotStatistics aggregates the fleet overview. RobotsByStatus holds
// every status key, zero-filled.
type RobotStatistics struct {
	TotalRobots           int64
	RobotsByStatus        map[model.RobotStatus]int
	AverageTasksPerRobot  float64
	RobotsWithMaintenance int64
}

type RobotService interface {
	List(ctx context.Context, filter repository.RobotFilter) ([]model.Robot, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Robot, error)
	GetBySerial(ctx context.Context, serial string) (*model.Robot, error)
	Search(ctx context.Context, term string) ([]model.Robot, error)
	ListByCapability(ctx context.Context, capability string) ([]model.Robot, error)
	ListWithMinTelemetry(ctx context.Context, minPoints int) ([]model.Robot, error)
	SortedByCapabilityCount(ctx context.Context, reverse bool) ([]model.Robot, error)
	ListActiveWithin(ctx context.Context, hours int) ([]model.Robot, error)
	Statistics(ctx context.Context) (*RobotStatistics, error)
	Create(ctx context.Context, params CreateRobotParams) (*model.Robot, error)
	Update(ctx context.Context, id uuid.UUID, upd RobotUpdate) (*model.Robot, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status model.RobotStatus) ([]model.Robot, error)
}

type robotService struct {
	robots    repository.RobotRepository
	telemetry repository.TelemetryRepository
	audit     AuditRecorder
	events    EventPublisher
	log       *zap.Logger
}

func NewRobotService(
	robots repository.RobotRepository,
	telemetry repository.TelemetryRepository,
	audit AuditRecorder,
	events EventPublisher,
	log *zap.Logger,
) RobotService {
	return &robotService{robots: robots, telemetry: telemetry, audit: audit, events: events, log: log}
}

func (s *robotService) List(ctx context.Context, filter repository.RobotFilter) ([]model.Robot, error) {
	return s.robots.List(ctx, filter)
}

func (s *robotService) Get(ctx context.Context, id uuid.UUID) (*model.Robot, error) {
	robot, err := s.robots.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "robot", id)
	}
	return robot, nil
}

func (s *robotService) GetBySerial(ctx context.Context, serial string) (*model.Robot, error) {
	robot, err := s.robots.GetBySerial(ctx, serial)
	if err != nil {
		return nil, wrapNotFound(err, "robot", serial)
	}
	return robot, nil
}

func (s *robotService) Search(ctx context.Context, term string) ([]model.Robot, error) {
	return s.robots.Search(ctx, term)
}

func (s *robotService) ListByCapability(ctx context.Context, capability string) ([]model.Robot, error) {
	return s.robots.ListByCapability(ctx, capability)
}

func (s *robotService) ListWithMinTelemetry(ctx context.Context, minPoints int) ([]model.Robot, error) {
	robots, err := s.robots.List(ctx, repository.RobotFilter{})
	if err != nil {
		return nil, err
	}
	counts, err := s.telemetry.CountByRobot(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByTelemetryCount(robots, counts, minPoints), nil
}

func (s *robotService) SortedByCapabilityCount(ctx context.Context, reverse bool) ([]model.Robot, error) {
	robots, err := s.robots.List(ctx, repository.RobotFilter{})
	if err != nil {
		return nil, err
	}
	return SortByCapabilityCount(robots, reverse), nil
}

func (s *robotService) ListActiveWithin(ctx context.Context, hours int) ([]model.Robot, error) {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	return s.robots.ListActiveSince(ctx, cutoff)
}

func (s *robotService) Statistics(ctx context.Context) (*RobotStatistics, error) {
	total, err := s.robots.Count(ctx)
	if err != nil {
		return nil, err
	}

	counted, err := s.robots.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[model.RobotStatus]int, len(model.RobotStatuses))
	for _, status := range model.RobotStatuses {
		byStatus[status] = counted[status]
	}

	avgTasks, err := s.robots.AverageTaskCount(ctx)
	if err != nil {
		return nil, err
	}

	withMaintenance, err := s.robots.CountWithMaintenance(ctx)
	if err != nil {
		return nil, err
	}

	return &RobotStatistics{
		TotalRobots:           total,
		RobotsByStatus:        byStatus,
		AverageTasksPerRobot:  avgTasks,
		RobotsWithMaintenance: withMaintenance,
	}, nil
}

func (s *robotService) Create(ctx context.Context, params CreateRobotParams) (*model.Robot, error) {
	robot := &model.Robot{
		Serial:       params.Serial,
		Model:        params.Model,
		Capabilities: datatypes.NewJSONSlice([]string{}),
		Status:       model.RobotStatusIdle,
	}
	if params.Capabilities != nil {
		robot.Capabilities = datatypes.NewJSONSlice(params.Capabilities)
	}
	if params.Location != nil {
		robot.Location = *params.Location
	}
	if params.Status != nil {
		robot.Status = *params.Status
	}
	if params.FirmwareVersion != nil {
		robot.FirmwareVersion = *params.FirmwareVersion
	}

	if err := s.robots.Create(ctx, robot); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "create", "robot", robot.ID, map[string]interface{}{"serial": robot.Serial})
	return robot, nil
}

func (s *robotService) Update(ctx context.Context, id uuid.UUID, upd RobotUpdate) (*model.Robot, error) {
	for name, field := range map[string]interface{ IsNull() bool }{
		"serial":          upd.Serial,
		"model":           upd.Model,
		"capabilities":    upd.Capabilities,
		"location":        upd.Location,
		"status":          upd.Status,
		"firmwareVersion": upd.FirmwareVersion,
	} {
		if field.IsNull() {
			return nil, fmt.Errorf("field %s cannot be null", name)
		}
	}

	updates := map[string]interface{}{}
	upd.Serial.apply(updates, "serial")
	upd.Model.apply(updates, "model")
	upd.Location.apply(updates, "location")
	upd.Status.apply(updates, "status")
	upd.FirmwareVersion.apply(updates, "firmware_version")
	upd.LastSeen.apply(updates, "last_seen")
	if caps, ok := upd.Capabilities.Get(); ok {
		updates["capabilities"] = datatypes.NewJSONSlice(caps)
	}

	robot, err := s.robots.Update(ctx, id, updates)
	if err != nil {
		return nil, wrapNotFound(err, "robot", id)
	}

	if status, ok := upd.Status.Get(); ok {
		s.publishStatus(robot.ID, status)
	}
	s.audit.Record(ctx, "update", "robot", id, map[string]interface{}{"fields": columnNames(updates)})
	return robot, nil
}

func (s *robotService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.robots.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.audit.Record(ctx, "delete", "robot", id, nil)
	}
	return deleted, nil
}

func (s *robotService) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status model.RobotStatus) ([]model.Robot, error) {
	if err := s.robots.UpdateStatusBulk(ctx, ids, status); err != nil {
		return nil, err
	}

	robots, err := s.robots.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, robot := range robots {
		s.publishStatus(robot.ID, status)
		s.audit.Record(ctx, "update_status", "robot", robot.ID, map[string]interface{}{"status": string(status)})
	}
	return robots, nil
}

func (s *robotService) publishStatus(id uuid.UUID, status model.RobotStatus) {
	topic := fmt.Sprintf("fleet/robots/%s/status", id)
	payload := map[string]string{"robotId": id.String(), "status": string(status)}
	if err := s.events.Publish(topic, payload); err != nil {
		s.log.Warn("status publish failed", zap.String("robot_id", id.String()), zap.Error(err))
	}
}

func columnNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	return names
}
