package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

type CreateMaintenanceParams struct {
	RobotID       uuid.UUID
	Type          model.MaintenanceType
	Notes         *string
	Cost          *decimal.Decimal
	Timestamp     *time.Time
	PerformedByID *uuid.UUID
}

// MaintenanceUpdate is a partial update. Cost and PerformedByID are
// nullable columns; an explicit null clears them.
type MaintenanceUpdate struct {
	Type          Optional[model.MaintenanceType]
	Notes         Optional[string]
	Cost          Optional[decimal.Decimal]
	Timestamp     Optional[time.Time]
	PerformedByID Optional[uuid.UUID]
}

type MaintenanceService interface {
	List(ctx context.Context, filter repository.MaintenanceFilter) ([]model.MaintenanceEvent, error)
	Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceEvent, error)
	Create(ctx context.Context, params CreateMaintenanceParams) (*model.MaintenanceEvent, error)
	Update(ctx context.Context, id uuid.UUID, upd MaintenanceUpdate) (*model.MaintenanceEvent, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type maintenanceService struct {
	maintenance repository.MaintenanceRepository
	robots      repository.RobotRepository
	users       repository.UserRepository
	audit       AuditRecorder
	log         *zap.Logger
}

func NewMaintenanceService(
	maintenance repository.MaintenanceRepository,
	robots repository.RobotRepository,
	users repository.UserRepository,
	audit AuditRecorder,
	log *zap.Logger,
) MaintenanceService {
	return &maintenanceService{maintenance: maintenance, robots: robots, users: users, audit: audit, log: log}
}

func (s *maintenanceService) List(ctx context.Context, filter repository.MaintenanceFilter) ([]model.MaintenanceEvent, error) {
	return s.maintenance.List(ctx, filter)
}

func (s *maintenanceService) Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceEvent, error) {
	event, err := s.maintenance.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "maintenance event", id)
	}
	return event, nil
}

func (s *maintenanceService) Create(ctx context.Context, params CreateMaintenanceParams) (*model.MaintenanceEvent, error) {
	if _, err := s.robots.GetByID(ctx, params.RobotID); err != nil {
		return nil, wrapNotFound(err, "robot", params.RobotID)
	}
	if params.PerformedByID != nil {
		if _, err := s.users.GetByID(ctx, *params.PerformedByID); err != nil {
			return nil, wrapNotFound(err, "user profile", *params.PerformedByID)
		}
	}

	ts := time.Now()
	if params.Timestamp != nil {
		ts = *params.Timestamp
	}

	event := &model.MaintenanceEvent{
		RobotID:       params.RobotID,
		Timestamp:     ts,
		Type:          params.Type,
		Cost:          params.Cost,
		PerformedByID: params.PerformedByID,
	}
	if params.Notes != nil {
		event.Notes = *params.Notes
	}

	if err := s.maintenance.Create(ctx, event); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "create", "maintenance_event", event.ID, map[string]interface{}{"type": string(event.Type)})
	return s.Get(ctx, event.ID)
}

func (s *maintenanceService) Update(ctx context.Context, id uuid.UUID, upd MaintenanceUpdate) (*model.MaintenanceEvent, error) {
	for name, field := range map[string]interface{ IsNull() bool }{
		"type":      upd.Type,
		"notes":     upd.Notes,
		"timestamp": upd.Timestamp,
	} {
		if field.IsNull() {
			return nil, fmt.Errorf("field %s cannot be null", name)
		}
	}

	if userID, ok := upd.PerformedByID.Get(); ok {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return nil, wrapNotFound(err, "user profile", userID)
		}
	}

	updates := map[string]interface{}{}
	upd.Type.apply(updates, "type")
	upd.Notes.apply(updates, "notes")
	upd.Timestamp.apply(updates, "timestamp")
	upd.PerformedByID.apply(updates, "performed_by_id")
	if upd.Cost.IsNull() {
		updates["cost"] = nil
	} else if cost, ok := upd.Cost.Get(); ok {
		updates["cost"] = cost
	}

	event, err := s.maintenance.Update(ctx, id, updates)
	if err != nil {
		return nil, wrapNotFound(err, "maintenance event", id)
	}

	s.audit.Record(ctx, "update", "maintenance_event", id, map[string]interface{}{"fields": columnNames(updates)})
	return event, nil
}

func (s *maintenanceService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.maintenance.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.audit.Record(ctx, "delete", "maintenance_event", id, nil)
	}
	return deleted, nil
}
