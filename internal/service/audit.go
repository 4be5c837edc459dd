package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
)

type correlationIDKey struct{}

// WithCorrelationID tags a request context; audit rows written during
// the request carry the same id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func CorrelationIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// AuditRecorder appends mutation trail entries. Recording is
// best-effort: failures are logged and never fail the mutation.
type AuditRecorder interface {
	Record(ctx context.Context, action, targetType string, targetID uuid.UUID, details map[string]interface{})
}

type auditRecorder struct {
	repo repository.AuditRepository
	log  *zap.Logger
}

func NewAuditRecorder(repo repository.AuditRepository, log *zap.Logger) AuditRecorder {
	return &auditRecorder{repo: repo, log: log}
}

func (a *auditRecorder) Record(ctx context.Context, action, targetType string, targetID uuid.UUID, details map[string]interface{}) {
	var payload datatypes.JSON
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			payload = b
		}
	}

	entry := &model.AuditLog{
		Action:        action,
		TargetType:    targetType,
		TargetID:      targetID.String(),
		Details:       payload,
		CorrelationID: CorrelationIDFrom(ctx),
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.log.Warn("audit write failed",
			zap.String("action", action),
			zap.String("target_type", targetType),
			zap.Error(err))
	}
}
