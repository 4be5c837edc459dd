package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fleetops/fleet-api/internal/model"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
