package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RobotStatus string

const (
	RobotStatusIdle        RobotStatus = "IDLE"
	RobotStatusActive      RobotStatus = "ACTIVE"
	RobotStatusOffline     RobotStatus = "OFFLINE"
	RobotStatusError       RobotStatus = "ERROR"
	RobotStatusMaintenance RobotStatus = "MAINTENANCE"
)

// RobotStatuses lists every status in declaration order. Statistics
// zero-fill from this list so every key is always present.
var RobotStatuses = []RobotStatus{
	RobotStatusIdle,
	RobotStatusActive,
	RobotStatusOffline,
	RobotStatusError,
	RobotStatusMaintenance,
}

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusAssigned  TaskStatus = "ASSIGNED"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusFailed    TaskStatus = "FAILED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

// OpenTaskStatuses are the states a task can still be worked in.
// Overdue reporting and assignment load counting use this set.
var OpenTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusAssigned,
	TaskStatusRunning,
}

type MaintenanceType string

const (
	MaintenancePreventive  MaintenanceType = "PREVENTIVE"
	MaintenanceCorrective  MaintenanceType = "CORRECTIVE"
	MaintenanceInspection  MaintenanceType = "INSPECTION"
	MaintenanceCalibration MaintenanceType = "CALIBRATION"
)

type PredictionType string

const (
	PredictionAnomalyScore PredictionType = "ANOMALY_SCORE"
	PredictionRUL          PredictionType = "RUL"
)

type UserRole string

const (
	UserRoleProductionManager   UserRole = "PRODUCTION_MANAGER"
	UserRoleOperator            UserRole = "OPERATOR"
	UserRoleMaintenanceEngineer UserRole = "MAINTENANCE_ENGINEER"
	UserRoleAuditor             UserRole = "AUDITOR"
	UserRoleAdmin               UserRole = "ADMIN"
)

type Robot struct {
	ID              uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Serial          string                      `gorm:"uniqueIndex;not null" json:"serial"`
	Model           string                      `gorm:"not null" json:"model"`
	Capabilities    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"capabilities"`
	FirmwareVersion string                      `json:"firmware_version"`
	Location        string                      `json:"location"`
	Status          RobotStatus                 `gorm:"not null;default:IDLE" json:"status"`
	LastSeen        *time.Time                  `json:"last_seen"`
	CreatedAt       time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null;default:now()" json:"updated_at"`

	Tasks             []Task             `gorm:"foreignKey:AssignedRobotID;constraint:OnDelete:SET NULL" json:"-"`
	TelemetryPoints   []TelemetryPoint   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MaintenanceEvents []MaintenanceEvent `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Predictions       []Prediction       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Task struct {
	ID                   uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequiredCapabilities datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"required_capabilities"`
	Status               TaskStatus                  `gorm:"not null;default:PENDING" json:"status"`
	AssignedRobotID      *uuid.UUID                  `gorm:"type:uuid" json:"assigned_robot_id"`
	AssignedRobot        *Robot                      `json:"assigned_robot,omitempty"`
	Priority             int                         `gorm:"not null;default:0" json:"priority"`
	Deadline             *time.Time                  `json:"deadline"`
	CreatedAt            time.Time                   `gorm:"not null;default:now()" json:"created_at"`
}

type TelemetryPoint struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RobotID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_telemetry_robot_ts" json:"robot_id"`
	Robot       *Robot         `json:"robot,omitempty"`
	Timestamp   time.Time      `gorm:"not null;index:idx_telemetry_robot_ts;index:idx_telemetry_metric_ts" json:"timestamp"`
	MetricName  string         `gorm:"not null;index:idx_telemetry_metric_ts" json:"metric_name"`
	MetricValue float64        `gorm:"not null" json:"metric_value"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
}

type MaintenanceEvent struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RobotID       uuid.UUID        `gorm:"type:uuid;not null" json:"robot_id"`
	Robot         *Robot           `json:"robot,omitempty"`
	Timestamp     time.Time        `gorm:"not null" json:"timestamp"`
	Type          MaintenanceType  `gorm:"not null;default:INSPECTION" json:"type"`
	Notes         string           `json:"notes"`
	PerformedByID *uuid.UUID       `gorm:"type:uuid" json:"performed_by_id"`
	PerformedBy   *UserProfile     `gorm:"constraint:OnDelete:SET NULL" json:"performed_by,omitempty"`
	Cost          *decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost"`
}

type Prediction struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RobotID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_prediction_lookup" json:"robot_id"`
	Robot          *Robot         `json:"robot,omitempty"`
	Timestamp      time.Time      `gorm:"not null;index:idx_prediction_lookup" json:"timestamp"`
	PredictionType PredictionType `gorm:"not null;default:ANOMALY_SCORE;index:idx_prediction_lookup" json:"prediction_type"`
	Value          float64        `gorm:"not null" json:"value"`
	ModelVersion   string         `gorm:"not null" json:"model_version"`
}

type UserProfile struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Role    UserRole  `gorm:"not null;default:OPERATOR" json:"role"`
	Contact string    `json:"contact"`
}

type AuditLog struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID       *uuid.UUID     `gorm:"type:uuid" json:"actor_id"`
	Actor         *UserProfile   `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
	Action        string         `gorm:"not null" json:"action"`
	TargetType    string         `gorm:"not null;index:idx_audit_target" json:"target_type"`
	TargetID      string         `gorm:"not null;index:idx_audit_target" json:"target_id"`
	Timestamp     time.Time      `gorm:"not null;default:now();index" json:"timestamp"`
	Details       datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CorrelationID string         `json:"correlation_id"`
}
