package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/fleetops/fleet-api/internal/model"
)

// Enum values are the typed model constants, so arguments arrive in
// resolvers already carrying the right Go type and unknown literals
// are rejected during validation.

var robotStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "RobotStatus",
	Values: graphql.EnumValueConfigMap{
		"IDLE":        {Value: model.RobotStatusIdle},
		"ACTIVE":      {Value: model.RobotStatusActive},
		"OFFLINE":     {Value: model.RobotStatusOffline},
		"ERROR":       {Value: model.RobotStatusError},
		"MAINTENANCE": {Value: model.RobotStatusMaintenance},
	},
})

var taskStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "TaskStatus",
	Values: graphql.EnumValueConfigMap{
		"PENDING":   {Value: model.TaskStatusPending},
		"ASSIGNED":  {Value: model.TaskStatusAssigned},
		"RUNNING":   {Value: model.TaskStatusRunning},
		"COMPLETED": {Value: model.TaskStatusCompleted},
		"FAILED":    {Value: model.TaskStatusFailed},
		"CANCELLED": {Value: model.TaskStatusCancelled},
	},
})

var maintenanceTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MaintenanceType",
	Values: graphql.EnumValueConfigMap{
		"PREVENTIVE":  {Value: model.MaintenancePreventive},
		"CORRECTIVE":  {Value: model.MaintenanceCorrective},
		"INSPECTION":  {Value: model.MaintenanceInspection},
		"CALIBRATION": {Value: model.MaintenanceCalibration},
	},
})

var predictionTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "PredictionType",
	Values: graphql.EnumValueConfigMap{
		"ANOMALY_SCORE": {Value: model.PredictionAnomalyScore},
		"RUL":           {Value: model.PredictionRUL},
	},
})

var userRoleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "UserRole",
	Values: graphql.EnumValueConfigMap{
		"PRODUCTION_MANAGER":   {Value: model.UserRoleProductionManager},
		"OPERATOR":             {Value: model.UserRoleOperator},
		"MAINTENANCE_ENGINEER": {Value: model.UserRoleMaintenanceEngineer},
		"AUDITOR":              {Value: model.UserRoleAuditor},
		"ADMIN":                {Value: model.UserRoleAdmin},
	},
})
