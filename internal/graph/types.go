package graph

import (
	"encoding/json"

	"github.com/graphql-go/graphql"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
	"github.com/fleetops/fleet-api/internal/service"
)

// source normalizes p.Source: list elements arrive by value, single
// results by pointer.
func source[T any](p graphql.ResolveParams) *T {
	switch v := p.Source.(type) {
	case *T:
		return v
	case T:
		return &v
	}
	return nil
}

// field binds one output field to a struct accessor. The accessor owns
// the camelCase-to-struct translation, keeping the snake_case storage
// names out of the wire format.
func field[T any](t graphql.Output, fn func(*T) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src := source[T](p)
			if src == nil {
				return nil, nil
			}
			return fn(src), nil
		},
	}
}

func jsonValue(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

var userProfileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserProfile",
	Fields: graphql.Fields{
		"id":      field(graphql.NewNonNull(graphql.ID), func(u *model.UserProfile) interface{} { return u.ID.String() }),
		"name":    field(graphql.NewNonNull(graphql.String), func(u *model.UserProfile) interface{} { return u.Name }),
		"role":    field(graphql.NewNonNull(userRoleEnum), func(u *model.UserProfile) interface{} { return u.Role }),
		"contact": field(graphql.NewNonNull(graphql.String), func(u *model.UserProfile) interface{} { return u.Contact }),
	},
})

var robotType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Robot",
	Fields: graphql.Fields{
		"id":     field(graphql.NewNonNull(graphql.ID), func(r *model.Robot) interface{} { return r.ID.String() }),
		"serial": field(graphql.NewNonNull(graphql.String), func(r *model.Robot) interface{} { return r.Serial }),
		"model":  field(graphql.NewNonNull(graphql.String), func(r *model.Robot) interface{} { return r.Model }),
		"capabilities": field(graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))), func(r *model.Robot) interface{} {
			if r.Capabilities == nil {
				return []string{}
			}
			return []string(r.Capabilities)
		}),
		"firmwareVersion": field(graphql.NewNonNull(graphql.String), func(r *model.Robot) interface{} { return r.FirmwareVersion }),
		"location":        field(graphql.NewNonNull(graphql.String), func(r *model.Robot) interface{} { return r.Location }),
		"status":          field(graphql.NewNonNull(robotStatusEnum), func(r *model.Robot) interface{} { return r.Status }),
		"lastSeen": field(graphql.DateTime, func(r *model.Robot) interface{} {
			if r.LastSeen == nil {
				return nil
			}
			return *r.LastSeen
		}),
		"createdAt": field(graphql.NewNonNull(graphql.DateTime), func(r *model.Robot) interface{} { return r.CreatedAt }),
		"updatedAt": field(graphql.NewNonNull(graphql.DateTime), func(r *model.Robot) interface{} { return r.UpdatedAt }),
	},
})

var taskType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Task",
	Fields: graphql.Fields{
		"id": field(graphql.NewNonNull(graphql.ID), func(t *model.Task) interface{} { return t.ID.String() }),
		"requiredCapabilities": field(graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))), func(t *model.Task) interface{} {
			if t.RequiredCapabilities == nil {
				return []string{}
			}
			return []string(t.RequiredCapabilities)
		}),
		"status": field(graphql.NewNonNull(taskStatusEnum), func(t *model.Task) interface{} { return t.Status }),
		"assignedRobot": field(robotType, func(t *model.Task) interface{} {
			if t.AssignedRobot == nil {
				return nil
			}
			return t.AssignedRobot
		}),
		"priority": field(graphql.NewNonNull(graphql.Int), func(t *model.Task) interface{} { return t.Priority }),
		"deadline": field(graphql.DateTime, func(t *model.Task) interface{} {
			if t.Deadline == nil {
				return nil
			}
			return *t.Deadline
		}),
		"createdAt": field(graphql.NewNonNull(graphql.DateTime), func(t *model.Task) interface{} { return t.CreatedAt }),
	},
})

var telemetryPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TelemetryPoint",
	Fields: graphql.Fields{
		"id": field(graphql.NewNonNull(graphql.ID), func(tp *model.TelemetryPoint) interface{} { return tp.ID.String() }),
		"robot": field(robotType, func(tp *model.TelemetryPoint) interface{} {
			if tp.Robot == nil {
				return nil
			}
			return tp.Robot
		}),
		"timestamp":   field(graphql.NewNonNull(graphql.DateTime), func(tp *model.TelemetryPoint) interface{} { return tp.Timestamp }),
		"metricName":  field(graphql.NewNonNull(graphql.String), func(tp *model.TelemetryPoint) interface{} { return tp.MetricName }),
		"metricValue": field(graphql.NewNonNull(graphql.Float), func(tp *model.TelemetryPoint) interface{} { return tp.MetricValue }),
		"metadata":    field(jsonScalar, func(tp *model.TelemetryPoint) interface{} { return jsonValue(tp.Metadata) }),
	},
})

var maintenanceEventType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MaintenanceEvent",
	Fields: graphql.Fields{
		"id": field(graphql.NewNonNull(graphql.ID), func(e *model.MaintenanceEvent) interface{} { return e.ID.String() }),
		"robot": field(robotType, func(e *model.MaintenanceEvent) interface{} {
			if e.Robot == nil {
				return nil
			}
			return e.Robot
		}),
		"timestamp": field(graphql.NewNonNull(graphql.DateTime), func(e *model.MaintenanceEvent) interface{} { return e.Timestamp }),
		"type":      field(graphql.NewNonNull(maintenanceTypeEnum), func(e *model.MaintenanceEvent) interface{} { return e.Type }),
		"notes":     field(graphql.NewNonNull(graphql.String), func(e *model.MaintenanceEvent) interface{} { return e.Notes }),
		"cost": field(graphql.Float, func(e *model.MaintenanceEvent) interface{} {
			if e.Cost == nil {
				return nil
			}
			v, _ := e.Cost.Float64()
			return v
		}),
		"performedBy": field(userProfileType, func(e *model.MaintenanceEvent) interface{} {
			if e.PerformedBy == nil {
				return nil
			}
			return e.PerformedBy
		}),
	},
})

var predictionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Prediction",
	Fields: graphql.Fields{
		"id": field(graphql.NewNonNull(graphql.ID), func(pr *model.Prediction) interface{} { return pr.ID.String() }),
		"robot": field(robotType, func(pr *model.Prediction) interface{} {
			if pr.Robot == nil {
				return nil
			}
			return pr.Robot
		}),
		"timestamp":      field(graphql.NewNonNull(graphql.DateTime), func(pr *model.Prediction) interface{} { return pr.Timestamp }),
		"predictionType": field(graphql.NewNonNull(predictionTypeEnum), func(pr *model.Prediction) interface{} { return pr.PredictionType }),
		"value":          field(graphql.NewNonNull(graphql.Float), func(pr *model.Prediction) interface{} { return pr.Value }),
		"modelVersion":   field(graphql.NewNonNull(graphql.String), func(pr *model.Prediction) interface{} { return pr.ModelVersion }),
	},
})

var robotStatisticsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RobotStatistics",
	Fields: graphql.Fields{
		"totalRobots": field(graphql.NewNonNull(graphql.Int), func(s *service.RobotStatistics) interface{} { return s.TotalRobots }),
		"robotsByStatus": field(graphql.NewNonNull(jsonScalar), func(s *service.RobotStatistics) interface{} {
			byStatus := make(map[string]int, len(s.RobotsByStatus))
			for status, count := range s.RobotsByStatus {
				byStatus[string(status)] = count
			}
			return byStatus
		}),
		"averageTasksPerRobot":  field(graphql.NewNonNull(graphql.Float), func(s *service.RobotStatistics) interface{} { return s.AverageTasksPerRobot }),
		"robotsWithMaintenance": field(graphql.NewNonNull(graphql.Int), func(s *service.RobotStatistics) interface{} { return s.RobotsWithMaintenance }),
	},
})

var telemetryStatisticsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TelemetryStatistics",
	Fields: graphql.Fields{
		"count":           field(graphql.NewNonNull(graphql.Int), func(s *repository.TelemetryStats) interface{} { return s.Count }),
		"averageValue":    field(graphql.NewNonNull(graphql.Float), func(s *repository.TelemetryStats) interface{} { return s.AverageValue }),
		"minValue":        field(graphql.NewNonNull(graphql.Float), func(s *repository.TelemetryStats) interface{} { return s.MinValue }),
		"maxValue":        field(graphql.NewNonNull(graphql.Float), func(s *repository.TelemetryStats) interface{} { return s.MaxValue }),
		"latestTimestamp": field(graphql.DateTime, func(s *repository.TelemetryStats) interface{} { return s.LatestTimestamp }),
	},
})
