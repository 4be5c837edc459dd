package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/repository"
	"github.com/fleetops/fleet-api/internal/service"
)

// orNotFound turns a missing entity into a null field instead of a
// request error. Lookups stay queryable for ids that no longer exist.
func orNotFound(v interface{}, err error) (interface{}, error) {
	if errors.Is(err, service.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func buildQueryType(s *Services) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"robot": {
				Type: robotType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return orNotFound(s.Robots.Get(p.Context, id))
				},
			},
			"robotBySerial": {
				Type: robotType,
				Args: graphql.FieldConfigArgument{
					"serial": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orNotFound(s.Robots.GetBySerial(p.Context, p.Args["serial"].(string)))
				},
			},
			"robots": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"model":    {Type: graphql.String},
					"status":   {Type: robotStatusEnum},
					"location": {Type: graphql.String},
					"serial":   {Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.List(p.Context, repository.RobotFilter{
						Model:    stringArg(p.Args, "model"),
						Status:   enumArg[model.RobotStatus](p.Args, "status"),
						Location: stringArg(p.Args, "location"),
						Serial:   stringArg(p.Args, "serial"),
					})
				},
			},
			"robotsByCapability": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"capability": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.ListByCapability(p.Context, p.Args["capability"].(string))
				},
			},
			"searchRobots": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"searchTerm": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.Search(p.Context, p.Args["searchTerm"].(string))
				},
			},
			"robotsWithHighTelemetryCount": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"minTelemetryPoints": {Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.ListWithMinTelemetry(p.Context, p.Args["minTelemetryPoints"].(int))
				},
			},
			"robotsSortedByCapabilityCount": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"reverse": {Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.SortedByCapabilityCount(p.Context, p.Args["reverse"].(bool))
				},
			},
			"robotsWithRecentActivity": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"hours": {Type: graphql.Int, DefaultValue: 24},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.ListActiveWithin(p.Context, p.Args["hours"].(int))
				},
			},
			"robotStatistics": {
				Type: graphql.NewNonNull(robotStatisticsType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Robots.Statistics(p.Context)
				},
			},
			"task": {
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return orNotFound(s.Tasks.Get(p.Context, id))
				},
			},
			"tasks": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Args: graphql.FieldConfigArgument{
					"status":      {Type: taskStatusEnum},
					"priorityMin": {Type: graphql.Int},
					"priorityMax": {Type: graphql.Int},
					"robotId":     {Type: graphql.ID},
					"hasDeadline": {Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					robotID, err := uuidArg(p.Args, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Tasks.List(p.Context, repository.TaskFilter{
						Status:      enumArg[model.TaskStatus](p.Args, "status"),
						PriorityMin: intArg(p.Args, "priorityMin"),
						PriorityMax: intArg(p.Args, "priorityMax"),
						RobotID:     robotID,
						HasDeadline: boolArg(p.Args, "hasDeadline"),
					})
				},
			},
			"highPriorityTasks": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Args: graphql.FieldConfigArgument{
					"minPriority": {Type: graphql.Int, DefaultValue: 5},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Tasks.HighPriority(p.Context, p.Args["minPriority"].(int))
				},
			},
			"overdueTasks": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Tasks.Overdue(p.Context)
				},
			},
			"tasksByUrgencyScore": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Args: graphql.FieldConfigArgument{
					"minScore": {Type: graphql.Float, DefaultValue: 0.5},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Tasks.ByUrgency(p.Context, p.Args["minScore"].(float64))
				},
			},
			"telemetryPoint": {
				Type: telemetryPointType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return orNotFound(s.Telemetry.Get(p.Context, id))
				},
			},
			"telemetryPoints": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(telemetryPointType))),
				Args: graphql.FieldConfigArgument{
					"robotId":    {Type: graphql.ID},
					"metricName": {Type: graphql.String},
					"startDate":  {Type: graphql.DateTime},
					"endDate":    {Type: graphql.DateTime},
					"limit":      {Type: graphql.Int, DefaultValue: service.DefaultTelemetryLimit},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					robotID, err := uuidArg(p.Args, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Telemetry.List(p.Context, repository.TelemetryFilter{
						RobotID:    robotID,
						MetricName: stringArg(p.Args, "metricName"),
						StartDate:  timeArg(p.Args, "startDate"),
						EndDate:    timeArg(p.Args, "endDate"),
					}, intArg(p.Args, "limit"))
				},
			},
			"telemetryStatistics": {
				Type: telemetryStatisticsType,
				Args: graphql.FieldConfigArgument{
					"robotId":    {Type: graphql.ID},
					"metricName": {Type: graphql.String},
					"startDate":  {Type: graphql.DateTime},
					"endDate":    {Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					robotID, err := uuidArg(p.Args, "robotId")
					if err != nil {
						return nil, err
					}
					stats, err := s.Telemetry.Statistics(p.Context, repository.TelemetryFilter{
						RobotID:    robotID,
						MetricName: stringArg(p.Args, "metricName"),
						StartDate:  timeArg(p.Args, "startDate"),
						EndDate:    timeArg(p.Args, "endDate"),
					})
					if err != nil {
						return nil, err
					}
					if stats == nil {
						return nil, nil
					}
					return stats, nil
				},
			},
			"telemetryAnomalies": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(telemetryPointType))),
				Args: graphql.FieldConfigArgument{
					"robotId":             {Type: graphql.ID},
					"metricName":          {Type: graphql.String, DefaultValue: "temperature"},
					"thresholdMultiplier": {Type: graphql.Float, DefaultValue: 2.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					robotID, err := uuidArg(p.Args, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Telemetry.Anomalies(p.Context, robotID,
						p.Args["metricName"].(string), p.Args["thresholdMultiplier"].(float64))
				},
			},
			"maintenanceEvent": {
				Type: maintenanceEventType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return orNotFound(s.Maintenance.Get(p.Context, id))
				},
			},
			"maintenanceEvents": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(maintenanceEventType))),
				Args: graphql.FieldConfigArgument{
					"robotId":   {Type: graphql.ID},
					"type":      {Type: maintenanceTypeEnum},
					"startDate": {Type: graphql.DateTime},
					"endDate":   {Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					robotID, err := uuidArg(p.Args, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Maintenance.List(p.Context, repository.MaintenanceFilter{
						RobotID:   robotID,
						Type:      enumArg[model.MaintenanceType](p.Args, "type"),
						StartDate: timeArg(p.Args, "startDate"),
						EndDate:   timeArg(p.Args, "endDate"),
					})
				},
			},
			"prediction": {
				Type: predictionType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return orNotFound(s.Predictions.Get(p.Context, id))
				},
			},
			"predictions": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(predictionType))),
				Args: graphql.FieldConfigArgument{
					"robotId":        {Type: graphql.ID},
					"predictionType": {Type: predictionTypeEnum},
					"startDate":      {Type: graphql.DateTime},
					"endDate":        {Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					robotID, err := uuidArg(p.Args, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Predictions.List(p.Context, repository.PredictionFilter{
						RobotID:        robotID,
						PredictionType: enumArg[model.PredictionType](p.Args, "predictionType"),
						StartDate:      timeArg(p.Args, "startDate"),
						EndDate:        timeArg(p.Args, "endDate"),
					})
				},
			},
			"userProfiles": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userProfileType))),
				Args: graphql.FieldConfigArgument{
					"role": {Type: userRoleEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Users.List(p.Context, enumArg[model.UserRole](p.Args, "role"))
				},
			},
			"userProfile": {
				Type: userProfileType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return orNotFound(s.Users.Get(p.Context, id))
				},
			},
		},
	})
}
