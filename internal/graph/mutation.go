package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/service"
)

var createRobotInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateRobotInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"serial":          {Type: graphql.NewNonNull(graphql.String)},
		"model":           {Type: graphql.NewNonNull(graphql.String)},
		"capabilities":    {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"location":        {Type: graphql.String},
		"status":          {Type: robotStatusEnum},
		"firmwareVersion": {Type: graphql.String},
	},
})

var updateRobotInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateRobotInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"serial":          {Type: graphql.String},
		"model":           {Type: graphql.String},
		"capabilities":    {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"location":        {Type: graphql.String},
		"status":          {Type: robotStatusEnum},
		"firmwareVersion": {Type: graphql.String},
		"lastSeen":        {Type: graphql.DateTime},
	},
})

var createTaskInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateTaskInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"requiredCapabilities": {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"priority":             {Type: graphql.Int},
		"deadline":             {Type: graphql.DateTime},
		"assignedRobotId":      {Type: graphql.ID},
		"status":               {Type: taskStatusEnum},
	},
})

var updateTaskInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateTaskInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"requiredCapabilities": {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"priority":             {Type: graphql.Int},
		"deadline":             {Type: graphql.DateTime},
		"assignedRobotId":      {Type: graphql.ID},
		"status":               {Type: taskStatusEnum},
	},
})

var createTelemetryPointInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateTelemetryPointInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"robotId":     {Type: graphql.NewNonNull(graphql.ID)},
		"metricName":  {Type: graphql.NewNonNull(graphql.String)},
		"metricValue": {Type: graphql.NewNonNull(graphql.Float)},
		"timestamp":   {Type: graphql.DateTime},
		"metadata":    {Type: jsonScalar},
	},
})

var updateTelemetryPointInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateTelemetryPointInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"metricName":  {Type: graphql.String},
		"metricValue": {Type: graphql.Float},
		"timestamp":   {Type: graphql.DateTime},
		"metadata":    {Type: jsonScalar},
	},
})

var createMaintenanceEventInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateMaintenanceEventInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"robotId":       {Type: graphql.NewNonNull(graphql.ID)},
		"type":          {Type: graphql.NewNonNull(maintenanceTypeEnum)},
		"notes":         {Type: graphql.String},
		"cost":          {Type: graphql.Float},
		"timestamp":     {Type: graphql.DateTime},
		"performedById": {Type: graphql.ID},
	},
})

var updateMaintenanceEventInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateMaintenanceEventInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"type":          {Type: maintenanceTypeEnum},
		"notes":         {Type: graphql.String},
		"cost":          {Type: graphql.Float},
		"timestamp":     {Type: graphql.DateTime},
		"performedById": {Type: graphql.ID},
	},
})

var createPredictionInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreatePredictionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"robotId":        {Type: graphql.NewNonNull(graphql.ID)},
		"predictionType": {Type: graphql.NewNonNull(predictionTypeEnum)},
		"value":          {Type: graphql.NewNonNull(graphql.Float)},
		"modelVersion":   {Type: graphql.NewNonNull(graphql.String)},
		"timestamp":      {Type: graphql.DateTime},
	},
})

var updatePredictionInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdatePredictionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"predictionType": {Type: predictionTypeEnum},
		"value":          {Type: graphql.Float},
		"modelVersion":   {Type: graphql.String},
		"timestamp":      {Type: graphql.DateTime},
	},
})

var createUserProfileInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateUserProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":    {Type: graphql.NewNonNull(graphql.String)},
		"role":    {Type: userRoleEnum},
		"contact": {Type: graphql.String},
	},
})

func inputMap(p graphql.ResolveParams) map[string]interface{} {
	if m, ok := p.Args["input"].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func buildMutationType(s *Services) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createRobot": {
				Type: graphql.NewNonNull(robotType),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(createRobotInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := inputMap(p)
					return s.Robots.Create(p.Context, service.CreateRobotParams{
						Serial:          input["serial"].(string),
						Model:           input["model"].(string),
						Capabilities:    stringListArg(input, "capabilities"),
						Location:        stringArg(input, "location"),
						Status:          enumArg[model.RobotStatus](input, "status"),
						FirmwareVersion: stringArg(input, "firmwareVersion"),
					})
				},
			},
			"updateRobot": {
				Type: graphql.NewNonNull(robotType),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(updateRobotInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					input := inputMap(p)
					return s.Robots.Update(p.Context, id, service.RobotUpdate{
						Serial:          optString(input, "serial"),
						Model:           optString(input, "model"),
						Capabilities:    optStringList(input, "capabilities"),
						Location:        optString(input, "location"),
						Status:          optEnum[model.RobotStatus](input, "status"),
						FirmwareVersion: optString(input, "firmwareVersion"),
						LastSeen:        optTime(input, "lastSeen"),
					})
				},
			},
			"deleteRobot": {
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return s.Robots.Delete(p.Context, id)
				},
			},
			"bulkUpdateRobotStatuses": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(robotType))),
				Args: graphql.FieldConfigArgument{
					"robotIds":  {Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
					"newStatus": {Type: graphql.NewNonNull(robotStatusEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ids, err := uuidListArg(p.Args, "robotIds")
					if err != nil {
						return nil, err
					}
					return s.Robots.BulkUpdateStatus(p.Context, ids, p.Args["newStatus"].(model.RobotStatus))
				},
			},
			"createTask": {
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(createTaskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := inputMap(p)
					robotID, err := uuidArg(input, "assignedRobotId")
					if err != nil {
						return nil, err
					}
					return s.Tasks.Create(p.Context, service.CreateTaskParams{
						RequiredCapabilities: stringListArg(input, "requiredCapabilities"),
						Priority:             intArg(input, "priority"),
						Deadline:             timeArg(input, "deadline"),
						AssignedRobotID:      robotID,
						Status:               enumArg[model.TaskStatus](input, "status"),
					})
				},
			},
			"updateTask": {
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(updateTaskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					input := inputMap(p)
					robotID, err := optUUID(input, "assignedRobotId")
					if err != nil {
						return nil, err
					}
					return s.Tasks.Update(p.Context, id, service.TaskUpdate{
						RequiredCapabilities: optStringList(input, "requiredCapabilities"),
						Priority:             optInt(input, "priority"),
						Deadline:             optTime(input, "deadline"),
						AssignedRobotID:      robotID,
						Status:               optEnum[model.TaskStatus](input, "status"),
					})
				},
			},
			"deleteTask": {
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return s.Tasks.Delete(p.Context, id)
				},
			},
			"assignTasksToRobotsByCapability": {
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Args: graphql.FieldConfigArgument{
					"taskIds": {Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ids, err := uuidListArg(p.Args, "taskIds")
					if err != nil {
						return nil, err
					}
					return s.Tasks.AssignByCapability(p.Context, ids)
				},
			},
			"createTelemetryPoint": {
				Type: graphql.NewNonNull(telemetryPointType),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(createTelemetryPointInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := inputMap(p)
					robotID, err := requiredUUIDArg(input, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Telemetry.Create(p.Context, service.CreateTelemetryParams{
						RobotID:     robotID,
						MetricName:  input["metricName"].(string),
						MetricValue: input["metricValue"].(float64),
						Timestamp:   timeArg(input, "timestamp"),
						Metadata:    input["metadata"],
					})
				},
			},
			"updateTelemetryPoint": {
				Type: graphql.NewNonNull(telemetryPointType),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(updateTelemetryPointInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					input := inputMap(p)
					return s.Telemetry.Update(p.Context, id, service.TelemetryUpdate{
						MetricName:  optString(input, "metricName"),
						MetricValue: optFloat(input, "metricValue"),
						Timestamp:   optTime(input, "timestamp"),
						Metadata:    optJSON(input, "metadata"),
					})
				},
			},
			"deleteTelemetryPoint": {
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return s.Telemetry.Delete(p.Context, id)
				},
			},
			"cleanupOldTelemetry": {
				Type: graphql.NewNonNull(graphql.Int),
				Args: graphql.FieldConfigArgument{
					"daysToKeep":  {Type: graphql.Int, DefaultValue: 30},
					"metricNames": {Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					deleted, err := s.Telemetry.Cleanup(p.Context,
						p.Args["daysToKeep"].(int), stringListArg(p.Args, "metricNames"))
					if err != nil {
						return nil, err
					}
					return int(deleted), nil
				},
			},
			"createMaintenanceEvent": {
				Type: graphql.NewNonNull(maintenanceEventType),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(createMaintenanceEventInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := inputMap(p)
					robotID, err := requiredUUIDArg(input, "robotId")
					if err != nil {
						return nil, err
					}
					performedByID, err := uuidArg(input, "performedById")
					if err != nil {
						return nil, err
					}
					var cost *decimal.Decimal
					if raw, ok := input["cost"]; ok && raw != nil {
						c := decimal.NewFromFloat(raw.(float64))
						cost = &c
					}
					return s.Maintenance.Create(p.Context, service.CreateMaintenanceParams{
						RobotID:       robotID,
						Type:          input["type"].(model.MaintenanceType),
						Notes:         stringArg(input, "notes"),
						Cost:          cost,
						Timestamp:     timeArg(input, "timestamp"),
						PerformedByID: performedByID,
					})
				},
			},
			"updateMaintenanceEvent": {
				Type: graphql.NewNonNull(maintenanceEventType),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(updateMaintenanceEventInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					input := inputMap(p)
					performedByID, err := optUUID(input, "performedById")
					if err != nil {
						return nil, err
					}
					return s.Maintenance.Update(p.Context, id, service.MaintenanceUpdate{
						Type:          optEnum[model.MaintenanceType](input, "type"),
						Notes:         optString(input, "notes"),
						Cost:          optDecimal(input, "cost"),
						Timestamp:     optTime(input, "timestamp"),
						PerformedByID: performedByID,
					})
				},
			},
			"deleteMaintenanceEvent": {
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return s.Maintenance.Delete(p.Context, id)
				},
			},
			"createPrediction": {
				Type: graphql.NewNonNull(predictionType),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(createPredictionInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := inputMap(p)
					robotID, err := requiredUUIDArg(input, "robotId")
					if err != nil {
						return nil, err
					}
					return s.Predictions.Create(p.Context, service.CreatePredictionParams{
						RobotID:        robotID,
						PredictionType: input["predictionType"].(model.PredictionType),
						Value:          input["value"].(float64),
						ModelVersion:   input["modelVersion"].(string),
						Timestamp:      timeArg(input, "timestamp"),
					})
				},
			},
			"updatePrediction": {
				Type: graphql.NewNonNull(predictionType),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(updatePredictionInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					input := inputMap(p)
					return s.Predictions.Update(p.Context, id, service.PredictionUpdate{
						PredictionType: optEnum[model.PredictionType](input, "predictionType"),
						Value:          optFloat(input, "value"),
						ModelVersion:   optString(input, "modelVersion"),
						Timestamp:      optTime(input, "timestamp"),
					})
				},
			},
			"deletePrediction": {
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := requiredUUIDArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return s.Predictions.Delete(p.Context, id)
				},
			},
			"createUserProfile": {
				Type: graphql.NewNonNull(userProfileType),
				Args: graphql.FieldConfigArgument{
					"input": {Type: graphql.NewNonNull(createUserProfileInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := inputMap(p)
					return s.Users.Create(p.Context, service.CreateUserParams{
						Name:    input["name"].(string),
						Role:    enumArg[model.UserRole](input, "role"),
						Contact: stringArg(input, "contact"),
					})
				},
			},
		},
	})
}
