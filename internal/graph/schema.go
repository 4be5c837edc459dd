package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/fleetops/fleet-api/internal/service"
)

// Services holds every service the schema resolves against.
type Services struct {
	Robots      service.RobotService
	Tasks       service.TaskService
	Telemetry   service.TelemetryService
	Maintenance service.MaintenanceService
	Predictions service.PredictionService
	Users       service.UserService
}

func NewSchema(svcs *Services) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    buildQueryType(svcs),
		Mutation: buildMutationType(svcs),
	})
}
