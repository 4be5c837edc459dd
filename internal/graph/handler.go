package graph

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-api/internal/service"
)

type Handler struct {
	schema graphql.Schema
	log    *zap.Logger
}

func NewHandler(schema graphql.Schema, log *zap.Logger) *Handler {
	return &Handler{schema: schema, log: log}
}

// Execute serves the single GraphQL endpoint. Resolver errors travel
// inside the result envelope, so the HTTP status stays 200 for any
// well-formed request body.
func (h *Handler) Execute(c *fiber.Ctx) error {
	var req struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	correlationID := uuid.NewString()
	ctx := service.WithCorrelationID(c.UserContext(), correlationID)

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		h.log.Debug("graphql request finished with errors",
			zap.String("correlation_id", correlationID),
			zap.Int("error_count", len(result.Errors)))
	}
	return c.JSON(result)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
