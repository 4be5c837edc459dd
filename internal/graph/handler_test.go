package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, svcs *Services) *fiber.App {
	t.Helper()
	schema, err := NewSchema(svcs)
	assert.NoError(t, err)

	app := fiber.New()
	h := NewHandler(schema, zap.NewNop())
	app.Post("/graphql", h.Execute)
	app.Get("/healthz", h.Health)
	return app
}

func postGraphQL(t *testing.T, app *fiber.App, body map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var envelope map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func TestExecuteEndpoint(t *testing.T) {
	svcs, mocks := newTestServices()
	id := uuid.New()
	mocks.robots.On("Delete", mock.Anything, id).Return(true, nil).Once()

	app := newTestApp(t, svcs)
	status, envelope := postGraphQL(t, app, map[string]interface{}{
		"query": `mutation($id: ID!) { deleteRobot(id: $id) }`,
		"variables": map[string]interface{}{
			"id": id.String(),
		},
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, envelope["errors"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["deleteRobot"])
	mocks.robots.AssertExpectations(t)
}

func TestExecuteEndpointResolverErrorsStayInEnvelope(t *testing.T) {
	svcs, mocks := newTestServices()
	mocks.robots.On("Statistics", mock.Anything).Return(nil, assert.AnError).Once()

	app := newTestApp(t, svcs)
	status, envelope := postGraphQL(t, app, map[string]interface{}{
		"query": `{ robotStatistics { totalRobots } }`,
	})

	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, envelope["errors"])
}

func TestExecuteEndpointBadBody(t *testing.T) {
	svcs, _ := newTestServices()
	app := newTestApp(t, svcs)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	svcs, _ := newTestServices()
	app := newTestApp(t, svcs)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
