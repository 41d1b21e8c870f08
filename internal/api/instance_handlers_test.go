package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceHandlers_Get(t *testing.T) {
	_, api := setupTestServer(t, nil)

	resp := api.Get("/api/v1/instance")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[InstanceResponse](t, resp.Body.Bytes())
	assert.True(t, envelope.Success)
	assert.Equal(t, "server-001", envelope.Data.ID)
	assert.Equal(t, "Test Takibi Server", envelope.Data.Name)
	assert.Equal(t, "0.1.0", envelope.Data.Version)
}

func TestInstanceHandlers_Update(t *testing.T) {
	_, api := setupTestServer(t, nil)

	resp := api.Patch("/api/v1/instance", map[string]any{"name": "リビングの焚き火サーバー"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[InstanceResponse](t, resp.Body.Bytes())
	assert.Equal(t, "リビングの焚き火サーバー", envelope.Data.Name)
}

func TestInstanceHandlers_UpdateEmptyName(t *testing.T) {
	_, api := setupTestServer(t, nil)

	resp := api.Patch("/api/v1/instance", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}
