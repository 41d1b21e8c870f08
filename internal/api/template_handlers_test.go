package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateHandlers_CRUD(t *testing.T) {
	_, api := setupTestServer(t, nil)

	resp := api.Post("/api/v1/templates", map[string]any{
		"name":        "冬キャンプ",
		"description": "防寒重視",
		"items": []map[string]any{
			{"name": "湯たんぽ", "category_id": "sleeping"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	created := decodeEnvelope[TemplateResponse](t, resp.Body.Bytes())
	assert.Contains(t, created.Data.ID, "template-")
	require.Len(t, created.Data.Items, 1)

	resp = api.Get("/api/v1/templates/" + created.Data.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Patch("/api/v1/templates/"+created.Data.ID, map[string]any{
		"description": "電源サイト前提",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decodeEnvelope[TemplateResponse](t, resp.Body.Bytes())
	assert.Equal(t, "電源サイト前提", updated.Data.Description)

	resp = api.Delete("/api/v1/templates/" + created.Data.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/templates/" + created.Data.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTemplateHandlers_ListIncludesSeeded(t *testing.T) {
	_, api := setupTestServer(t, nil)

	resp := api.Get("/api/v1/templates")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeEnvelope[ListTemplatesResponse](t, resp.Body.Bytes())
	require.NotEmpty(t, list.Data.Templates)
	assert.True(t, list.Data.Templates[0].IsSystem)
	assert.NotEmpty(t, list.Data.Templates[0].Items)
}

func TestTemplateHandlers_SystemGuards(t *testing.T) {
	_, api := setupTestServer(t, nil)

	resp := api.Get("/api/v1/templates")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeEnvelope[ListTemplatesResponse](t, resp.Body.Bytes())
	require.NotEmpty(t, list.Data.Templates)
	systemID := list.Data.Templates[0].ID

	resp = api.Patch("/api/v1/templates/"+systemID, map[string]any{"name": "改名"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = api.Delete("/api/v1/templates/" + systemID)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}
