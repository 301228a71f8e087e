package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, "https://cdn/a.png")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":"https://cdn/a.png"}`, rec.Body.String())
}

func TestError_DefaultsToStatusText(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "")

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not found", body.Error)
	assert.Nil(t, body.Data)

	rec = httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "file is required")
	assert.JSONEq(t, `{"error":"file is required"}`, rec.Body.String())
}

func TestWantsJSON(t *testing.T) {
	assert.True(t, WantsJSON(httptest.NewRequest(http.MethodGet, "/api/upload", nil)))

	r := httptest.NewRequest(http.MethodGet, "/colleges", nil)
	assert.False(t, WantsJSON(r))
	r.Header.Set("Accept", "application/json")
	assert.True(t, WantsJSON(r))
}
