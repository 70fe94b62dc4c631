package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateETagDeterministic(t *testing.T) {
	payload := map[string]any{"platform": "hubla", "total": 42}

	first, err := GenerateETag(payload)
	require.NoError(t, err)
	second, err := GenerateETag(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestGenerateETagChangesWithData(t *testing.T) {
	a, err := GenerateETag(map[string]int{"total": 1})
	require.NoError(t, err)
	b, err := GenerateETag(map[string]int{"total": 2})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSendJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONError(rec, "file too large", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "file too large", body["error"])
}
