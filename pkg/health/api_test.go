package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swiftbus/api/pkg/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthGet(t *testing.T) {
	t.Run("reports healthy", func(t *testing.T) {
		rr := httptest.NewRecorder()
		health.HealthGet()(rr, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp health.HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "swiftbus-api", resp.Service)
		assert.NotEmpty(t, resp.Uptime)
		assert.NotEmpty(t, resp.GoVersion)
	})

	t.Run("rejects non-get methods", func(t *testing.T) {
		rr := httptest.NewRecorder()
		health.HealthGet()(rr, httptest.NewRequest(http.MethodPost, "/v1/health", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
