package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Customer_ID,Age,Gender,Income_Level,Purchase_Channel,Purchase_Category,Product_Category,Purchase_Amount,Frequency_of_Purchase,Purchase_Frequency,Brand_Loyalty
C1,30,Female,High,Online,Electronics,Phones,$100.00,4,3,2
C2,45,Male,Middle,In-Store,Apparel,Shoes,"$1,250.50",2,1,4
C3,30,Female,High,Online,Apparel,Shoes,$50.00,5,4,3
`

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	path := filepath.Join(t.TempDir(), "purchases.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	t.Setenv("SHOPSIGHT_DATASET_PATH", path)
	t.Setenv("SHOPSIGHT_LOGGING_LEVEL", "error")

	app, err := NewApplication()
	require.NoError(t, err)
	return app
}

func TestNewApplication_MissingDataset(t *testing.T) {
	t.Setenv("SHOPSIGHT_DATASET_PATH", filepath.Join(t.TempDir(), "nope.csv"))

	_, err := NewApplication()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestApplication_Routes(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.Router)
	defer server.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "healthy", got["status"])

		ds, ok := got["dataset"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "loaded", ds["state"])
		assert.Equal(t, float64(3), ds["rows"])
	})

	t.Run("dashboard options", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/dashboard/options")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string][]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, []string{"In-Store", "Online"}, got["channels"])
	})

	t.Run("dashboard summary with filter", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/dashboard/summary?channel=Online")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, float64(3), got["total_rows"])
		assert.Equal(t, float64(2), got["filtered_rows"])

		kpis, ok := got["kpis"].(map[string]interface{})
		require.True(t, ok)
		assert.InDelta(t, 150.0, kpis["total_revenue"].(float64), 1e-9)
	})

	t.Run("insights", func(t *testing.T) {
		payload := []byte(`{"age":30,"income_level":"High","channel":"Online","category":"Electronics"}`)
		resp, err := http.Post(server.URL+"/api/insights", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "exact", got["match"])
		assert.Equal(t, float64(2), got["segment_size"])
	})

	t.Run("insights report download", func(t *testing.T) {
		payload := []byte(`{"age":30,"income_level":"High","channel":"Online","category":"Electronics"}`)
		resp, err := http.Post(server.URL+"/api/insights/report", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var problem map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
		assert.Equal(t, "/errors/not-found", problem["type"])
	})

	t.Run("request id header", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/health")
		require.NoError(t, err)
		resp.Body.Close()

		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})
}
