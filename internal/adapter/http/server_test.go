package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "mars-weather-etl/internal/adapter/http"
	"mars-weather-etl/internal/domain"
	"mars-weather-etl/internal/pipeline"
)

type mockProvider struct {
	result *pipeline.Result
}

func (m *mockProvider) CheckReadiness(_ context.Context) error {
	if m.result == nil {
		return errors.New("no dataset yet")
	}
	return nil
}

func (m *mockProvider) Result() *pipeline.Result { return m.result }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(result *pipeline.Result) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockProvider{result: result}, discardLogger())
}

func get(t *testing.T, srv *httpadapter.Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Observations: []domain.Observation{
			{DayKey: "2016-05-01", Season: domain.SeasonSpring, MinTemp: -77, MaxTemp: -10, Pressure: 733},
		},
		Seasonal: []domain.SeasonalAverage{
			{Season: domain.SeasonSpring, MinTemp: -77, MaxTemp: -10, Pressure: 733, Count: 1},
		},
		Opacity:    []domain.OpacityCount{{Opacity: "Sunny", Count: 1}},
		HasOpacity: true,
	}
}

func TestHealthzReturns200(t *testing.T) {
	rec, body := get(t, newTestServer(nil), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzBeforeAndAfterRun(t *testing.T) {
	rec, body := get(t, newTestServer(nil), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", body["status"])

	rec, body = get(t, newTestServer(sampleResult()), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec, _ := get(t, newTestServer(nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestObservationsView(t *testing.T) {
	rec, body := get(t, newTestServer(sampleResult()), "/api/observations")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	observations, ok := body["observations"].([]any)
	require.True(t, ok)
	require.Len(t, observations, 1)
	first := observations[0].(map[string]any)
	assert.Equal(t, "Spring", first["season"])
	assert.Equal(t, "2016-05-01", first["day"])
}

func TestObservationsViewBeforeRunReturns503(t *testing.T) {
	rec, body := get(t, newTestServer(nil), "/api/observations")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body["error"], "not loaded")
}

func TestSeasonsView(t *testing.T) {
	rec, body := get(t, newTestServer(sampleResult()), "/api/seasons")

	assert.Equal(t, http.StatusOK, rec.Code)
	seasons, ok := body["seasons"].([]any)
	require.True(t, ok)
	require.Len(t, seasons, 1)
	first := seasons[0].(map[string]any)
	assert.Equal(t, "Spring", first["season"])
	assert.Equal(t, -77.0, first["min_temp"])
}

func TestOpacityView(t *testing.T) {
	t.Run("available with counts", func(t *testing.T) {
		rec, body := get(t, newTestServer(sampleResult()), "/api/opacity")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["available"])
		counts := body["counts"].([]any)
		require.Len(t, counts, 1)
	})

	t.Run("column absent reports unavailable", func(t *testing.T) {
		result := sampleResult()
		result.HasOpacity = false
		result.Opacity = nil

		rec, body := get(t, newTestServer(result), "/api/opacity")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["available"])
		assert.NotContains(t, body, "counts")
	})

	t.Run("column present with no values reports empty list", func(t *testing.T) {
		result := sampleResult()
		result.Opacity = nil

		rec, body := get(t, newTestServer(result), "/api/opacity")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["available"])
		counts, ok := body["counts"].([]any)
		require.True(t, ok)
		assert.Empty(t, counts)
	})
}
