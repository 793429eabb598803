package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrolcli/internal/services"
)

const testHistory = "02-Aug-2014 10:00,Smith,Jane,123,jsmith,Removed\n" +
	"30-Jul-2014 09:00,Smith,Jane,123,jsmith,Added\n" +
	"28-Jul-2014 12:00,Jones,Bob,456,bjones,Added\n"

func newTestHandler(t *testing.T, history string) *EnrolmentHandler {
	t.Helper()
	inputPath := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(history), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewEnrolmentService(logger)
	return NewEnrolmentHandler(svc, inputPath, "Student enrolments over time", 50, 100, logger)
}

func doRequest(h *EnrolmentHandler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetSeries(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/series?epoch=28-Jul-2014")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Epoch   string `json:"epoch"`
		Days    []int  `json:"days"`
		Counts  []int  `json:"counts"`
		Summary *struct {
			Maximum int `json:"maximum"`
			Current int `json:"current"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "28-Jul-2014", resp.Epoch)
	assert.Equal(t, []int{0, 1, 4}, resp.Days)
	assert.Equal(t, []int{1, 2, 1}, resp.Counts)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 2, resp.Summary.Maximum)
	assert.Equal(t, 1, resp.Summary.Current)
}

func TestGetSeriesWindowOverride(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/series?epoch=28-Jul-2014&low=0&high=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Days   []int `json:"days"`
		Counts []int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int{0}, resp.Days)
	assert.Equal(t, []int{1}, resp.Counts)
}

func TestGetSeriesEmptyWindow(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/series?epoch=28-Jul-2016&low=0&high=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Days    []int            `json:"days"`
		Counts  []int            `json:"counts"`
		Summary *json.RawMessage `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Days)
	assert.Empty(t, resp.Counts)
	assert.Nil(t, resp.Summary, "summary must be null for an empty window")
}

func TestGetSeriesValidation(t *testing.T) {
	h := newTestHandler(t, testHistory)

	tests := []struct {
		name   string
		target string
	}{
		{"missing epoch", "/series"},
		{"bad epoch", "/series?epoch=2014-07-28"},
		{"negative low", "/series?epoch=28-Jul-2014&low=-1"},
		{"non-numeric high", "/series?epoch=28-Jul-2014&high=ten"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetSeriesMissingEpochErrorCode(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/series")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_PARAMETER", resp.ErrorCode)
}

func TestGetSeriesMissingInput(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewEnrolmentService(logger)
	h := NewEnrolmentHandler(svc, filepath.Join(t.TempDir(), "absent.csv"), "t", 50, 100, logger)

	rec := doRequest(h, "/series?epoch=28-Jul-2014")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetChart(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/chart?epoch=28-Jul-2014")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "Days from 28-Jul-2014")
	assert.Contains(t, body, "Number of enrolled students")
}

func TestGetChartEmptyWindow(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/chart?epoch=28-Jul-2016&low=0&high=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no data")
}

func TestGetVegaLite(t *testing.T) {
	h := newTestHandler(t, testHistory)

	rec := doRequest(h, "/vega?epoch=28-Jul-2014&title=CS101")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "CS101", spec["title"])
	assert.Contains(t, spec["$schema"], "vega-lite")
}

func TestServeDashboard(t *testing.T) {
	handler := ServeDashboard("Student enrolments over time", 50, 100)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?epoch=28-Jul-2014", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "Student enrolments over time"))
	assert.Contains(t, body, "/api/enrolment/chart?epoch=28-Jul-2014")
}
