package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router   *gin.Engine
	registry *session.Registry
	hub      *SSEHub
}

func newFixture(t *testing.T, opts session.Options, store session.FrameStore) *fixture {
	t.Helper()
	registry := session.NewRegistry(opts)
	hub := NewSSEHub()
	t.Cleanup(hub.Close)
	registry.OnFrame(NewFrameBroadcaster(hub).Listen)
	return &fixture{
		router:   NewRouter(NewHandler(registry, store), hub),
		registry: registry,
		hub:      hub,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (f *fixture) create(t *testing.T, kind string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/instances", gin.H{"kind": kind})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}

func TestListDistributions(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	w := f.do(t, http.MethodGet, "/api/distributions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Distributions []DistributionInfo `json:"distributions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Distributions, 14)
	assert.Equal(t, distribution.KindBinomial, body.Distributions[0].Kind)
	assert.Equal(t, 500.0, body.Distributions[0].Parameters[0].Max)

	var hyper DistributionInfo
	for _, d := range body.Distributions {
		if d.Kind == distribution.KindHypergeometric {
			hyper = d
		}
	}
	assert.Equal(t, []string{"N", "M"}, hyper.Parameters[2].Bound)
}

func TestGetDistribution(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	w := f.do(t, http.MethodGet, "/api/distributions/Student-T", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "student_t", body["kind"])
	assert.Contains(t, body["description"], "Cauchy")

	w = f.do(t, http.MethodGet, "/api/distributions/zipf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
}

func TestInstanceLifecycle(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	id := f.create(t, "hypergeometric")

	w := f.do(t, http.MethodGet, "/api/instances/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["chart_ready"])

	// no width yet: chart is unavailable
	w = f.do(t, http.MethodGet, "/api/instances/"+id+"/chart", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPut, "/api/instances/"+id+"/container", gin.H{"width": 400})
	require.Equal(t, http.StatusOK, w.Code)
	frame := decode(t, w)["frame"].(map[string]interface{})
	assert.Equal(t, 300.0, frame["height"])

	w = f.do(t, http.MethodPut, "/api/instances/"+id+"/params/N", gin.H{"value": 8})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	change := body["change"].(map[string]interface{})
	assert.Equal(t, []interface{}{"M", "K"}, change["clamped"])
	params := body["instance"].(map[string]interface{})["params"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"N": 8.0, "M": 8.0, "K": 8.0}, params)

	w = f.do(t, http.MethodGet, "/api/instances", nil)
	assert.Len(t, decode(t, w)["instances"], 1)

	w = f.do(t, http.MethodDelete, "/api/instances/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodGet, "/api/instances/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetParam_Errors(t *testing.T) {
	f := newFixture(t, session.Options{DefaultWidth: 200}, nil)
	id := f.create(t, "binomial")

	tests := []struct {
		name   string
		param  string
		body   interface{}
		status int
		code   string
	}{
		{"unparseable", "n", gin.H{"value": "ten"}, http.StatusBadRequest, "PARSE_ERROR"},
		{"fractional integer", "n", gin.H{"value": 2.5}, http.StatusBadRequest, "PARSE_ERROR"},
		{"out of range", "p", gin.H{"value": "1.5"}, http.StatusUnprocessableEntity, "CONSTRAINT_VIOLATION"},
		{"trial count past limit", "n", gin.H{"value": "1000000000000000000"}, http.StatusUnprocessableEntity, "CONSTRAINT_VIOLATION"},
		{"unknown parameter", "q", gin.H{"value": 1}, http.StatusNotFound, "NOT_FOUND"},
		{"missing value", "n", gin.H{}, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPut, "/api/instances/"+id+"/params/"+tt.param, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode(t, w)["code"])
		})
	}

	w := f.do(t, http.MethodPut, "/api/instances/"+id+"/params/p", gin.H{"value": "1.5"})
	assert.Equal(t, "p", decode(t, w)["param"])

	w = f.do(t, http.MethodGet, "/api/instances/"+id, nil)
	params := decode(t, w)["params"].(map[string]interface{})
	assert.Equal(t, 10.0, params["n"], "failed edits leave state unchanged")
}

func TestContainerWidthLimit(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	id := f.create(t, "gamma")

	w := f.do(t, http.MethodPut, "/api/instances/"+id+"/container", gin.H{"width": 1000000})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, "CONSTRAINT_VIOLATION", decode(t, w)["code"])

	w = f.do(t, http.MethodPut, "/api/instances/"+id+"/container", gin.H{"width": 4096})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	frame := decode(t, w)["frame"].(map[string]interface{})
	assert.Equal(t, 3072.0, frame["height"])

	// an oversized width on create leaves nothing behind
	w = f.do(t, http.MethodPost, "/api/instances", gin.H{"kind": "gamma", "width": 5000})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, 1, f.registry.Len())
}

func TestBadInstanceIDs(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	w := f.do(t, http.MethodGet, "/api/instances/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/instances/"+core.NewInstanceID().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/api/instances", gin.H{"kind": "zipf"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/api/instances", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetChart_ETag(t *testing.T) {
	f := newFixture(t, session.Options{DefaultWidth: 320}, nil)
	id := f.create(t, "poisson")

	w := f.do(t, http.MethodGet, "/api/instances/"+id+"/chart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/instances/"+id+"/chart", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	f.do(t, http.MethodPut, "/api/instances/"+id+"/params/lambda", gin.H{"value": 7})
	w = f.do(t, http.MethodGet, "/api/instances/"+id+"/chart", nil)
	assert.NotEqual(t, etag, w.Header().Get("ETag"))
}

func TestSurfaceAndReset(t *testing.T) {
	f := newFixture(t, session.Options{DefaultWidth: 240, Resolution: 25}, nil)
	id := f.create(t, "bivariate_normal")

	w := f.do(t, http.MethodPut, "/api/instances/"+id+"/surface", gin.H{"enabled": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	frame := decode(t, w)["frame"].(map[string]interface{})
	assert.Equal(t, true, frame["surface"])

	f.do(t, http.MethodPut, "/api/instances/"+id+"/params/rho", gin.H{"value": 0.5})
	w = f.do(t, http.MethodPost, "/api/instances/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	params := decode(t, w)["params"].(map[string]interface{})
	assert.Equal(t, 0.0, params["rho"])
}

func TestExportChart(t *testing.T) {
	f := newFixture(t, session.Options{DefaultWidth: 200}, nil)
	id := f.create(t, "gamma")
	w := f.do(t, http.MethodPost, "/api/instances/"+id+"/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	store, err := session.NewLocalFrameStore(t.TempDir())
	require.NoError(t, err)
	f = newFixture(t, session.Options{DefaultWidth: 200}, store)
	id = f.create(t, "gamma")
	w = f.do(t, http.MethodPost, "/api/instances/"+id+"/export", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	key := decode(t, w)["key"].(string)
	ok, err := store.FrameExists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetSeries(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	id := f.create(t, "binomial")
	f.do(t, http.MethodPut, "/api/instances/"+id+"/params/n", gin.H{"value": 3})

	w := f.do(t, http.MethodGet, "/api/instances/"+id+"/series", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Equal(t, "x,P(X=x)", lines[0])
	x, y, _ := strings.Cut(lines[1], ",")
	assert.Equal(t, "0", x)
	assert.InDelta(t, 0.125, mustFloat(t, y), 1e-12)

	w = f.do(t, http.MethodGet, "/api/instances/"+id+"/series?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "binomial.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = f.do(t, http.MethodGet, "/api/instances/"+id+"/series?format=ods", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvents_StreamChartUpdates(t *testing.T) {
	f := newFixture(t, session.Options{DefaultWidth: 200}, nil)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	w := f.do(t, http.MethodPost, "/api/instances", gin.H{"kind": "exponential", "session_id": "tab-7"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events?session_id=tab-7", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	waitFor := func(prefix string) string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, prefix) {
				return line
			}
		}
	}
	waitFor("event:ready")
	require.Eventually(t, func() bool { return f.hub.GetClientCount("tab-7") == 1 }, time.Second, 10*time.Millisecond)

	f.do(t, http.MethodPut, "/api/instances/"+id+"/params/lambda", gin.H{"value": 2})
	waitFor("event:" + EventChartUpdated)
	data := waitFor("data:")
	assert.Contains(t, data, id)
	assert.Contains(t, data, "Mean: 0.50, Variance: 0.25")
}

func TestEvents_RequiresSession(t *testing.T) {
	f := newFixture(t, session.Options{}, nil)
	w := f.do(t, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
