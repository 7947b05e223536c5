package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/internal/runtime"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func newTestServer(t *testing.T, clock id.Clock) *Server {
	t.Helper()
	cfg := cfgpkg.Default()
	w, d := int64(3), int64(1)
	cfg.Node.WorkerID = &w
	cfg.Node.DatacenterID = &d
	cfg.MaxBatch = 100
	rt, err := runtime.Open(runtime.Options{Config: cfg, Clock: clock})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	logger, err := logpkg.ApplyConfig(&logpkg.Config{Level: "error", Format: "text", Output: "null"})
	require.NoError(t, err)
	return New(rt, logger)
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t, id.SystemClock{})
	w := serve(s, http.MethodGet, "/v1/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNodeHandler(t *testing.T) {
	s := newTestServer(t, id.SystemClock{})
	w := serve(s, http.MethodGet, "/v1/node")
	require.Equal(t, http.StatusOK, w.Code)

	var node struct {
		WorkerID     int64 `json:"workerId"`
		DatacenterID int64 `json:"datacenterId"`
		EpochMs      int64 `json:"epochMs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &node))
	assert.Equal(t, int64(3), node.WorkerID)
	assert.Equal(t, int64(1), node.DatacenterID)
	assert.Equal(t, id.DefaultEpochMs, node.EpochMs)
}

func TestNextIDsHandler(t *testing.T) {
	s := newTestServer(t, id.NewManualClock(id.DefaultEpochMs+9))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := serve(s, method, "/v1/ids?count=5")
		require.Equal(t, http.StatusOK, w.Code, method)

		var resp struct {
			IDs []id.ID `json:"ids"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.IDs, 5)
		for i := 1; i < len(resp.IDs); i++ {
			assert.Greater(t, resp.IDs[i], resp.IDs[i-1])
		}
	}

	w := serve(s, http.MethodGet, "/v1/ids")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestNextIDsBadCount(t *testing.T) {
	s := newTestServer(t, id.SystemClock{})
	for _, q := range []string{"0", "abc", "101"} {
		w := serve(s, http.MethodGet, "/v1/ids?count="+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestNextIDsClockRegression(t *testing.T) {
	clock := id.NewManualClock(id.DefaultEpochMs + 50)
	s := newTestServer(t, clock)
	require.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/v1/ids").Code)

	clock.Set(id.DefaultEpochMs + 40)
	w := serve(s, http.MethodGet, "/v1/ids")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestDecodeHandler(t *testing.T) {
	s := newTestServer(t, id.SystemClock{})
	// offset 1000, datacenter 1, worker 1, sequence 0
	w := serve(s, http.MethodGet, "/v1/ids/4194439168")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "4194439168", resp["id"])
	assert.EqualValues(t, 1000, resp["timestampOffsetMs"])
	assert.EqualValues(t, 1, resp["datacenterId"])
	assert.EqualValues(t, 1, resp["workerId"])
	assert.EqualValues(t, 0, resp["sequence"])

	assert.Equal(t, http.StatusBadRequest, serve(s, http.MethodGet, "/v1/ids/nope").Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, id.SystemClock{})
	w := serve(s, http.MethodOptions, "/v1/ids")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
