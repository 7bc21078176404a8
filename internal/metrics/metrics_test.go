package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveOperation("assign_member", nil)
	m.ObserveOperation("assign_member", nil)
	m.ObserveOperation("assign_member", errors.New("boom"))

	text := scrape(t, m)
	assert.Contains(t, text, `proposal_service_proposal_operations_total{operation="assign_member",outcome="ok"} 2`)
	assert.Contains(t, text, `proposal_service_proposal_operations_total{operation="assign_member",outcome="error"} 1`)
}

func TestObserveOperationOnNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveOperation("create_proposal", nil) })
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/proposals/{proposalId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.Middleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/proposals/p1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	text := scrape(t, m)
	assert.Contains(t, text, `proposal_service_http_request_duration_seconds_count{code="418",method="GET",route="GET /api/proposals/{proposalId}"} 1`)
	assert.Contains(t, text, `route="unmatched"`)
}
