package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordMarkWrite("create", nil)
	m.RecordMarkWrite("create", errors.New("dup"))
	m.RecordLookup(true)
	m.RecordLookup(false)
	m.RecordLookup(false)
	m.RecordAdminLogin(false)
	m.ObserveHTTPRequest(http.MethodGet, "/api/health", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.markWrites.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.markWrites.WithLabelValues("create", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.markLookups.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adminLogins.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/api/health", "200")))
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.RecordLookup(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mark_lookups_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordMarkWrite("update", nil)
		m.RecordLookup(true)
		m.RecordAdminLogin(true)
		m.ObserveDBQuery("q", time.Millisecond)
		m.RecordCacheOperation(true, time.Millisecond)
		m.ObserveCacheWrite(time.Millisecond)
		m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	})
}
