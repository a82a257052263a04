package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics("maintenance")

	m.RecordRequest("/tickets", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/tickets", "GET", 200, 5*time.Millisecond)
	m.RecordError("/tickets/:id", "PATCH", "NOT_FOUND")
	m.RecordSLAEvent("sla_response_breach")
	m.RecordSeedStatement(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/tickets", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/tickets/:id", "PATCH", "NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slaEvents.WithLabelValues("sla_response_breach")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.seedStatements.WithLabelValues("failed")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordSLAEvent("x")
	m.RecordSeedStatement(true)
}

func TestMetricsHandlerServesText(t *testing.T) {
	m := NewMetrics("maintenance")
	m.RecordSLAEvent("sla_resolve_warning")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "maintenance_sla_events_total")
}
