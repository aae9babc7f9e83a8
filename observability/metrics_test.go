package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters_Are_Per_Instance(t *testing.T) {
	req := require.New(t)
	first := NewMetrics(false)
	second := NewMetrics(false)

	// When only the first sink is used
	first.IncPersisted()
	first.IncPersisted()
	first.IncDelivered()
	first.IncReplay()
	first.IncAckDrop()
	first.IncRateLimitHit()
	first.IncDeliveryFailure()

	// Then its counters moved
	req.Equal(float64(2), testutil.ToFloat64(first.persisted))
	req.Equal(float64(1), testutil.ToFloat64(first.delivered))
	req.Equal(float64(1), testutil.ToFloat64(first.replayed))
	req.Equal(float64(1), testutil.ToFloat64(first.ackDropped))
	req.Equal(float64(1), testutil.ToFloat64(first.rateLimitHits))
	req.Equal(float64(1), testutil.ToFloat64(first.deliveryFailures))

	// And the second one is untouched
	req.Zero(testutil.ToFloat64(second.persisted))
}

func TestMetrics_Handler_Exposes_Counter_Names(t *testing.T) {
	req := require.New(t)
	metrics := NewMetrics(false)
	metrics.IncPersisted()
	metrics.ObserveProcess(1024, 12.5)

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	req.Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	for _, name := range []string{
		"messages_persisted_total 1",
		"messages_delivered_total 0",
		"replay_count_total",
		"ack_drop_count_total",
		"rate_limit_hits_total",
		"delivery_failures_total",
		"process_heartbeat_rss_bytes 1024",
	} {
		req.Contains(body, name)
	}
}
