package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	c := New()
	c.ObserveStep("dispatch-x", "success", 2*time.Second)
	c.ObserveDelivery("x", Delivered)
	c.ObserveDelivery("x", Delivered)
	c.ObserveDelivery("x", Failed)
	c.SetPending("x", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.stepsTotal.WithLabelValues("dispatch-x", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.deliveries.WithLabelValues("x", Delivered)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.queuePending.WithLabelValues("x")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "autoblog_queue_deliveries_total")
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveStep("s", "failure", time.Second)
		c.ObserveDelivery("x", Failed)
		c.SetPending("x", 1)
		c.MarkRun(time.Now())
	})
}
