package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDelivery(t *testing.T) {
	c := NewCollector()

	c.ObserveDelivery("farmer", "sms", nil)
	c.ObserveDelivery("farmer", "sms", nil)
	c.ObserveDelivery("recipient", "whatsapp", errors.New("boom"))
	c.ObserveDispatch()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Deliveries("farmer", "sms", OutcomeSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Deliveries("recipient", "whatsapp", OutcomeFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Deliveries("recipient", "whatsapp", OutcomeSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Dispatches()))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveDelivery("farmer", "sms", nil)
		c.ObserveDispatch()
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	c := NewCollector()
	c.ObserveDelivery("direct", "sms", nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `notify_relay_deliveries_total{channel="sms",outcome="sent",party="direct"} 1`)
}
