package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRunSuccess(t *testing.T) {
	rec := NewPrometheusRecorder()

	rec.ObserveRun("Joker", "gpt-4o", 12, 34, true, 250*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.runsTotal.WithLabelValues("Joker", "gpt-4o", "success")))
	assert.Equal(t, 12.0, testutil.ToFloat64(rec.tokensTotal.WithLabelValues("Joker", "gpt-4o", "prompt")))
	assert.Equal(t, 34.0, testutil.ToFloat64(rec.tokensTotal.WithLabelValues("Joker", "gpt-4o", "completion")))
}

func TestObserveRunErrorSkipsTokens(t *testing.T) {
	rec := NewPrometheusRecorder()

	rec.ObserveRun("Joker", "gpt-4o", 12, 34, false, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.runsTotal.WithLabelValues("Joker", "gpt-4o", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.tokensTotal.WithLabelValues("Joker", "gpt-4o", "prompt")))
}

func TestRecordersUseIsolatedRegistries(t *testing.T) {
	a := NewPrometheusRecorder()
	b := NewPrometheusRecorder()

	a.ObserveRun("Joker", "gpt-4o", 1, 1, true, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.runsTotal.WithLabelValues("Joker", "gpt-4o", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.runsTotal.WithLabelValues("Joker", "gpt-4o", "success")))
}

func TestHandlerNotNil(t *testing.T) {
	assert.NotNil(t, NewPrometheusRecorder().Handler())
}
