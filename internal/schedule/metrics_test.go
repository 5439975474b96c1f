package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/proctorhq/proctor/internal/exam/domain"
)

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestMetrics_CountersFollowEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	clock := &fakeClock{t: baseTime}
	sink := newFakeSink()
	sched := New(Config{
		Sink:  sink,
		Clock: clock,
		Meter: provider.Meter("test"),
	})

	sched.AddInstructions([]*domain.Instruction{
		instrAt(1, "call", -15*time.Minute),
		instrAt(1, "start", 30*time.Second),
		instrAt(1, "finish", time.Minute),
	})

	// The first slot is already past its grace window at baseTime; the other
	// two are not due yet.
	sched.Tick()
	assert.EqualValues(t, 1, counterValue(t, reader, "proctor.announcements.expired"))

	// Manual play of the last slot fast-forwards the middle one.
	sched.Play(2, true)
	assert.EqualValues(t, 1, counterValue(t, reader, "proctor.announcements.skipped"))
	assert.EqualValues(t, 1, counterValue(t, reader, "proctor.manual_overrides"))

	// Unknown duration presumes completion on the next tick.
	clock.Advance(time.Second)
	sched.Tick()
	assert.EqualValues(t, 1, counterValue(t, reader, "proctor.announcements.played"))
}

func TestMetrics_NilMeterIsInert(t *testing.T) {
	h := newHarness(baseTime)
	h.sched.AddInstructions([]*domain.Instruction{instrAt(1, "start", 0)})
	h.sched.Tick()
	assert.Len(t, h.eventsOfType(EventTriggered), 1)
}
