package schedule

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// metrics records scheduler activity. A nil receiver is valid and records
// nothing, so the scheduler runs unchanged without a meter configured.
type metrics struct {
	played  metric.Int64Counter
	skipped metric.Int64Counter
	expired metric.Int64Counter
	manual  metric.Int64Counter
	tickMs  metric.Float64Histogram
}

func newMetrics(meter metric.Meter) *metrics {
	if meter == nil {
		return nil
	}
	m := &metrics{}
	m.played, _ = meter.Int64Counter("proctor.announcements.played",
		metric.WithDescription("Announcements that finished playback"))
	m.skipped, _ = meter.Int64Counter("proctor.announcements.skipped",
		metric.WithDescription("Announcements skipped by manual fast-forward"))
	m.expired, _ = meter.Int64Counter("proctor.announcements.expired",
		metric.WithDescription("Announcements that outlived their grace window"))
	m.manual, _ = meter.Int64Counter("proctor.manual_overrides",
		metric.WithDescription("Announcements started by the operator"))
	m.tickMs, _ = meter.Float64Histogram("proctor.tick.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Wall time of one scheduling pass"))
	return m
}

func (m *metrics) recordTick(d time.Duration) {
	if m == nil || m.tickMs == nil {
		return
	}
	m.tickMs.Record(context.Background(), float64(d.Microseconds())/1000.0)
}

func (m *metrics) recordEvent(ev Event) {
	if m == nil {
		return
	}
	ctx := context.Background()
	switch ev.Type {
	case EventCompleted:
		if m.played != nil {
			m.played.Add(ctx, 1)
		}
	case EventFastForwarded:
		if m.skipped != nil {
			m.skipped.Add(ctx, 1)
		}
	case EventExpired:
		if m.expired != nil {
			m.expired.Add(ctx, 1)
		}
	case EventTriggered:
		if ev.Manual && m.manual != nil {
			m.manual.Add(ctx, 1)
		}
	}
}
