package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricReplaysAnalyzed = "skilltracker.replays.analyzed"
	metricEventsDelivered = "skilltracker.events.delivered"
	metricReplayDuration  = "skilltracker.replay.duration"

	attrOutcome = "outcome"
)

// Replay outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// durationBuckets covers a cached lookup up to decoding a very long replay.
var durationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// ReplayMetrics holds the instruments recorded per analyzed replay.
type ReplayMetrics struct {
	analyzed  metric.Int64Counter
	delivered metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewReplayMetrics creates the replay instruments from mt.
func NewReplayMetrics(mt metric.Meter) (*ReplayMetrics, error) {
	analyzed, err := mt.Int64Counter(metricReplaysAnalyzed,
		metric.WithDescription("Replays analyzed by outcome"),
		metric.WithUnit("{replay}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricReplaysAnalyzed, err)
	}

	delivered, err := mt.Int64Counter(metricEventsDelivered,
		metric.WithDescription("Replay events delivered to trackers"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEventsDelivered, err)
	}

	duration, err := mt.Float64Histogram(metricReplayDuration,
		metric.WithDescription("Time spent loading and analyzing one replay"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricReplayDuration, err)
	}

	return &ReplayMetrics{analyzed: analyzed, delivered: delivered, duration: duration}, nil
}

// RecordReplay records one analyzed replay. Safe on a nil receiver.
func (rm *ReplayMetrics) RecordReplay(ctx context.Context, outcome string, events int, elapsed time.Duration) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrOutcome, outcome))

	rm.analyzed.Add(ctx, 1, attrs)
	rm.delivered.Add(ctx, int64(events))
	rm.duration.Record(ctx, elapsed.Seconds(), attrs)
}
