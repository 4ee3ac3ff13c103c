package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
)

// Recorder exposes delivery and notification metrics for Prometheus
type Recorder struct {
	outcomes      *prometheus.CounterVec
	duration      prometheus.Histogram
	notifications *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dxrelay_delivery_outcomes_total",
				Help: "Total number of handled runs by outcome",
			},
			[]string{"outcome", "reason"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dxrelay_delivery_duration_seconds",
				Help:    "Duration of handling one completed run",
				Buckets: prometheus.DefBuckets,
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dxrelay_notifications_total",
				Help: "Total number of run notifications received by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(r.outcomes, r.duration, r.notifications)
	return r
}

// RecordOutcome counts one outcome. Failure causes are free text and are not
// used as label values.
func (r *Recorder) RecordOutcome(outcome model.DeliveryOutcome, elapsed time.Duration) {
	reason := ""
	if outcome.Kind == model.OutcomeSkipped {
		reason = outcome.Reason
	}
	r.outcomes.WithLabelValues(string(outcome.Kind), reason).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// RecordNotification counts a received notification: accepted, rejected or invalid
func (r *Recorder) RecordNotification(result string) {
	r.notifications.WithLabelValues(result).Inc()
}
