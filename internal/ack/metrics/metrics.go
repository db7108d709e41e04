package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the acknowledgment module.
type Metrics struct {
	// Acknowledgments generated, by obligation type
	Generated *prometheus.CounterVec

	Completed         prometheus.Counter
	MarkedOverdue     prometheus.Counter
	EscalationsIssued prometheus.Counter
}

// New creates a new Metrics instance with all acknowledgment module metrics
// registered.
func New() *Metrics {
	return &Metrics{
		Generated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "comply_acknowledgments_generated_total",
			Help: "Total acknowledgment obligations generated by type",
		}, []string{"type"}), // type: "NEW_HIRE", "PERIODIC", "MANUAL"

		Completed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comply_acknowledgments_completed_total",
			Help: "Total acknowledgments completed",
		}),
		MarkedOverdue: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comply_acknowledgments_marked_overdue_total",
			Help: "Total acknowledgments transitioned to OVERDUE by the sweep",
		}),
		EscalationsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comply_escalations_issued_total",
			Help: "Total escalation records issued for overdue acknowledgments",
		}),
	}
}

// IncrementGenerated records generated obligations of one type.
func (m *Metrics) IncrementGenerated(ackType string, count int) {
	if m != nil && count > 0 {
		m.Generated.WithLabelValues(ackType).Add(float64(count))
	}
}

// IncrementCompleted records a completion.
func (m *Metrics) IncrementCompleted() {
	if m != nil {
		m.Completed.Inc()
	}
}

// AddMarkedOverdue records rows flipped by an overdue sweep.
func (m *Metrics) AddMarkedOverdue(count int) {
	if m != nil && count > 0 {
		m.MarkedOverdue.Add(float64(count))
	}
}

// IncrementEscalationsIssued records one issued escalation.
func (m *Metrics) IncrementEscalationsIssued() {
	if m != nil {
		m.EscalationsIssued.Inc()
	}
}
