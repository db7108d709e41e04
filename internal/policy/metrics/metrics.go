package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the policy module.
// Tracks lifecycle transitions: creations, approvals, and the new versions
// spawned by configuration changes.
type Metrics struct {
	PoliciesCreated  prometheus.Counter
	PoliciesApproved prometheus.Counter
	VersionsSpawned  prometheus.Counter
}

// New creates a new Metrics instance with all policy module metrics registered.
func New() *Metrics {
	return &Metrics{
		PoliciesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comply_policies_created_total",
			Help: "Total number of policies created",
		}),
		PoliciesApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comply_policies_approved_total",
			Help: "Total number of policy approvals",
		}),
		VersionsSpawned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "comply_policy_versions_spawned_total",
			Help: "Total number of new policy versions spawned by configuration changes",
		}),
	}
}

// IncrementPoliciesCreated records a successful policy creation.
func (m *Metrics) IncrementPoliciesCreated() {
	if m != nil {
		m.PoliciesCreated.Inc()
	}
}

// IncrementPoliciesApproved records a successful approval.
func (m *Metrics) IncrementPoliciesApproved() {
	if m != nil {
		m.PoliciesApproved.Inc()
	}
}

// IncrementVersionsSpawned records a configuration change spawning a version.
func (m *Metrics) IncrementVersionsSpawned() {
	if m != nil {
		m.VersionsSpawned.Inc()
	}
}
