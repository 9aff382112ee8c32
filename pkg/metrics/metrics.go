// Package metrics defines the Prometheus collectors exposed by the
// metrics server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RuleEvaluationsTotal counts rule evaluation attempts by outcome
	// ("fired", "no_match", "error").
	RuleEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_rule_evaluations_total",
			Help: "Total number of rule evaluation attempts",
		},
		[]string{"rule_id", "outcome"},
	)

	// ActionExecutionsTotal counts action executions by kind and
	// outcome ("ok", "error").
	ActionExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_action_executions_total",
			Help: "Total number of action executions",
		},
		[]string{"kind", "outcome"},
	)

	// PersistenceErrorsTotal counts failed repository operations.
	PersistenceErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "automation_persistence_errors_total",
			Help: "Total number of failed rule persistence operations",
		},
	)

	// PollTicksTotal counts completed poll loop iterations.
	PollTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "automation_poll_ticks_total",
			Help: "Total number of completed scheduler poll ticks",
		},
	)
)

// Collectors returns every collector for registration with a registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RuleEvaluationsTotal,
		ActionExecutionsTotal,
		PersistenceErrorsTotal,
		PollTicksTotal,
	}
}
