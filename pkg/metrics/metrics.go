package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ledger metrics
	TasksCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aqua_tasks_created_total",
			Help: "Total number of tasks written to the ledger",
		},
		[]string{"type"},
	)

	TasksDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aqua_tasks_deleted_total",
			Help: "Total number of tasks retracted by their owner",
		},
	)

	// Evaluator metrics
	ThresholdEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aqua_threshold_evaluations_total",
			Help: "Total number of threshold comparisons",
		},
		[]string{"sensor", "result"}, // result: fired, quiet, unknown_operator
	)

	// Fan-out metrics
	DispatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aqua_dispatches_total",
			Help: "Total number of sink deliveries attempted",
		},
		[]string{"sink", "result"}, // result: ok, failed, skipped
	)

	PrunedTokensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aqua_pruned_device_tokens_total",
			Help: "Total number of device tokens removed after the push provider rejected them",
		},
	)

	SocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aqua_socket_connections",
			Help: "Current number of live socket connections",
		},
	)

	// Scheduler metrics
	SchedulerTickDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aqua_scheduler_tick_duration_seconds",
			Help:    "Scheduler tick latency in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"scheduler"},
	)

	RuleFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aqua_rule_failures_total",
			Help: "Total number of per-rule processing failures isolated by a scheduler tick",
		},
		[]string{"scheduler"},
	)

	// Ingestion metrics
	IngestionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aqua_ingestion_requests_total",
			Help: "Total number of sensor or husbandry records received",
		},
		[]string{"path", "status"}, // path: sensor, husbandry
	)
)
