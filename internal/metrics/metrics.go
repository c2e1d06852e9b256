// Package metrics defines the Prometheus instruments shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vote flow metrics
var (
	// VotesProcessedTotal tracks processed votes by resulting action and target kind
	VotesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "votes_processed_total",
			Help: "Total processed votes by action (created/updated/removed) and target kind",
		},
		[]string{"action", "target_kind"},
	)

	// VoteFlowDuration tracks the duration of the composed vote flow in seconds
	VoteFlowDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vote_flow_duration_seconds",
			Help:    "Duration of the ledger mutation plus aggregate recompute transaction",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// VoteConflictRetries tracks transparent retries after transaction conflicts
	VoteConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vote_conflict_retries_total",
			Help: "Total vote flows retried after a storage serialization conflict",
		},
	)

	// VotesRateLimited tracks votes rejected by the per-voter rate limiter
	VotesRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "votes_rate_limited_total",
			Help: "Total votes rejected by the per-voter token bucket",
		},
	)
)

// Content metrics
var (
	// QuestionsCreatedTotal tracks created questions
	QuestionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "questions_created_total",
			Help: "Total questions created",
		},
	)

	// AnswersCreatedTotal tracks created answers
	AnswersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "answers_created_total",
			Help: "Total answers created",
		},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)
