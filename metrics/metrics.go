// Package metrics provides Prometheus observability metrics for the balancer.
// It covers the outcome of each balancing run and the health of input parsing.
package metrics

import (
	customerrors "cs-balancer/errors"
	"cs-balancer/models"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// OUTCOME METRICS
// =============================================================================

// AgentsAvailable tracks agents left after removing the away roster.
var AgentsAvailable = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "agents_available",
	Help:      "Number of agents taking part in the last balancing run",
})

// CustomersTotal tracks the size of the customer pool.
var CustomersTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "customers_total",
	Help:      "Number of customers in the last balancing run",
})

// CustomersAssigned tracks customers that ended up with an agent.
var CustomersAssigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "customers_assigned",
	Help:      "Number of customers assigned to an agent in the last balancing run",
})

// CustomersWaiting tracks customers still waiting when the loop stopped. The
// loop stops early once the leader cannot be beaten, so this is not a count of
// unservable customers.
var CustomersWaiting = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "customers_waiting",
	Help:      "Number of customers still waiting when the last balancing run stopped",
})

// LeaderCount tracks the highest number of customers served by a single agent.
var LeaderCount = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Name:      "leader_customers",
	Help:      "Customers served by the leading agent in the last balancing run",
})

// ResultsTotal counts runs by reason (winner, tie, no_agents, ...).
var ResultsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "balancer",
	Name:      "results_total",
	Help:      "Balancing runs by result reason",
}, []string{"reason"})

// =============================================================================
// OPERATIONAL METRICS
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total agent and customer records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse the input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// BalancerDurationSeconds tracks time to run the assignment loop.
var BalancerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "balancer",
	Name:      "duration_seconds",
	Help:      "Time taken to balance customers across agents",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// BalancerRounds tracks how many rounds each run needed.
var BalancerRounds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "balancer",
	Name:      "rounds",
	Help:      "Number of assignment rounds per balancing run",
	Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
})

// =============================================================================
// Helper Functions
// =============================================================================

// Reset resets all outcome gauges before a new balancing run.
func Reset() {
	AgentsAvailable.Set(0)
	CustomersTotal.Set(0)
	CustomersAssigned.Set(0)
	CustomersWaiting.Set(0)
	LeaderCount.Set(0)
}

// Observe records the outcome of a balancing run.
func Observe(outcome models.Outcome, elapsed time.Duration) {
	Reset()
	AgentsAvailable.Set(float64(outcome.Available))
	CustomersTotal.Set(float64(outcome.Customers))
	CustomersAssigned.Set(float64(outcome.Assigned()))
	CustomersWaiting.Set(float64(outcome.Waiting))
	LeaderCount.Set(float64(outcome.Leader.Count))
	ResultsTotal.WithLabelValues(outcome.Reason).Inc()
	BalancerRounds.Observe(float64(len(outcome.Rounds)))
	BalancerDurationSeconds.Observe(elapsed.Seconds())
}

// ObserveParse records the result of parsing an input file.
func ObserveParse(input models.Input, err error, elapsed time.Duration) {
	ParserDurationSeconds.Observe(elapsed.Seconds())
	if err != nil {
		ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return
	}
	ParserRecordsTotal.Add(float64(len(input.Agents) + len(input.Customers)))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, customerrors.ErrMissingID):
		return "missing_id"
	case errors.Is(err, customerrors.ErrMissingScore):
		return "missing_score"
	case errors.Is(err, customerrors.ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, customerrors.ErrInvalidScore):
		return "invalid_score"
	case errors.Is(err, customerrors.ErrDuplicateAgentID):
		return "duplicate_agent_id"
	case errors.Is(err, customerrors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case errors.Is(err, customerrors.ErrNoSection):
		return "no_section"
	default:
		return "malformed"
	}
}

// Handler serves the registry on /metrics and a liveness probe on /healthz.
func Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
