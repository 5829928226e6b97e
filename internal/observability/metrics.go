package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the RPC and migration collectors. Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	rpcCalls      *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
	migrationRuns *prometheus.CounterVec
	loginAttempts *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		rpcCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbm",
			Name:      "rpc_calls_total",
			Help:      "RPC calls by module, function and outcome code.",
		}, []string{"module", "function", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pkbm",
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"module", "function"}),
		migrationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbm",
			Name:      "migration_runs_total",
			Help:      "Schema migration runs by result.",
		}, []string{"success"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbm",
			Name:      "login_attempts_total",
			Help:      "Authentication attempts by outcome code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.rpcCalls, m.rpcDuration, m.migrationRuns, m.loginAttempts)
	return m
}

func (m *Metrics) ObserveRPC(module, function, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if code == "" {
		code = "OK"
	}
	m.rpcCalls.WithLabelValues(module, function, code).Inc()
	m.rpcDuration.WithLabelValues(module, function).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveMigration(success bool) {
	if m == nil {
		return
	}
	m.migrationRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (m *Metrics) ObserveLogin(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "OK"
	}
	m.loginAttempts.WithLabelValues(code).Inc()
}
