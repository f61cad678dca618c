package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the Prometheus collectors exported on /metrics.
// A nil *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	GatewayRequests *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	Submissions     *prometheus.CounterVec
	FeedFallbacks   prometheus.Counter
	Approvals       *prometheus.CounterVec
	TasksExecuted   *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		GatewayRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitbhaskar_gateway_requests_total",
				Help: "Gateway calls by operation and result",
			},
			[]string{"op", "result"},
		),

		GatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fitbhaskar_gateway_request_duration_seconds",
				Help:    "Gateway call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"op"},
		),

		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitbhaskar_blog_submissions_total",
				Help: "Blog submissions by outcome",
			},
			[]string{"outcome"},
		),

		FeedFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fitbhaskar_blog_feed_fallbacks_total",
				Help: "Public feed loads served from the sample posts",
			},
		),

		Approvals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitbhaskar_blog_approvals_total",
				Help: "Approval changes by requested value and result",
			},
			[]string{"approved", "result"},
		),

		TasksExecuted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitbhaskar_tasks_executed_total",
				Help: "Background tasks by type and result",
			},
			[]string{"type", "result"},
		),
	}

	r.registry.MustRegister(
		r.GatewayRequests,
		r.GatewayDuration,
		r.Submissions,
		r.FeedFallbacks,
		r.Approvals,
		r.TasksExecuted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Registry) ObserveGateway(op string, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.GatewayRequests.WithLabelValues(op, result(err)).Inc()
	r.GatewayDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (r *Registry) ObserveSubmission(outcome string) {
	if r == nil {
		return
	}
	r.Submissions.WithLabelValues(outcome).Inc()
}

func (r *Registry) ObserveFallback() {
	if r == nil {
		return
	}
	r.FeedFallbacks.Inc()
}

func (r *Registry) ObserveApproval(approved string, err error) {
	if r == nil {
		return
	}
	r.Approvals.WithLabelValues(approved, result(err)).Inc()
}

func (r *Registry) ObserveTask(taskType string, err error) {
	if r == nil {
		return
	}
	r.TasksExecuted.WithLabelValues(taskType, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
