package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bhashaflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bhashaflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// transisi workflow: assign, submit, approve, reassign, correct, release, ...
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bhashaflow_workflow_transitions_total",
			Help: "Workflow transitions applied, by kind, language and action",
		},
		[]string{"kind", "language", "action"},
	)

	UnitsAssigned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bhashaflow_units_assigned_total",
			Help: "Units claimed by the assignment engine",
		},
		[]string{"kind"},
	)

	// backlog slot per status, diisi ulang oleh refresher cron
	SlotBacklog = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bhashaflow_slot_backlog",
			Help: "Language slots per kind, language and status",
		},
		[]string{"kind", "language", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		TransitionsTotal,
		UnitsAssigned,
		SlotBacklog,
	)
}

// Label disimpan selama proses hidup, sedangkan string dari fiber/fasthttp
// menunjuk ke buffer request yang dipakai ulang: selalu salin dulu.
func labels(values ...string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = utils.CopyString(v)
	}
	return out
}

// RecordRequest helper metrik request HTTP.
func RecordRequest(method, route, status string, duration time.Duration) {
	l := labels(method, route, status)
	method, route, status = l[0], l[1], l[2]
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTransition: language kosong -> "-" (transisi level unit).
func RecordTransition(kind, language, action string, n int) {
	if language == "" {
		language = "-"
	}
	if n <= 0 {
		n = 1
	}
	TransitionsTotal.WithLabelValues(labels(kind, language, action)...).Add(float64(n))
}

func RecordAssigned(kind string, n int) {
	UnitsAssigned.WithLabelValues(labels(kind)...).Add(float64(n))
}

// FiberMiddleware mencatat request per route template (bukan path mentah).
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		RecordRequest(utils.CopyString(c.Method()), route, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// Handler: endpoint /metrics lewat adaptor net/http -> fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
