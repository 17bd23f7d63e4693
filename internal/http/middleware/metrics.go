package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of HTTP requests served, partitioned by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Wall-clock latency of HTTP requests, partitioned by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	reqInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests currently inside a handler.",
		},
	)

	respBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Response body sizes in bytes, partitioned by method and route.",
			Buckets: []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576},
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(reqTotal, reqDuration, reqInflight, respBytes)
}

// routeLabel returns the matched route template so that parameterised
// routes collapse into one series (e.g. "/api/v1/matches/:id/messages"
// rather than one label value per match). Unrouted requests fall back
// to the raw URL path.
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// Metrics records per-request Prometheus series: a request counter, a
// latency histogram, a response size histogram and an in-flight gauge.
// Register it once near the top of the chain; the series are exported
// by the /metrics endpoint.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInflight.Inc()

		c.Next()

		reqInflight.Dec()

		method := c.Request.Method
		path := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())

		reqTotal.WithLabelValues(method, path, status).Inc()
		reqDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		// Size is -1 until something is written; skip the sample then.
		if n := c.Writer.Size(); n >= 0 {
			respBytes.WithLabelValues(method, path).Observe(float64(n))
		}
	}
}
