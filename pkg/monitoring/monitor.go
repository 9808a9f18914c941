package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	RunsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_runs_started_total",
			Help: "Total number of ranked runs started",
		},
	)

	RunsEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_runs_ended_total",
			Help: "Total number of ranked runs that reached a terminal state",
		},
		[]string{"status"},
	)

	RunsFinalized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_runs_finalized_total",
			Help: "Total number of runs folded into a rating",
		},
	)

	AnswersScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_answers_scored_total",
			Help: "Total number of answers scored",
		},
		[]string{"correct"},
	)

	VersionConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_version_conflicts_total",
			Help: "Optimistic-lock conflicts detected on run or rating writes",
		},
		[]string{"row"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RunsStarted)
	prometheus.MustRegister(RunsEnded)
	prometheus.MustRegister(RunsFinalized)
	prometheus.MustRegister(AnswersScored)
	prometheus.MustRegister(VersionConflicts)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
