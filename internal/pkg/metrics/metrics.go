package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "folio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	tagsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "tags_created_total",
			Help:      "Tags created implicitly by tag reconciliation.",
		},
	)
	orphanTagsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "tags_orphan_deleted_total",
			Help:      "Tags removed by the orphan sweep.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, tagsCreated, orphanTagsDeleted)
	})
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	code := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

func AddTagsCreated(n int) {
	if n > 0 {
		tagsCreated.Add(float64(n))
	}
}

// TagsCreatedCounter 隐式创建标签的计数器
func TagsCreatedCounter() prometheus.Counter {
	return tagsCreated
}

func AddOrphanTagsDeleted(n int64) {
	if n > 0 {
		orphanTagsDeleted.Add(float64(n))
	}
}
