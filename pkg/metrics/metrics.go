// Package metrics 注册 Prometheus 指标。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vtufest",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "method", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vtufest",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	assignmentOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vtufest",
		Subsystem: "assignment",
		Name:      "operations_total",
		Help:      "Event assignment actions by action and outcome kind.",
	}, []string{"action", "outcome"})
)

// ObserveHTTP 记录一次 HTTP 请求
func ObserveHTTP(route, method string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route, method).Observe(latency.Seconds())
}

// ObserveAssignment 记录一次赛项分配操作结果，outcome 为 "ok" 或错误类别
func ObserveAssignment(action, outcome string) {
	assignmentOps.WithLabelValues(action, outcome).Inc()
}
