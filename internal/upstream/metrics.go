package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_upstream_requests_total",
		Help: "Platform API calls issued by the gateway, by method, resource area and status class.",
	}, []string{"method", "resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_upstream_request_duration_seconds",
		Help:    "Platform API call latency, by method and resource area.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"})
)
