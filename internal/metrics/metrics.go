// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "warbler_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	Signups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_signups_total",
		Help: "Total number of accounts created",
	})

	// Logins counts login attempts by result (success, failure).
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_logins_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	// LikesToggled counts like toggles by resulting state (liked, unliked).
	LikesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_likes_toggled_total",
		Help: "Total number of like toggles",
	}, []string{"result"})

	// RedisErrors counts failed redis commands by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})

	// RateLimited counts requests rejected by the rate limiter by route.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"route"})
)
