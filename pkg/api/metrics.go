package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "patnametro_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "patnametro_http_request_duration_seconds",
		Help:    "Histogram for serving HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpRequestDuration)
}

func observeRequest(c *fiber.Ctx, code int, startTime time.Time) {
	route := c.Route().Path

	httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(startTime).Seconds())
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
