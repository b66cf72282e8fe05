package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Collectors holds every metric the service exports. Registering on an
// injected registry keeps repeated application builds in tests from colliding.
type Collectors struct {
	// RequestsTotal tracks total HTTP requests
	RequestsTotal *prometheus.CounterVec
	// RequestDuration tracks HTTP request duration
	RequestDuration *prometheus.HistogramVec
	// ProductionOrders counts createProductionOrder calls by outcome
	ProductionOrders *prometheus.CounterVec
	// Participation counts participant set changes by action and outcome
	Participation *prometheus.CounterVec
	// TxRetries counts transaction attempts that were retried
	TxRetries *prometheus.CounterVec
	// BreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	BreakerState *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		ProductionOrders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "production_orders_total",
				Help: "Production order requests by outcome",
			},
			[]string{"outcome"},
		),
		Participation: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_participation_changes_total",
				Help: "Event participation requests by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		TxRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_transaction_retries_total",
				Help: "Store transactions retried after an optimistic conflict",
			},
			[]string{"op"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"circuit_name"},
		),
	}
}

func (c *Collectors) ObserveProductionOrder(outcome string) {
	c.ProductionOrders.WithLabelValues(outcome).Inc()
}

func (c *Collectors) ObserveParticipation(action, outcome string) {
	c.Participation.WithLabelValues(action, outcome).Inc()
}

func (c *Collectors) ObserveRetry(op string, _ int, _ error) {
	c.TxRetries.WithLabelValues(op).Inc()
}

func (c *Collectors) SetBreakerState(name string, state gobreaker.State) {
	value := float64(0)
	switch state {
	case gobreaker.StateOpen:
		value = 1
	case gobreaker.StateHalfOpen:
		value = 2
	case gobreaker.StateClosed:
		value = 0
	}
	c.BreakerState.WithLabelValues(name).Set(value)
}

// Middleware records request count and latency per route template.
func (c *Collectors) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		endpoint := ctx.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		c.RequestsTotal.WithLabelValues(ctx.Request.Method, endpoint, status).Inc()
		c.RequestDuration.WithLabelValues(ctx.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
