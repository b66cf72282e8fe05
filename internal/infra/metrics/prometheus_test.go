//go:build unit

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"commerce-booking/internal/infra/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestCollectors(t *testing.T) {
	c := metrics.New(prometheus.NewRegistry())

	c.ObserveProductionOrder("ok")
	c.ObserveProductionOrder("ok")
	c.ObserveParticipation("participate", "not_found")
	c.ObserveRetry("create_production_order", 1, nil)
	c.SetBreakerState("store", gobreaker.StateOpen)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ProductionOrders.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Participation.WithLabelValues("participate", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.TxRetries.WithLabelValues("create_production_order")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BreakerState.WithLabelValues("store")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := metrics.New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/items/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestsTotal.WithLabelValues("GET", "/items/:id", "204")))
}
