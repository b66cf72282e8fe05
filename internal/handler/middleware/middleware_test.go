//go:build unit

package middleware_test

import (
	"errors"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"commerce-booking/internal/domain/user"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/config"
	"commerce-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	tokens map[string]struct {
		id   string
		role user.Role
	}
}

func (v stubValidator) ValidateToken(token string) (string, user.Role, error) {
	if t, ok := v.tokens[token]; ok {
		return t.id, t.role, nil
	}
	return "", "", errors.New("invalid token")
}

func newValidator() stubValidator {
	return stubValidator{tokens: map[string]struct {
		id   string
		role user.Role
	}{
		"viewer-token":   {"u-viewer", user.RoleViewer},
		"operator-token": {"u-operator", user.RoleOperator},
	}}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(newValidator())

	router := gin.New()
	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": string(role)})
	}
	router.GET("/me", auth.RequireAuth(), whoami)
	router.POST("/orders", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleOperator), whoami)

	t.Run("bearer header", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "viewer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "u-viewer", body["id"])
	})

	t.Run("access token cookie", func(t *testing.T) {
		cookies := []*http.Cookie{{Name: "access_token", Value: "operator-token"}}
		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/me", nil, cookies, "")

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "u-operator", body["id"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "forged")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("role below minimum", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/orders", nil, "viewer-token")
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})

	t.Run("role at minimum", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/orders", nil, "operator-token")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{PerMinute: 1, Burst: 2}, clock.NewRealClock())

	router := gin.New()
	router.GET("/limited", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/limited", nil, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec := httptest.PerformRequest(t, router, http.MethodGet, "/limited", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Rate limit exceeded")
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clk := clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{PerMinute: 60, Burst: 5, IdleTTL: time.Minute}, clk)

	router := gin.New()
	router.GET("/limited", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	call := func(ip string) {
		req := nethttptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = ip + ":40000"
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	for i := range 100 {
		call(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 100, limiter.Clients())

	clk.Add(45 * time.Second)
	call("10.0.0.1")

	clk.Add(30 * time.Second)
	call("10.0.1.1")

	// 10.0.0.1 was seen 30s ago; the rest have been idle for 75s
	assert.Equal(t, 2, limiter.Clients())
}

func TestCustomRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CustomRecovery())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/panic", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
}
