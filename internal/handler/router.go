package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"commerce-booking/internal/domain/user"
	"commerce-booking/internal/handler/api"
	"commerce-booking/internal/handler/middleware"
	"commerce-booking/internal/infra/metrics"
	"commerce-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Production    *api.ProductionHandler
	Inventory     *api.InventoryHandler
	Participation *api.ParticipationHandler
	Directory     *api.DirectoryHandler
}

type Observability struct {
	Logger     *middleware.Logger
	Collectors *metrics.Collectors
	Gatherer   prometheus.Gatherer
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, obs Observability) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, h, authMiddleware, rateLimiter, obs)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(obs.Logger.LoggingMiddleware())
	engine.Use(obs.Collectors.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, obs Observability) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		orders := apiGroup.Group("/production-orders")
		addRoutes(orders, []route{
			{
				Method:  http.MethodPost,
				Path:    "",
				Handler: h.Production.Create,
				Mw:      []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)},
			},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Production.Get},
		})

		addRoutes(apiGroup.Group("/inventory"), []route{
			{Method: http.MethodGet, Path: "/:productId", Handler: h.Inventory.Get},
		})

		participants := apiGroup.Group("/events/:id/participants")
		participants.Use(rateLimiter.Middleware())
		addRoutes(participants, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Participation.List},
			{Method: http.MethodPost, Path: "", Handler: h.Participation.Join},
			{Method: http.MethodGet, Path: "/me", Handler: h.Participation.Status},
			{Method: http.MethodDelete, Path: "/me", Handler: h.Participation.Cancel},
		})

		addRoutes(apiGroup.Group("/directory"), []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Directory.Lookup},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
