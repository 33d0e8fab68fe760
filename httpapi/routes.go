package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathfinder_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// RegisterRoutes registers the API under rg.
//
//	GET  /health
//	POST /solve
//	POST /verify
//	POST /kb/clauses
//	POST /kb/entails
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rg.GET("/health", handlers.HandleHealth)
	rg.POST("/solve", handlers.HandleSolve)
	rg.POST("/verify", handlers.HandleVerify)

	knowledge := rg.Group("/kb")
	{
		knowledge.POST("/clauses", handlers.HandleAssert)
		knowledge.POST("/entails", handlers.HandleEntails)
	}
}

// NewRouter builds the engine: the API under /v1 plus /metrics.
func NewRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), instrument())
	RegisterRoutes(router.Group("/v1"), handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

func instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
	}
}
