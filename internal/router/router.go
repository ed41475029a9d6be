package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/openboard/board-api/internal/handler"
	applicationHandler "github.com/openboard/board-api/internal/handler/application"
	businessHandler "github.com/openboard/board-api/internal/handler/business"
	jobHandler "github.com/openboard/board-api/internal/handler/job"
	notificationHandler "github.com/openboard/board-api/internal/handler/notification"
	preferenceHandler "github.com/openboard/board-api/internal/handler/preference"
	"github.com/openboard/board-api/internal/middleware"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AdminHandler additionally registers admin-gated routes.
type AdminHandler interface {
	Handler
	RegisterAdminRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPath   string
	MetricsPrefix string
	Timeout       time.Duration
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	healthH       *handler.Handler
	notificationH *notificationHandler.Handler
	preferenceH   *preferenceHandler.Handler
	businessH     *businessHandler.Handler
	jobH          *jobHandler.Handler
	applicationH  *applicationHandler.Handler
	metrics       *routerMetrics
	config        Config
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH *handler.Handler,
	notificationH *notificationHandler.Handler,
	preferenceH *preferenceHandler.Handler,
	businessH *businessHandler.Handler,
	jobH *jobHandler.Handler,
	applicationH *applicationHandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		healthH:       healthH,
		notificationH: notificationH,
		preferenceH:   preferenceH,
		businessH:     businessH,
		jobH:          jobH,
		applicationH:  applicationH,
		metrics:       initRouterMetrics(config.MetricsPrefix),
		config:        config,
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	if r.config.MetricsPath != "" {
		r.engine.GET(r.config.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)
	r.notificationH.RegisterRoutes(api)
	r.preferenceH.RegisterRoutes(api)
	r.businessH.RegisterRoutes(api)
	r.jobH.RegisterRoutes(api)
	r.applicationH.RegisterRoutes(api)

	admin := api.Group("/admin", r.auth.Authenticate(), r.auth.RequireAdmin())
	r.notificationH.RegisterAdminRoutes(admin)
	r.businessH.RegisterAdminRoutes(admin)
	r.jobH.RegisterAdminRoutes(admin)
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
