package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gdc/internal/models"
	"github.com/AI2HU/gdc/internal/services"
)

// Pinger reports whether the counter store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the server
type Options struct {
	CORSOrigin string
	RateLimit  float64 // view records per second per client, 0 disables limiting
	RateBurst  int
}

// Server is the REST API of the showcase site
type Server struct {
	router           *gin.Engine
	store            Pinger
	dashboardService *services.DashboardService
	episodeService   *services.EpisodeService
	viewLimiter      *RateLimiter
	corsOrigin       string
}

// NewServer creates the server and registers its routes
func NewServer(store Pinger, dashboard *services.DashboardService, episodes *services.EpisodeService, opts Options) *Server {
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	s := &Server{
		router:           gin.New(),
		store:            store,
		dashboardService: dashboard,
		episodeService:   episodes,
		corsOrigin:       opts.CORSOrigin,
	}
	if opts.RateLimit > 0 {
		s.viewLimiter = NewRateLimiter(opts.RateLimit, opts.RateBurst)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestID(), requestLogger(), gin.CustomRecovery(s.recover), s.cors())

	v1 := s.router.Group("/api/v1")
	v1.GET("/health", s.healthCheck)

	episodes := v1.Group("/episodes")
	episodes.GET("", s.listEpisodes)
	episodes.GET("/featured", s.getFeaturedEpisode)
	episodes.GET("/:id", s.getEpisode)
	episodes.GET("/:id/next", s.getNextEpisode)
	episodes.GET("/:id/previous", s.getPreviousEpisode)
	episodes.GET("/:id/views", s.getViews)
	if s.viewLimiter != nil {
		episodes.POST("/:id/views", s.viewLimiter.Middleware(s.errorResponse), s.recordView)
	} else {
		episodes.POST("/:id/views", s.recordView)
	}

	analytics := v1.Group("/analytics")
	analytics.GET("/daily", s.getDailyStats)
	analytics.GET("/episodes", s.getEpisodeAnalytics)
	analytics.GET("/states", s.getStateDistribution)
	analytics.GET("/traffic", s.getTrafficSources)
	analytics.GET("/overview", s.getOverview)
	analytics.GET("/dashboard", s.getDashboard)

	s.router.NoRoute(func(c *gin.Context) {
		s.errorResponse(c, http.StatusNotFound, "Route not found")
	})
}

// Handler exposes the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close stops background work of the server
func (s *Server) Close() {
	if s.viewLimiter != nil {
		s.viewLimiter.Stop()
	}
}

func (s *Server) successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    data,
	})
}

func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (s *Server) recover(c *gin.Context, err any) {
	s.errorResponse(c, http.StatusInternalServerError, "Internal server error")
}
