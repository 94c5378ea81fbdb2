package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gdc/internal/shared"
)

// getDailyStats handles GET /api/v1/analytics/daily
func (s *Server) getDailyStats(c *gin.Context) {
	s.successResponse(c, s.dashboardService.Daily())
}

// getEpisodeAnalytics handles GET /api/v1/analytics/episodes
func (s *Server) getEpisodeAnalytics(c *gin.Context) {
	s.withLimit(c, func(limit int) interface{} {
		return s.dashboardService.Episodes(limit)
	})
}

// getStateDistribution handles GET /api/v1/analytics/states
func (s *Server) getStateDistribution(c *gin.Context) {
	s.withLimit(c, func(limit int) interface{} {
		return s.dashboardService.States(limit)
	})
}

// getTrafficSources handles GET /api/v1/analytics/traffic
func (s *Server) getTrafficSources(c *gin.Context) {
	s.withLimit(c, func(limit int) interface{} {
		return s.dashboardService.Traffic(limit)
	})
}

// getOverview handles GET /api/v1/analytics/overview
func (s *Server) getOverview(c *gin.Context) {
	s.successResponse(c, s.dashboardService.Overview())
}

// getDashboard handles GET /api/v1/analytics/dashboard
func (s *Server) getDashboard(c *gin.Context) {
	s.successResponse(c, s.dashboardService.Dashboard())
}

func (s *Server) withLimit(c *gin.Context, fn func(limit int) interface{}) {
	limit, err := shared.ParseLimit(c)
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid limit: "+err.Error())
		return
	}
	s.successResponse(c, fn(limit))
}
