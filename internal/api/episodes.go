package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gdc/internal/catalog"
	"github.com/AI2HU/gdc/internal/services"
	"github.com/AI2HU/gdc/internal/shared"
)

// healthCheck handles GET /api/v1/health
func (s *Server) healthCheck(c *gin.Context) {
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			s.errorResponse(c, http.StatusServiceUnavailable, "Counter store unavailable")
			return
		}
	}

	s.successResponse(c, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"episodes":  s.episodeService.Catalog().Len(),
	})
}

// listEpisodes handles GET /api/v1/episodes
func (s *Server) listEpisodes(c *gin.Context) {
	state, err := shared.ParseStateFilter(c)
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid state filter: "+err.Error())
		return
	}

	s.successResponse(c, s.episodeService.List(c.Request.Context(), state))
}

// getFeaturedEpisode handles GET /api/v1/episodes/featured
func (s *Server) getFeaturedEpisode(c *gin.Context) {
	ep, err := s.episodeService.Featured(c.Request.Context())
	if err != nil {
		s.episodeError(c, err)
		return
	}
	s.successResponse(c, ep)
}

// getEpisode handles GET /api/v1/episodes/:id
func (s *Server) getEpisode(c *gin.Context) {
	s.withEpisodeID(c, func(id int) (interface{}, error) {
		return s.episodeService.Get(c.Request.Context(), id)
	})
}

// getNextEpisode handles GET /api/v1/episodes/:id/next
func (s *Server) getNextEpisode(c *gin.Context) {
	s.withEpisodeID(c, func(id int) (interface{}, error) {
		return s.episodeService.Next(c.Request.Context(), id)
	})
}

// getPreviousEpisode handles GET /api/v1/episodes/:id/previous
func (s *Server) getPreviousEpisode(c *gin.Context) {
	s.withEpisodeID(c, func(id int) (interface{}, error) {
		return s.episodeService.Previous(c.Request.Context(), id)
	})
}

// getViews handles GET /api/v1/episodes/:id/views
func (s *Server) getViews(c *gin.Context) {
	s.withEpisodeID(c, func(id int) (interface{}, error) {
		return s.episodeService.Views(c.Request.Context(), id)
	})
}

// recordView handles POST /api/v1/episodes/:id/views
func (s *Server) recordView(c *gin.Context) {
	s.withEpisodeID(c, func(id int) (interface{}, error) {
		return s.episodeService.RecordView(c.Request.Context(), id)
	})
}

func (s *Server) withEpisodeID(c *gin.Context, fn func(id int) (interface{}, error)) {
	id, err := shared.ParseIDParam(c)
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := fn(id)
	if err != nil {
		s.episodeError(c, err)
		return
	}
	s.successResponse(c, data)
}

// episodeError maps service errors to status codes
func (s *Server) episodeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrEpisodeNotFound):
		s.errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotPlayable):
		s.errorResponse(c, http.StatusConflict, err.Error())
	default:
		s.errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

