package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// getHealth handles GET /api/v1/health
func (s *Server) getHealth(c *gin.Context) {
	status := s.dashboard.Status()
	s.successResponse(c, gin.H{
		"status":      "ok",
		"loaded":      status.Loaded,
		"loaded_at":   status.LoadedAt,
		"failed_keys": status.FailedKeys,
		"time":        time.Now().UTC(),
	})
}

// getMetadata handles GET /api/v1/metadata
func (s *Server) getMetadata(c *gin.Context) {
	s.successResponse(c, s.dashboard.Metadata())
}

// getOverview handles GET /api/v1/overview
func (s *Server) getOverview(c *gin.Context) {
	s.successResponse(c, s.dashboard.Overview())
}

// getTags handles GET /api/v1/tags
func (s *Server) getTags(c *gin.Context) {
	s.successResponse(c, s.dashboard.TagList())
}

// postReload handles POST /api/v1/reload
func (s *Server) postReload(c *gin.Context) {
	if err := s.dashboard.Reload(c.Request.Context()); err != nil {
		s.errorResponse(c, http.StatusBadGateway, "Failed to reload snapshot: "+err.Error())
		return
	}
	s.successResponse(c, s.dashboard.Status())
}

// getGroupMetrics handles GET /api/v1/groups/:tag
func (s *Server) getGroupMetrics(c *gin.Context) {
	s.successResponse(c, s.dashboard.GroupMetrics(c.Param("tag")))
}

// getAdminStats handles GET /api/v1/admin/stats
func (s *Server) getAdminStats(c *gin.Context) {
	s.successResponse(c, s.dashboard.AdminStats())
}
