package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// getShare handles GET /api/v1/share
func (s *Server) getShare(c *gin.Context) {
	period := c.DefaultQuery("period", "24h")
	share := s.dashboard.Share(period)
	s.successResponse(c, gin.H{
		"share":     share.Value,
		"estimated": share.Estimated,
	})
}

// getTagTrend handles GET /api/v1/trend
func (s *Server) getTagTrend(c *gin.Context) {
	metric := c.DefaultQuery("metric", "views")
	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range", "7"))
	s.successResponse(c, s.dashboard.TagTrend(metric, rangeDays))
}

// getChannelTrend handles GET /api/v1/channels/:name/trend
func (s *Server) getChannelTrend(c *gin.Context) {
	metric := c.DefaultQuery("metric", "views")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	trend := s.dashboard.ChannelTrend(c.Param("name"), metric, days)
	s.successResponse(c, gin.H{
		"channel":   c.Param("name"),
		"metric":    metric,
		"points":    trend.Value,
		"estimated": trend.Estimated,
	})
}

// getTopWords handles GET /api/v1/words
func (s *Server) getTopWords(c *gin.Context) {
	s.successResponse(c, s.dashboard.TopWords())
}
