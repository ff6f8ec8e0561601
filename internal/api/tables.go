package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/tubedash/internal/query"
	"github.com/AI2HU/tubedash/internal/services"
	"github.com/AI2HU/tubedash/internal/shared"
)

// Table endpoints accept tag, q, sort, dir, page and (where relevant) period
// query parameters and return a materialized page plus the tab KPIs.

func (s *Server) tableResponse(c *gin.Context, dataset string, kpis any) {
	q := shared.ParseTableQuery(c)

	view, err := s.dashboard.Table(dataset, services.TableOptions{
		Period:  q.Period,
		Tag:     q.Tag,
		Search:  q.Search,
		SortKey: q.SortKey,
		SortDir: q.SortDir,
		Page:    q.Page,
	})
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if kpis != nil {
		s.successResponse(c, gin.H{"table": view, "kpis": kpis})
		return
	}
	s.successResponse(c, view)
}

// getRanking handles GET /api/v1/ranking
func (s *Server) getRanking(c *gin.Context) {
	s.tableResponse(c, query.DatasetRanking, nil)
}

// getVideos handles GET /api/v1/videos
func (s *Server) getVideos(c *gin.Context) {
	s.tableResponse(c, query.DatasetVideos, nil)
}

// getTopChannels handles GET /api/v1/top
func (s *Server) getTopChannels(c *gin.Context) {
	s.tableResponse(c, query.DatasetTop, nil)
}

// getBenchmark handles GET /api/v1/benchmark
func (s *Server) getBenchmark(c *gin.Context) {
	s.tableResponse(c, query.DatasetBenchmark, s.dashboard.BenchmarkSummary())
}

// getPredictions handles GET /api/v1/predictions
func (s *Server) getPredictions(c *gin.Context) {
	s.tableResponse(c, query.DatasetPredictions, s.dashboard.PredictionSummary())
}

// getPeriods handles GET /api/v1/periods
func (s *Server) getPeriods(c *gin.Context) {
	s.tableResponse(c, query.DatasetPeriods, s.dashboard.PeriodSummary())
}

// getKeywords handles GET /api/v1/keywords
func (s *Server) getKeywords(c *gin.Context) {
	s.tableResponse(c, query.DatasetKeywords, s.dashboard.KeywordSummary())
}
