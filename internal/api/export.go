package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/tubedash/internal/export"
)

// getExport handles GET /api/v1/export/:dataset
func (s *Server) getExport(c *gin.Context) {
	doc, err := s.dashboard.Export(c.Param("dataset"), c.DefaultQuery("period", "24h"))
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	s.writeCSV(c, doc)
}

// getExportShare handles GET /api/v1/export-share
func (s *Server) getExportShare(c *gin.Context) {
	s.writeCSV(c, s.dashboard.ExportShare(c.DefaultQuery("period", "24h")))
}

// getExportWords handles GET /api/v1/export-words
func (s *Server) getExportWords(c *gin.Context) {
	s.writeCSV(c, s.dashboard.ExportTopWords())
}

func (s *Server) writeCSV(c *gin.Context, doc export.Document) {
	c.Header("X-Export-ID", doc.ID)
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(doc.Content))
}
