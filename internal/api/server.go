// Package api exposes the dashboard over HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AI2HU/tubedash/internal/logger"
	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/services"
)

const requestIDKey = "request_id"

// Server wraps the gin router and the dashboard service.
type Server struct {
	router     *gin.Engine
	server     *http.Server
	dashboard  *services.DashboardService
	corsOrigin string
}

// NewServer creates a new API server.
func NewServer(dashboard *services.DashboardService, corsOrigin string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:     gin.New(),
		dashboard:  dashboard,
		corsOrigin: corsOrigin,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(s.corsMiddleware())

	s.setupRoutes()
	return s
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start(host string, port int) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("Starting API server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/health", s.getHealth)
		v1.GET("/metadata", s.getMetadata)
		v1.GET("/overview", s.getOverview)
		v1.GET("/tags", s.getTags)
		v1.POST("/reload", s.postReload)

		v1.GET("/ranking", s.getRanking)
		v1.GET("/videos", s.getVideos)
		v1.GET("/top", s.getTopChannels)
		v1.GET("/benchmark", s.getBenchmark)
		v1.GET("/predictions", s.getPredictions)
		v1.GET("/periods", s.getPeriods)
		v1.GET("/keywords", s.getKeywords)

		v1.GET("/share", s.getShare)
		v1.GET("/trend", s.getTagTrend)
		v1.GET("/channels/:name/trend", s.getChannelTrend)
		v1.GET("/words", s.getTopWords)
		v1.GET("/groups/:tag", s.getGroupMetrics)
		v1.GET("/admin/stats", s.getAdminStats)

		v1.GET("/export/:dataset", s.getExport)
		v1.GET("/export-share", s.getExportShare)
		v1.GET("/export-words", s.getExportWords)
	}
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%v)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := s.corsOrigin
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) successResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success:   true,
		Data:      data,
		RequestID: c.GetString(requestIDKey),
	})
}

func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{
		Success:   false,
		Error:     message,
		RequestID: c.GetString(requestIDKey),
	})
}
