// Package web exposes the pipeline over HTTP.
package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/models"
	"github.com/nitishbaidya/RAG-News/internal/store"
)

// Pipeline is the engine surface the handlers depend on.
// Implementations: rag.Engine.
type Pipeline interface {
	Refresh(ctx context.Context) (int, error)
	Topics(ctx context.Context) []string
	Query(ctx context.Context, text string, k int) models.QueryResult
	Summarize(ctx context.Context, text string) string
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (store.Stats, error)
}

// Server is the news pipeline web server.
type Server struct {
	pipeline Pipeline
	router   *gin.Engine
	log      *logger.Logger
}

// NewServer creates a server with all routes registered.
func NewServer(pipeline Pipeline, log *logger.Logger) *Server {
	router := gin.Default()

	s := &Server{
		pipeline: pipeline,
		router:   router,
		log:      log,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/refresh", s.handleRefresh)
		api.GET("/topics", s.handleTopics)
		api.GET("/query", s.handleQuery)
		api.POST("/summarize", s.handleSummarize)
		api.GET("/stats", s.handleStats)
		api.DELETE("/documents", s.handleClear)
	}

	return s
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	s.log.Info("starting web server", "addr", addr)
	return s.router.Run(addr)
}
