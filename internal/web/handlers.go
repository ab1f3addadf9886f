package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	maxQuerySize = 10 << 10 // 10KB
	maxTextSize  = 1 << 20  // 1MB
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRefresh(c *gin.Context) {
	added, err := s.pipeline.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"added":   added,
	})
}

func (s *Server) handleTopics(c *gin.Context) {
	topics := s.pipeline.Topics(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"topics":  topics,
		"count":   len(topics),
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	query := c.Query("q")

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query parameter required",
		})
		return
	}

	if len(query) > maxQuerySize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query exceeds maximum size of 10KB",
		})
		return
	}

	k, _ := strconv.Atoi(c.DefaultQuery("k", "0"))

	result := s.pipeline.Query(c.Request.Context(), query, k)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"query":    result.Query,
		"response": result.Response,
		"sources":  result.Sources,
	})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "text field required",
		})
		return
	}

	if len(req.Text) > maxTextSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "text exceeds maximum size of 1MB",
		})
		return
	}

	summary := s.pipeline.Summarize(c.Request.Context(), req.Text)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.pipeline.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func (s *Server) handleClear(c *gin.Context) {
	if err := s.pipeline.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Documents cleared",
	})
}
