package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autoblog/pipeline"
)

// QueueItemView is one queue file as served by GET /api/queue
type QueueItemView struct {
	Name      string               `json:"name"`
	Type      string               `json:"type,omitempty"`
	CreatedAt *time.Time           `json:"created_at,omitempty"`
	Posted    map[string]string    `json:"posted,omitempty"`
	PostedAt  map[string]time.Time `json:"posted_at,omitempty"`
	Error     string               `json:"error,omitempty"`
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) registerPipelineRoutes(r *gin.Engine) {
	g := r.Group("/api")
	g.GET("/status", s.handleStatus)
	g.POST("/start", s.handleStart)
}

func (s *Server) registerQueueRoutes(r *gin.Engine) {
	r.GET("/api/queue", s.handleQueue)
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.runner.Status.Snapshot())
}

// handleStart handles POST /api/start. The run continues in the background.
func (s *Server) handleStart(c *gin.Context) {
	if s.runner.Status.Running() {
		c.JSON(http.StatusConflict, gin.H{"error": pipeline.ErrBusy.Error()})
		return
	}

	go func() {
		if _, err := s.runner.Run(context.Background()); err != nil && !errors.Is(err, pipeline.ErrBusy) {
			s.logger.WithError(err).Error("Pipeline run failed to start")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "started",
		"message": "Pipeline run initiated",
	})
}

// handleQueue handles GET /api/queue
func (s *Server) handleQueue(c *gin.Context) {
	entries, err := s.store.ListQueue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]QueueItemView, 0, len(entries))
	for _, e := range entries {
		v := QueueItemView{Name: e.Name}
		if e.Err != nil {
			v.Error = e.Err.Error()
			views = append(views, v)
			continue
		}
		created := e.Item.CreatedAt
		v.Type = e.Item.Type
		v.CreatedAt = &created
		v.PostedAt = e.Item.PostedAt
		v.Posted = make(map[string]string, len(e.Item.Posted))
		for platform, m := range e.Item.Posted {
			v.Posted[platform] = m.String()
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"items": views, "count": len(views)})
}
