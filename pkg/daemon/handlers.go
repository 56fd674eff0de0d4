package daemon

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contribgrid/contribgrid/pkg/events"
	"github.com/contribgrid/contribgrid/pkg/grid"
	"github.com/contribgrid/contribgrid/pkg/version"
)

// Router returns the HTTP routes of the daemon.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/contributions.svg", s.getSVG)
	router.GET("/contributions.json", s.getGrid)
	router.GET("/events", s.streamEvents)
	router.POST("/refresh", s.postRefresh)
	router.GET("/schedule", s.getSchedule)
	router.POST("/schedule/skip", s.skipSchedule)
	router.GET("/version", getVersion)

	return router
}

func (s *Server) getSVG(c *gin.Context) {
	res, _ := s.Latest()
	if res == nil {
		c.String(http.StatusServiceUnavailable, ErrNotReady.Error())
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Last-Modified", res.GeneratedAt.Format(http.TimeFormat))
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(res.SVG))
}

type gridResponse struct {
	Login       string       `json:"login"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Summary     grid.Summary `json:"summary"`
	Weeks       grid.Grid    `json:"weeks"`
	GeneratedAt time.Time    `json:"generatedAt"`
	LastError   string       `json:"lastError,omitempty"`
}

func (s *Server) getGrid(c *gin.Context) {
	res, lastErr := s.Latest()
	if res == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": ErrNotReady.Error()})
		return
	}

	from, to := res.Grid.Span()
	resp := gridResponse{
		Login:       res.Login,
		From:        from.Format(grid.DateLayout),
		To:          to.Format(grid.DateLayout),
		Summary:     res.Summary,
		Weeks:       res.Grid,
		GeneratedAt: res.GeneratedAt,
	}
	if lastErr != nil {
		resp.LastError = lastErr.Error()
	}
	c.IndentedJSON(http.StatusOK, resp)
}

func (s *Server) postRefresh(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), refreshTimeout)
	defer cancel()

	if err := s.Refresh(ctx); err != nil {
		c.IndentedJSON(http.StatusBadGateway, err.Error())
		_ = c.AbortWithError(http.StatusBadGateway, err)
		return
	}

	res, _ := s.Latest()
	c.IndentedJSON(http.StatusOK, res.Summary)
}

func (s *Server) getSchedule(c *gin.Context) {
	next, running := s.scheduler.Status()
	c.IndentedJSON(http.StatusOK, gin.H{
		"schedule": s.conf.Schedule(),
		"nextRun":  next,
		"running":  running,
	})
}

func (s *Server) skipSchedule(c *gin.Context) {
	if err := s.scheduler.Skip(); err != nil {
		c.IndentedJSON(http.StatusConflict, err.Error())
		_ = c.AbortWithError(http.StatusConflict, err)
		return
	}
	next, _ := s.scheduler.Status()
	c.IndentedJSON(http.StatusOK, gin.H{"nextRun": next})
}

// streamEvents relays hub events to the client as server-sent events until
// the client goes away. The last refresh is sent first.
func (s *Server) streamEvents(c *gin.Context) {
	ch := s.hub.Subscribe(events.GridRefreshed)
	defer s.hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.GitCommit,
	})
}
