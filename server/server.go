// Package server exposes the resolver over HTTP as JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/vidpool/vidpool/breaker"
	"github.com/vidpool/vidpool/embed"
	"github.com/vidpool/vidpool/endpoint"
	"github.com/vidpool/vidpool/log"
	"github.com/vidpool/vidpool/resolver"
	"github.com/vidpool/vidpool/source"
)

// Server routes HTTP requests to an engine.
type Server struct {
	engine *resolver.Engine
	router *gin.Engine
}

// Option configures the router.
type Option func(*gin.Engine)

// WithCORS answers cross-origin requests from the listed origins. No origins leaves CORS off.
func WithCORS(origins []string) Option {
	return func(router *gin.Engine) {
		if len(origins) == 0 {
			return
		}

		router.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
}

// New builds the router. mode is a gin mode: debug, release or test.
func New(engine *resolver.Engine, mode string, opts ...Option) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	for _, opt := range opts {
		opt(router)
	}

	s := &Server{engine: engine, router: router}

	api := router.Group("/api")
	api.GET("/stream/:id", s.stream)
	api.GET("/search", s.search)
	api.GET("/trending", s.trending)
	api.GET("/comments/:id", s.comments)
	api.GET("/embed/:id", s.embed)
	api.GET("/endpoints", s.endpoints)

	router.GET("/metrics", gin.WrapH(engine.Metrics().Handler()))

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	log.Infof("listening on %s", address)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		}).Debug("request served")
	}
}

// fail maps an engine error onto a status: unavailable is 503, anything else 500.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, source.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(q string, _ int) string {
		return strings.TrimSpace(q)
	}))
}

func (s *Server) stream(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		badRequest(c, "missing id")
		return
	}

	video, err := s.engine.ResolveStream(c.Request.Context(), id, splitList(c.Query("quality"))...)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (s *Server) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		badRequest(c, "missing q")
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "page must be a positive integer")
			return
		}
		page = n
	}

	list, err := s.engine.ResolveSearch(c.Request.Context(), query, page)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) trending(c *gin.Context) {
	list, err := s.engine.ResolveTrending(c.Request.Context(), c.Query("region"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) comments(c *gin.Context) {
	comments, err := s.engine.ResolveComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (s *Server) embed(c *gin.Context) {
	kind := s.engine.Options().EmbedKind
	if raw := c.Query("kind"); raw != "" {
		k, err := embed.ParseKind(raw)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		kind = k
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   c.Param("id"),
		"kind": kind,
		"url":  s.engine.SynthesizeEmbedURL(c.Request.Context(), c.Param("id"), kind),
	})
}

type endpointView struct {
	Name       string              `json:"name"`
	URL        string              `json:"url"`
	Capability endpoint.Capability `json:"capability"`
	Priority   int                 `json:"priority"`
	Dialect    string              `json:"dialect"`
	Eligible   bool                `json:"eligible"`
}

func (s *Server) endpoints(c *gin.Context) {
	tracker := s.engine.Tracker()
	list := s.engine.Registry().All()

	if raw := c.Query("capability"); raw != "" {
		capability, err := endpoint.ParseCapability(raw)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		list = s.engine.Registry().Candidates(capability)
	}

	views := lo.Map(list, func(e endpoint.Endpoint, _ int) endpointView {
		return endpointView{
			Name:       e.Name,
			URL:        e.BaseURL,
			Capability: e.Capability,
			Priority:   e.Priority,
			Dialect:    e.Dialect,
			Eligible:   tracker.Eligible(e),
		}
	})

	c.JSON(http.StatusOK, struct {
		Endpoints []endpointView   `json:"endpoints"`
		Failures  []breaker.Record `json:"failures"`
	}{views, tracker.Records()})
}
