// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package server serves dashboards over HTTP. Each dashboard gets a page with
// its widget and chart, a callback endpoint the page posts widget values to,
// and a JSON endpoint returning the raw figure description.
package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/echart"
)

// Options configures a Server.
type Options struct {
	// AssetsHost is where pages load echarts.min.js from. Empty uses
	// echart.DefaultAssetsHost.
	AssetsHost string

	// Logger receives request logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// Server routes requests to a fixed set of dashboards.
type Server struct {
	dashboards map[string]*dashboard.Dashboard
	names      []string
	assetsHost string
	logger     *slog.Logger
	engine     *gin.Engine
}

// updateRequest is the body of POST /d/:name/_update.
type updateRequest struct {
	Widget string           `json:"widget"`
	Inputs dashboard.Values `json:"inputs"`
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// New returns a Server for ds. Dashboard names must be unique and every
// dashboard must have its callback bound.
func New(ds []*dashboard.Dashboard, o Options) (*Server, error) {
	s := &Server{
		dashboards: make(map[string]*dashboard.Dashboard, len(ds)),
		assetsHost: o.AssetsHost,
		logger:     o.Logger,
	}
	if s.assetsHost == "" {
		s.assetsHost = echart.DefaultAssetsHost
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, d := range ds {
		if _, dup := s.dashboards[d.Name]; dup {
			return nil, fmt.Errorf("duplicate dashboard %q", d.Name)
		}
		if !d.Bound() {
			return nil, fmt.Errorf("dashboard %q has no callback", d.Name)
		}
		s.dashboards[d.Name] = d
		s.names = append(s.names, d.Name)
	}
	sort.Strings(s.names)

	e := gin.New()
	e.Use(gin.Recovery(), requestID(), logRequests(s.logger))
	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.GET("/d/:name", s.handlePage)
	e.GET("/d/:name/figure", s.handleFigure)
	e.POST("/d/:name/_update", s.handleUpdate)
	s.engine = e
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.engine }

// Names returns the served dashboard names, sorted.
func (s *Server) Names() []string { return append([]string(nil), s.names...) }

func (s *Server) lookup(c *gin.Context) (*dashboard.Dashboard, bool) {
	d, ok := s.dashboards[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown dashboard %q", c.Param("name"))})
		return nil, false
	}
	return d, true
}

func (s *Server) chartPage(d *dashboard.Dashboard) echart.Page {
	return echart.Page{Title: d.Heading, Theme: d.Theme, AssetsHost: s.assetsHost}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dashboards": len(s.names)})
}

func (s *Server) handleIndex(c *gin.Context) {
	entries := make([]*dashboard.Dashboard, 0, len(s.names))
	for _, name := range s.names {
		entries = append(entries, s.dashboards[name])
	}
	s.render(c, indexTmpl(), indexData{Dashboards: entries})
}

func (s *Server) handlePage(c *gin.Context) {
	d, ok := s.lookup(c)
	if !ok {
		return
	}
	fig, err := d.Initial(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	option, err := echart.Options(fig, s.chartPage(d))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, pageTmpl(), newPageData(d, option, s.assetsHost))
}

// handleFigure returns the figure description for the widget values given
// as query parameters. Missing values take the widget defaults.
func (s *Server) handleFigure(c *gin.Context) {
	d, ok := s.lookup(c)
	if !ok {
		return
	}
	v := dashboard.Values{}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			v[key] = vals[0]
		}
	}
	fig, err := d.Update(c.Request.Context(), d.Widget.ID, v)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fig)
}

// handleUpdate is the callback channel: it re-runs the dashboard callback
// with the posted widget values and returns the new chart options.
func (s *Server) handleUpdate(c *gin.Context) {
	d, ok := s.lookup(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if req.Widget == "" {
		req.Widget = d.Widget.ID
	}

	fig, err := d.Update(c.Request.Context(), req.Widget, req.Inputs)
	if err != nil {
		s.fail(c, err)
		return
	}
	option, err := echart.Options(fig, s.chartPage(d))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"figure": option, "points": fig.PointCount()})
}

// fail maps err onto a JSON error response. Bad widget input is the
// client's fault; anything else is logged as a server error.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, dashboard.ErrBadInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("dashboard callback failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) render(c *gin.Context, tmpl *template.Template, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tmpl.Execute(c.Writer, data); err != nil {
		s.logger.Error("render page", "path", c.Request.URL.Path, "error", err)
	}
}
