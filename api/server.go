// Package api provides the HTTP server for the graficos dashboard.
//
// It exposes chart specifications as JSON, rendered chart pages, the demo
// table preview, per-builder source snippets, and a WebSocket feed of live
// demo rows.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/graficos-io/graficos/internal/chart"
	"github.com/graficos-io/graficos/internal/config"
	"github.com/graficos-io/graficos/internal/demo"
	"github.com/graficos-io/graficos/internal/render"
	"github.com/graficos-io/graficos/pkg/table"
	"github.com/graficos-io/graficos/web"
)

// Server is the dashboard HTTP server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	tbl     *table.Table
	feed    *demo.Generator
	wsHub   *WSHub
	serveUI bool // when true, serve the embedded landing page at /
}

// NewServer creates a configured server. The dashboard table comes from
// cfg.Data.Path when set (CSV or XLSX by extension), otherwise from the
// demo generator with the configured seed.
func NewServer(cfg *config.Config) (*Server, error) {
	tbl, err := LoadTable(cfg)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:     cfg,
		tbl:     tbl,
		feed:    demo.NewSeeded(cfg.Demo.Seed),
		wsHub:   NewWSHub(),
		serveUI: true,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// LoadTable resolves the dashboard table for a config: a CSV/XLSX file when
// data.path is set, the seeded demo table otherwise.
func LoadTable(cfg *config.Config) (*table.Table, error) {
	if cfg.Data.Path == "" {
		return demo.NewSeeded(cfg.Demo.Seed).Table(), nil
	}
	switch strings.ToLower(filepath.Ext(cfg.Data.Path)) {
	case ".xlsx":
		return table.LoadXLSX(cfg.Data.Path, cfg.Data.Sheet)
	default:
		return table.LoadCSV(cfg.Data.Path)
	}
}

// SetServeUI controls whether the embedded landing page is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub and the live demo feed
	go s.wsHub.Run()
	stopFeed := make(chan struct{})
	go s.runLiveFeed(stopFeed)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")
	close(stopFeed)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// runLiveFeed broadcasts a freshly generated demo row on the configured
// interval so connected dashboards can animate their charts.
func (s *Server) runLiveFeed(stop <-chan struct{}) {
	interval := time.Duration(s.cfg.Demo.LiveIntervalSec) * time.Second
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			s.wsHub.Broadcast(WSMessage{
				Type: "row",
				Data: s.feed.Next(now.UTC()),
			})
		}
	}
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// WebSocket live feed
	r.Get("/ws", s.handleWebSocket)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Table preview
		r.Get("/table", s.handleTable)

		// Chart specifications
		r.Get("/charts/line", s.handleLineSpec)
		r.Get("/charts/dual", s.handleDualSpec)
		r.Get("/charts/bar", s.handleBarSpec)

		// Builder source snippets
		r.Get("/source", s.handleSources)
		r.Get("/source/{builder}", s.handleSource)

		// WebSocket live feed
		r.Get("/ws", s.handleWebSocket)
	})

	// Rendered chart pages
	r.Get("/charts", s.handleGallery)
	r.Get("/charts/line", s.handleLinePage)
	r.Get("/charts/dual", s.handleDualPage)
	r.Get("/charts/bar", s.handleBarPage)

	// Embedded landing page and assets
	if s.serveUI {
		s.mountStatic(r)
	}

	return r
}

// mountStatic serves the embedded landing page and static assets.
func (s *Server) mountStatic(r chi.Router) {
	staticFS := web.StaticFS()
	fileServer := http.FileServer(http.FS(staticFS))

	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		data, err := web.IndexHTML()
		if err != nil {
			http.Error(w, "web UI not available", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.WriteHeader(http.StatusOK)
		w.Write(data) //nolint:errcheck
	})
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TablePreview describes the loaded table for the data panel.
type TablePreview struct {
	Columns []string   `json:"columns"`
	Rows    int        `json:"rows"`
	Head    [][]string `json:"head"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":     "ok",
			"rows":       s.tbl.NumRows(),
			"ws_clients": s.wsHub.ClientCount(),
		},
	})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: TablePreview{
			Columns: s.tbl.ColumnNames(),
			Rows:    s.tbl.NumRows(),
			Head:    s.tbl.Head(10).Records(),
		},
	})
}

func (s *Server) handleLineSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := s.lineSpec(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: spec})
}

func (s *Server) handleDualSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := s.dualSpec(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: spec})
}

func (s *Server) handleBarSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := s.barSpec(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: spec})
}

func (s *Server) handleLinePage(w http.ResponseWriter, r *http.Request) {
	spec, err := s.lineSpec(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writePage(w, spec)
}

func (s *Server) handleDualPage(w http.ResponseWriter, r *http.Request) {
	spec, err := s.dualSpec(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writePage(w, spec)
}

func (s *Server) handleBarPage(w http.ResponseWriter, r *http.Request) {
	spec, err := s.barSpec(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writePage(w, spec)
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	specs, err := DemoSpecs(s.tbl, s.cfg.Charts)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteGallery(w, specs...); err != nil {
		log.Printf("gallery render error: %v", err)
	}
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: chart.Sources()})
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "builder")
	src, ok := chart.Source(name)
	if !ok {
		writeError(w, http.StatusNotFound, "no source bundled for builder "+name)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"builder": name, "source": src},
	})
}

// ============================================================
// Spec construction from request parameters
// ============================================================

// styleFrom merges the configured chart defaults with query overrides.
func (s *Server) styleFrom(r *http.Request, color string) (chart.StyleConfig, error) {
	q := r.URL.Query()
	style := chart.StyleConfig{
		Title:      q.Get("title"),
		NPoints:    s.cfg.Charts.NPoints,
		TickAngle:  s.cfg.Charts.TickAngle,
		DateFormat: s.cfg.Charts.DateFormat,
		YFormat:    q.Get("format"),
		Color:      color,
	}
	if v := q.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return style, &chart.InvalidConfigError{Field: "n", Reason: "not an integer"}
		}
		style.NPoints = n
	}
	if v := q.Get("angle"); v != "" {
		a, err := strconv.Atoi(v)
		if err != nil {
			return style, &chart.InvalidConfigError{Field: "angle", Reason: "not an integer"}
		}
		style.TickAngle = a
	}
	if v := q.Get("date_format"); v != "" {
		style.DateFormat = v
	}
	return style, nil
}

func (s *Server) lineSpec(r *http.Request) (*chart.Spec, error) {
	style, err := s.styleFrom(r, s.cfg.Charts.LineColor)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	x := paramOr(q.Get("x"), demo.ColDate)
	y := paramOr(q.Get("y"), demo.ColValue1)
	return chart.BuildLineSeries(s.tbl, x, y, style)
}

func (s *Server) dualSpec(r *http.Request) (*chart.Spec, error) {
	style, err := s.styleFrom(r, "")
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	x := paramOr(q.Get("x"), demo.ColDate)
	a := chart.SeriesOpts{
		Column: paramOr(q.Get("y1"), demo.ColValue1),
		Name:   q.Get("y1_name"),
		Color:  s.cfg.Charts.Y1Color,
		Format: q.Get("y1_format"),
	}
	b := chart.SeriesOpts{
		Column: paramOr(q.Get("y2"), demo.ColValue2),
		Name:   q.Get("y2_name"),
		Color:  s.cfg.Charts.Y2Color,
		Format: q.Get("y2_format"),
	}
	return chart.BuildDualSeries(s.tbl, x, a, b, style)
}

func (s *Server) barSpec(r *http.Request) (*chart.Spec, error) {
	style, err := s.styleFrom(r, s.cfg.Charts.BarColor)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	x := paramOr(q.Get("x"), demo.ColDate)
	y := paramOr(q.Get("y"), demo.ColMonto)
	scale := 1_000_000.0
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &chart.InvalidConfigError{Field: "scale", Reason: "not a number"}
		}
		scale = f
	}
	return chart.BuildBarSeries(s.tbl, x, y, scale, style)
}

// DemoSpecs builds the three gallery charts over tbl with the configured
// styling: a single line, a dual-axis comparison, and a scaled bar chart.
func DemoSpecs(tbl *table.Table, charts config.Charts) ([]*chart.Spec, error) {
	base := chart.StyleConfig{
		NPoints:    charts.NPoints,
		TickAngle:  charts.TickAngle,
		DateFormat: charts.DateFormat,
	}

	lineStyle := base
	lineStyle.Title = "Monthly Trend - Value 1"
	lineStyle.Color = charts.LineColor
	line, err := chart.BuildLineSeries(tbl, demo.ColDate, demo.ColValue1, lineStyle)
	if err != nil {
		return nil, err
	}

	dualStyle := base
	dualStyle.Title = "Comparative Analysis"
	dual, err := chart.BuildDualSeries(tbl, demo.ColDate,
		chart.SeriesOpts{Column: demo.ColValue1, Name: "Primary Metric", Color: charts.Y1Color},
		chart.SeriesOpts{Column: demo.ColValue2, Name: "Secondary Metric", Color: charts.Y2Color, Format: "number"},
		dualStyle)
	if err != nil {
		return nil, err
	}

	barStyle := base
	barStyle.Title = "Monto Efectivo (Millions)"
	barStyle.Color = charts.BarColor
	bar, err := chart.BuildBarSeries(tbl, demo.ColDate, demo.ColMonto, 1_000_000, barStyle)
	if err != nil {
		return nil, err
	}

	return []*chart.Spec{line, dual, bar}, nil
}

// ============================================================
// Helpers
// ============================================================

func paramOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// writePage renders a spec as a standalone HTML chart page.
func writePage(w http.ResponseWriter, spec *chart.Spec) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, spec); err != nil {
		log.Printf("chart render error: %v", err)
	}
}

// statusFor maps builder errors onto HTTP status codes: bad columns and bad
// config are client errors, everything else is a 500.
func statusFor(err error) int {
	var cnf *table.ColumnNotFoundError
	var typ *table.TypeError
	var cfg *chart.InvalidConfigError
	if errors.As(err, &cnf) || errors.As(err, &typ) || errors.As(err, &cfg) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
