package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KaramelBytes/hrdash/internal/chart"
	"github.com/KaramelBytes/hrdash/internal/dashboard"
	"github.com/KaramelBytes/hrdash/internal/logging"
)

// RenderIDHeader carries the id of the render pass behind a response.
const RenderIDHeader = "X-Render-ID"

// Server serves the dashboard over HTTP. Every request is one render pass
// against the renderer's shared table cache.
type Server struct {
	router   *chi.Mux
	renderer *dashboard.Renderer
	dataPath string
	log      *logging.Logger
}

// New creates a server for the dataset at dataPath.
func New(renderer *dashboard.Renderer, dataPath string, log *logging.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		renderer: renderer,
		dataPath: dataPath,
		log:      log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/charts/{row}/{col}.svg", s.handleChart)
		r.Post("/reload", s.handleReload)
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debugf("%s %s -> %d (%s) [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("reload") == "1" {
		s.renderer.Loader().Invalidate(s.dataPath)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page, err := s.renderer.Build(s.dataPath)
	if err != nil {
		s.log.Errorf("render dashboard: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = dashboard.WriteErrorHTML(w, s.dataPath, err)
		return
	}
	var buf bytes.Buffer
	if err := dashboard.WriteHTML(&buf, page); err != nil {
		s.log.Errorf("write dashboard html: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set(RenderIDHeader, page.ID)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderer.Build(s.dataPath)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error(), "source": s.dataPath})
		return
	}
	w.Header().Set(RenderIDHeader, page.ID)
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	row, rerr := strconv.Atoi(chi.URLParam(r, "row"))
	col, cerr := strconv.Atoi(chi.URLParam(r, "col"))
	if rerr != nil || cerr != nil {
		http.Error(w, "row and col must be integers", http.StatusBadRequest)
		return
	}
	page, err := s.renderer.Build(s.dataPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if row < 1 || row > len(page.Grid) || col < 1 || col > len(page.Grid[row-1]) {
		http.Error(w, fmt.Sprintf("no panel at row %d, col %d", row, col), http.StatusNotFound)
		return
	}
	panel := page.Grid[row-1][col-1]
	if panel.Chart == nil {
		http.Error(w, panel.Notice, http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf, panel.Chart, chart.FormatSVG, dashboard.ChartWidth); err != nil {
		s.log.Warnf("render chart r%dc%d: %v", row, col, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set(RenderIDHeader, page.ID)
	_, _ = w.Write(buf.Bytes())
}

type reloadResponse struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	loader := s.renderer.Loader()
	loader.Invalidate(s.dataPath)
	t, err := loader.Load(s.dataPath)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error(), "source": s.dataPath})
		return
	}
	rows, cols := t.Shape()
	s.log.Infof("reloaded %s: %d rows", s.dataPath, rows)
	s.writeJSON(w, http.StatusOK, reloadResponse{Source: s.dataPath, Rows: rows, Cols: cols})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}
