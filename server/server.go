// Package server exposes the project showcase over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ibneal/PersonalWebsite/core/showcase"
)

// Server serves the showcase panel.
type Server struct {
	panel  *showcase.Panel
	logger *log.Logger
}

// New creates a Server. A nil logger discards request logs.
func New(panel *showcase.Panel, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{panel: panel, logger: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /projects", s.handleProjects)
	mux.HandleFunc("GET /projects/current", s.handleCurrent)
	mux.HandleFunc("GET /projects/{index}", s.handleSelect)
	mux.HandleFunc("GET /projects/{index}/content", s.handleContent)
	return s.logRequests(mux)
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.panel.Projects())
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	view, ok := s.panel.Current()
	if !ok {
		http.Error(w, "no project selected", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	view, ok := s.selectProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	view, ok := s.selectProject(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, view.Fragment())
}

func (s *Server) selectProject(w http.ResponseWriter, r *http.Request) (showcase.View, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "bad project index", http.StatusBadRequest)
		return showcase.View{}, false
	}

	view, committed, err := s.panel.Select(r.Context(), index)
	if errors.Is(err, showcase.ErrNoProject) {
		http.Error(w, "project not found", http.StatusNotFound)
		return showcase.View{}, false
	}
	if err != nil {
		http.Error(w, "failed to select project", http.StatusInternalServerError)
		return showcase.View{}, false
	}
	if !committed {
		s.logger.Printf("select project=%d superseded generation=%d", index, view.Generation)
	}
	return view, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("%s %s status=%d took=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
