// Package server exposes container rendering over HTTP.
//
// Routes:
//
//	GET /healthz                  build info
//	GET /containers               container summaries as JSON
//	GET /containers/{key}/open    one opening as image/png (?user=, ?seed=)
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lootgrid/pkg/buildinfo"
	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/render"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server serves renders from one Renderer.
type Server struct {
	addr       string
	renderer   *render.Renderer
	logger     *log.Logger
	httpServer *http.Server
}

// New creates a server listening on addr.
func New(addr string, r *render.Renderer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{addr: addr, renderer: r, logger: logger}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Get("/containers", s.listContainers)
	r.Get("/containers/{key}/open", s.openContainer)
	return r
}

// ListenAndServe runs until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	s.logger.Info("listening", "addr", s.addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

type containerSummary struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	GridSize   int      `json:"grid_size"`
	MinItems   int      `json:"min_items"`
	MaxItems   int      `json:"max_items"`
	AllowTypes []string `json:"allow_types"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) listContainers(w http.ResponseWriter, r *http.Request) {
	cat := s.renderer.Catalog()
	out := make([]containerSummary, 0, cat.ContainerCount())
	for _, key := range cat.Keys() {
		c, _ := cat.Container(key)
		lo, hi := c.ItemRange()
		out = append(out, containerSummary{
			Key:        key,
			Name:       c.DisplayName(),
			GridSize:   c.GridSize,
			MinItems:   lo,
			MaxItems:   hi,
			AllowTypes: c.AllowTypes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) openContainer(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := errors.ValidateContainerKey(key); err != nil {
		writeError(w, err)
		return
	}

	renderer := s.renderer
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer"))
			return
		}
		renderer = renderer.WithSeed(seed)
	}

	res, err := renderer.Open(r.Context(), key, r.URL.Query().Get("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := res.PNG()
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode png"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-ID", res.ID.String())
	w.Header().Set("X-Items-Selected", strconv.Itoa(res.Stats.Selected))
	w.Header().Set("X-Items-Placed", strconv.Itoa(res.Stats.Placed))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeUnknownContainer:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
