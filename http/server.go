package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rocthinc/rocthinc"
)

// Server exposes the export operation over HTTP.
//
//	GET  /            usage hint
//	GET  /healthz     liveness probe
//	POST /export      {"url": "...", "formats": ["md","tex"]}
//	GET  /export      ?url=...&formats=md,tex
type Server struct {
	server   *http.Server
	router   *chi.Mux
	exporter rocthinc.Exporter
	logger   *slog.Logger
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, exporter rocthinc.Exporter, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		exporter: exporter,
		logger:   logger,
	}

	router.Use(middleware.Recoverer)
	router.Use(s.requestLogger)

	router.Get("/", s.handleIndex)
	router.Get("/healthz", s.handleHealth)
	router.Get("/export", s.handleExportGet)
	router.Post("/export", s.handleExportPost)

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return s
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"msg": "rocthinc: POST /export { url, formats }",
		"example": map[string]any{
			"url":     "https://chatgpt.com/share/...",
			"formats": []string{"md", "tex"},
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// exportRequest is the POST /export body.
type exportRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

func (s *Server) handleExportPost(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, rocthinc.Errorf(rocthinc.EINVALID, "invalid JSON body: %v", err))
		return
	}
	s.export(w, r, req.URL, req.Formats)
}

func (s *Server) handleExportGet(w http.ResponseWriter, r *http.Request) {
	var names []string
	if raw := r.URL.Query().Get("formats"); raw != "" {
		names = strings.Split(raw, ",")
	}
	s.export(w, r, r.URL.Query().Get("url"), names)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, url string, formatNames []string) {
	if url == "" {
		s.writeError(w, r, rocthinc.Errorf(rocthinc.EINVALID, "url is required"))
		return
	}

	archive, err := s.exporter.Export(r.Context(), url, rocthinc.ParseFormats(formatNames))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+archive.Filename+`"`)
	w.Header().Set("ETag", `"`+strconv.FormatUint(xxhash.Sum64(archive.Data), 16)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive.Data)
}

// writeError maps application error codes to HTTP statuses and renders the
// user-facing message as JSON. Internal details are logged, never sent.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := rocthinc.ErrorCode(err)
	status := statusFromCode(code)
	if status >= 500 {
		s.logger.Error("internal error", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": rocthinc.ErrorMessage(err)})
}

func statusFromCode(code string) int {
	switch code {
	case rocthinc.EINVALID:
		return http.StatusBadRequest
	case rocthinc.ENOTFOUND:
		return http.StatusNotFound
	case rocthinc.EUNREACHABLE, rocthinc.EBADSTATUS, rocthinc.ERENDERTIMEOUT,
		rocthinc.EINTERSTITIAL, rocthinc.ENOMESSAGES:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger tags every request with an id and logs method, path,
// status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		id := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(begin),
		)
	})
}
