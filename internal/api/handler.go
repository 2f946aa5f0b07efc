// Package api exposes the duplicate finder as a JSON REST API.
//
// Endpoints:
//
//	POST /api/duplicates  body: {"text":"..."}
//	POST /api/analyze     body: {"text":"..."}
//	GET  /api/healthz
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cours-de-latin/dupfinder"
	"github.com/cours-de-latin/dupfinder/internal/remote"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Options configures the HTTP handler.
type Options struct {
	// Timeout bounds each analysis, analyzer call included.
	Timeout time.Duration
	// MaxBodyBytes limits request bodies; zero disables the limit.
	MaxBodyBytes int64
	// AllowedOrigins lists origins allowed by CORS; empty allows none.
	AllowedOrigins []string
}

// Handler serves the API.
type Handler struct {
	finder   *dupfinder.Finder
	analyzer dupfinder.Analyzer
	logger   *zap.Logger
	opts     Options
}

// NewHandler returns a Handler using finder for duplicate searches and
// analyzer for raw analyses.
func NewHandler(finder *dupfinder.Finder, analyzer dupfinder.Analyzer, logger *zap.Logger, opts Options) *Handler {
	return &Handler{
		finder:   finder,
		analyzer: analyzer,
		logger:   logger,
		opts:     opts,
	}
}

// Routes returns the API mux wrapped with CORS and request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/duplicates", h.handleDuplicates)
	mux.HandleFunc(remote.AnalyzePath, h.handleAnalyze)
	mux.HandleFunc("/api/healthz", h.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: h.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return h.withRequestLog(c.Handler(mux))
}

// ---- helpers ------------------------------------------------------------

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dupfinder.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, dupfinder.ErrAnalyzerUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeText reads a {"text": "..."} body. It writes the error response
// and returns false when the body is unusable.
func (h *Handler) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return "", false
	}
	var src io.Reader = r.Body
	if h.opts.MaxBodyBytes > 0 {
		src = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return "", false
		}
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return "", false
	}
	var body textRequest
	if err := sonic.Unmarshal(data, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, "body must be JSON with a 'text' field")
		return "", false
	}
	return body.Text, true
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.opts.Timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.opts.Timeout)
}

// ---- handlers -----------------------------------------------------------

func (h *Handler) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.finder.Find(ctx, text)
	if err != nil {
		status := statusFor(err)
		if status != http.StatusBadRequest {
			h.logger.Error("Duplicate search failed", zap.Error(err))
		}
		h.writeError(w, status, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, ToResponse(report))
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(text) == "" {
		h.writeError(w, http.StatusBadRequest, dupfinder.ErrEmptyInput.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	entries, err := h.analyzer.Analyze(ctx, text)
	if err != nil {
		h.logger.Error("Analysis failed", zap.Error(err))
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, toAnalyzeResponse(entries))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// ---- request logging ----------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags each request with an ID and logs its outcome.
func (h *Handler) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		h.logger.Info("Handled request",
			zap.String("requestID", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
