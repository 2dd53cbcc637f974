package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/config"
	"github.com/JakeFAU/fxbilibili/internal/logging"
	"github.com/JakeFAU/fxbilibili/internal/metrics"
	"github.com/JakeFAU/fxbilibili/internal/opengraph"
	"github.com/JakeFAU/fxbilibili/internal/video"
)

// Resolver builds preview documents.
type Resolver interface {
	Resolve(ctx context.Context, id video.ID) (*opengraph.Document, error)
}

// Classifier tells browsers apart from link unfurlers.
type Classifier interface {
	FromHeader(header http.Header) bool
}

// IDGenerator produces request IDs.
type IDGenerator interface {
	NewID() (string, error)
}

// Server wires HTTP handlers to the embed resolver.
type Server struct {
	router     chi.Router
	resolver   Resolver
	classifier Classifier
	idGen      IDGenerator
	cfg        config.Config
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	resolver Resolver,
	classifier Classifier,
	idGen IDGenerator,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		resolver:   resolver,
		classifier: classifier,
		idGen:      idGen,
		cfg:        cfg,
		logger:     logger,
	}
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(timeout))

	r.Get("/", s.index)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/video", func(r chi.Router) {
		r.Get("/BV{code}", s.codedVideo)
		r.Get("/av{aid}", s.numericVideo)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.cfg.Site.RepositoryURL, http.StatusPermanentRedirect)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// Nothing to warm up; the upstream is checked per request.
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) codedVideo(w http.ResponseWriter, r *http.Request) {
	code, err := pathParam(r, "code")
	if err != nil {
		metrics.ObserveDecision(metrics.DecisionBadRequest)
		s.writeText(w, http.StatusBadRequest, "Bad bvid")
		return
	}
	s.serveVideo(w, r, video.Coded(code))
}

func (s *Server) numericVideo(w http.ResponseWriter, r *http.Request) {
	raw, err := pathParam(r, "aid")
	var id video.ID
	if err == nil {
		id, err = video.ParseNumeric(raw)
	}
	if err != nil {
		metrics.ObserveDecision(metrics.DecisionBadRequest)
		s.logger.Debug("rejecting malformed av id", zap.Error(err))
		s.writeText(w, http.StatusBadRequest, "Bad avid")
		return
	}
	s.serveVideo(w, r, id)
}

// pathParam returns a decoded route parameter. chi matches against
// URL.RawPath when the request carries one, and the captured segment is then
// still percent-encoded.
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("decode path parameter %s: %w", key, err)
	}
	return decoded, nil
}

func (s *Server) serveVideo(w http.ResponseWriter, r *http.Request, id video.ID) {
	canonical := id.CanonicalURL()
	if s.classifier.FromHeader(r.Header) {
		metrics.ObserveDecision(metrics.DecisionRedirect)
		w.Header().Set("Location", canonical)
		s.writeText(w, http.StatusPermanentRedirect, "Redirect to "+canonical)
		return
	}

	doc, err := s.resolver.Resolve(r.Context(), id)
	if err != nil {
		metrics.ObserveDecision(metrics.DecisionError)
		logging.WithTrace(r.Context(), s.logger).Warn("embed resolution failed",
			zap.Stringer("video_id", id),
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err),
		)
		// Failures are reported in a 200 body; unfurlers show it as the preview text.
		s.writeText(w, http.StatusOK, err.Error())
		return
	}

	metrics.ObserveDecision(metrics.DecisionEmbed)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc.Render())); err != nil {
		s.logger.Debug("write embed failed", zap.Error(err))
	}
}

func (s *Server) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Debug("write text failed", zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}
