package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/internal/logging"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ActivatePrefix is the path under which triggers are activated.
const ActivatePrefix = "/_activate/"

// Page is the document served by the host.
type Page interface {
	ports.Document
	ports.Dispatcher
	RenderActivatable(w io.Writer, pathFor func(id string) string) error
}

// Binder is the read side of a bound navbind.Binder.
type Binder interface {
	Phase() domain.Phase
	Bindings() []domain.Binding
	EventType() string
}

// Server serves a bound page and turns activations into redirects.
// The binder must navigate through a navigation.Navigator so the target
// lands in the request's capture.
type Server struct {
	Page    Page
	Binder  Binder
	Streams *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams shares a StreamManager (whose Hooks feed the binder) with the server.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// NewHandler creates the HTTP handler for a bound page.
func NewHandler(page Page, binder Binder, opts ...Option) http.Handler {
	s := &Server{
		Page:   page,
		Binder: binder,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.GetPage)
	r.Get(ActivatePrefix+"{triggerID}", s.Activate)
	r.Post(ActivatePrefix+"{triggerID}", s.Activate)

	r.Group(func(r chi.Router) {
		r.Use(enableCORS)
		for path, h := range map[string]http.HandlerFunc{
			"/bindings": s.GetBindings,
			"/events":   s.SubscribeEvents,
			"/health":   s.GetHealth,
			"/info":     s.GetInfo,
		} {
			r.Get(path, h)
			// Preflight is answered by enableCORS.
			r.Options(path, func(http.ResponseWriter, *http.Request) {})
		}
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// ActivationPath returns the activation URL path for a trigger, with the id
// escaped as a single path segment.
func ActivationPath(triggerID string) string {
	return ActivatePrefix + url.PathEscape(triggerID)
}

// triggerIDParam decodes the {triggerID} segment. chi matches on RawPath when
// the request carries one, and the segment is then still escaped.
func triggerIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "triggerID")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPage handles the GET / request.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	// Render into a buffer so a failure can still become a clean 500.
	buf := new(bytes.Buffer)
	if err := s.Page.RenderActivatable(buf, ActivationPath); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		s.logger.Error("GetPage: render failed", "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Activate handles GET|POST /_activate/{triggerID}.
// A navigation becomes a 303 See Other; an unknown trigger a 404; an element
// nobody listens to a 204.
func (s *Server) Activate(w http.ResponseWriter, r *http.Request) {
	triggerID, err := triggerIDParam(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid trigger id: %v", err), http.StatusBadRequest)
		return
	}

	ctx, capture := navigation.WithCapture(r.Context())
	n, err := s.Page.Dispatch(ctx, triggerID, s.Binder.EventType())
	if err != nil {
		if errors.Is(err, ports.ErrNoSuchElement) {
			http.NotFound(w, r)
			s.logger.Warn("Activate: unknown trigger", "trigger", triggerID)
			return
		}
		http.Error(w, fmt.Sprintf("Activate error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Activate failed", "trigger", triggerID, "error", err)
		return
	}

	target, ok := capture.Target()
	if !ok {
		s.logger.Debug("Activate: no navigation", "trigger", triggerID, "listeners", n)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.logger.Info("Activate: navigating", "trigger", triggerID, "target", target, "listeners", n)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// BindingsResponse is the body of GET /bindings.
type BindingsResponse struct {
	Phase    domain.Phase     `json:"phase"`
	Event    string           `json:"event"`
	Bindings []domain.Binding `json:"bindings"`
}

// GetBindings handles the GET /bindings request.
func (s *Server) GetBindings(w http.ResponseWriter, r *http.Request) {
	resp := BindingsResponse{
		Phase:    s.Binder.Phase(),
		Event:    s.Binder.EventType(),
		Bindings: s.Binder.Bindings(),
	}
	writeJSON(w, s.logger, resp)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{
		"app":     "navbind-http",
		"version": strings.TrimSpace(navbind.Version),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
// ?trigger=<id> restricts the stream to one trigger.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(r.URL.Query().Get("trigger"))
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: navigate\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
