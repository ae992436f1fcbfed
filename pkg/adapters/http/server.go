package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/internal/presentation/graph"
	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/runtime"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes caps the size of process descriptions posted to /validate.
const MaxBodyBytes = 1 << 20

// Engine defines the subset of bpmnflow.Engine served over HTTP.
type Engine interface {
	Definitions(ctx context.Context) ([]string, error)
	Definition(ctx context.Context, id string) (*definition.ProcessDefinition, error)
	Validate(ctx context.Context, id string) (*bpmnflow.Report, error)
	ValidateRaw(ctx context.Context, raw []byte) (*bpmnflow.Report, error)
	Run(ctx context.Context, id string, data any, opts ...runtime.Option) (*runtime.Process, error)
}

// Server exposes an Engine as a JSON API.
type Server struct {
	Engine   Engine
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler returned by NewHandler.
type Option func(*Server)

// WithGatherer serves the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// RunRequest is the optional body of POST /definitions/{id}/run.
type RunRequest struct {
	Data any `json:"data"`
}

// RunResponse summarizes a drained process instance.
type RunResponse struct {
	ProcessID string          `json:"process_id"`
	Steps     int             `json:"steps"`
	Completed []runtime.Token `json:"completed"`
	Error     string          `json:"error,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	r.Post("/validate", s.ValidateRaw)
	r.Route("/definitions", func(r chi.Router) {
		r.Get("/", s.ListDefinitions)
		r.Get("/{id}/validate", s.ValidateDefinition)
		r.Get("/{id}/graph", s.GetGraph)
		r.Post("/{id}/run", s.RunDefinition)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListDefinitions handles GET /definitions.
func (s *Server) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Definitions(r.Context())
	if err != nil {
		s.fail(w, "ListDefinitions", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"definitions": ids})
}

// ValidateDefinition handles GET /definitions/{id}/validate.
func (s *Server) ValidateDefinition(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Validate(r.Context(), chi.URLParam(r, "id"))
	s.writeReport(w, "ValidateDefinition", report, err)
}

// ValidateRaw handles POST /validate with a YAML or JSON process description as body.
func (s *Server) ValidateRaw(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusRequestEntityTooLarge)
		s.Logger.Warn("ValidateRaw: Invalid request body", "error", err)
		return
	}

	report, err := s.Engine.ValidateRaw(r.Context(), raw)
	if err != nil {
		s.Logger.Warn("ValidateRaw: Rejected description", "error", err, "size", len(raw))
	}
	s.writeReport(w, "ValidateRaw", report, err)
}

// writeReport answers with the report even when some flow objects could not be
// checked; those partial reports use 422 so clients do not mistake them for a pass.
func (s *Server) writeReport(w http.ResponseWriter, op string, report *bpmnflow.Report, err error) {
	switch {
	case report == nil:
		s.fail(w, op, err)
	case err != nil:
		s.writeJSON(w, http.StatusUnprocessableEntity, report)
	default:
		s.writeJSON(w, http.StatusOK, report)
	}
}

// GetGraph handles GET /definitions/{id}/graph and returns a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	def, err := s.Engine.Definition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(def, nil))
}

// RunDefinition handles POST /definitions/{id}/run.
func (s *Server) RunDefinition(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.Logger.Warn("RunDefinition: Invalid request body", "error", err)
			return
		}
	}

	p, err := s.Engine.Run(r.Context(), chi.URLParam(r, "id"), body.Data)
	if p == nil {
		s.fail(w, "RunDefinition", err)
		return
	}

	resp := RunResponse{
		ProcessID: p.ID,
		Steps:     p.Steps(),
		Completed: p.Completed(),
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusConflict
	}
	s.writeJSON(w, status, resp)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "bpmnflow-http",
		"version": strings.TrimSpace(bpmnflow.Version),
	})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidDescription), errors.Is(err, domain.ErrUnknownKind):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
