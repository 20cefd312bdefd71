package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/internal/adapters/memory"
	"github.com/aretw0/mockcoach/internal/logging"
	"github.com/aretw0/mockcoach/internal/presentation/graph"
	"github.com/aretw0/mockcoach/pkg/domain"
	"github.com/aretw0/mockcoach/pkg/observability"
	"github.com/aretw0/mockcoach/pkg/plan"
	"github.com/aretw0/mockcoach/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxPlanBytes bounds the request body of plan endpoints.
const maxPlanBytes = 1 << 20

//go:embed openapi.yaml
var openapiSpec []byte

// Server exposes plan validation and simulation over HTTP.
type Server struct {
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger
	Store    ports.ResultStore
	Spec     *openapi3.T
}

// Option configures a Server.
type Option func(*Server)

// WithStore keeps simulation results in store instead of memory.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// NewServer creates a server with its own metrics registry. The embedded API description is
// loaded and validated up front so a broken document fails at startup.
func NewServer(logger *slog.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	s := &Server{Metrics: metrics, Registry: reg, Logger: logger, Spec: spec}
	for _, opt := range opts {
		opt(s)
	}
	if s.Store == nil {
		s.Store = memory.NewStore()
	}
	return s, nil
}

// LoadSpec parses and validates the OpenAPI description of the server.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	spec, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return spec, nil
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	return enableCORS(newRouter(s))
}

func newRouter(s *Server) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}).ServeHTTP)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Logger, http.StatusOK, s.Spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Route("/v1/plans", func(r chi.Router) {
		r.Post("/validate", s.ValidatePlan)
		r.Post("/simulate", s.SimulatePlan)
		r.Post("/graph", s.GraphPlan)
	})
	r.Route("/v1/results", func(r chi.Router) {
		r.Get("/", s.ListResults)
		r.Get("/{id}", s.GetResult)
		r.Delete("/{id}", s.DeleteResult)
	})

	return r
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>MockCoach API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{
		"app":     "mockcoach-http",
		"version": strings.TrimSpace(mockcoach.Version),
	})
}

// ValidateResponse is the body of POST /v1/plans/validate.
type ValidateResponse = plan.Report

// ValidatePlan handles the POST /v1/plans/validate request. Plan problems are reported in the
// body with status 200; only unreadable documents are client errors.
func (s *Server) ValidatePlan(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, plan.Check(doc))
}

// SimulatePlan handles the POST /v1/plans/simulate request.
func (s *Server) SimulatePlan(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readPlan(w, r)
	if !ok {
		return
	}

	res, err := s.simulate(doc)
	if err != nil {
		writeError(w, s.Logger, http.StatusUnprocessableEntity, err)
		return
	}

	id := uuid.NewString()
	if err := s.Store.Save(r.Context(), id, res); err != nil {
		// The trace is still useful without a stored copy.
		s.Logger.Error("result store failed", "id", id, "error", err)
	} else {
		w.Header().Set("Location", "/v1/results/"+id)
	}
	writeJSON(w, s.Logger, http.StatusOK, res)
}

// ListResults handles the GET /v1/results request.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, s.Logger, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, map[string][]string{"ids": ids})
}

// GetResult handles the GET /v1/results/{id} request.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ports.ErrResultNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, s.Logger, status, err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, res)
}

// DeleteResult handles the DELETE /v1/results/{id} request.
func (s *Server) DeleteResult(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, s.Logger, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GraphPlan handles the POST /v1/plans/graph request, answering with a Mermaid flowchart
// overlaid with the simulated calls.
func (s *Server) GraphPlan(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readPlan(w, r)
	if !ok {
		return
	}

	res, err := s.simulate(doc)
	if err != nil {
		writeError(w, s.Logger, http.StatusUnprocessableEntity, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(doc.Participants, res.Topology, graph.OverlayFromResult(res)))
}

func (s *Server) simulate(doc *plan.Document) (*plan.Result, error) {
	res, err := plan.Simulate(doc, mockcoach.WithLifecycleHooks(s.Metrics.Hooks()), mockcoach.WithLogger(s.Logger))
	if err != nil {
		return nil, err
	}
	s.Logger.Info("plan simulated", "plan", doc.Name, "steps", len(res.Steps), "failed", res.Failed())
	return res, nil
}

// readPlan decodes the request body as YAML unless the content type says JSON.
func (s *Server) readPlan(w http.ResponseWriter, r *http.Request) (*plan.Document, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPlanBytes))
	if err != nil {
		writeError(w, s.Logger, http.StatusRequestEntityTooLarge, err)
		return nil, false
	}

	format := "yaml"
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "application/json" {
		format = "json"
	}
	doc, err := plan.Parse(data, format)
	if err != nil {
		writeError(w, s.Logger, http.StatusBadRequest, err)
		return nil, false
	}
	if doc.Name == "" {
		doc.Name = "anonymous"
	}
	return doc, true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	body := map[string]string{"error": err.Error()}
	if code := domain.ErrorCode(err); code != "" {
		body["code"] = code
	}
	logger.Warn("request failed", "status", status, "error", err)
	writeJSON(w, logger, status, body)
}
