package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/runeport"
	"github.com/aretw0/runeport/internal/logging"
	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/aretw0/runeport/pkg/descriptor"
	"github.com/aretw0/runeport/pkg/domain"
	"github.com/aretw0/runeport/pkg/kind"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is the part of runeport.Engine the API serves.
type Engine interface {
	Load(ctx context.Context) error
	Documents() []string
	Catalog(name string) (*blueprint.Catalog, error)
}

var _ Engine = (*runeport.Engine)(nil)

// Query outcomes recorded by runeport_queries_total.
const (
	outcomeOK         = "ok"
	outcomeBadRequest = "bad_request"
	outcomeNotFound   = "not_found"
	outcomeError      = "error"
)

// Server answers compatibility queries against the loaded catalogs.
type Server struct {
	Engine   Engine
	logger   *slog.Logger
	registry *prometheus.Registry
	queries  *prometheus.CounterVec
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
// Metrics are kept in a registry owned by the handler and served on /metrics.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		logger:   logging.NewNop(),
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runeport_queries_total",
				Help: "Total number of API queries by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry.MustRegister(s.queries)

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/reload", s.Reload)
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Route("/{doc}/blueprints", func(r chi.Router) {
			r.Get("/", s.ListBlueprints)
			r.Post("/{bp}/compatible", s.Compatible)
			r.Post("/{bp}/resolve", s.Resolve)
		})
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

// InputInfo describes an input port.
type InputInfo struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Kinds      []string `json:"kinds"`
	Wildcard   bool     `json:"wildcard,omitempty"`
	Collection bool     `json:"collection,omitempty"`
}

// OutputInfo describes an output port.
type OutputInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Descriptor  string `json:"descriptor"`
	Kind        string `json:"kind"`
	Passthrough string `json:"passthrough,omitempty"`
	Collection  bool   `json:"collection,omitempty"`
}

// BlueprintInfo describes a blueprint and its ports.
type BlueprintInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Inputs      []InputInfo  `json:"inputs"`
	Outputs     []OutputInfo `json:"outputs"`
}

// CompatibleRequest asks whether an input accepts a value.
type CompatibleRequest struct {
	Input      string `json:"input"`
	Descriptor string `json:"descriptor"`
	Kind       string `json:"kind"`
}

// ResolveRequest maps linked input names to the kinds they were resolved to.
type ResolveRequest struct {
	Inputs map[string]string `json:"inputs"`
}

// ResolvedOutput is an output after resolution. Kind is empty when disabled.
type ResolvedOutput struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
	Kind       string `json:"kind,omitempty"`
	Enabled    bool   `json:"enabled"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "runeport-http",
		"version": strings.TrimSpace(runeport.Version),
	})
}

// Reload handles the POST /reload request.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Load(r.Context()); err != nil {
		s.logger.Warn("reload rejected documents", "err", err)
		problems := blueprint.ValidationErrors(err)
		if problems == nil {
			s.fail(w, "reload", http.StatusInternalServerError, outcomeError, err.Error())
			return
		}
		msgs := make([]string, 0, len(problems))
		for _, p := range problems {
			msgs = append(msgs, p.Error())
		}
		s.count("reload", outcomeBadRequest)
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"documents": s.Engine.Documents(),
			"errors":    msgs,
		})
		return
	}
	s.count("reload", outcomeOK)
	s.writeJSON(w, http.StatusOK, map[string]any{"documents": s.Engine.Documents()})
}

// ListDocuments handles the GET /documents request.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	s.count("documents", outcomeOK)
	s.writeJSON(w, http.StatusOK, map[string]any{"documents": s.Engine.Documents()})
}

// ListBlueprints handles the GET /documents/{doc}/blueprints request.
func (s *Server) ListBlueprints(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalog(w, r, "blueprints")
	if !ok {
		return
	}
	table := cat.Table()

	out := make([]BlueprintInfo, 0, len(cat.Names()))
	for _, name := range cat.Names() {
		bp, _ := cat.Blueprint(name)
		info := BlueprintInfo{
			Name:        bp.Name,
			Description: bp.Description,
			Inputs:      make([]InputInfo, 0, bp.Config.NumInputs()),
			Outputs:     make([]OutputInfo, 0, bp.Config.NumOutputs()),
		}
		for i, in := range bp.Config.Inputs() {
			kinds := make([]string, 0, len(in.Kinds()))
			for _, k := range in.Kinds() {
				kinds = append(kinds, table.Name(k))
			}
			info.Inputs = append(info.Inputs, InputInfo{
				Index:      i,
				Name:       bp.InputName(i),
				Descriptor: in.Descriptor().String(),
				Kinds:      kinds,
				Wildcard:   in.IsWildcard(),
				Collection: in.IsCollection(),
			})
		}
		for i, o := range bp.Config.Outputs() {
			oi := OutputInfo{
				Index:      i,
				Name:       bp.OutputName(i),
				Descriptor: o.Descriptor().String(),
				Kind:       table.Name(o.Kind()),
				Collection: o.IsCollection(),
			}
			if o.IsPassthrough() {
				oi.Passthrough = bp.InputName(o.Input().Index())
			}
			info.Outputs = append(info.Outputs, oi)
		}
		out = append(out, info)
	}

	s.count("blueprints", outcomeOK)
	s.writeJSON(w, http.StatusOK, out)
}

// Compatible handles the POST /documents/{doc}/blueprints/{bp}/compatible request.
func (s *Server) Compatible(w http.ResponseWriter, r *http.Request) {
	const op = "compatible"
	cat, bp, ok := s.blueprint(w, r, op)
	if !ok {
		return
	}

	var body CompatibleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, op, http.StatusBadRequest, outcomeBadRequest, "invalid request body")
		return
	}
	in, found := bp.InputIndex(body.Input)
	if !found {
		s.fail(w, op, http.StatusNotFound, outcomeNotFound, "unknown input "+strconv.Quote(body.Input))
		return
	}
	d, err := descriptor.ParseIn(body.Descriptor, cat.Namespace())
	if err != nil {
		s.fail(w, op, http.StatusBadRequest, outcomeBadRequest, err.Error())
		return
	}
	k, found := cat.Table().Lookup(body.Kind)
	if !found {
		s.fail(w, op, http.StatusBadRequest, outcomeBadRequest, "unknown kind "+strconv.Quote(body.Kind))
		return
	}

	s.count(op, outcomeOK)
	s.writeJSON(w, http.StatusOK, map[string]bool{"compatible": bp.Config.IsCompatible(in, d, k)})
}

// Resolve handles the POST /documents/{doc}/blueprints/{bp}/resolve request.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	const op = "resolve"
	cat, bp, ok := s.blueprint(w, r, op)
	if !ok {
		return
	}

	var body ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, op, http.StatusBadRequest, outcomeBadRequest, "invalid request body")
		return
	}

	cfg := bp.Config
	resolved := make([]kind.Kind, cfg.NumInputs())
	for name, kindName := range body.Inputs {
		in, found := bp.InputIndex(name)
		if !found {
			s.fail(w, op, http.StatusNotFound, outcomeNotFound, "unknown input "+strconv.Quote(name))
			return
		}
		k, found := cat.Table().Lookup(kindName)
		if !found {
			s.fail(w, op, http.StatusBadRequest, outcomeBadRequest, "unknown kind "+strconv.Quote(kindName))
			return
		}
		resolved[in] = k
	}

	kinds := cfg.ResolveOutputs(resolved)
	out := make([]ResolvedOutput, 0, len(kinds))
	for i, k := range kinds {
		out = append(out, ResolvedOutput{
			Name:       bp.OutputName(i),
			Descriptor: cfg.OutputDescriptor(i).String(),
			Kind:       cat.Table().Name(k),
			Enabled:    k != kind.None,
		})
	}

	s.count(op, outcomeOK)
	s.writeJSON(w, http.StatusOK, map[string]any{"outputs": out})
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request, op string) (*blueprint.Catalog, bool) {
	doc := chi.URLParam(r, "doc")
	cat, err := s.Engine.Catalog(doc)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			s.fail(w, op, http.StatusNotFound, outcomeNotFound, "unknown document "+strconv.Quote(doc))
		} else {
			s.logger.Error("catalog lookup failed", "document", doc, "err", err)
			s.fail(w, op, http.StatusInternalServerError, outcomeError, err.Error())
		}
		return nil, false
	}
	return cat, true
}

func (s *Server) blueprint(w http.ResponseWriter, r *http.Request, op string) (*blueprint.Catalog, *blueprint.Blueprint, bool) {
	cat, ok := s.catalog(w, r, op)
	if !ok {
		return nil, nil, false
	}
	name := chi.URLParam(r, "bp")
	bp, ok := cat.Blueprint(name)
	if !ok {
		s.fail(w, op, http.StatusNotFound, outcomeNotFound, "unknown blueprint "+strconv.Quote(name))
		return nil, nil, false
	}
	return cat, bp, true
}

func (s *Server) count(op, outcome string) {
	s.queries.WithLabelValues(op, outcome).Inc()
}

func (s *Server) fail(w http.ResponseWriter, op string, status int, outcome, msg string) {
	s.count(op, outcome)
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
