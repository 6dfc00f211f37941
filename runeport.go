package runeport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/runeport/internal/logging"
	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/aretw0/runeport/pkg/chain"
	"github.com/aretw0/runeport/pkg/domain"
	"github.com/aretw0/runeport/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It compiles the documents of a DocumentStore into catalogs and serves them
// to concurrent readers.
type Engine struct {
	store  ports.DocumentStore
	logger *slog.Logger

	mu       sync.RWMutex
	catalogs map[string]*blueprint.Catalog
	names    []string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine over store. Nothing is read until Load is called.
func New(store ports.DocumentStore, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("runeport: a document store is required")
	}

	eng := &Engine{
		store:    store,
		catalogs: make(map[string]*blueprint.Catalog),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng, nil
}

// Store returns the document store of the engine.
func (e *Engine) Store() ports.DocumentStore {
	return e.store
}

// Load compiles every document of the store, replacing the previous catalogs.
// Documents that fail to parse or compile are left out; their problems are
// returned together as a *blueprint.AggregateError, each prefixed with the
// document name. The documents that did compile remain available.
func (e *Engine) Load(ctx context.Context) error {
	names, err := e.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	sort.Strings(names)

	catalogs := make(map[string]*blueprint.Catalog, len(names))
	loaded := make([]string, 0, len(names))
	var errs []error

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		cat, err := e.compile(ctx, name)
		if err != nil {
			e.logger.Warn("document rejected", "document", name, "err", err)
			errs = append(errs, prefixed(name, err)...)
			continue
		}
		e.logger.Debug("document compiled", "document", name,
			"kinds", cat.Table().Len(), "blueprints", len(cat.Names()), "chains", len(cat.Chains()))
		catalogs[name] = cat
		loaded = append(loaded, name)
	}

	e.mu.Lock()
	e.catalogs = catalogs
	e.names = loaded
	e.mu.Unlock()

	e.logger.Info("documents loaded", "loaded", len(loaded), "rejected", len(names)-len(loaded))
	if len(errs) > 0 {
		return &blueprint.AggregateError{Errors: errs}
	}
	return nil
}

func (e *Engine) compile(ctx context.Context, name string) (*blueprint.Catalog, error) {
	data, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := blueprint.Parse(data, blueprint.FormatFromPath(name))
	if err != nil {
		return nil, err
	}
	return blueprint.Compile(doc)
}

// prefixed flattens err into validation errors located in document name.
func prefixed(name string, err error) []error {
	inner := blueprint.ValidationErrors(err)
	if inner == nil {
		inner = []error{err}
	}
	out := make([]error, 0, len(inner))
	for _, ie := range inner {
		out = append(out, &blueprint.ValidationError{Path: name, Reason: ie.Error()})
	}
	return out
}

// Catalog returns the compiled catalog of the named document.
// Returns domain.ErrCatalogNotFound if the document was not loaded.
func (e *Engine) Catalog(name string) (*blueprint.Catalog, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cat, ok := e.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, name)
	}
	return cat, nil
}

// Documents returns the names of the loaded documents in sorted order.
func (e *Engine) Documents() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.names...)
}

// Check statically checks every chain of every loaded document.
// Results are keyed by document name; failing chains are reported in the
// returned *blueprint.AggregateError.
func (e *Engine) Check(ctx context.Context) (map[string][]*chain.Result, error) {
	results := make(map[string][]*chain.Result)
	var errs []error

	for _, name := range e.Documents() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		cat, err := e.Catalog(name)
		if err != nil {
			return results, err
		}
		res, err := chain.CheckAll(cat)
		results[name] = res
		if err != nil {
			e.logger.Warn("chain check failed", "document", name, "err", err)
			errs = append(errs, prefixed(name, err)...)
		}
	}

	if len(errs) > 0 {
		return results, &blueprint.AggregateError{Errors: errs}
	}
	return results, nil
}
