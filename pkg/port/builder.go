package port

import (
	"sync/atomic"

	"github.com/aretw0/runeport/pkg/descriptor"
	"github.com/aretw0/runeport/pkg/kind"
)

// configurationIDs numbers every Configuration built in this process.
var configurationIDs atomic.Uint64

// Builder stages port declarations for one Configuration.
// It is single use: Build consumes it and any later call panics.
// A Builder is not safe for concurrent use.
type Builder struct {
	table       *kind.Table
	wildcard    descriptor.Descriptor
	hasWildcard bool
	inputs      []*InputPort
	outputs     []*OutputPort
	built       bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithWildcard turns every input declared with descriptor d into a wildcard input.
func WithWildcard(d descriptor.Descriptor) Option {
	return func(b *Builder) {
		b.wildcard = d
		b.hasWildcard = true
	}
}

// NewBuilder creates a builder whose kinds come from table.
func NewBuilder(table *kind.Table, opts ...Option) *Builder {
	if table == nil {
		violate("new", "nil kind table")
	}
	b := &Builder{table: table}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// In declares an input accepting k and every kind assignable to it.
func (b *Builder) In(d descriptor.Descriptor, k kind.Kind, opts ...InputOption) *InputPort {
	b.checkOpen("in")
	b.checkKind("in", k)
	return b.addInput(&InputPort{
		shape:      shapeSingle,
		kinds:      []kind.Kind{k},
		descriptor: d,
	}, opts)
}

// InOneOf declares an input accepting any of kinds.
func (b *Builder) InOneOf(d descriptor.Descriptor, kinds []kind.Kind, opts ...InputOption) *InputPort {
	b.checkOpen("in")
	if len(kinds) == 0 {
		violate("in", "input %q declares no kinds", d)
	}
	for _, k := range kinds {
		b.checkKind("in", k)
	}
	return b.addInput(&InputPort{
		shape:      shapeOneOf,
		kinds:      append([]kind.Kind(nil), kinds...),
		descriptor: d,
	}, opts)
}

// MultiIn declares an input that takes many values of kind k at once.
func (b *Builder) MultiIn(d descriptor.Descriptor, k kind.Kind, opts ...InputOption) *InputPort {
	all := make([]InputOption, 0, len(opts)+1)
	all = append(all, opts...)
	return b.In(d, k, append(all, Collection())...)
}

// Out declares an output producing k.
func (b *Builder) Out(d descriptor.Descriptor, k kind.Kind) *OutputPort {
	return b.out(d, k, false)
}

// MultiOut declares an output producing many values of kind k at once.
func (b *Builder) MultiOut(d descriptor.Descriptor, k kind.Kind) *OutputPort {
	return b.out(d, k, true)
}

// Passthrough declares an output that carries whatever kind in resolves to.
// upper documents the expected supertype and is not checked.
func (b *Builder) Passthrough(upper kind.Kind, in *InputPort) *OutputPort {
	return b.passthrough(upper, in, false)
}

// MultiPassthrough is Passthrough for a collection input.
func (b *Builder) MultiPassthrough(upper kind.Kind, in *InputPort) *OutputPort {
	if in != nil && !in.collection {
		violate("passthrough", "input %d is not a collection", in.index)
	}
	return b.passthrough(upper, in, true)
}

// Build freezes the declared ports into a Configuration and consumes the builder.
func (b *Builder) Build() *Configuration {
	b.checkOpen("build")
	b.built = true

	c := &Configuration{
		id:      configurationIDs.Add(1) - 1,
		table:   b.table,
		inputs:  b.inputs,
		outputs: b.outputs,
	}
	b.inputs, b.outputs = nil, nil
	return c
}

func (b *Builder) out(d descriptor.Descriptor, k kind.Kind, collection bool) *OutputPort {
	b.checkOpen("out")
	b.checkKind("out", k)
	p := &OutputPort{
		owner:      b,
		index:      len(b.outputs),
		shape:      shapeFixed,
		kind:       k,
		descriptor: d,
		collection: collection,
	}
	b.outputs = append(b.outputs, p)
	return p
}

func (b *Builder) passthrough(upper kind.Kind, in *InputPort, collection bool) *OutputPort {
	b.checkOpen("passthrough")
	b.checkKind("passthrough", upper)
	if in == nil || in.owner != b {
		violate("passthrough", "input does not belong to this builder")
	}
	p := &OutputPort{
		owner:      b,
		index:      len(b.outputs),
		shape:      shapePassthrough,
		kind:       upper,
		input:      in,
		collection: collection,
	}
	b.outputs = append(b.outputs, p)
	return p
}

func (b *Builder) addInput(p *InputPort, opts []InputOption) *InputPort {
	for _, opt := range opts {
		opt(p)
	}
	p.owner = b
	p.index = len(b.inputs)
	if b.hasWildcard && p.descriptor == b.wildcard {
		p.wildcard = true
	}
	b.inputs = append(b.inputs, p)
	return p
}

func (b *Builder) checkOpen(op string) {
	if b.built {
		violate(op, "builder already built")
	}
}

func (b *Builder) checkKind(op string, k kind.Kind) {
	if !b.table.Contains(k) {
		violate(op, "%s is not a declared kind", k)
	}
}
