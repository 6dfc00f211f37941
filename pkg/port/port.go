package port

import (
	"github.com/aretw0/runeport/pkg/descriptor"
	"github.com/aretw0/runeport/pkg/kind"
)

type inputShape uint8

const (
	shapeSingle inputShape = iota // exactly one accepted kind
	shapeOneOf                    // any of a list of kinds
)

type outputShape uint8

const (
	shapeFixed       outputShape = iota // kind and descriptor fixed at declaration
	shapePassthrough                    // kind and descriptor taken from an input
)

// InputPort is the handle of a declared input.
// Its fields never change after declaration.
type InputPort struct {
	owner      *Builder
	index      int
	shape      inputShape
	kinds      []kind.Kind
	descriptor descriptor.Descriptor
	wildcard   bool
	collection bool
}

// InputOption adjusts an input at declaration time.
type InputOption func(*InputPort)

// Wildcard makes the input ignore the descriptor of candidate outputs.
func Wildcard() InputOption {
	return func(p *InputPort) {
		p.wildcard = true
	}
}

// Collection marks the input as accepting many values at once.
func Collection() InputOption {
	return func(p *InputPort) {
		p.collection = true
	}
}

// Index returns the zero-based ordinal of the input.
func (p *InputPort) Index() int { return p.index }

// Descriptor returns the descriptor the input was declared with.
func (p *InputPort) Descriptor() descriptor.Descriptor { return p.descriptor }

// IsWildcard reports whether candidate descriptors are ignored.
func (p *InputPort) IsWildcard() bool { return p.wildcard }

// IsCollection reports whether the input takes many values at once.
func (p *InputPort) IsCollection() bool { return p.collection }

// IsOneOf reports whether the input was declared with a list of kinds.
func (p *InputPort) IsOneOf() bool { return p.shape == shapeOneOf }

// Kind returns the single accepted kind, or kind.None for one-of inputs.
func (p *InputPort) Kind() kind.Kind {
	if p.shape != shapeSingle {
		return kind.None
	}
	return p.kinds[0]
}

// Kinds returns every declared kind.
func (p *InputPort) Kinds() []kind.Kind {
	return append([]kind.Kind(nil), p.kinds...)
}

// OutputPort is the handle of a declared output.
type OutputPort struct {
	owner      *Builder
	index      int
	shape      outputShape
	kind       kind.Kind
	descriptor descriptor.Descriptor
	input      *InputPort
	collection bool
}

// Index returns the zero-based ordinal of the output.
func (p *OutputPort) Index() int { return p.index }

// Kind returns the produced kind of a fixed output, or the documented upper
// bound of a passthrough output.
func (p *OutputPort) Kind() kind.Kind { return p.kind }

// IsPassthrough reports whether the output forwards an input.
func (p *OutputPort) IsPassthrough() bool { return p.shape == shapePassthrough }

// Input returns the forwarded input, or nil for fixed outputs.
func (p *OutputPort) Input() *InputPort { return p.input }

// IsCollection reports whether the output produces many values at once.
func (p *OutputPort) IsCollection() bool { return p.collection }

// Descriptor returns the output descriptor. A passthrough output carries the
// descriptor of the input it forwards.
func (p *OutputPort) Descriptor() descriptor.Descriptor {
	if p.shape == shapePassthrough {
		return p.input.descriptor
	}
	return p.descriptor
}

// accepts is the compatibility predicate: the kind check and the descriptor
// check must both hold.
func accepts(table *kind.Table, in *InputPort, d descriptor.Descriptor, k kind.Kind) bool {
	if !in.wildcard && d != in.descriptor {
		return false
	}
	switch in.shape {
	case shapeSingle:
		return table.Assignable(k, in.kinds[0])
	case shapeOneOf:
		for _, accepted := range in.kinds {
			if table.Assignable(k, accepted) {
				return true
			}
		}
	}
	return false
}

// resolve returns the effective kind of an output given the resolved input
// slots. The boolean is false for a passthrough whose input is absent.
func resolve(out *OutputPort, resolved []kind.Kind) (kind.Kind, bool) {
	if out.shape == shapeFixed {
		return out.kind, true
	}
	i := out.input.index
	if i >= len(resolved) {
		violate("resolve", "output %d forwards input %d but only %d resolved slots were given", out.index, i, len(resolved))
	}
	k := resolved[i]
	return k, k != kind.None
}
