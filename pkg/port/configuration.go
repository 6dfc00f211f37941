package port

import (
	"github.com/aretw0/runeport/pkg/descriptor"
	"github.com/aretw0/runeport/pkg/kind"
)

// Configuration is the immutable port layout of one node blueprint.
// All queries are read-only and safe for concurrent use, provided each caller
// owns the resolved slice it passes in.
type Configuration struct {
	id      uint64
	table   *kind.Table
	inputs  []*InputPort
	outputs []*OutputPort
}

// ID returns the process-wide identity assigned at build time.
func (c *Configuration) ID() uint64 { return c.id }

// Table returns the kind table the configuration was built against.
func (c *Configuration) Table() *kind.Table { return c.table }

// NumInputs returns the number of declared inputs.
func (c *Configuration) NumInputs() int { return len(c.inputs) }

// NumOutputs returns the number of declared outputs.
func (c *Configuration) NumOutputs() int { return len(c.outputs) }

// Input returns the input at ordinal i.
func (c *Configuration) Input(i int) *InputPort {
	return c.input("input", i)
}

// Output returns the output at ordinal i.
func (c *Configuration) Output(i int) *OutputPort {
	return c.output("output", i)
}

// Inputs returns the inputs in ordinal order.
func (c *Configuration) Inputs() []*InputPort {
	return append([]*InputPort(nil), c.inputs...)
}

// Outputs returns the outputs in ordinal order.
func (c *Configuration) Outputs() []*OutputPort {
	return append([]*OutputPort(nil), c.outputs...)
}

// IsCompatible reports whether an output described by d and producing k may
// feed input in.
func (c *Configuration) IsCompatible(in int, d descriptor.Descriptor, k kind.Kind) bool {
	return accepts(c.table, c.input("compatible", in), d, k)
}

// ResolveOutputKind returns the kind output out carries for the given
// resolved input kinds, indexed by input ordinal. The boolean is false for a
// passthrough output whose input slot is kind.None.
func (c *Configuration) ResolveOutputKind(out int, resolved []kind.Kind) (kind.Kind, bool) {
	return resolve(c.output("resolve", out), resolved)
}

// IsOutputEnabled reports whether output out currently has a kind.
func (c *Configuration) IsOutputEnabled(out int, resolved []kind.Kind) bool {
	_, ok := resolve(c.output("enabled", out), resolved)
	return ok
}

// OutputDescriptor returns the descriptor of output out.
func (c *Configuration) OutputDescriptor(out int) descriptor.Descriptor {
	return c.output("descriptor", out).Descriptor()
}

// ResolveOutputs resolves every output at once. Disabled outputs are kind.None.
func (c *Configuration) ResolveOutputs(resolved []kind.Kind) []kind.Kind {
	kinds := make([]kind.Kind, len(c.outputs))
	for i, out := range c.outputs {
		kinds[i], _ = resolve(out, resolved)
	}
	return kinds
}

func (c *Configuration) input(op string, i int) *InputPort {
	if i < 0 || i >= len(c.inputs) {
		violate(op, "input ordinal %d out of range [0,%d)", i, len(c.inputs))
	}
	return c.inputs[i]
}

func (c *Configuration) output(op string, i int) *OutputPort {
	if i < 0 || i >= len(c.outputs) {
		violate(op, "output ordinal %d out of range [0,%d)", i, len(c.outputs))
	}
	return c.outputs[i]
}
