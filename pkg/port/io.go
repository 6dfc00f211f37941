package port

// IO gives a node evaluation access to its slots: Get reads input slots and
// Set writes output slots, both by ordinal.
type IO interface {
	Get(index int) any
	Set(index int, value any)
}

// NodeIO is a slice-backed IO sized for one Configuration.
type NodeIO struct {
	Inputs  []any
	Outputs []any
}

// NewNodeIO allocates empty slots for c.
func NewNodeIO(c *Configuration) *NodeIO {
	return &NodeIO{
		Inputs:  make([]any, c.NumInputs()),
		Outputs: make([]any, c.NumOutputs()),
	}
}

func (n *NodeIO) Get(index int) any { return n.Inputs[index] }

func (n *NodeIO) Set(index int, value any) { n.Outputs[index] = value }

// Value returns the raw value in the input slot without any type check.
func (p *InputPort) Value(io IO) any {
	return io.Get(p.index)
}

// Set writes value into the output slot.
func (p *OutputPort) Set(io IO, value any) {
	io.Set(p.index, value)
}

// Get returns the value at input p if it holds a T.
func Get[T any](p *InputPort, io IO) (T, bool) {
	v, ok := io.Get(p.index).(T)
	return v, ok
}

// GetOr returns the value at input p, or def when the slot is empty or holds
// something other than a T. An empty slot is treated as a type mismatch.
func GetOr[T any](p *InputPort, io IO, def T) T {
	if v, ok := Get[T](p, io); ok {
		return v
	}
	return def
}

// Run calls fn with the value at input p when it holds a T. An empty slot is
// treated as a type mismatch, so fn is not called.
func Run[T any](p *InputPort, io IO, fn func(T)) {
	if v, ok := Get[T](p, io); ok {
		fn(v)
	}
}
