package kind

import (
	"fmt"
	"math/bits"
)

// Kind identifies one member of a closed enumeration of data kinds.
// Kinds are minted by a Registry and are only meaningful together with the
// Table frozen from that registry.
type Kind uint16

// None is the zero Kind. It marks an absent or unresolved slot.
const None Kind = 0

// MaxKinds is the number of kinds a registry can define besides None.
const MaxKinds = int(^Kind(0))

func (k Kind) String() string {
	if k == None {
		return "none"
	}
	return fmt.Sprintf("kind#%d", uint16(k))
}

// ContractViolation is raised (via panic) when the registry is misused.
type ContractViolation struct {
	Op     string
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("kind: %s: %s", e.Op, e.Reason)
}

func violate(op, format string, args ...any) {
	panic(&ContractViolation{Op: op, Reason: fmt.Sprintf(format, args...)})
}

// Registry collects kind declarations.
// It is not safe for concurrent use.
type Registry struct {
	names   []string
	parents [][]Kind
	byName  map[string]Kind
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names:   []string{""},
		parents: [][]Kind{nil},
		byName:  make(map[string]Kind),
	}
}

// Define declares a new kind assignable to every listed parent.
// Parents must already be defined, so the subtype relation is acyclic.
func (r *Registry) Define(name string, parents ...Kind) Kind {
	if r.frozen {
		violate("define", "registry is frozen")
	}
	if name == "" {
		violate("define", "empty kind name")
	}
	if _, ok := r.byName[name]; ok {
		violate("define", "kind %q already defined", name)
	}
	if len(r.names) > MaxKinds {
		violate("define", "too many kinds")
	}
	for _, p := range parents {
		if p == None || int(p) >= len(r.names) {
			violate("define", "kind %q: unknown parent %s", name, p)
		}
	}

	k := Kind(len(r.names))
	r.names = append(r.names, name)
	r.parents = append(r.parents, append([]Kind(nil), parents...))
	r.byName[name] = k
	return k
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// Freeze computes the assignability closure and returns the immutable Table.
// The registry cannot be extended afterwards.
func (r *Registry) Freeze() *Table {
	r.frozen = true

	n := len(r.names)
	words := (n + 63) / 64
	ancestors := make([][]uint64, n)
	for i := 1; i < n; i++ {
		set := make([]uint64, words)
		set[i/64] |= 1 << (uint(i) % 64)
		// Parents always have smaller ids, so their closure is complete here.
		for _, p := range r.parents[i] {
			for w, bitsW := range ancestors[p] {
				set[w] |= bitsW
			}
		}
		ancestors[i] = set
	}

	byName := make(map[string]Kind, len(r.byName))
	for name, k := range r.byName {
		byName[name] = k
	}

	return &Table{
		names:     append([]string(nil), r.names...),
		byName:    byName,
		ancestors: ancestors,
	}
}

// Table is the frozen assignability relation of a registry.
// It is safe for concurrent use.
type Table struct {
	names     []string
	byName    map[string]Kind
	ancestors [][]uint64
}

// Contains reports whether k was minted by the registry this table came from.
func (t *Table) Contains(k Kind) bool {
	return k != None && int(k) < len(t.names)
}

// Assignable reports whether a value of kind from may be used where kind to
// is expected. Every kind is assignable to itself and to its ancestors.
// None is never assignable.
func (t *Table) Assignable(from, to Kind) bool {
	if !t.Contains(from) || !t.Contains(to) {
		return false
	}
	return t.ancestors[from][int(to)/64]&(1<<(uint(to)%64)) != 0
}

// Name returns the declared name of k, or "" when k is unknown.
func (t *Table) Name(k Kind) string {
	if !t.Contains(k) {
		return ""
	}
	return t.names[k]
}

// Lookup returns the kind declared under name.
func (t *Table) Lookup(name string) (Kind, bool) {
	k, ok := t.byName[name]
	return k, ok
}

// Len returns the number of declared kinds.
func (t *Table) Len() int {
	return len(t.names) - 1
}

// Kinds returns every declared kind in declaration order.
func (t *Table) Kinds() []Kind {
	out := make([]Kind, 0, t.Len())
	for i := 1; i < len(t.names); i++ {
		out = append(out, Kind(i))
	}
	return out
}

// Ancestors returns k and every kind it is assignable to, in declaration order.
func (t *Table) Ancestors(k Kind) []Kind {
	if !t.Contains(k) {
		return nil
	}
	var out []Kind
	for w, word := range t.ancestors[k] {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, Kind(w*64+b))
			word &^= 1 << uint(b)
		}
	}
	return out
}
