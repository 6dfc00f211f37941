// Package chain checks the links of a chain of node instances against the
// port configurations of their blueprints and infers the kinds flowing
// through every passthrough output.
package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/aretw0/runeport/pkg/kind"
)

// ErrInvalidPortRef is returned for a link end that is not "node:port".
var ErrInvalidPortRef = errors.New("invalid port reference")

// PortRef names a port of a node instance.
type PortRef struct {
	Node string
	Port string
}

// ParsePortRef parses "node:port".
func ParsePortRef(s string) (PortRef, error) {
	node, p, found := strings.Cut(s, ":")
	if !found || node == "" || p == "" {
		return PortRef{}, fmt.Errorf("%w: %q", ErrInvalidPortRef, s)
	}
	return PortRef{Node: node, Port: p}, nil
}

func (r PortRef) String() string {
	return r.Node + ":" + r.Port
}

// Link is a checked connection between an output and an input.
type Link struct {
	From   PortRef
	To     PortRef
	Output int
	Input  int
	Kind   kind.Kind // kind carried by the link, kind.None when unresolved
}

// Result is the outcome of a successful check.
type Result struct {
	Name    string
	Order   []string               // node ids, sources before sinks
	Nodes   map[string]string      // node id -> blueprint name
	Inputs  map[string][]kind.Kind // resolved input kinds per node
	Outputs map[string][]kind.Kind // resolved output kinds per node, kind.None when disabled
	Links   []Link
}

type incoming struct {
	link   int
	from   string
	output int
}

// Check verifies that every link of spec joins an enabled output to a
// compatible input, visiting nodes in dependency order so passthrough kinds
// propagate downstream. Every problem is reported in one *blueprint.AggregateError.
func Check(cat *blueprint.Catalog, spec blueprint.ChainSpec) (*Result, error) {
	var errs []error
	fail := func(path, format string, args ...any) {
		errs = append(errs, &blueprint.ValidationError{
			Path:   fmt.Sprintf("chains[%s].%s", spec.Name, path),
			Reason: fmt.Sprintf(format, args...),
		})
	}

	res := &Result{
		Name:    spec.Name,
		Nodes:   make(map[string]string, len(spec.Nodes)),
		Inputs:  make(map[string][]kind.Kind, len(spec.Nodes)),
		Outputs: make(map[string][]kind.Kind, len(spec.Nodes)),
	}

	blueprints := make(map[string]*blueprint.Blueprint, len(spec.Nodes))
	var order []string
	for i, n := range spec.Nodes {
		if _, dup := blueprints[n.ID]; dup {
			fail(fmt.Sprintf("nodes[%d]", i), "node %q already declared", n.ID)
			continue
		}
		bp, ok := cat.Blueprint(n.Blueprint)
		if !ok {
			fail(fmt.Sprintf("nodes[%d]", i), "unknown blueprint %q", n.Blueprint)
			continue
		}
		blueprints[n.ID] = bp
		res.Nodes[n.ID] = n.Blueprint
		order = append(order, n.ID)
	}

	wired := make(map[string]map[int]incoming, len(blueprints))
	edges := make(map[string][]string, len(blueprints))
	indegree := make(map[string]int, len(blueprints))

	for i, l := range spec.Links {
		path := fmt.Sprintf("links[%d]", i)
		from, err := ParsePortRef(l.From)
		if err != nil {
			fail(path, "%v", err)
			continue
		}
		to, err := ParsePortRef(l.To)
		if err != nil {
			fail(path, "%v", err)
			continue
		}
		src, ok := blueprints[from.Node]
		if !ok {
			fail(path, "unknown node %q", from.Node)
			continue
		}
		dst, ok := blueprints[to.Node]
		if !ok {
			fail(path, "unknown node %q", to.Node)
			continue
		}
		out, ok := src.OutputIndex(from.Port)
		if !ok {
			fail(path, "blueprint %q has no output %q", src.Name, from.Port)
			continue
		}
		in, ok := dst.InputIndex(to.Port)
		if !ok {
			fail(path, "blueprint %q has no input %q", dst.Name, to.Port)
			continue
		}
		if wired[to.Node] == nil {
			wired[to.Node] = make(map[int]incoming)
		}
		if prev, dup := wired[to.Node][in]; dup {
			fail(path, "input %s is already linked from %s", to, res.Links[prev.link].From)
			continue
		}

		wired[to.Node][in] = incoming{link: len(res.Links), from: from.Node, output: out}
		res.Links = append(res.Links, Link{From: from, To: to, Output: out, Input: in})
		edges[from.Node] = append(edges[from.Node], to.Node)
		indegree[to.Node]++
	}

	sorted, cyclic := topoSort(order, edges, indegree)
	if len(cyclic) > 0 {
		fail("links", "cycle through nodes %s", strings.Join(cyclic, ", "))
	}
	res.Order = sorted

	table := cat.Table()
	for _, id := range sorted {
		bp := blueprints[id]
		cfg := bp.Config
		resolved := make([]kind.Kind, cfg.NumInputs())

		for in := 0; in < cfg.NumInputs(); in++ {
			w, ok := wired[id][in]
			if !ok {
				continue
			}
			link := &res.Links[w.link]
			path := fmt.Sprintf("links[%s->%s]", link.From, link.To)
			srcCfg := blueprints[w.from].Config
			srcResolved := res.Inputs[w.from]

			k, enabled := srcCfg.ResolveOutputKind(w.output, srcResolved)
			if !enabled {
				fail(path, "output %s is disabled: the input it forwards is unresolved", link.From)
				continue
			}
			d := srcCfg.OutputDescriptor(w.output)
			if !cfg.IsCompatible(in, d, k) {
				fail(path, "input %s does not accept %s (descriptor %s)", link.To, table.Name(k), d)
				continue
			}
			link.Kind = k
			resolved[in] = k
		}

		res.Inputs[id] = resolved
		res.Outputs[id] = cfg.ResolveOutputs(resolved)
	}

	if len(errs) > 0 {
		return nil, &blueprint.AggregateError{Errors: errs}
	}
	return res, nil
}

// CheckAll checks every chain of the catalog.
func CheckAll(cat *blueprint.Catalog) ([]*Result, error) {
	var results []*Result
	var errs []error
	for _, spec := range cat.Chains() {
		res, err := Check(cat, spec)
		if err != nil {
			if more := blueprint.ValidationErrors(err); more != nil {
				errs = append(errs, more...)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		results = append(results, res)
	}
	if len(errs) > 0 {
		return results, &blueprint.AggregateError{Errors: errs}
	}
	return results, nil
}

// topoSort orders nodes with Kahn's algorithm, keeping declaration order among
// independent nodes. Nodes left over are part of, or behind, a cycle.
func topoSort(order []string, edges map[string][]string, indegree map[string]int) ([]string, []string) {
	remaining := make(map[string]int, len(indegree))
	for id, n := range indegree {
		remaining[id] = n
	}

	var queue []string
	for _, id := range order {
		if remaining[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)
		for _, next := range edges[id] {
			remaining[next]--
			if remaining[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) == len(order) {
		return sorted, nil
	}
	done := make(map[string]bool, len(sorted))
	for _, id := range sorted {
		done[id] = true
	}
	var cyclic []string
	for _, id := range order {
		if !done[id] {
			cyclic = append(cyclic, id)
		}
	}
	return sorted, cyclic
}
