package blueprint

import (
	"fmt"

	"github.com/aretw0/runeport/pkg/descriptor"
	"github.com/aretw0/runeport/pkg/kind"
	"github.com/aretw0/runeport/pkg/port"
)

// Catalog is a compiled document: the frozen kind table and one
// port.Configuration per blueprint. It is immutable and safe for concurrent use.
type Catalog struct {
	namespace  string
	table      *kind.Table
	blueprints map[string]*Blueprint
	order      []string
	chains     []ChainSpec
}

// Blueprint is a compiled node type with its port names.
type Blueprint struct {
	Name        string
	Description string
	Config      *port.Configuration

	inputs      []string
	outputs     []string
	inputIndex  map[string]int
	outputIndex map[string]int
}

// Namespace returns the document namespace.
func (c *Catalog) Namespace() string { return c.namespace }

// Table returns the kind table shared by every blueprint of the catalog.
func (c *Catalog) Table() *kind.Table { return c.table }

// Blueprint returns the blueprint with the given name.
func (c *Catalog) Blueprint(name string) (*Blueprint, bool) {
	bp, ok := c.blueprints[name]
	return bp, ok
}

// Names returns blueprint names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Chains returns the chains declared in the document.
func (c *Catalog) Chains() []ChainSpec {
	return append([]ChainSpec(nil), c.chains...)
}

// Chain returns the chain with the given name.
func (c *Catalog) Chain(name string) (ChainSpec, bool) {
	for _, ch := range c.chains {
		if ch.Name == name {
			return ch, true
		}
	}
	return ChainSpec{}, false
}

// InputIndex returns the ordinal of the named input.
func (b *Blueprint) InputIndex(name string) (int, bool) {
	i, ok := b.inputIndex[name]
	return i, ok
}

// OutputIndex returns the ordinal of the named output.
func (b *Blueprint) OutputIndex(name string) (int, bool) {
	i, ok := b.outputIndex[name]
	return i, ok
}

// InputName returns the name of input i.
func (b *Blueprint) InputName(i int) string { return b.inputs[i] }

// OutputName returns the name of output i.
func (b *Blueprint) OutputName(i int) string { return b.outputs[i] }

// Compile builds the kind table and every blueprint configuration of doc.
// All problems are reported together as an *AggregateError.
func Compile(doc *Document) (*Catalog, error) {
	c := &collector{}
	if len(doc.Kinds) > kind.MaxKinds {
		c.add("kinds", "too many kinds: %d declared (max %d)", len(doc.Kinds), kind.MaxKinds)
		return nil, c.err()
	}

	reg := kind.NewRegistry()
	for i, ks := range doc.Kinds {
		path := fmt.Sprintf("kinds[%d]", i)
		if ks.Name == "" {
			c.add(path, "name is required")
			continue
		}
		if _, dup := reg.Lookup(ks.Name); dup {
			c.add(path, "kind %q already declared", ks.Name)
			continue
		}
		parents := make([]kind.Kind, 0, len(ks.Extends))
		ok := true
		for _, name := range ks.Extends {
			p, found := reg.Lookup(name)
			if !found {
				c.add(path, "unknown parent kind %q (parents must be declared first)", name)
				ok = false
				continue
			}
			parents = append(parents, p)
		}
		if ok {
			reg.Define(ks.Name, parents...)
		}
	}
	table := reg.Freeze()

	var opts []port.Option
	if doc.Wildcard != "" {
		d, err := descriptor.ParseIn(doc.Wildcard, doc.Namespace)
		if err != nil {
			c.add("wildcard", "%v", err)
		} else {
			opts = append(opts, port.WithWildcard(d))
		}
	}

	cat := &Catalog{
		namespace:  doc.Namespace,
		table:      table,
		blueprints: make(map[string]*Blueprint, len(doc.Blueprints)),
		chains:     append([]ChainSpec(nil), doc.Chains...),
	}

	for i, spec := range doc.Blueprints {
		path := fmt.Sprintf("blueprints[%d]", i)
		if _, dup := cat.blueprints[spec.Name]; dup {
			c.add(path, "blueprint %q already declared", spec.Name)
			continue
		}
		bp, ok := compileBlueprint(c, path, doc.Namespace, table, spec, opts)
		if !ok {
			continue
		}
		cat.blueprints[spec.Name] = bp
		cat.order = append(cat.order, spec.Name)
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return cat, nil
}

// compileBlueprint checks every declaration before handing it to the
// port.Builder, which treats the same mistakes as contract violations.
func compileBlueprint(c *collector, path, namespace string, table *kind.Table, spec BlueprintSpec, opts []port.Option) (*Blueprint, bool) {
	before := len(c.errs)
	b := port.NewBuilder(table, opts...)
	bp := &Blueprint{
		Name:        spec.Name,
		Description: spec.Description,
		inputIndex:  make(map[string]int, len(spec.Inputs)),
		outputIndex: make(map[string]int, len(spec.Outputs)),
	}
	handles := make(map[string]*port.InputPort, len(spec.Inputs))

	lookup := func(p, name string) (kind.Kind, bool) {
		k, ok := table.Lookup(name)
		if !ok {
			c.add(p, "unknown kind %q", name)
		}
		return k, ok
	}

	for i, in := range spec.Inputs {
		p := fmt.Sprintf("%s.inputs[%d]", path, i)
		if _, dup := handles[in.Name]; dup {
			c.add(p, "input %q already declared", in.Name)
			continue
		}
		d, err := descriptor.ParseIn(in.Descriptor, namespace)
		if err != nil {
			c.add(p, "%v", err)
			continue
		}
		var inOpts []port.InputOption
		if in.Wildcard {
			inOpts = append(inOpts, port.Wildcard())
		}
		if in.Collection {
			inOpts = append(inOpts, port.Collection())
		}

		var handle *port.InputPort
		switch {
		case in.Kind != "" && len(in.Kinds) > 0:
			c.add(p, "kind and kinds are mutually exclusive")
			continue
		case in.Kind != "":
			k, ok := lookup(p, in.Kind)
			if !ok {
				continue
			}
			handle = b.In(d, k, inOpts...)
		case len(in.Kinds) > 0:
			kinds := make([]kind.Kind, 0, len(in.Kinds))
			ok := true
			for _, name := range in.Kinds {
				k, found := lookup(p, name)
				ok = ok && found
				kinds = append(kinds, k)
			}
			if !ok {
				continue
			}
			handle = b.InOneOf(d, kinds, inOpts...)
		default:
			c.add(p, "input declares no kind")
			continue
		}

		handles[in.Name] = handle
		bp.inputIndex[in.Name] = handle.Index()
		bp.inputs = append(bp.inputs, in.Name)
	}

	for i, out := range spec.Outputs {
		p := fmt.Sprintf("%s.outputs[%d]", path, i)
		if _, dup := bp.outputIndex[out.Name]; dup {
			c.add(p, "output %q already declared", out.Name)
			continue
		}
		k, ok := lookup(p, out.Kind)
		if !ok {
			continue
		}

		var handle *port.OutputPort
		if out.Passthrough != "" {
			if out.Descriptor != "" {
				c.add(p, "passthrough outputs take the descriptor of their input")
				continue
			}
			in, found := handles[out.Passthrough]
			if !found {
				c.add(p, "passthrough of unknown input %q", out.Passthrough)
				continue
			}
			if out.Collection {
				if !in.IsCollection() {
					c.add(p, "collection passthrough of single input %q", out.Passthrough)
					continue
				}
				handle = b.MultiPassthrough(k, in)
			} else {
				handle = b.Passthrough(k, in)
			}
		} else {
			if out.Descriptor == "" {
				c.add(p, "descriptor is required")
				continue
			}
			d, err := descriptor.ParseIn(out.Descriptor, namespace)
			if err != nil {
				c.add(p, "%v", err)
				continue
			}
			if out.Collection {
				handle = b.MultiOut(d, k)
			} else {
				handle = b.Out(d, k)
			}
		}

		bp.outputIndex[out.Name] = handle.Index()
		bp.outputs = append(bp.outputs, out.Name)
	}

	if len(c.errs) > before {
		return nil, false
	}
	bp.Config = b.Build()
	return bp, true
}
