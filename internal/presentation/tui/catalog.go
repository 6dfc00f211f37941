package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/aretw0/runeport/pkg/kind"
	"github.com/aretw0/runeport/pkg/port"
)

// CatalogMarkdown describes the kinds, blueprints and chains of a compiled
// document as markdown tables.
func CatalogMarkdown(name string, cat *blueprint.Catalog) string {
	var sb strings.Builder
	table := cat.Table()

	fmt.Fprintf(&sb, "# %s\n\nNamespace `%s`\n\n", name, cat.Namespace())

	sb.WriteString("## Kinds\n\n| kind | assignable to |\n|---|---|\n")
	for _, k := range table.Kinds() {
		var parents []string
		for _, a := range table.Ancestors(k) {
			if a != k {
				parents = append(parents, table.Name(a))
			}
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", table.Name(k), orDash(strings.Join(parents, ", ")))
	}

	for _, bpName := range cat.Names() {
		bp, _ := cat.Blueprint(bpName)
		cfg := bp.Config
		fmt.Fprintf(&sb, "\n## %s\n\n", bp.Name)
		if bp.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", bp.Description)
		}

		if cfg.NumInputs() > 0 {
			sb.WriteString("| # | input | descriptor | accepts | flags |\n|---|---|---|---|---|\n")
			for i, in := range cfg.Inputs() {
				fmt.Fprintf(&sb, "| %d | %s | `%s` | %s | %s |\n",
					i, bp.InputName(i), in.Descriptor(), kindNames(table, in.Kinds()), inputFlags(in))
			}
			sb.WriteString("\n")
		}

		if cfg.NumOutputs() > 0 {
			sb.WriteString("| # | output | descriptor | kind | flags |\n|---|---|---|---|---|\n")
			for i, out := range cfg.Outputs() {
				d := fmt.Sprintf("`%s`", out.Descriptor())
				var flags []string
				if out.IsPassthrough() {
					flags = append(flags, "passthrough of "+bp.InputName(out.Input().Index()))
				}
				if out.IsCollection() {
					flags = append(flags, "collection")
				}
				fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
					i, bp.OutputName(i), d, table.Name(out.Kind()), orDash(strings.Join(flags, ", ")))
			}
		}
	}

	if chains := cat.Chains(); len(chains) > 0 {
		sb.WriteString("\n## Chains\n\n| chain | nodes | links |\n|---|---|---|\n")
		for _, ch := range chains {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", ch.Name, len(ch.Nodes), len(ch.Links))
		}
	}

	return sb.String()
}

func kindNames(table *kind.Table, kinds []kind.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, table.Name(k))
	}
	return strings.Join(names, " \\| ")
}

func inputFlags(in *port.InputPort) string {
	var flags []string
	if in.IsWildcard() {
		flags = append(flags, "wildcard")
	}
	if in.IsCollection() {
		flags = append(flags, "collection")
	}
	return orDash(strings.Join(flags, ", "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
