package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/aretw0/runeport/pkg/chain"
	"github.com/aretw0/runeport/pkg/kind"
)

// GraphOverlay marks nodes to highlight on the graph.
type GraphOverlay struct {
	Focus []string
}

// GenerateMermaid produces a Mermaid flowchart of a checked chain.
// Node shapes follow the ports of their blueprint:
// - Source (no inputs): ((Circle))
// - Sink (no outputs): [/Parallelogram/]
// - Forwarding (has passthrough outputs): [[Subroutine]]
// - Default: [Rectangle]
// Link labels name the joined ports and the kind the link carries.
// Nodes with a disabled output are styled "idle" when an overlay is given.
func GenerateMermaid(cat *blueprint.Catalog, res *chain.Result, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	table := cat.Table()
	ids := mermaidIDs(res.Order)

	for _, id := range res.Order {
		safeID := ids[id]
		bpName := res.Nodes[id]

		opener, closer := "[", "]"
		if bp, ok := cat.Blueprint(bpName); ok {
			switch {
			case bp.Config.NumInputs() == 0:
				opener, closer = "((", "))"
			case bp.Config.NumOutputs() == 0:
				opener, closer = "[/", "/]"
			case hasPassthrough(bp):
				opener, closer = "[[", "]]"
			}
		}
		label := strings.ReplaceAll(id+"<br/>"+bpName, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, l := range res.Links {
		label := l.From.Port + " → " + l.To.Port
		if name := table.Name(l.Kind); name != "" {
			label += " : " + name
		}
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			ids[l.From.Node], label, ids[l.To.Node]))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef idle fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, id := range res.Order {
			for _, k := range res.Outputs[id] {
				if k == kind.None {
					sb.WriteString(fmt.Sprintf("    class %s idle;\n", ids[id]))
					break
				}
			}
		}

		seen := make(map[string]bool)
		for _, id := range overlay.Focus {
			safeID, ok := ids[id]
			if !ok || seen[safeID] {
				continue
			}
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s focus;\n", safeID))
		}
	}

	return sb.String()
}

func hasPassthrough(bp *blueprint.Blueprint) bool {
	for i := 0; i < bp.Config.NumOutputs(); i++ {
		if bp.Config.Output(i).IsPassthrough() {
			return true
		}
	}
	return false
}

// mermaidIDs maps node ids to distinct Mermaid identifiers. Ids that
// sanitize to a taken identifier get a numeric suffix.
func mermaidIDs(order []string) map[string]string {
	ids := make(map[string]string, len(order))
	taken := make(map[string]bool, len(order))
	for _, id := range order {
		base := sanitizeMermaidID(id)
		safeID := base
		for n := 2; taken[safeID]; n++ {
			safeID = fmt.Sprintf("%s_%d", base, n)
		}
		taken[safeID] = true
		ids[id] = safeID
	}
	return ids
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
