package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/runeport/internal/presentation/graph"
	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/aretw0/runeport/pkg/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `
namespace: rune
kinds:
  - name: number
  - name: integer
    extends: [number]
blueprints:
  - name: const
    outputs:
      - {name: value, descriptor: numeric, kind: integer}
  - name: relay
    inputs:
      - {name: in, descriptor: numeric, kind: number}
      - {name: aux, descriptor: numeric, kind: number}
    outputs:
      - {name: out, passthrough: in, kind: number}
      - {name: other, passthrough: aux, kind: number}
  - name: sink
    inputs:
      - {name: n, descriptor: numeric, kind: number}
chains:
  - name: main
    nodes:
      - {id: src-1, blueprint: const}
      - {id: relay.a, blueprint: relay}
      - {id: sink-1, blueprint: sink}
    links:
      - {from: "src-1:value", to: "relay.a:in"}
      - {from: "relay.a:out", to: "sink-1:n"}
`

func checked(t *testing.T) (*blueprint.Catalog, *chain.Result) {
	t.Helper()
	d, err := blueprint.Parse([]byte(doc), blueprint.FormatYAML)
	require.NoError(t, err)
	cat, err := blueprint.Compile(d)
	require.NoError(t, err)
	spec, ok := cat.Chain("main")
	require.True(t, ok)
	res, err := chain.Check(cat, spec)
	require.NoError(t, err)
	return cat, res
}

func TestGenerateMermaid(t *testing.T) {
	cat, res := checked(t)

	tests := []struct {
		name        string
		overlay     *graph.GraphOverlay
		contains    []string
		notContains []string
	}{
		{
			name: "Shapes and Labels",
			contains: []string{
				"graph LR",
				`src_1(("src-1<br/>const"))`,
				`relay_a[["relay.a<br/>relay"]]`,
				`sink_1[/"sink-1<br/>sink"/]`,
				`src_1 -- "value → in : integer" --> relay_a`,
				`relay_a -- "out → n : integer" --> sink_1`,
			},
			notContains: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.GraphOverlay{Focus: []string{"sink-1", "sink-1", "ghost"}},
			contains: []string{
				"classDef idle",
				"class relay_a idle;",
				"class sink_1 focus;",
			},
			notContains: []string{"class ghost", "class src_1 idle;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(cat, res, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}

	out := graph.GenerateMermaid(cat, res, &graph.GraphOverlay{Focus: []string{"sink-1", "sink-1"}})
	assert.Equal(t, 1, strings.Count(out, "class sink_1 focus;"))
}

func TestGenerateMermaid_DistinctIDs(t *testing.T) {
	d, err := blueprint.Parse([]byte(`
namespace: rune
kinds: [{name: number}]
blueprints:
  - name: src
    outputs: [{name: o, descriptor: numeric, kind: number}]
  - name: dst
    inputs: [{name: i, descriptor: numeric, kind: number}]
  - name: relay
    inputs: [{name: i, descriptor: numeric, kind: number}]
    outputs: [{name: o, passthrough: i, kind: number}]
chains:
  - name: clash
    nodes:
      - {id: a-b, blueprint: src}
      - {id: a_b, blueprint: relay}
      - {id: a.b, blueprint: dst}
    links:
      - {from: "a-b:o", to: "a_b:i"}
      - {from: "a_b:o", to: "a.b:i"}
`), blueprint.FormatYAML)
	require.NoError(t, err)
	cat, err := blueprint.Compile(d)
	require.NoError(t, err)
	spec, _ := cat.Chain("clash")
	res, err := chain.Check(cat, spec)
	require.NoError(t, err)

	out := graph.GenerateMermaid(cat, res, &graph.GraphOverlay{Focus: []string{"a.b"}})
	assert.Contains(t, out, `a_b(("a-b<br/>src"))`)
	assert.Contains(t, out, `a_b_2[["a_b<br/>relay"]]`)
	assert.Contains(t, out, `a_b_3[/"a.b<br/>dst"/]`)
	assert.Contains(t, out, `a_b -- "o → i : number" --> a_b_2`)
	assert.Contains(t, out, `a_b_2 -- "o → i : number" --> a_b_3`)
	assert.Contains(t, out, "class a_b_3 focus;")
	assert.NotContains(t, out, "--> a_b\n")
}
