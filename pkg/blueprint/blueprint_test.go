package blueprint

import (
	"fmt"
	"testing"

	"github.com/aretw0/runeport/pkg/descriptor"
	"github.com/aretw0/runeport/pkg/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
namespace: rune
wildcard: rune:any
kinds:
  - name: number
  - name: integer
    extends: [number]
  - name: entity
  - name: text
blueprints:
  - name: add
    description: Adds two numbers
    inputs:
      - {name: a, descriptor: numeric, kind: number}
      - {name: b, descriptor: numeric, kind: number}
    outputs:
      - {name: sum, descriptor: numeric, kind: number}
      - {name: first, passthrough: a, kind: number}
  - name: filter
    inputs:
      - {name: things, descriptor: any, kinds: [entity, text], collection: "true"}
    outputs:
      - {name: kept, passthrough: things, kind: entity, collection: true}
chains:
  - name: demo
    nodes:
      - {id: n1, blueprint: add}
      - {id: n2, blueprint: add}
    links:
      - {from: "n1:sum", to: "n2:a"}
`

func TestParseAndCompile(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "rune", doc.Namespace)
	require.Len(t, doc.Blueprints, 2)
	assert.True(t, doc.Blueprints[1].Inputs[0].Collection, "weakly typed bool")

	cat, err := Compile(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"add", "filter"}, cat.Names())
	assert.Equal(t, 4, cat.Table().Len())

	add, ok := cat.Blueprint("add")
	require.True(t, ok)
	assert.Equal(t, "Adds two numbers", add.Description)

	a, ok := add.InputIndex("a")
	require.True(t, ok)
	b, _ := add.InputIndex("b")
	first, _ := add.OutputIndex("first")
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, first)
	assert.Equal(t, "b", add.InputName(1))
	assert.Equal(t, "sum", add.OutputName(0))

	number, _ := cat.Table().Lookup("number")
	integer, _ := cat.Table().Lookup("integer")
	numeric := descriptor.New("rune", "numeric")

	assert.True(t, add.Config.IsCompatible(a, numeric, integer))
	assert.False(t, add.Config.IsCompatible(a, descriptor.New("rune", "other"), number))

	k, ok := add.Config.ResolveOutputKind(first, []kind.Kind{integer, kind.None})
	assert.True(t, ok)
	assert.Equal(t, integer, k)
	assert.False(t, add.Config.IsOutputEnabled(first, []kind.Kind{kind.None, number}))

	filter, ok := cat.Blueprint("filter")
	require.True(t, ok)
	in := filter.Config.Input(0)
	assert.True(t, in.IsWildcard(), "document wildcard applies")
	assert.True(t, in.IsCollection())
	assert.True(t, filter.Config.Output(0).IsCollection())

	entity, _ := cat.Table().Lookup("entity")
	assert.True(t, filter.Config.IsCompatible(0, descriptor.New("mod", "whatever"), entity))

	ch, ok := cat.Chain("demo")
	require.True(t, ok)
	assert.Len(t, ch.Nodes, 2)
	_, ok = cat.Chain("missing")
	assert.False(t, ok)
}

func TestParse_JSON(t *testing.T) {
	data := `{
		"namespace": "mod",
		"kinds": [{"name": "number"}],
		"blueprints": [{
			"name": "const",
			"outputs": [{"name": "value", "descriptor": "mod:numeric", "kind": "number"}]
		}]
	}`
	doc, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)

	cat, err := Compile(doc)
	require.NoError(t, err)

	bp, ok := cat.Blueprint("const")
	require.True(t, ok)
	assert.Equal(t, 0, bp.Config.NumInputs())
	assert.Equal(t, descriptor.New("mod", "numeric"), bp.Config.OutputDescriptor(0))
}

func TestParse_Errors(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		_, err := Parse([]byte("kinds: [{name: number}]\nblueprints: [{inputs: [{name: a}]}]"), FormatYAML)
		require.Error(t, err)
		errs := ValidationErrors(err)
		require.NotEmpty(t, errs)

		var paths []string
		for _, e := range errs {
			var ve *ValidationError
			require.ErrorAs(t, e, &ve)
			paths = append(paths, ve.Path)
		}
		assert.Contains(t, paths, "Namespace")
		assert.Contains(t, paths, "Blueprints[0].Name")
		assert.Contains(t, paths, "Blueprints[0].Inputs[0].Descriptor")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("namespace: rune\nblueprintz: []"), FormatYAML)
		assert.ErrorContains(t, err, "blueprintz")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse([]byte(""), FormatYAML)
		assert.ErrorContains(t, err, "empty document")
	})

	t.Run("bad syntax", func(t *testing.T) {
		_, err := Parse([]byte("{"), FormatJSON)
		assert.ErrorContains(t, err, "failed to parse json document")
	})
}

func TestCompile_Errors(t *testing.T) {
	doc := &Document{
		Namespace: "rune",
		Wildcard:  "BAD WILDCARD",
		Kinds: []KindSpec{
			{Name: "number"},
			{Name: "number"},
			{Name: "integer", Extends: []string{"real"}},
		},
		Blueprints: []BlueprintSpec{
			{
				Name: "broken",
				Inputs: []InputSpec{
					{Name: "a", Descriptor: "numeric", Kind: "number", Kinds: []string{"number"}},
					{Name: "b", Descriptor: "numeric", Kind: "vector"},
					{Name: "b", Descriptor: "numeric", Kind: "number"},
					{Name: "c", Descriptor: "numeric"},
					{Name: "d", Descriptor: "Not:Valid", Kind: "number"},
				},
				Outputs: []OutputSpec{
					{Name: "x", Kind: "number"},
					{Name: "y", Kind: "number", Passthrough: "ghost"},
					{Name: "z", Kind: "number", Passthrough: "b", Collection: true},
					{Name: "w", Kind: "number", Passthrough: "b", Descriptor: "numeric"},
				},
			},
			{Name: "fine"},
			{Name: "fine"},
		},
	}

	cat, err := Compile(doc)
	assert.Nil(t, cat)
	require.Error(t, err)

	msgs := make([]string, 0)
	for _, e := range ValidationErrors(err) {
		msgs = append(msgs, e.Error())
	}
	assert.Contains(t, msgs, `kinds[1]: kind "number" already declared`)
	assert.Contains(t, msgs, `kinds[2]: unknown parent kind "real" (parents must be declared first)`)
	assert.Contains(t, msgs, `blueprints[0].inputs[0]: kind and kinds are mutually exclusive`)
	assert.Contains(t, msgs, `blueprints[0].inputs[1]: unknown kind "vector"`)
	assert.Contains(t, msgs, `blueprints[0].inputs[3]: input declares no kind`)
	assert.Contains(t, msgs, `blueprints[0].outputs[0]: descriptor is required`)
	assert.Contains(t, msgs, `blueprints[0].outputs[1]: passthrough of unknown input "ghost"`)
	assert.Contains(t, msgs, `blueprints[0].outputs[3]: passthrough outputs take the descriptor of their input`)
	assert.Contains(t, msgs, `blueprints[2]: blueprint "fine" already declared`)
	assert.Greater(t, len(msgs), 10)
}

func TestCompile_CollectionPassthroughOfSingleInput(t *testing.T) {
	doc := &Document{
		Namespace: "rune",
		Kinds:     []KindSpec{{Name: "number"}},
		Blueprints: []BlueprintSpec{{
			Name:    "bad",
			Inputs:  []InputSpec{{Name: "a", Descriptor: "numeric", Kind: "number"}},
			Outputs: []OutputSpec{{Name: "o", Kind: "number", Passthrough: "a", Collection: true}},
		}},
	}

	_, err := Compile(doc)
	assert.EqualError(t, err, `blueprints[0].outputs[0]: collection passthrough of single input "a"`)
}

func TestCompile_TooManyKinds(t *testing.T) {
	kinds := make([]KindSpec, kind.MaxKinds+1)
	for i := range kinds {
		kinds[i] = KindSpec{Name: fmt.Sprintf("k%d", i)}
	}

	var (
		cat *Catalog
		err error
	)
	require.NotPanics(t, func() {
		cat, err = Compile(&Document{Namespace: "rune", Kinds: kinds})
	})
	assert.Nil(t, cat)
	require.Len(t, ValidationErrors(err), 1)
	assert.EqualError(t, err, fmt.Sprintf("kinds: too many kinds: %d declared (max %d)", kind.MaxKinds+1, kind.MaxKinds))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b"))
}
