package kind

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Assignable(t *testing.T) {
	reg := NewRegistry()
	number := reg.Define("number")
	integer := reg.Define("integer", number)
	text := reg.Define("text")
	entity := reg.Define("entity")
	living := reg.Define("living", entity)
	player := reg.Define("player", living, text)
	table := reg.Freeze()

	tests := []struct {
		from, to Kind
		want     bool
	}{
		{number, number, true},
		{integer, number, true},
		{number, integer, false},
		{player, entity, true},
		{player, living, true},
		{player, text, true},
		{living, player, false},
		{text, number, false},
		{None, number, false},
		{number, None, false},
		{Kind(99), number, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", table.Name(tt.from), table.Name(tt.to)), func(t *testing.T) {
			assert.Equal(t, tt.want, table.Assignable(tt.from, tt.to))
		})
	}
}

func TestTable_ManyKinds(t *testing.T) {
	// More than one bitset word.
	reg := NewRegistry()
	prev := reg.Define("k0")
	root := prev
	for i := 1; i < 150; i++ {
		prev = reg.Define(fmt.Sprintf("k%d", i), prev)
	}
	table := reg.Freeze()

	assert.Equal(t, 150, table.Len())
	assert.True(t, table.Assignable(prev, root))
	assert.False(t, table.Assignable(root, prev))
	assert.Len(t, table.Ancestors(prev), 150)
}

func TestTable_Lookup(t *testing.T) {
	reg := NewRegistry()
	number := reg.Define("number")
	table := reg.Freeze()

	k, ok := table.Lookup("number")
	require.True(t, ok)
	assert.Equal(t, number, k)
	assert.Equal(t, "number", table.Name(number))

	_, ok = table.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "", table.Name(None))
	assert.Equal(t, []Kind{number}, table.Kinds())
}

func TestRegistry_Violations(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		reg := NewRegistry()
		reg.Define("number")
		assert.PanicsWithError(t, `kind: define: kind "number" already defined`, func() {
			reg.Define("number")
		})
	})

	t.Run("unknown parent", func(t *testing.T) {
		reg := NewRegistry()
		assert.Panics(t, func() { reg.Define("integer", Kind(7)) })
		assert.Panics(t, func() { reg.Define("integer", None) })
	})

	t.Run("after freeze", func(t *testing.T) {
		reg := NewRegistry()
		reg.Freeze()
		assert.Panics(t, func() { reg.Define("late") })
	})

	t.Run("too many kinds", func(t *testing.T) {
		reg := NewRegistry()
		for i := 0; i < MaxKinds; i++ {
			reg.Define(fmt.Sprintf("k%d", i))
		}
		assert.PanicsWithError(t, "kind: define: too many kinds", func() { reg.Define("extra") })
	})

	t.Run("empty name", func(t *testing.T) {
		assert.Panics(t, func() { NewRegistry().Define("") })
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "kind#3", Kind(3).String())
}
