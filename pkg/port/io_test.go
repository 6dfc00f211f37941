package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeIO(t *testing.T) {
	k := newKinds()
	b := NewBuilder(k.table)
	count := b.In(numeric, k.number)
	label := b.In(other, k.text)
	sum := b.Out(numeric, k.number)
	cfg := b.Build()

	io := NewNodeIO(cfg)
	assert.Len(t, io.Inputs, 2)
	assert.Len(t, io.Outputs, 1)

	io.Inputs[count.Index()] = 3
	io.Inputs[label.Index()] = "three"

	assert.Equal(t, 3, count.Value(io))

	n, ok := Get[int](count, io)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = Get[string](count, io)
	assert.False(t, ok)

	assert.Equal(t, "three", GetOr(label, io, "none"))
	assert.Equal(t, 7, GetOr(label, io, 7), "mistyped slot falls back to the default")

	io.Inputs[label.Index()] = nil
	assert.Equal(t, "none", GetOr(label, io, "none"), "empty slot falls back to the default")

	var seen []int
	Run(count, io, func(v int) { seen = append(seen, v) })
	Run(count, io, func(v string) { t.Fatalf("unexpected call with %q", v) })
	assert.Equal(t, []int{3}, seen)

	Run(label, io, func(v string) { t.Fatalf("unexpected call on empty slot with %q", v) })

	sum.Set(io, 6)
	assert.Equal(t, []any{6}, io.Outputs)
}
