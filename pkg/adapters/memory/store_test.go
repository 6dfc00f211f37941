package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/runeport/pkg/adapters/memory"
	"github.com/aretw0/runeport/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, memory.NewStore(nil))
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	seed := []byte("namespace: a\n")
	store := memory.NewStore(map[string][]byte{"a.yaml": seed})

	seed[0] = 'X'
	loaded, err := store.Load(ctx, "a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "namespace: a\n", string(loaded), "seed is copied")

	loaded[0] = 'Y'
	again, err := store.Load(ctx, "a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "namespace: a\n", string(again), "loads return copies")

	require.NoError(t, store.Save(ctx, "b.json", []byte("{}")))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "b.json"}, names)
}
