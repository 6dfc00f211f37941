package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/runeport/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405") + ".yaml"
	body := []byte("namespace: contract\nkinds: [{name: number}]\n")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, name, body)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, body, loaded)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		updated := []byte("namespace: contract\n")
		require.NoError(t, store.Save(ctx, name, updated))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, updated, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, body))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		first := "list-1-" + name
		second := "list-2-" + name
		require.NoError(t, store.Save(ctx, first, body))
		require.NoError(t, store.Save(ctx, second, body))

		defer func() {
			_ = store.Delete(ctx, first)
			_ = store.Delete(ctx, second)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, first)
		assert.Contains(t, names, second)
	})
}
