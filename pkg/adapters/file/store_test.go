package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/runeport/pkg/adapters/file"
	"github.com/aretw0/runeport/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_ListSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runes.yaml"), []byte("namespace: a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "more.JSON"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.yaml"), []byte(""), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	names, err := file.New(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"more.JSON", "runes.yaml"}, names)
}

func TestFileStore_InvalidNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape.yaml", "sub/dir.yaml", "notes.txt"} {
		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, file.ErrInvalidName, name)
		assert.ErrorIs(t, store.Save(ctx, name, nil), file.ErrInvalidName, name)
	}
}

func TestFileStore_MissingDirectory(t *testing.T) {
	names, err := file.New(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
