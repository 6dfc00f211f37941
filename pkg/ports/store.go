package ports

import (
	"context"
)

// DocumentStore persists raw blueprint documents (YAML or JSON) by name.
// A name carries its extension (e.g. "runes.yaml") so the format can be inferred.
type DocumentStore interface {
	// Save stores data under name, replacing any previous document.
	Save(ctx context.Context, name string, data []byte) error

	// Load returns the document stored under name.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of every stored document.
	List(ctx context.Context) ([]string, error)
}
