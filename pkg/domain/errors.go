package domain

import "errors"

// ErrDocumentNotFound is returned when a document name cannot be found in a store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrCatalogNotFound is returned when a document has not been compiled into a catalog.
var ErrCatalogNotFound = errors.New("catalog not found")
