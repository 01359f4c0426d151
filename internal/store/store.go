// Package store provides the document store consumed by the task rewriter
// and the vault commands: whole-document reads and whole-document atomic
// writes addressed by vault-relative path. Atomicity beyond a single write
// call is the store's responsibility, never the caller's.
package store

import "context"

// Store is the minimal collaborator surface. Implementations must make
// WriteDocument atomic with respect to readers.
type Store interface {
	ReadDocument(ctx context.Context, path string) (string, error)
	WriteDocument(ctx context.Context, path, text string) error
}

// Lister is implemented by stores that can enumerate their documents.
type Lister interface {
	ListDocuments(ctx context.Context) ([]string, error)
}
