// Package blob provides the narrow byte-storage contract the document
// lifecycle depends on. Bytes live in a pantry storage backend, local
// disk or S3 depending on configuration.
package blob

import "context"

// Stored describes a persisted file.
type Stored struct {
	// URL is the stable serving URL for the file. It is returned unchanged
	// by download flows; no signing happens at this layer.
	URL string
	// Filename is the generated on-disk name, not the original upload name.
	Filename string
}

// Store persists and removes raw file bytes.
type Store interface {
	// Store writes data under a generated unique name inside folder and
	// returns its serving URL.
	Store(ctx context.Context, data []byte, contentType, originalName, folder string) (Stored, error)
	// Delete removes the file a previous Store returned. Deleting an
	// unknown URL is not an error; it reports found=false.
	Delete(ctx context.Context, url string) (found bool, err error)
}
