// Package blob stores recipe images in a public bucket and hands back the
// URLs the frontend renders.
package blob

import "context"

// Store writes and deletes image objects. Objects are addressed by path on
// write and by their public URL on delete, matching how the rest of the
// system only ever holds URLs.
type Store interface {
	// Write uploads data to path and returns the object's public URL.
	Write(ctx context.Context, path string, contentType string, data []byte) (string, error)

	// Delete removes the object behind a URL previously returned by Write.
	Delete(ctx context.Context, url string) error
}
