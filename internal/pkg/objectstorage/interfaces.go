package objectstorage

import (
	"context"
	"io"
)

// Store is the binary object store holding uploaded PDFs. The hosted
// deployment fronts a managed storage service; everything above this
// interface only sees bucket-relative object paths like
// "cpf-forms/1727612345678_intro_to_testing.pdf".
type Store interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, objectPath, contentType string, content io.Reader) (string, error)

	// Download returns the object's content.
	Download(ctx context.Context, objectPath string) ([]byte, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, objectPath string) error

	// PublicURL returns the URL an object is served under.
	PublicURL(objectPath string) string
}
