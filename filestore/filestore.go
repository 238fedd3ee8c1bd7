package filestore

import "io"

// FileManager abstracts the object store used for brochures and
// developer logos. Writes are upsert-by-path, an existing object at
// the same path is overwritten.
type FileManager interface {
	Create(path, fileName string, reader io.Reader) error
	Get(path, fileName string) (io.ReadCloser, error)
	Delete(path, fileName string) error
	GetObjectSize(path, fileName string) (int64, error)
	// GetPublicURL builds the URL the object is served from.
	GetPublicURL(path, fileName string) string
	GetBucketName() string
}
