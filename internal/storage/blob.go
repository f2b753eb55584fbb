package storage

import "io"

// BlobStore abstracts where the dataset file and the static front-end assets
// live. The fs implementation is the only one today; the interface keeps the
// server indifferent to that.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
