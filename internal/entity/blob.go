package entity

import "io"

// BlobObject is a streamed blob fetched from the object store.
type BlobObject struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	ContentRange  string // set on partial (range) responses
}
