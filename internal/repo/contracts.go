package repo

import (
	"context"

	"github.com/Jacky088/Edgeone-Imgbed/internal/entity"
)

type (
	// BlobRepo is a key-addressed remote blob store. All keys live in a single
	// fixed namespace shared by every operation.
	BlobRepo interface {
		Upload(ctx context.Context, key string, data []byte, contentType string) error
		// Download returns errs.ErrBlobNotFound for a missing key; a missing
		// key is a normal outcome, not a transport failure.
		Download(ctx context.Context, key string) ([]byte, error)
		// Fetch streams the blob at a relative path, preserving the upstream
		// Content-Type and Content-Length. rangeHeader, when non-empty, is
		// forwarded as the Range request header.
		Fetch(ctx context.Context, path, rangeHeader string) (*entity.BlobObject, error)
		// Delete is idempotent: deleting a missing key succeeds.
		Delete(ctx context.Context, key string) error
		// ReadBase is the absolute base URL direct links resolve against.
		// It always ends with a slash.
		ReadBase() string
	}

	// RecordRepo maintains the ordered snapshot of image records.
	RecordRepo interface {
		Load(ctx context.Context) ([]entity.ImageRecord, error)
		Append(ctx context.Context, record entity.ImageRecord) error
		Remove(ctx context.Context, id string) error
	}
)
