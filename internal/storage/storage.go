package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/config"
)

// ErrObjectMissing means the record points at a file that is not in the
// backing store.
var ErrObjectMissing = errors.New("object missing from storage")

// Object is an opened upload. Size comes from the backing store, not from
// the database record.
type Object struct {
	Body     io.ReadCloser
	Size     int64
	Location string
}

// Backend is the physical home of uploaded files, addressed by paths
// relative to the uploads root.
type Backend interface {
	Open(ctx context.Context, relPath string) (*Object, error)
	Exists(ctx context.Context, relPath string) (bool, error)
	Location(relPath string) string
}

// RelativePath strips the public uploads prefix from a stored path so it
// can be joined to the physical root without duplicating the prefix. Both
// "/uploads/x" and "/uploadsx" forms are accepted; other paths are returned
// as is.
func RelativePath(stored, prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return stored
	}
	if rest, ok := strings.CutPrefix(stored, prefix+"/"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(stored, prefix); ok {
		return rest
	}
	return stored
}

// NewBackend builds the backend selected by cfg.Storage.Driver. For s3 the
// bucket must already exist.
func NewBackend(ctx context.Context, cfg *config.AppConfig) (Backend, error) {
	switch cfg.Storage.Driver {
	case "s3":
		store, err := NewObjectStore(cfg.Storage)
		if err != nil {
			return nil, err
		}
		if err := store.CheckBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := NewLocalStore(cfg.Uploads.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
