package store

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"sync"

	"github.com/vk/seriesgrid/internal/ctxlog"
)

var (
	// ErrNotFound is returned when a location holds no document.
	ErrNotFound = errors.New("document not found")
	// ErrUnsupportedLocation is returned for locations no backend serves.
	ErrUnsupportedLocation = errors.New("unsupported location")
)

// Store is a document backend.
type Store interface {
	Read(ctx context.Context, location string) ([]byte, error)
	Write(ctx context.Context, location string, data []byte) error
}

// Router dispatches each location to the backend for its scheme. The S3
// backend is created on first use, so runs that never touch S3 never load
// AWS configuration.
type Router struct {
	File Store
	HTTP Store
	// NewS3 builds the S3 backend.
	NewS3 func(ctx context.Context) (Store, error)

	s3Once sync.Once
	s3     Store
	s3Err  error
}

// NewRouter returns a Router with the default backends. S3 clients use the
// shared AWS configuration, optionally pinned to a region and profile.
func NewRouter(awsCfg AWSConfig) *Router {
	return &Router{
		File: File{},
		HTTP: NewHTTP(nil),
		NewS3: func(ctx context.Context) (Store, error) {
			return NewS3(ctx, awsCfg)
		},
	}
}

func (r *Router) backend(ctx context.Context, location string) (Store, error) {
	switch scheme(location) {
	case "":
		return r.File, nil
	case "http", "https":
		return r.HTTP, nil
	case "s3":
		r.s3Once.Do(func() {
			if r.NewS3 == nil {
				r.s3Err = fmt.Errorf("%w: no S3 backend configured", ErrUnsupportedLocation)
				return
			}
			r.s3, r.s3Err = r.NewS3(ctx)
		})
		return r.s3, r.s3Err
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocation, location)
	}
}

// Read returns the document at location.
func (r *Router) Read(ctx context.Context, location string) ([]byte, error) {
	ctxlog.FromContext(ctx).Debug("Reading document.", "location", location)
	s, err := r.backend(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.Read(ctx, location)
}

// Write stores data at location, replacing any existing document.
func (r *Router) Write(ctx context.Context, location string, data []byte) error {
	ctxlog.FromContext(ctx).Debug("Writing document.", "location", location, "bytes", len(data))
	s, err := r.backend(ctx, location)
	if err != nil {
		return err
	}
	return s.Write(ctx, location, data)
}

// scheme returns the lower-cased URL scheme of location, or "" for a local
// path. Single-letter schemes are Windows drive letters.
func scheme(location string) string {
	i := strings.Index(location, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(location[:i])
}

// contentType guesses the media type of a document from its name.
func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
