// Package archive keeps a copy of every compiled artifact in blob storage.
package archive

import (
	"context"
	"path"
	"strings"
)

// Archiver stores artifacts under a content key. Saving the same key twice
// is not an error.
type Archiver interface {
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// ObjectName returns the object path for key under prefix.
func ObjectName(prefix, key string) string {
	return path.Join(strings.Trim(prefix, "/"), key+".pdf")
}

// Null discards artifacts.
type Null struct{}

// Save does nothing.
func (Null) Save(context.Context, string, []byte) error { return nil }

// Close does nothing.
func (Null) Close() error { return nil }

var _ Archiver = Null{}
