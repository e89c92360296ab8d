// Package storage keeps uploaded payment screenshots, either in a local
// directory or in an S3 compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
)

var (
	ErrNotFound    = errors.New("screenshot not found")
	ErrInvalidName = errors.New("invalid screenshot name")
)

type Storage interface {
	// Save writes r under name, replacing any existing object.
	Save(ctx context.Context, name string, r io.Reader, size int64) error
	Open(ctx context.Context, name string) (*Object, error)
	Remove(ctx context.Context, name string) error
	Ping(ctx context.Context) error
}

// Object is an open screenshot. Callers must Close it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// validName accepts only bare file names as produced by UploadName.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
