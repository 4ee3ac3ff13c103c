package configstore

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/utils/fileconf"
)

// BlobReader reads the raw bytes of a configuration document
type BlobReader interface {
	ReadBlob(ctx context.Context) ([]byte, error)
	// Name is used for format detection and logging
	Name() string
}

// LocalFile reads a configuration file from the local filesystem
type LocalFile struct {
	Path string
}

// ReadBlob reads the file
func (f *LocalFile) ReadBlob(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(f.Path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", f.Path))
	}
	return data, nil
}

// Name returns the file path
func (f *LocalFile) Name() string {
	return f.Path
}

// File serves a configuration document loaded from a BlobReader. The
// document is parsed on Reload and swapped atomically, so every Snapshot
// sees one complete version.
type File struct {
	reader  BlobReader
	current atomic.Pointer[model.FilterConfig]
}

// NewFile creates a File source and performs the initial load
func NewFile(ctx context.Context, reader BlobReader) (*File, error) {
	f := &File{reader: reader}
	if err := f.Reload(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload re-reads the document. On failure the previous version is kept.
func (f *File) Reload(ctx context.Context) error {
	data, err := f.reader.ReadBlob(ctx)
	if err != nil {
		return err
	}

	var cfg model.FilterConfig
	if err := fileconf.Decode(f.reader.Name(), data, &cfg); err != nil {
		return goerr.Wrap(err, "failed to parse DX configuration", goerr.V("source", f.reader.Name()))
	}

	f.current.Store(&cfg)
	ctxlog.From(ctx).Info("DX configuration loaded",
		"source", f.reader.Name(),
		"configured", cfg.IsConfigured(),
	)
	return nil
}

// Snapshot returns a copy of the current configuration
func (f *File) Snapshot(ctx context.Context) (*model.FilterConfig, error) {
	cur := f.current.Load()
	if cur == nil {
		return &model.FilterConfig{}, nil
	}
	cfg := *cur
	return &cfg, nil
}
