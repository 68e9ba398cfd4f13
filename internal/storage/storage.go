// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage is the media storage collaborator: it stores uploaded
// files under collision-free references and releases files that entity
// writes or deletions left unreferenced.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/olegiv/weblog-go/internal/util"
)

// Storage stores and deletes media files by reference. References are
// opaque strings persisted on entities (cover, image, album item media).
type Storage interface {
	// Store writes r under a new reference derived from filename.
	Store(ctx context.Context, filename string, r io.Reader) (string, error)

	// Delete removes a stored file. Deleting a missing reference is not
	// an error; purge runs are idempotent.
	Delete(ctx context.Context, reference string) error
}

// DiskStorage keeps media on the local filesystem under a base directory.
type DiskStorage struct {
	baseDir string
}

// NewDiskStorage creates the base directory when missing.
func NewDiskStorage(baseDir string) (*DiskStorage, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &DiskStorage{baseDir: baseDir}, nil
}

// Store writes the file under a reference of the form "<uuid>-<name>".
// The random prefix keeps repeated uploads of the same filename from
// overwriting each other.
func (s *DiskStorage) Store(_ context.Context, filename string, r io.Reader) (string, error) {
	name, err := util.SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	reference := uuid.NewString() + "-" + name
	path, err := util.SafeJoinPath(s.baseDir, reference)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("creating media file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing media file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing media file: %w", err)
	}
	return reference, nil
}

// Delete removes the file behind a reference, ignoring already-missing
// files.
func (s *DiskStorage) Delete(_ context.Context, reference string) error {
	path, err := util.SafeJoinPath(s.baseDir, reference)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing media file: %w", err)
	}
	return nil
}

// Path resolves a reference to its on-disk location, for serving.
func (s *DiskStorage) Path(reference string) (string, error) {
	return util.SafeJoinPath(s.baseDir, filepath.Clean(reference))
}
