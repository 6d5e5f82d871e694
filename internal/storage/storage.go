// Package storage persists uploaded document files. Records in the
// database hold paths relative to a Store; the Store owns the actual
// bytes.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store reads and writes document files addressed by a relative path.
type Store interface {
	Save(ctx context.Context, rel string, r io.Reader) (int64, error)
	Open(ctx context.Context, rel string) (io.ReadCloser, error)
	Remove(ctx context.Context, rel string) error
}

// LocalStore keeps files on the local filesystem under a root directory.
type LocalStore struct {
	root   string
	logger *zap.Logger
}

func NewLocalStore(root string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &LocalStore{
		root:   root,
		logger: logger,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, rel string, r io.Reader) (int64, error) {
	path, err := s.resolve(rel)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, r)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Debug("File saved",
		zap.String("path", rel),
		zap.Int64("size", size),
	)

	return size, nil
}

func (s *LocalStore) Open(ctx context.Context, rel string) (io.ReadCloser, error) {
	path, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

func (s *LocalStore) Remove(ctx context.Context, rel string) error {
	path, err := s.resolve(rel)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// resolve maps a relative path into the root and rejects paths that would
// escape it.
func (s *LocalStore) resolve(rel string) (string, error) {
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("invalid file path: %q", rel)
	}
	return filepath.Join(s.root, rel), nil
}
