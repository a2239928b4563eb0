package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps blobs as files in a single upload directory, each under a
// uuid-prefixed name so distinct uploads of the same file never collide.
type LocalStore struct {
	dir string
}

var _ BlobStore = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Store(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	name := uuid.New().String() + "_" + filepath.Base(suggestedName)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

func (s *LocalStore) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(storedName)))
}

func (s *LocalStore) Delete(ctx context.Context, storedName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) Size(ctx context.Context, storedName string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
