package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores blobs under a base directory on disk.
type LocalStorage struct {
	baseDir string
}

var _ BlobStore = &LocalStorage{}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// resolve keeps paths inside baseDir. Locators are generated by this service,
// but uploads named by users still pass through here.
func (s *LocalStorage) resolve(path string) string {
	clean := filepath.Clean("/" + strings.ReplaceAll(path, "\\", "/"))
	return filepath.Join(s.baseDir, clean)
}

func (s *LocalStorage) Save(ctx context.Context, path string, data []byte) error {
	full := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

func (s *LocalStorage) Download(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	err := os.Remove(s.resolve(path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
