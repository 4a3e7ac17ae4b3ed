package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
)

// DiskStore writes attachments under baseDir/<kind>/ and hands back paths
// relative to the process working directory, which the HTTP layer serves
// statically.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) (*DiskStore, error) {
	for _, kind := range []Kind{KindProfile, KindNotice, KindScheme, KindJob, KindWork} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(kind)), 0o755); err != nil {
			return nil, err
		}
	}
	return &DiskStore{baseDir: baseDir}, nil
}

func (s *DiskStore) Save(_ context.Context, kind Kind, file *multipart.FileHeader) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	relPath := filepath.Join(s.baseDir, string(kind), objectName(kind, file.Filename))
	dst, err := os.Create(relPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(relPath)
		return "", err
	}
	return filepath.ToSlash(relPath), nil
}

func (s *DiskStore) Remove(_ context.Context, path string) error {
	err := os.Remove(filepath.FromSlash(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
