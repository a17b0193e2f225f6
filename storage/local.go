package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type localUploader struct {
	dir           string
	publicBaseURL string
}

// NewLocalUploader хранит файлы в dir; они раздаются по publicBaseURL (обычно APP_URL + "/storage").
func NewLocalUploader(dir, publicBaseURL string) (FileUploader, error) {
	if dir == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory %s: %w", dir, err)
	}
	return &localUploader{dir: dir, publicBaseURL: publicBaseURL}, nil
}

func (u *localUploader) path(key string) string {
	return filepath.Join(u.dir, filepath.FromSlash(key))
}

func (u *localUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	target := u.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	hash := md5.New()
	if _, err = io.Copy(io.MultiWriter(tmp, hash), reader); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close object %s: %w", key, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("failed to store object %s: %w", key, err)
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		ETag:     hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

func (u *localUploader) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(u.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (u *localUploader) GetPublicURL(key string) string {
	return publicURL(u.publicBaseURL, key)
}
