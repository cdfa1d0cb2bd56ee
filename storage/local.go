package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localUploader struct {
	root          string
	publicBaseURL string
}

// NewLocalUploader writes artifacts below root. It backs exports when no
// bucket is configured, e.g. for swissctl on an organizer's laptop.
func NewLocalUploader(root, publicBaseURL string) (FileUploader, error) {
	if root == "" {
		return nil, fmt.Errorf("local uploader: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("local uploader: create root %s: %w", root, err)
	}
	return &localUploader{root: root, publicBaseURL: publicBaseURL}, nil
}

func (u *localUploader) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(key, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(u.root, clean), nil
}

func (u *localUploader) Upload(ctx context.Context, key string, _ string, reader io.Reader) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dst, err := u.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", dst, err)
	}

	location := u.GetPublicURL(key)
	if location == "" {
		location = dst
	}
	return &UploadResult{Key: key, Location: location}, nil
}

func (u *localUploader) Delete(_ context.Context, key string) error {
	dst, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", dst, err)
	}
	return nil
}

func (u *localUploader) GetPublicURL(key string) string {
	return joinPublicURL(u.publicBaseURL, key)
}
