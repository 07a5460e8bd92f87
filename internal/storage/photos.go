// Package storage writes uploaded profile photos to the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// LocalPhotoStore keeps one profile photo per user under dir
type LocalPhotoStore struct {
	dir     string
	baseURL string
}

// NewLocalPhotoStore stores files under dir and reports URLs under baseURL
func NewLocalPhotoStore(dir, baseURL string) *LocalPhotoStore {
	return &LocalPhotoStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir is the root directory served under the base URL
func (s *LocalPhotoStore) Dir() string {
	return s.dir
}

// SavePhoto writes the photo of userID and returns its public URL. An
// existing photo with the same extension is replaced.
func (s *LocalPhotoStore) SavePhoto(ctx context.Context, userID, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := "profile_" + userID + PhotoExtension(filename)
	userDir := filepath.Join(s.dir, userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(filepath.Join(userDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return path.Join(s.baseURL, userID, name), nil
}

// PhotoExtension returns the lower-cased extension of filename, or .jpg when
// it is not a supported image extension.
func PhotoExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if allowedExtensions[ext] {
		return ext
	}
	return ".jpg"
}
