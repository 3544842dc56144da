// Package storage persists uploaded receipt files on local disk and exposes
// them through the public /uploads path.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReceiptStore saves and removes receipt files
type ReceiptStore interface {
	// Save writes the uploaded file and returns its public URL together with
	// the original filename
	Save(file *multipart.FileHeader) (url string, originalName string, err error)
	// Remove deletes the stored file behind a previously returned URL.
	// Removing a file that no longer exists is not an error.
	Remove(url string) error
}

type localReceiptStore struct {
	dir     string
	baseURL string
}

// NewLocalReceiptStore creates a disk-backed receipt store rooted at dir.
// Files are served under baseURL (e.g. "/uploads").
func NewLocalReceiptStore(dir, baseURL string) (ReceiptStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localReceiptStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *localReceiptStore) Save(file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Prefix with a timestamp so repeated uploads of the same receipt never
	// overwrite each other
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/" + name, file.Filename, nil
}

func (s *localReceiptStore) Remove(url string) error {
	name := strings.TrimPrefix(url, s.baseURL+"/")
	// Refuse anything that resolves outside the upload directory
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid receipt URL: %s", url)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
