// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

/*
Package media stores uploaded images on local disk and serves them back as
static files. Uploads are admin-only; the returned URL is what the series
and character records reference.
*/
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mybini/mybini/internal/platform/apperr"
	"github.com/mybini/mybini/pkg/uuid"
)

// allowedExtensions are the image types the gallery accepts.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 10 << 20 // 10 MiB

// Storage writes uploads beneath a root directory and maps them to URLs
// under a base path.
type Storage struct {
	rootDir string
	baseURL string
}

// NewStorage creates the root directory if needed.
func NewStorage(rootDir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("media_storage_mkdir_failed: %w", err)
	}
	return &Storage{rootDir: rootDir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// RootDir returns the directory static file serving should mount.
func (storage *Storage) RootDir() string {
	return storage.rootDir
}

// Save streams the upload to disk under a fresh id and returns the public
// URL. The original filename only contributes its extension; the content is
// sniffed so a renamed binary does not land in the gallery.
func (storage *Storage) Save(_ context.Context, filename string, body io.Reader) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[extension]; !ok {
		return "", apperr.ValidationError("Unsupported image type")
	}

	// DetectContentType needs at most the first 512 bytes.
	head := make([]byte, 512)
	read, err := io.ReadFull(body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("media_storage_read_failed: %w", err)
	}
	head = head[:read]

	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", apperr.ValidationError("File content is not an image")
	}

	name := uuid.New() + extension
	path := filepath.Join(storage.rootDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("media_storage_create_failed: %w", err)
	}
	defer file.Close()

	// One byte past the cap distinguishes an at-cap upload from an
	// oversized one.
	rest := io.MultiReader(bytes.NewReader(head), body)
	written, err := io.Copy(file, io.LimitReader(rest, MaxUploadBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("media_storage_write_failed: %w", err)
	}
	if written > MaxUploadBytes {
		os.Remove(path)
		return "", apperr.ValidationError("Image exceeds the upload size limit")
	}

	return storage.baseURL + "/" + name, nil
}
