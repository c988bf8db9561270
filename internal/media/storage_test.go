// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package media_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/media"
	"github.com/mybini/mybini/internal/platform/apperr"
)

// pngPayload carries the PNG magic number so content sniffing accepts it.
func pngPayload(body string) string {
	return "\x89PNG\r\n\x1a\n" + body
}

func TestStorage_SaveWritesFileAndReturnsURL(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	url, err := storage.Save(context.Background(), "rem portrait.PNG", strings.NewReader(pngPayload("fake-png-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/"))
	assert.True(t, strings.HasSuffix(url, ".png")) // extension is lowercased

	name := strings.TrimPrefix(url, "/media/")
	data, err := os.ReadFile(filepath.Join(storage.RootDir(), name))
	require.NoError(t, err)
	assert.Equal(t, pngPayload("fake-png-bytes"), string(data))
}

func TestStorage_SaveRejectsUnsupportedExtension(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), "malware.exe", strings.NewReader("nope"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	entries, readErr := os.ReadDir(storage.RootDir())
	require.NoError(t, readErr)
	assert.Empty(t, entries) // nothing written for a rejected upload
}

func TestStorage_SaveGeneratesUniqueNames(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := storage.Save(context.Background(), "cover.jpg", strings.NewReader(pngPayload("a")))
	require.NoError(t, err)
	second, err := storage.Save(context.Background(), "cover.jpg", strings.NewReader(pngPayload("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStorage_SaveRejectsOversizedUpload(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	oversized := io.MultiReader(
		strings.NewReader(pngPayload("")),
		io.LimitReader(neverEnding{}, media.MaxUploadBytes+1),
	)
	_, err = storage.Save(context.Background(), "huge.png", oversized)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	entries, readErr := os.ReadDir(storage.RootDir())
	require.NoError(t, readErr)
	assert.Empty(t, entries) // the partial file must not linger
}

// neverEnding reads zeros forever.
type neverEnding struct{}

func (neverEnding) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestStorage_SaveRejectsNonImageContent(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), "renamed.png", strings.NewReader("#!/bin/sh\necho not-an-image\n"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
