package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBase64DataURI(t *testing.T) {
	dir := t.TempDir()
	up := NewUploadService(dir)

	url, err := up.SaveBase64("data:image/png;base64,aG9sYQ==", "inspiracion")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/inspiracion/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	data, err := os.ReadFile(filepath.Join(dir, "inspiracion", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "hola", string(data))
}

func TestSaveBase64Raw(t *testing.T) {
	dir := t.TempDir()
	url, err := NewUploadService(dir).SaveBase64("aG9sYQ==", "documentos")
	require.NoError(t, err)
	assert.Equal(t, "", filepath.Ext(url))
}

func TestSaveBase64Rejects(t *testing.T) {
	up := NewUploadService(t.TempDir())
	_, err := up.SaveBase64("   ", "documentos")
	assert.Error(t, err)
	_, err = up.SaveBase64("data:image/png;base64,%%%", "documentos")
	assert.Error(t, err)
}
