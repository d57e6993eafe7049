package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadService writes base64 attachments below Dir. Saved files are served under
// URLPrefix.
type UploadService struct {
	Dir       string
	URLPrefix string
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{Dir: dir, URLPrefix: "/uploads"}
}

var extByMime = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// decodeBase64 accepts a data URI ("data:image/png;base64,...") or a raw payload.
func decodeBase64(b64 string) ([]byte, string, error) {
	b64 = strings.TrimSpace(b64)
	if b64 == "" {
		return nil, "", fmt.Errorf("empty base64 string")
	}

	ext := ""
	if strings.HasPrefix(b64, "data:") {
		if meta, payload, ok := strings.Cut(b64, ";base64,"); ok {
			ext = extByMime[strings.TrimPrefix(meta, "data:")]
			b64 = payload
		} else if idx := strings.Index(b64, ","); idx != -1 {
			b64 = b64[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		if data, err = base64.URLEncoding.DecodeString(b64); err != nil {
			return nil, "", fmt.Errorf("decode base64: %w", err)
		}
	}
	return data, ext, nil
}

// SaveBase64 stores the file in Dir/subdir and returns its public URL.
func (s *UploadService) SaveBase64(b64, subdir string) (string, error) {
	data, ext, err := decodeBase64(b64)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(s.URLPrefix, subdir, name), nil
}
