package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileService releases files owned by catalog rows, e.g. category icons.
// Paths are the stored form "/uploads/<name>"; everything resolves inside
// the configured upload directory.
type FileService interface {
	Delete(path string) error
}

type fileService struct {
	uploadDir string
}

// NewFileService creates a FileService rooted at uploadDir.
func NewFileService(uploadDir string) FileService {
	return &fileService{uploadDir: uploadDir}
}

func (s *fileService) Delete(path string) error {
	name := path
	if idx := strings.Index(path, "uploads/"); idx >= 0 {
		name = path[idx+len("uploads/"):]
	}
	name = filepath.Base(name) // No traversal outside the upload dir
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid file path %q", path)
	}

	target := filepath.Join(s.uploadDir, name)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("deleting file %s: %w", target, err)
	}
	return nil
}
