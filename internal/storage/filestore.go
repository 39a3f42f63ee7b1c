package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"careerbridge/internal/common"
)

// FileStore keeps uploaded files on local disk under a single directory and
// serves them back through the /uploads static route. Stored names are
// random so uploads cannot collide or be guessed from the original name.
type FileStore struct {
	dir     string
	baseURL string
}

func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// MaxImageBytes caps image uploads such as company logos.
const MaxImageBytes = 5 << 20

var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// Save writes the upload to disk under a generated name keeping the original
// extension, with an optional prefix such as "logo" or "resume".
func (s *FileStore) Save(prefix, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := documentExtensions[ext]; !ok {
		return "", common.NewValidationError("unsupported file type", map[string]string{
			"file": "allowed extensions are pdf, doc, docx, png, jpg, jpeg, webp",
		})
	}
	return s.write(prefix, ext, r, 0)
}

// SaveImage stores an image upload. Non-image extensions and anything over
// MaxImageBytes are rejected.
func (s *FileStore) SaveImage(prefix, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := imageExtensions[ext]; !ok {
		return "", common.NewValidationError("unsupported image type", map[string]string{
			"file": "allowed extensions are png, jpg, jpeg, webp",
		})
	}
	return s.write(prefix, ext, r, MaxImageBytes)
}

func (s *FileStore) write(prefix, ext string, r io.Reader, maxBytes int64) (string, error) {
	name := uuid.NewString() + ext
	if prefix != "" {
		name = prefix + "-" + name
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to store file", err)
	}
	defer f.Close()
	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}
	written, err := io.Copy(f, src)
	if err != nil {
		os.Remove(f.Name())
		return "", common.NewError(common.CodeInternal, "failed to store file", err)
	}
	if maxBytes > 0 && written > maxBytes {
		os.Remove(f.Name())
		return "", common.NewValidationError("file too large", map[string]string{
			"file": fmt.Sprintf("uploads are limited to %d bytes", maxBytes),
		})
	}
	return s.url(name), nil
}

func (s *FileStore) Remove(fileURL string) error {
	name := filepath.Base(fileURL)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) url(name string) string {
	if s.baseURL == "" {
		return "/uploads/" + name
	}
	return s.baseURL + "/uploads/" + name
}
