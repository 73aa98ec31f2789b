package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harithahub/storefront-backend/pkg/config"
)

// LocalStore persists uploaded files under a single directory on disk and
// serves them back over HTTP. File names are prefixed with a random id so
// concurrent uploads of the same file never collide.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore ensures the upload directory exists and returns the store.
func NewLocalStore(cfg config.MediaConfig) (*LocalStore, error) {
	dir := cfg.UploadDir
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	prefix := cfg.PublicPrefix
	if prefix == "" {
		prefix = "/uploads"
	}
	return &LocalStore{dir: dir, publicPrefix: strings.TrimSuffix(prefix, "/")}, nil
}

// Dir returns the absolute or relative directory files are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the multipart file to disk and returns the stored file name.
func (s *LocalStore) Save(file multipart.File, originalName string) (string, error) {
	name := uniqueName(originalName)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	return name, nil
}

// SaveBytes writes raw bytes under the provided file name.
func (s *LocalStore) SaveBytes(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", name, err)
	}
	return nil
}

// Delete removes a stored file. A missing file is not an error.
func (s *LocalStore) Delete(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file %s: %w", name, err)
	}
	return nil
}

// Path returns the on-disk path of a stored file.
func (s *LocalStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// PublicPath returns the URL path clients use to fetch the file.
func (s *LocalStore) PublicPath(name string) string {
	if name == "" {
		return ""
	}
	return s.publicPrefix + "/" + path.Base(name)
}

// Handler serves the upload directory. Directory listings are disabled.
func (s *LocalStore) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.dir))
	return http.StripPrefix(s.publicPrefix+"/", noListing{next: fs})
}

type noListing struct {
	next http.Handler
}

func (n noListing) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/") || r.URL.Path == "" {
		http.NotFound(w, r)
		return
	}
	n.next.ServeHTTP(w, r)
}

func uniqueName(originalName string) string {
	base := filepath.Base(originalName)
	base = strings.ReplaceAll(base, " ", "-")
	if base == "" || base == "." {
		base = "upload"
	}
	stamp := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("%s-%s-%s", stamp, uuid.NewString()[:8], base)
}
