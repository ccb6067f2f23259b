// Package artifact stores the raw uploaded files kept alongside batches.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps batch artifacts as files under a single directory. Keys are
// opaque; callers persist them on the batch and hand them back for deletion.
type Store struct {
	dir string
}

// NewStore creates an artifact store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the file contents under a fresh key. The original filename only
// contributes its extension; the key is a UUID so concurrent uploads of
// equally named files never collide.
func (s *Store) Save(filename string, data []byte) (string, error) {
	key := uuid.New().String() + sanitizeExt(filename)
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", key, err)
	}
	return key, nil
}

// Open returns the stored contents for a key.
func (s *Store) Open(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the artifact for a key. A missing file is not an error:
// eviction must stay idempotent.
func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete artifact %s: %w", key, err)
	}
	return nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	return ext
}
