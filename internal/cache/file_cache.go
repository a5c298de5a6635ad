package cache

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urbanwatch/urban-change-cli/internal/properties"
)

// entry is the on-disk envelope around a cached value. The checksum
// guards against partially written or hand-edited files: a mismatch is
// treated as a miss, never as an error.
type entry[T any] struct {
	Data     T         `json:"data"`
	StoredAt time.Time `json:"stored_at"`
	Checksum string    `json:"checksum"`
}

// FileCache persists small bookkeeping values between pipeline runs as
// JSON files under data/<subDir>. Values survive process restarts; the
// cache never expires entries on its own, callers overwrite them.
type FileCache[T any] struct {
	dir string
}

func NewFileCache[T any](subDir string) *FileCache[T] {
	return &FileCache[T]{
		dir: filepath.Join(properties.RootPath(), "data", subDir),
	}
}

// GenerateKey derives a stable filename from the parameters that
// identify the cached value, such as the study area.
func (fc *FileCache[T]) GenerateKey(params ...interface{}) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = fmt.Sprintf("%v", param)
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func (fc *FileCache[T]) path(key string) string {
	return filepath.Join(fc.dir, key+".json")
}

// Get returns the cached value for key. Any unreadable, malformed or
// corrupted entry reads as a miss.
func (fc *FileCache[T]) Get(key string) (T, bool) {
	var zero T

	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return zero, false
	}

	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		return zero, false
	}
	if e.Checksum != checksum(e.Data) {
		return zero, false
	}

	return e.Data, true
}

// Set stores the value for key, replacing any previous entry. The write
// goes through a temp file and rename so readers never see a torn entry.
func (fc *FileCache[T]) Set(key string, data T) error {
	if err := os.MkdirAll(fc.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %v", err)
	}

	payload, err := json.Marshal(entry[T]{
		Data:     data,
		StoredAt: time.Now(),
		Checksum: checksum(data),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %v", err)
	}

	target := fc.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("failed to write temp cache file: %v", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp cache file: %v", err)
	}

	return nil
}

func checksum[T any](data T) string {
	payload, _ := json.Marshal(data)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
