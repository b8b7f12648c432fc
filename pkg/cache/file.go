package cache

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// entryExt is the extension of every entry file.
const entryExt = ".edges"

// headerPrefix starts the first line of an entry file. The rest of the line
// is the expiry in Unix nanoseconds, or "never".
const headerPrefix = "# randgraph-cache expires="

// FileCache keeps one file per key under a directory, sharded by the first
// two hex digits of the key hash. Each file holds a one-line expiry header
// followed by the raw payload, so a cached edge list can be inspected with
// ordinary text tools.
//
// Writes go through a temporary file and a rename, so concurrent readers
// see either the old entry or the new one.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates the directory if needed and returns a cache rooted
// there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the root directory.
func (c *FileCache) Dir() string { return c.dir }

// Get implements Cache. Expired or unreadable entries are removed and
// reported as a miss.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	expires, payload, ok := splitEntry(raw)
	if !ok || (!expires.IsZero() && c.now().After(expires)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return payload, true, nil
}

// Set implements Cache.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	w.WriteString(headerPrefix)
	if ttl > 0 {
		w.WriteString(strconv.FormatInt(c.now().Add(ttl).UnixNano(), 10))
	} else {
		w.WriteString("never")
	}
	w.WriteByte('\n')
	w.Write(data)
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete implements Cache.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry and the shard directories, returning how many
// entries were removed. Files that are not cache entries are left alone.
func (c *FileCache) Clear() (int, error) {
	shards, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		dir := filepath.Join(c.dir, shard.Name())
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, entryExt) {
				return err
			}
			if os.Remove(path) == nil {
				removed++
			}
			return nil
		})
		if err != nil {
			return removed, err
		}
		_ = os.Remove(dir) // fails while foreign files remain
	}
	return removed, nil
}

// Close implements Cache.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, name[:2], name[2:]+entryExt)
}

// splitEntry parses the expiry header. A zero time means no expiry.
func splitEntry(raw []byte) (expires time.Time, payload []byte, ok bool) {
	header, payload, found := bytes.Cut(raw, []byte{'\n'})
	if !found {
		return time.Time{}, nil, false
	}
	value, found := strings.CutPrefix(string(header), headerPrefix)
	if !found {
		return time.Time{}, nil, false
	}
	if value == "never" {
		return time.Time{}, payload, true
	}
	ns, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, nil, false
	}
	return time.Unix(0, ns), payload, true
}

var _ Cache = (*FileCache)(nil)
