package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss with nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v err %v, want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("0 1\n1 2\n"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "0 1\n1 2\n" {
		t.Fatalf("Get(k) = %q hit %v err %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "short"); !hit {
		t.Error("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expired entry file still present: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{broken"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestFileCacheLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("0 1\n"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	path := c.path("k")
	if filepath.Ext(path) != entryExt {
		t.Errorf("entry %s should end in %s", path, entryExt)
	}
	if rel, _ := filepath.Rel(dir, filepath.Dir(path)); len(rel) != 2 {
		t.Errorf("entry should sit in a two-character shard, got %q", rel)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := headerPrefix + "never\n0 1\n"; string(raw) != want {
		t.Errorf("entry = %q, want %q", raw, want)
	}
	if c.path("k") == c.path("k2") {
		t.Error("distinct keys share a path")
	}
}

func TestFileCacheClearKeepsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("0 1\n"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	notes := filepath.Join(filepath.Dir(c.path("k")), "notes.txt")
	if err := os.WriteFile(notes, []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if n, err := c.Clear(); err != nil || n != 1 {
		t.Fatalf("Clear() = %d, %v; want 1, nil", n, err)
	}
	if _, err := os.Stat(notes); err != nil {
		t.Errorf("foreign file removed: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := GraphKeyOpts{Vertices: 1000, Density: 0.02, Seed: 42, Strategy: "auto"}

	if k.GraphKey(base) != k.GraphKey(base) {
		t.Error("GraphKey should be deterministic")
	}
	if !strings.HasPrefix(k.GraphKey(base), "graph:") {
		t.Errorf("GraphKey missing prefix: %s", k.GraphKey(base))
	}

	variants := []GraphKeyOpts{
		{Vertices: 1001, Density: 0.02, Seed: 42, Strategy: "auto"},
		{Vertices: 1000, Density: 0.03, Seed: 42, Strategy: "auto"},
		{Vertices: 1000, Density: 0.02, Seed: 43, Strategy: "auto"},
		{Vertices: 1000, Density: 0.02, Seed: 42, Strategy: "complement"},
	}
	for _, v := range variants {
		if k.GraphKey(v) == k.GraphKey(base) {
			t.Errorf("GraphKey(%+v) collides with base", v)
		}
	}
}

func TestScope(t *testing.T) {
	opts := GraphKeyOpts{Vertices: 10, Density: 0.5, Seed: 1}
	scoped := Scope(NewDefaultKeyer(), "bench:")
	if got, want := scoped.GraphKey(opts), "bench:"+NewDefaultKeyer().GraphKey(opts); got != want {
		t.Errorf("GraphKey = %s, want %s", got, want)
	}

	nilInner := Scope(nil, "p:")
	if !strings.HasPrefix(nilInner.GraphKey(opts), "p:graph:") {
		t.Errorf("nil inner should fall back to DefaultKeyer: %s", nilInner.GraphKey(opts))
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should return nil")
	}

	err := Transient(ErrUnavailable)
	if !IsTransient(err) {
		t.Error("IsTransient should see the marker")
	}
	if !IsTransient(fmt.Errorf("get: %w", err)) {
		t.Error("IsTransient should see through wrapping")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Transient should unwrap to the cause")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message changed: %s", err)
	}
	if IsTransient(ErrUnavailable) {
		t.Error("unmarked error reported as transient")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond, Max: 2 * time.Millisecond}
	permanent := errors.New("WRONGTYPE")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, permanent, 1, permanent},
		{"recovers", 1, Transient(ErrUnavailable), 2, nil},
		{"exhausted", 5, Transient(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DefaultBackoff.Do(ctx, func() error {
		calls++
		return Transient(ErrUnavailable)
	})
	if err != context.Canceled || calls != 1 {
		t.Errorf("err = %v after %d calls, want context.Canceled after 1", err, calls)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	if IsTransient(classify(redis.Nil)) {
		t.Error("redis.Nil is a miss, not a transient failure")
	}
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if !IsTransient(classify(netErr)) {
		t.Error("network errors should be transient")
	}
	if IsTransient(classify(errors.New("WRONGTYPE"))) {
		t.Error("command errors should not be transient")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		Retry:       Backoff{Attempts: 2, Delay: time.Millisecond},
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache error = %v, want ErrUnavailable", err)
	}
}
