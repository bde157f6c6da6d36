package incremental

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/viant/gdlang/gdlog"
	"github.com/viant/gdlang/internal/gderrors"
)

// Entry is one cached analysis result, keyed by "path:hash" so a changed
// file's stale entry is never confused with its fresh one.
type Entry struct {
	Path        string
	Hash        string
	Diagnostics json.RawMessage
	Symbols     json.RawMessage
}

func entryKey(path, hash string) string { return path + ":" + hash }

// Cache resolves and stores Entry values for (path, hash) pairs. Both
// implementations are safe for concurrent use by multiple readers and
// writers, matching the project-level concurrency rule.
type Cache interface {
	Get(ctx context.Context, path, hash string) (*Entry, bool)
	Put(ctx context.Context, entry *Entry) error
	Invalidate(path string)
}

// MemoryCache is an in-memory Cache, keyed by "path:hash" with a secondary
// index by path so invalidating a stale path doesn't require a full scan.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	byPath  map[string][]string // path -> keys
}

// NewMemoryCache builds an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]*Entry{}, byPath: map[string][]string{}}
}

func (c *MemoryCache) Get(_ context.Context, path, hash string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[entryKey(path, hash)]
	return e, ok
}

func (c *MemoryCache) Put(_ context.Context, entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := entryKey(entry.Path, entry.Hash)
	c.entries[key] = entry
	c.byPath[entry.Path] = append(c.byPath[entry.Path], key)
	return nil
}

func (c *MemoryCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.byPath[path] {
		delete(c.entries, key)
	}
	delete(c.byPath, path)
}

// DiskCache persists entries as `<dir>/entries/<sha256(key)[0:16]>.json`.
// A corrupt entry file is deleted on read rather than surfaced as a
// permanent failure, so one damaged cache entry never blocks analysis of
// the file it belonged to; the caller just re-computes it.
type DiskCache struct {
	dir    string
	log    gdlog.Logger
	limit  int64 // bytes; 0 means unbounded
	mu     sync.Mutex
}

// NewDiskCache builds a cache rooted at dir (created if absent). limit
// bounds the cache's on-disk size in bytes; 0 disables eviction.
func NewDiskCache(dir string, limit int64, log gdlog.Logger) (*DiskCache, error) {
	if log == nil {
		log = gdlog.Nop
	}
	if err := os.MkdirAll(filepath.Join(dir, "entries"), 0755); err != nil {
		return nil, gderrors.NewAccessDenied(dir, err)
	}
	return &DiskCache{dir: dir, log: log, limit: limit}, nil
}

func (c *DiskCache) entryPath(path, hash string) string {
	sum := sha256.Sum256([]byte(entryKey(path, hash)))
	name := hex.EncodeToString(sum[:8]) + ".json"
	return filepath.Join(c.dir, "entries", name)
}

func (c *DiskCache) Get(_ context.Context, path, hash string) (*Entry, bool) {
	p := c.entryPath(path, hash)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.log.Warning("discarding corrupt cache entry", gdlog.String("path", p), gdlog.Err(err))
		_ = os.Remove(p)
		return nil, false
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return &e, true
}

func (c *DiskCache) Put(_ context.Context, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	p := c.entryPath(entry.Path, entry.Hash)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return gderrors.NewAccessDenied(p, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit > 0 {
		c.evictLocked()
	}
	return nil
}

func (c *DiskCache) Invalidate(path string) {
	// Disk entries are keyed by content hash, not path alone; a stale
	// entry for a removed hash is reclaimed by the size-based evictor
	// rather than an immediate path-indexed delete.
	_ = path
}

// evictLocked trims the entries directory to at most 80% of the configured
// limit, removing the least-recently-read files first (mtime is refreshed
// on every Get, so this is an LRU policy, not pure FIFO).
func (c *DiskCache) evictLocked() {
	dir := filepath.Join(c.dir, "entries")
	infos, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	type fileInfo struct {
		path    string
		size    int64
		modTime int64
	}
	var files []fileInfo
	var total int64
	for _, de := range infos {
		info, err := de.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{path: filepath.Join(dir, de.Name()), size: info.Size(), modTime: info.ModTime().UnixNano()})
		total += info.Size()
	}
	if total <= c.limit {
		return
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime < files[j].modTime })
	target := c.limit * 80 / 100
	for _, f := range files {
		if total <= target {
			break
		}
		if err := os.Remove(f.path); err == nil {
			total -= f.size
		}
	}
}
