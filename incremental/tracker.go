package incremental

import (
	"context"
	"sync"

	"github.com/viant/gdlang/fsys"
)

// ChangeTracker records the last-seen content hash of every tracked file,
// the basis for DetectChanges: a file is Added/Modified/Removed/Unchanged
// by comparing its current hash against what was recorded at the last scan.
// One coarse lock guards the whole map, matching the resource model's rule
// that the tracker is a project-level single-writer structure.
type ChangeTracker struct {
	mu     sync.Mutex
	hashes map[string]string
}

// NewChangeTracker builds an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{hashes: map[string]string{}}
}

// ChangeKind classifies one file's status relative to the tracker's last
// recorded hash.
type ChangeKind int

const (
	Unchanged ChangeKind = iota
	Added
	Modified
	Removed
)

// Change is one file's detected status.
type Change struct {
	Path string
	Kind ChangeKind
	Hash string
}

// DetectChanges hashes the content of every path in current (as read
// through fs) and compares it against the tracker's last recorded hash,
// then folds in Removed entries for any previously tracked path absent
// from current. It does not mutate the tracker; call Commit with the
// result to record the new baseline.
func (t *ChangeTracker) DetectChanges(ctx context.Context, fs fsys.FileSystem, current []string) ([]Change, error) {
	t.mu.Lock()
	previous := make(map[string]string, len(t.hashes))
	for k, v := range t.hashes {
		previous[k] = v
	}
	t.mu.Unlock()

	seen := make(map[string]bool, len(current))
	var changes []Change
	for _, path := range current {
		seen[path] = true
		content, err := fs.ReadAllText(ctx, path)
		if err != nil {
			return nil, err
		}
		hash := ContentHash([]byte(content))
		old, existed := previous[path]
		switch {
		case !existed:
			changes = append(changes, Change{Path: path, Kind: Added, Hash: hash})
		case old != hash:
			changes = append(changes, Change{Path: path, Kind: Modified, Hash: hash})
		default:
			changes = append(changes, Change{Path: path, Kind: Unchanged, Hash: hash})
		}
	}
	for path := range previous {
		if !seen[path] {
			changes = append(changes, Change{Path: path, Kind: Removed})
		}
	}
	return changes, nil
}

// Commit records changes as the tracker's new baseline.
func (t *ChangeTracker) Commit(changes []Change) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range changes {
		switch c.Kind {
		case Removed:
			delete(t.hashes, c.Path)
		default:
			t.hashes[c.Path] = c.Hash
		}
	}
}

// Snapshot returns a copy of the tracker's path->hash map, the form
// persisted into State.FileHashes.
func (t *ChangeTracker) Snapshot() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]string, len(t.hashes))
	for k, v := range t.hashes {
		out[k] = v
	}
	return out
}

// Restore replaces the tracker's state with a previously persisted
// snapshot, used when loading State from disk.
func (t *ChangeTracker) Restore(hashes map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hashes = make(map[string]string, len(hashes))
	for k, v := range hashes {
		t.hashes[k] = v
	}
}

// InvalidateFile forces path to be reported on the next DetectChanges call
// regardless of content, by dropping its recorded hash: with no baseline
// left, the file is reported as Added.
func (t *ChangeTracker) InvalidateFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hashes, path)
}
