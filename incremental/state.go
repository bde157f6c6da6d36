package incremental

import (
	"context"
	"encoding/json"

	"github.com/viant/gdlang/fsys"
	"github.com/viant/gdlang/internal/gderrors"
)

// ToolVersion identifies the analysis engine version that produced a
// persisted State; a mismatch on load means the cache must be treated as
// fully stale rather than trusted, since diagnostic codes or inference
// rules may have changed underneath it.
const ToolVersion = "1.0.0"

// State is the incremental pipeline's on-disk persisted form: enough to
// resume DetectChanges and the dependency graph without a full re-scan.
type State struct {
	Version      int               `json:"version"`
	SavedAt      string            `json:"savedAt"`
	ToolVersion  string            `json:"toolVersion"`
	ProjectPath  string            `json:"projectPath"`
	FileHashes   map[string]string `json:"fileHashes"`
	Dependencies map[string][]string `json:"dependencies"`
}

const stateVersion = 1

// Snapshot captures the tracker's and dependency graph's current state
// into a persistable State. savedAt is supplied by the caller (typically a
// timestamp formatted with time.Now().UTC().Format(time.RFC3339)) since
// this package does not itself read the clock.
func Snapshot(projectPath, savedAt string, tracker *ChangeTracker, deps *DependencyGraph) *State {
	deps.mu.Lock()
	defer deps.mu.Unlock()
	dependencies := make(map[string][]string, len(deps.depends))
	for file, set := range deps.depends {
		list := make([]string, 0, len(set))
		for dep := range set {
			list = append(list, dep)
		}
		dependencies[file] = list
	}
	return &State{
		Version:      stateVersion,
		SavedAt:      savedAt,
		ToolVersion:  ToolVersion,
		ProjectPath:  projectPath,
		FileHashes:   tracker.Snapshot(),
		Dependencies: dependencies,
	}
}

// Restore re-seeds tracker and deps from a loaded State. A ToolVersion
// mismatch is not an error here; the caller decides whether to discard the
// state instead of restoring it (IsStale reports that).
func (s *State) Restore(tracker *ChangeTracker, deps *DependencyGraph) {
	tracker.Restore(s.FileHashes)
	for file, dependsOn := range s.Dependencies {
		deps.SetDependencies(file, dependsOn)
	}
}

// IsStale reports whether this state was produced by a different engine
// version and should be discarded rather than restored.
func (s *State) IsStale() bool {
	return s.ToolVersion != ToolVersion
}

// Load reads and decodes a persisted State from path. A missing or corrupt
// file is reported as a typed error rather than a bare JSON error so
// callers can distinguish "no prior state" from "cache corruption".
func Load(ctx context.Context, fs fsys.FileSystem, path string) (*State, error) {
	text, err := fs.ReadAllText(ctx, path)
	if err != nil {
		return nil, err
	}
	var s State
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, gderrors.NewCorruptCache(path, err)
	}
	return &s, nil
}

// Save encodes state as indented JSON and writes it to path.
func Save(ctx context.Context, fs fsys.FileSystem, path string, state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return fs.WriteAllText(ctx, path, string(data))
}
