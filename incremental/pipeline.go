package incremental

import (
	"context"

	"github.com/viant/gdlang/gdlog"
	"github.com/viant/gdlang/project"
	"github.com/viant/gdlang/runtime"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// Pipeline is the incremental re-analysis engine: it owns the change
// tracker, dependency graph, cache, and call-site registry for one project,
// and exposes the re-analysis surface a host drives after an edit.
type Pipeline struct {
	Project   *project.Project
	Provider  runtime.Provider
	Tracker   *ChangeTracker
	Deps      *DependencyGraph
	Cache     Cache
	Scheduler *Scheduler
	Models    *semantic.ProjectModel
	Log       gdlog.Logger
}

// NewPipeline builds a Pipeline over proj, with an unbounded in-memory
// cache and sequential scheduling by default.
func NewPipeline(proj *project.Project, provider runtime.Provider, log gdlog.Logger) *Pipeline {
	if provider == nil {
		provider = runtime.NopProvider{}
	}
	if log == nil {
		log = gdlog.Nop
	}
	return &Pipeline{
		Project:   proj,
		Provider:  provider,
		Tracker:   NewChangeTracker(),
		Deps:      NewDependencyGraph(),
		Cache:     NewMemoryCache(),
		Scheduler: &Scheduler{},
		Models:    semantic.NewProjectModel(),
		Log:       log,
	}
}

// DetectChanges discovers every `.gd` file under the project root and
// reports each one's status relative to the tracker's last baseline,
// without mutating the tracker (callers reconcile via AnalyzeChanged).
func (p *Pipeline) DetectChanges(ctx context.Context) ([]Change, error) {
	paths, err := p.Project.Discover(ctx)
	if err != nil {
		return nil, err
	}
	abs := make([]string, len(paths))
	for i, res := range paths {
		abs[i] = p.Project.ToAbs(res)
	}
	return p.Tracker.DetectChanges(ctx, p.Project.FS, abs)
}

// InvalidateFile forces path to be re-analyzed on the next AnalyzeChanged
// call regardless of its content hash, and drops its cache entries.
func (p *Pipeline) InvalidateFile(resPath string) {
	p.Tracker.InvalidateFile(p.Project.ToAbs(resPath))
	p.Cache.Invalidate(resPath)
}

// AnalyzeChanged re-parses and rebuilds the semantic model of every file in
// the affected closure of changes (changed files plus everything that
// depends on them), updates the call-site registry's delta, and commits the
// new baseline into the tracker. It returns every file re-analyzed, in no
// particular cross-file order per the library's concurrency contract.
func (p *Pipeline) AnalyzeChanged(ctx context.Context, changes []Change) ([]string, error) {
	var changedAbs []string
	for _, c := range changes {
		if c.Kind == Removed {
			res := p.Project.ToRes(c.Path)
			p.Project.Remove(res)
			p.Deps.Remove(c.Path)
			p.Models.CallSites.UnregisterFile(res)
			delete(p.Models.Files, res)
			continue
		}
		changedAbs = append(changedAbs, c.Path)
	}

	// The dependency graph is keyed by absolute path (see analyzeFile).
	affectedAbs := p.Deps.AffectedClosure(changedAbs)
	affected := make([]string, len(affectedAbs))
	for i, abs := range affectedAbs {
		affected[i] = p.Project.ToRes(abs)
	}
	_, err := p.Scheduler.AnalyzeAll(ctx, affected, func(ctx context.Context, resPath string) (interface{}, error) {
		return nil, p.analyzeFile(ctx, resPath)
	})
	if err != nil {
		return nil, err
	}

	p.Tracker.Commit(changes)
	return affected, nil
}

func (p *Pipeline) analyzeFile(ctx context.Context, resPath string) error {
	absPath := p.Project.ToAbs(resPath)
	source, err := p.Project.FS.ReadAllText(ctx, absPath)
	if err != nil {
		return err
	}
	tree, err := syntax.ParseFile(source)
	if err != nil {
		return err
	}

	var oldClass syntax.ClassDecl
	var oldTree *syntax.Tree
	if prevModel, existed := p.Models.Files[resPath]; existed {
		oldClass = prevModel.Class
		oldTree = prevModel.Tree()
	}

	class := syntax.AsClassDecl(tree.Node(tree.Root))
	fm := semantic.BuildFileModel(resPath, class, p.Provider)
	p.Models.AddFile(fm)

	changed := CallSiteDelta(p.Models.CallSites, resPath, oldClass, class, oldTree, tree)
	selfClass, _ := class.Name()
	if selfClass == "" {
		selfClass = resPath
	}
	// Unchanged methods keep their registered call sites; only the methods
	// CallSiteDelta reports as new or changed are registered again.
	fresh := semantic.NewCallSiteRegistry()
	fm.RegisterCallSites(fresh, selfClass)
	reregister := make(map[string]bool, len(changed))
	for _, name := range changed {
		reregister[name] = true
	}
	for _, cs := range fresh.Snapshot() {
		if reregister[cs.SourceMethod] {
			p.Models.CallSites.Register(cs)
		}
	}

	sf := &project.ScriptFile{ResPath: resPath, AbsPath: absPath, Source: source, Tree: tree, Model: fm}
	p.Project.AddParsed(sf)

	var deps []string
	if ext, ok := class.Extends(); ok {
		if base, found := p.Project.ByClassName(ext); found {
			deps = append(deps, p.Project.ToAbs(base.ResPath))
		}
	}
	p.Deps.SetDependencies(absPath, deps)
	return nil
}

// BuildCallSiteRegistry re-registers call sites for every currently parsed
// file from scratch, the operation a host runs once after an initial full
// project scan (as opposed to AnalyzeChanged's incremental delta).
func (p *Pipeline) BuildCallSiteRegistry() {
	p.Models.CallSites = semantic.NewCallSiteRegistry()
	for resPath, fm := range p.Models.Files {
		name, _ := fm.Class.Name()
		if name == "" {
			name = resPath
		}
		fm.RegisterCallSites(p.Models.CallSites, name)
	}
}
