// Package project models a Godot project: its root path, the `res://`
// virtual path scheme Godot scripts address each other by, and the set of
// script files discovered under it. It is the unit the incremental
// pipeline and the project-wide semantic queries operate over, grounded on
// the teacher's own graph.Project (root path plus an indexed file set).
package project

import (
	"context"
	"path"
	"strings"

	"github.com/viant/gdlang/fsys"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// ScriptFile is one parsed GDScript source file tracked by a Project: its
// res:// path, parsed tree, and semantic model, once built.
type ScriptFile struct {
	ResPath string
	AbsPath string
	Source  string
	Tree    *syntax.Tree
	Model   *semantic.FileModel
}

// ClassName resolves the file's declared `class_name`, if any, or "" for an
// anonymous script addressed only by path.
func (sf *ScriptFile) ClassName() string {
	if sf.Tree == nil {
		return ""
	}
	class := syntax.AsClassDecl(sf.Tree.Node(sf.Tree.Root))
	name, _ := class.Name()
	return name
}

// SceneProvider resolves `$NodePath` and unique-name (`%Name`) expressions
// against the .tscn scene a script is attached to. A host wires a real
// implementation in; the library ships NopSceneProvider for hosts that
// don't need scene-aware inference.
type SceneProvider interface {
	// ResolveNodePath returns the node type at path within scriptRes's
	// scene, or ok=false if unknown.
	ResolveNodePath(scriptRes, path string) (typeName string, ok bool)

	// ResolveUniqueName returns the node type of a `%Name` unique node
	// within scriptRes's scene, or ok=false if unknown.
	ResolveUniqueName(scriptRes, name string) (typeName string, ok bool)
}

// NopSceneProvider resolves nothing, the default when a host runs without
// scene awareness.
type NopSceneProvider struct{}

func (NopSceneProvider) ResolveNodePath(string, string) (string, bool)   { return "", false }
func (NopSceneProvider) ResolveUniqueName(string, string) (string, bool) { return "", false }

// Project is a Godot project root: a file system, the `res://` mapping,
// and every discovered script file, indexed by res:// path and by declared
// class_name for §6's GetCallSitesForMethod-by-type queries.
type Project struct {
	RootPath string
	FS       fsys.FileSystem
	Scenes   SceneProvider

	Files   map[string]*ScriptFile // by res:// path
	classes map[string]*ScriptFile // by class_name
}

// New builds an empty project rooted at rootPath. A nil scenes falls back
// to NopSceneProvider.
func New(rootPath string, fs fsys.FileSystem, scenes SceneProvider) *Project {
	if scenes == nil {
		scenes = NopSceneProvider{}
	}
	return &Project{
		RootPath: rootPath,
		FS:       fs,
		Scenes:   scenes,
		Files:    map[string]*ScriptFile{},
		classes:  map[string]*ScriptFile{},
	}
}

// ToRes converts an absolute path under RootPath to its res:// form.
func (p *Project) ToRes(absPath string) string {
	rel := strings.TrimPrefix(absPath, p.RootPath)
	rel = strings.TrimPrefix(rel, "/")
	return "res://" + rel
}

// ToAbs converts a res:// path back to an absolute path under RootPath.
func (p *Project) ToAbs(resPath string) string {
	rel := strings.TrimPrefix(resPath, "res://")
	return p.FS.Join(p.RootPath, rel)
}

// Discover walks RootPath for every `.gd` file and registers an unparsed
// ScriptFile entry for each, returning the discovered res:// paths.
func (p *Project) Discover(ctx context.Context) ([]string, error) {
	abs, err := p.FS.GetFiles(ctx, p.RootPath, ".gd")
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(abs))
	for _, a := range abs {
		res := p.ToRes(a)
		if _, ok := p.Files[res]; !ok {
			p.Files[res] = &ScriptFile{ResPath: res, AbsPath: a}
		}
		paths = append(paths, res)
	}
	return paths, nil
}

// AddParsed registers a parsed file and indexes it by its declared
// class_name, if any.
func (p *Project) AddParsed(sf *ScriptFile) {
	p.Files[sf.ResPath] = sf
	if name := sf.ClassName(); name != "" {
		p.classes[name] = sf
	}
}

// Remove drops a file from the project, unindexing its class_name if it had
// one.
func (p *Project) Remove(resPath string) {
	if sf, ok := p.Files[resPath]; ok {
		if name := sf.ClassName(); name != "" {
			delete(p.classes, name)
		}
	}
	delete(p.Files, resPath)
}

// ByClassName resolves a script by its declared class_name.
func (p *Project) ByClassName(name string) (*ScriptFile, bool) {
	sf, ok := p.classes[name]
	return sf, ok
}

// Join mirrors the file system's path joiner scoped to res:// paths, used
// when resolving a relative `preload("./Foo.gd")` reference.
func (p *Project) Join(base, relative string) string {
	if strings.HasPrefix(base, "res://") {
		// path.Join would collapse the scheme's "//" into "/".
		return "res://" + path.Join(path.Dir(strings.TrimPrefix(base, "res://")), relative)
	}
	return path.Join(path.Dir(base), relative)
}
