package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/runtime"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// Context bundles everything a pass needs, threaded explicitly through
// Run calls rather than held in package-level state, so two files can be
// validated concurrently with no shared mutable pass state.
type Context struct {
	Tree     *syntax.Tree
	Class    syntax.ClassDecl
	Provider runtime.Provider
	Sink     *diagnostic.Sink
	Inferrer *semantic.Inferrer

	FileScope  *semantic.Scope
	ClassScope *semantic.Scope
}

// NewContext builds a validation Context for one parsed file.
func NewContext(tree *syntax.Tree, provider runtime.Provider) *Context {
	if provider == nil {
		provider = runtime.NopProvider{}
	}
	return &Context{
		Tree:     tree,
		Class:    syntax.AsClassDecl(tree.Node(tree.Root)),
		Provider: provider,
		Sink:     diagnostic.NewSink(),
		Inferrer: semantic.NewInferrer(provider),
	}
}

// Pass is one stage of the validation pipeline.
type Pass interface {
	Name() string
	Run(ctx *Context)
}
