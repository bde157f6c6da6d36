package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/runtime"
	"github.com/viant/gdlang/syntax"
)

// Result is the outcome of ValidateCode: every diagnostic, pre-split by
// severity for a caller that wants to fail fast on Errors without
// filtering Warnings and Hints itself.
type Result struct {
	Errors   []diagnostic.Diagnostic
	Warnings []diagnostic.Diagnostic
	Hints    []diagnostic.Diagnostic
}

// OK reports whether validation found no errors (warnings and hints don't
// block a clean result).
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// orderedPasses lists every pass in the fixed order later passes depend on:
// declarations before anything that resolves names, scope before type/call,
// syntax and indentation run independently of the rest.
func orderedPasses(opts Options) []Pass {
	var passes []Pass
	if opts.CheckSyntax {
		passes = append(passes, SyntaxPass{})
	}
	// DeclarationPass always runs when any name-resolving pass needs
	// ctx.ClassScope; skipping it while CheckScope/CheckTypes/CheckCalls
	// is on would leave every lookup failing.
	needsScope := opts.CheckScope || opts.CheckTypes || opts.CheckCalls || opts.CheckControlFlow
	if needsScope {
		passes = append(passes, DeclarationPass{})
	}
	if opts.CheckScope {
		passes = append(passes, ScopePass{})
	}
	if opts.CheckTypes {
		passes = append(passes, TypePass{})
	}
	if opts.CheckCalls {
		passes = append(passes, CallPass{})
	}
	if opts.CheckControlFlow {
		passes = append(passes, ControlFlowPass{})
	}
	if opts.CheckIndentation {
		passes = append(passes, IndentationPass{})
	}
	return passes
}

// ValidateCode parses text and runs every pass Options enables, returning
// the triaged diagnostic Result. A nil provider runs with no built-in
// engine knowledge (runtime.NopProvider), so every non-project reference
// resolves as unknown rather than erroring.
func ValidateCode(text string, opts Options, provider runtime.Provider) (*Result, error) {
	tree, err := syntax.ParseFile(text)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(tree, provider)
	for _, pass := range orderedPasses(opts) {
		pass.Run(ctx)
	}
	errs, warnings, hints := ctx.Sink.Split()
	return &Result{Errors: errs, Warnings: warnings, Hints: hints}, nil
}
