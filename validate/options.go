// Package validate runs the six-pass diagnostic pipeline over a parsed
// class: syntax, scope/declaration, type, call, control-flow, and an
// optional indentation pass, producing the error/warning/hint triage the
// public ValidateCode API exposes.
package validate

// Options toggles individual passes. The zero value enables no pass;
// DefaultOptions enables every pass, so a caller asking for "validate this
// code" gets full coverage unless they deliberately narrow it.
type Options struct {
	CheckSyntax        bool
	CheckScope         bool
	CheckTypes         bool
	CheckCalls         bool
	CheckControlFlow   bool
	CheckIndentation   bool
}

// DefaultOptions returns every check enabled.
func DefaultOptions() Options {
	return Options{
		CheckSyntax:      true,
		CheckScope:       true,
		CheckTypes:       true,
		CheckCalls:       true,
		CheckControlFlow: true,
		CheckIndentation: true,
	}
}
