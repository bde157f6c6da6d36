// Package format implements the rule-based formatter: a set of small,
// independent rewrites over a parsed Tree's token buffer, run to a fixed
// point. Style presets (tab width, brace placement, import ordering) are an
// external collaborator's concern; this package only carries the engine and
// the handful of whitespace-normalization rules every GDScript formatter
// needs regardless of house style.
package format

// Options configures which rules Format applies. The zero value enables no
// rule (every toggle is false); DefaultOptions enables every rule with the
// package's default indentation unit, as validate.DefaultOptions does for
// its passes.
type Options struct {
	// IndentUnit is the canonical text for one indentation level. Defaults
	// to a single tab, GDScript's own convention (the language's official
	// style guide indents with tabs).
	IndentUnit string

	TrimTrailingWhitespace bool
	CollapseBlankLines     bool
	EnsureFinalNewline     bool
	NormalizeIndentation   bool

	// MaxBlankLines caps consecutive blank lines when CollapseBlankLines is
	// set. Defaults to 2, matching GDScript style guide's convention of at
	// most one blank line inside a function body and two between top-level
	// declarations.
	MaxBlankLines int
}

// DefaultOptions returns every rule enabled with the package's defaults.
func DefaultOptions() Options {
	return Options{
		IndentUnit:             "\t",
		TrimTrailingWhitespace: true,
		CollapseBlankLines:     true,
		EnsureFinalNewline:     true,
		NormalizeIndentation:   true,
		MaxBlankLines:          2,
	}
}

func (o Options) indentUnit() string {
	if o.IndentUnit == "" {
		return "\t"
	}
	return o.IndentUnit
}

func (o Options) maxBlankLines() int {
	if o.MaxBlankLines <= 0 {
		return 2
	}
	return o.MaxBlankLines
}
