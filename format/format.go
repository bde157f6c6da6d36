package format

import (
	"strings"

	"github.com/viant/gdlang/syntax"
)

// Formatter runs a fixed set of rules over a parsed tree to a fixed point
// (each rule re-applied until none reports a change), then prints the
// result. Re-running to a fixed point, rather than once, is what makes
// Format idempotent even when two rules' outputs could otherwise interact
// (trimming trailing whitespace can change what normalizeIndentationRule
// sees on its next pass, for instance).
type Formatter struct {
	rules []Rule
	opts  Options
}

// New builds a Formatter from opts, selecting only the rules it enables.
func New(opts Options) *Formatter {
	f := &Formatter{opts: opts}
	if opts.TrimTrailingWhitespace {
		f.rules = append(f.rules, trimTrailingWhitespaceRule{})
	}
	if opts.NormalizeIndentation {
		f.rules = append(f.rules, normalizeIndentationRule{unit: opts.indentUnit()})
	}
	if opts.CollapseBlankLines {
		f.rules = append(f.rules, collapseBlankLinesRule{max: opts.maxBlankLines()})
	}
	return f
}

// ApplyTree runs every enabled rule over tree in place until none of them
// reports a further change.
func (f *Formatter) ApplyTree(tree *syntax.Tree) {
	for {
		changed := false
		for _, r := range f.rules {
			if r.Apply(tree) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// Format parses text, applies every enabled rule to a fixed point, and
// prints the result. It tolerates the same malformed input the parser
// does: invalid tokens are preserved verbatim, never dropped, so a
// formatter run never discards a byte the reader couldn't make sense of.
func Format(text string, opts Options) (string, error) {
	tree, err := syntax.ParseFile(text)
	if err != nil {
		return "", err
	}
	New(opts).ApplyTree(tree)
	out := string(syntax.PrintTree(tree))
	if opts.EnsureFinalNewline && out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// FormatDefault formats text with DefaultOptions.
func FormatDefault(text string) (string, error) {
	return Format(text, DefaultOptions())
}
