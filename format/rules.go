package format

import (
	"strings"

	"github.com/viant/gdlang/syntax"
	"github.com/viant/gdlang/token"
)

// Rule is one independent rewrite over a parsed tree's token buffer. Apply
// reports whether it changed anything, so Format can stop once a full pass
// over every rule changes nothing.
type Rule interface {
	Name() string
	Apply(tree *syntax.Tree) bool
}

// trimTrailingWhitespaceRule blanks out Whitespace tokens that sit right
// before a Newline or EOF and are not a line's leading indentation — the
// run-on-sentence of spaces a human leaves after deleting the end of a
// line. Leading indentation is handled by normalizeIndentationRule instead.
type trimTrailingWhitespaceRule struct{}

func (trimTrailingWhitespaceRule) Name() string { return "trim-trailing-whitespace" }

func (trimTrailingWhitespaceRule) Apply(tree *syntax.Tree) bool {
	changed := false
	n := tree.TokenCount()
	for i := 0; i < n; i++ {
		id := syntax.TokenID(i)
		tok := tree.TokenAt(id)
		if tok.Kind != token.Whitespace || tok.Range.Start.Column == 0 || tok.Text == "" {
			continue
		}
		if i+1 >= n {
			continue
		}
		next := tree.TokenAt(syntax.TokenID(i + 1))
		if next.Kind == token.Newline || next.Kind == token.EOF {
			tree.SetTokenText(id, "")
			changed = true
		}
	}
	return changed
}

// normalizeIndentationRule rewrites every line-leading Whitespace token to
// IndentUnit repeated by the block depth the reader already computed (the
// Indent/Dedent tokens immediately following it on the same line). It never
// touches the column width the reader used to decide block structure —
// only the surface text printed for it.
type normalizeIndentationRule struct{ unit string }

func (normalizeIndentationRule) Name() string { return "normalize-indentation" }

func (r normalizeIndentationRule) Apply(tree *syntax.Tree) bool {
	changed := false
	n := tree.TokenCount()
	depth := 0
	for i := 0; i < n; i++ {
		id := syntax.TokenID(i)
		tok := tree.TokenAt(id)
		switch tok.Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			if depth > 0 {
				depth--
			}
		case token.Whitespace:
			if tok.Range.Start.Column != 0 {
				continue
			}
			target := depth
			for j := i + 1; j < n; j++ {
				next := tree.TokenAt(syntax.TokenID(j))
				if next.Kind == token.Indent {
					target++
					continue
				}
				if next.Kind == token.Dedent {
					if target > 0 {
						target--
					}
					continue
				}
				break
			}
			want := strings.Repeat(r.unit, target)
			if tok.Text != want {
				tree.SetTokenText(id, want)
				changed = true
			}
		}
	}
	return changed
}

// collapseBlankLinesRule blanks out Newline tokens beyond max consecutive
// blank lines. A run resets at any token that carries real content;
// trivia that doesn't itself constitute a line (Whitespace, Indent, Dedent)
// is transparent to the count.
type collapseBlankLinesRule struct{ max int }

func (collapseBlankLinesRule) Name() string { return "collapse-blank-lines" }

func (r collapseBlankLinesRule) Apply(tree *syntax.Tree) bool {
	changed := false
	n := tree.TokenCount()
	run := 0
	for i := 0; i < n; i++ {
		id := syntax.TokenID(i)
		tok := tree.TokenAt(id)
		switch tok.Kind {
		case token.Newline:
			run++
			if run > r.max+1 && tok.Text != "" {
				tree.SetTokenText(id, "")
				changed = true
			}
		case token.Whitespace, token.Indent, token.Dedent:
			// transparent: doesn't end or extend a blank-line run
		default:
			run = 0
		}
	}
	return changed
}
