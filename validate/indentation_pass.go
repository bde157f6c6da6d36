package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/syntax"
	"github.com/viant/gdlang/token"
)

// IndentationPass reports GDScript's whitespace-sensitivity hazards that
// survive parsing: tab/space mixing within one file, and an indent level
// whose column step doesn't match the file's first-observed step. Both are
// warnings rather than errors, since the reader already resolved block
// structure unambiguously by the time this pass runs.
type IndentationPass struct{}

func (IndentationPass) Name() string { return "indentation" }

func (IndentationPass) Run(ctx *Context) {
	var step int
	var stepSet bool
	sawTabs, sawSpaces := false, false
	var lastColumn int

	// Indent/Dedent tokens sit in no node slot, so walk the flat buffer.
	for i := 0; i < ctx.Tree.TokenCount(); i++ {
		tok := ctx.Tree.TokenAt(syntax.TokenID(i))
		switch tok.Kind {
		case token.Whitespace:
			if tok.Range.Start.Column != 0 {
				continue // not leading-line whitespace
			}
			for _, r := range tok.Text {
				switch r {
				case '\t':
					sawTabs = true
				case ' ':
					sawSpaces = true
				}
			}
		case token.Indent:
			depth := tok.Range.Start.Column
			if !stepSet {
				step = depth
				stepSet = true
				lastColumn = depth
				continue
			}
			delta := depth - lastColumn
			if step > 0 && delta%step != 0 {
				ctx.Sink.Report(diagnostic.New(
					diagnostic.SeverityWarning, diagnostic.IndentationMismatch, tok.Range,
					"indentation does not align with the file's established %d-column step", step,
				))
			}
			lastColumn = depth
		case token.Dedent:
			lastColumn = tok.Range.Start.Column
		}
	}
	if sawTabs && sawSpaces {
		ctx.Sink.Report(diagnostic.New(
			diagnostic.SeverityWarning, diagnostic.InconsistentIndentation, ctx.Class.Range(),
			"file mixes tabs and spaces for indentation",
		))
	}
}
