package validate

import (
	"github.com/viant/gdlang/diagnostic"
)

// SyntaxPass reports every invalid token the reader recorded instead of
// dropping, the pipeline's first and cheapest check: a file with syntax
// errors still gets every other pass run against whatever it could parse,
// but those errors are always reported too.
type SyntaxPass struct{}

func (SyntaxPass) Name() string { return "syntax" }

func (SyntaxPass) Run(ctx *Context) {
	for tok := range ctx.Class.AllInvalidTokens() {
		ctx.Sink.Report(diagnostic.New(
			diagnostic.SeverityError, diagnostic.InvalidToken, tok.Range,
			"unexpected token %q", tok.Text,
		))
	}
}
