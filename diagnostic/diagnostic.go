package diagnostic

import (
	"fmt"
	"sort"

	"github.com/viant/gdlang/token"
)

// Diagnostic is one finding from a validation pass: a severity, a stable
// Code, a human message, and the source range it points at.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Range    token.Range
}

// New builds a Diagnostic with the given severity, code, and formatted
// message.
func New(sev Severity, code Code, rng token.Range, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...), Range: rng}
}

// String renders the spec's wire format: `severity code [line:col] message`.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s [%d:%d] %s", d.Severity, d.Code, d.Range.Start.Line, d.Range.Start.Column, d.Message)
}

// SortDiagnostics orders diagnostics within one file by (start line, start
// column, code), the ordering guarantee the library promises for a single
// file's sink.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		if a.Range.Start.Column != b.Range.Start.Column {
			return a.Range.Start.Column < b.Range.Start.Column
		}
		return a.Code < b.Code
	})
}
