package diagnostic

import "fmt"

// Code is a stable `GDxxxx` diagnostic identifier, part of the external
// contract: hosts may match on Code across library versions even if
// message wording changes.
type Code int

// Code ranges, one per validation pass: syntax 1000-1999, scope 2000-2999,
// type 3000-3999, call 4000-4999, control-flow 5000-5999, indentation
// 6000-6999. ConstantReassignment sits in the control-flow range but is
// reported by the type pass.
const (
	InvalidToken Code = 1000 + iota
)

const (
	DuplicateDeclaration Code = 2000 + iota
	UndefinedVariable
	UndefinedFunction
	VariableUsedBeforeDeclaration
)

const (
	TypeMismatch Code = 3000 + iota
	InvalidOperandType
	InvalidAssignment
)

const (
	WrongArgumentCount Code = 4000 + iota
	MethodNotFound
	NotCallable
)

const (
	BreakOutsideLoop Code = 5000 + iota
	ContinueOutsideLoop
	ReturnOutsideFunction
	AwaitOutsideFunction
	YieldOutsideFunction
	SuperOutsideMethod
	ConstantReassignment
)

const (
	InconsistentIndentation Code = 6000 + iota
	IndentationMismatch
)

var names = map[Code]string{
	InvalidToken:                  "InvalidToken",
	DuplicateDeclaration:          "DuplicateDeclaration",
	UndefinedVariable:             "UndefinedVariable",
	UndefinedFunction:             "UndefinedFunction",
	VariableUsedBeforeDeclaration: "VariableUsedBeforeDeclaration",
	TypeMismatch:                  "TypeMismatch",
	InvalidOperandType:            "InvalidOperandType",
	InvalidAssignment:             "InvalidAssignment",
	WrongArgumentCount:            "WrongArgumentCount",
	MethodNotFound:                "MethodNotFound",
	NotCallable:                   "NotCallable",
	BreakOutsideLoop:              "BreakOutsideLoop",
	ContinueOutsideLoop:           "ContinueOutsideLoop",
	ReturnOutsideFunction:         "ReturnOutsideFunction",
	AwaitOutsideFunction:          "AwaitOutsideFunction",
	YieldOutsideFunction:          "YieldOutsideFunction",
	SuperOutsideMethod:            "SuperOutsideMethod",
	ConstantReassignment:          "ConstantReassignment",
	InconsistentIndentation:       "InconsistentIndentation",
	IndentationMismatch:           "IndentationMismatch",
}

// Name returns the symbolic constant name, e.g. "TypeMismatch".
func (c Code) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "Unknown"
}

// String renders the wire form, e.g. "GD5001".
func (c Code) String() string {
	return fmt.Sprintf("GD%04d", int(c))
}
