package syntax

import (
	"strings"
	"unicode"

	"github.com/viant/gdlang/token"
)

// lexer turns raw source text into a flat token stream. It is resumable in
// the sense the spec requires of the surrounding reader: it never looks
// beyond the rune it is currently deciding on except for small, bounded
// lookahead (a second rune to disambiguate `**`, `<<`, `!=`, and the like).
// Every byte of the input ends up inside exactly one token, trivia
// included, so concatenating every token's Text reproduces the source.
type lexer struct {
	src   []rune
	pos   int
	line  int
	col   int
	off   int
	toks  []token.Token
	atBOL bool
	stack []int // indentation column stack, innermost last
}

func newLexer(src string) *lexer {
	return &lexer{
		src:   []rune(src),
		line:  1,
		col:   0,
		atBOL: true,
		stack: []int{0},
	}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	l.off++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) mark() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.off}
}

func (l *lexer) emit(kind token.Kind, start token.Position, text string) {
	l.toks = append(l.toks, token.NewToken(kind, text, token.Range{Start: start, End: l.mark()}))
}

// tokenize scans the entire source and returns the flat token list,
// terminated by a single EOF token.
func tokenize(src string) []token.Token {
	l := newLexer(src)
	for !l.eof() {
		if l.atBOL {
			l.lexIndentation()
			l.atBOL = false
			continue
		}
		ch := l.peek()
		switch {
		case ch == '\n':
			start := l.mark()
			l.advance()
			l.emit(token.Newline, start, "\n")
			l.atBOL = true
		case ch == ' ' || ch == '\t':
			l.lexWhitespace()
		case ch == '#':
			l.lexComment()
		case ch == '"' || ch == '\'':
			l.lexString(ch)
		case unicode.IsDigit(ch):
			l.lexNumber()
		case isIdentStart(ch):
			l.lexIdentifier()
		case ch == '$':
			l.lexGetNodeSigil()
		case ch == '%':
			if isIdentStart(l.peekAt(1)) {
				l.lexUniqueNodeSigil()
			} else {
				l.lexOperator()
			}
		case ch == '^':
			if l.peekAt(1) == '"' {
				l.lexNodePathSigil()
			} else {
				l.lexOperator()
			}
		default:
			l.lexOperator()
		}
	}
	for len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
		start := l.mark()
		l.emit(token.Dedent, start, "")
	}
	start := l.mark()
	l.emit(token.EOF, start, "")
	return l.toks
}

// lexIndentation runs only at the start of a logical line: it consumes
// leading spaces/tabs as a single Whitespace trivia token, then compares the
// resulting column to the indentation stack and synthesizes Indent/Dedent
// tokens (zero-width) before the line's first real token. Blank lines and
// comment-only lines never change the indentation stack.
func (l *lexer) lexIndentation() {
	start := l.mark()
	width := 0
	for !l.eof() && (l.peek() == ' ' || l.peek() == '\t') {
		l.advance()
		width++
	}
	if width > 0 {
		l.emit(token.Whitespace, start, string(l.src[start.Offset:l.off]))
	}
	if l.eof() || l.peek() == '\n' || l.peek() == '#' {
		return
	}
	top := l.stack[len(l.stack)-1]
	switch {
	case width > top:
		l.stack = append(l.stack, width)
		l.emit(token.Indent, l.mark(), "")
	case width < top:
		for len(l.stack) > 1 && l.stack[len(l.stack)-1] > width {
			l.stack = l.stack[:len(l.stack)-1]
			l.emit(token.Dedent, l.mark(), "")
		}
	}
}

func (l *lexer) lexWhitespace() {
	start := l.mark()
	for !l.eof() && (l.peek() == ' ' || l.peek() == '\t') {
		l.advance()
	}
	l.emit(token.Whitespace, start, string(l.src[start.Offset:l.off]))
}

func (l *lexer) lexComment() {
	start := l.mark()
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
	l.emit(token.Comment, start, string(l.src[start.Offset:l.off]))
}

func (l *lexer) lexString(quote rune) {
	start := l.mark()
	l.advance()
	triple := l.peek() == quote && l.peekAt(1) == quote
	if triple {
		l.advance()
		l.advance()
	}
	for !l.eof() {
		ch := l.peek()
		if ch == '\\' {
			l.advance()
			if !l.eof() {
				l.advance()
			}
			continue
		}
		if ch == quote {
			if !triple {
				l.advance()
				break
			}
			if l.peekAt(1) == quote && l.peekAt(2) == quote {
				l.advance()
				l.advance()
				l.advance()
				break
			}
		}
		l.advance()
	}
	l.emit(token.StringLiteral, start, string(l.src[start.Offset:l.off]))
}

func (l *lexer) lexNumber() {
	start := l.mark()
	isFloat := false
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()
		for !l.eof() && isHexDigit(l.peek()) {
			l.advance()
		}
		l.emit(token.IntLiteral, start, string(l.src[start.Offset:l.off]))
		return
	}
	for !l.eof() && (unicode.IsDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for !l.eof() && (unicode.IsDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for !l.eof() && unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}
	kind := token.IntLiteral
	if isFloat {
		kind = token.FloatLiteral
	}
	l.emit(kind, start, string(l.src[start.Offset:l.off]))
}

func (l *lexer) lexIdentifier() {
	start := l.mark()
	for !l.eof() && isIdentPart(l.peek()) {
		l.advance()
	}
	text := string(l.src[start.Offset:l.off])
	switch text {
	case "true", "false":
		l.emit(token.BoolLiteral, start, text)
	case "null":
		l.emit(token.NullLiteral, start, text)
	case "not", "and", "or":
		l.emit(token.Punct, start, text)
	default:
		if token.IsKeyword(text) {
			l.emit(token.Keyword, start, text)
		} else {
			l.emit(token.Identifier, start, text)
		}
	}
}

// lexGetNodeSigil handles the `$Path/To/Node` and `$"Path With Spaces"`
// shorthand as a single Punct token; the parser reclassifies it into a
// GetNodeExpr node.
func (l *lexer) lexGetNodeSigil() {
	start := l.mark()
	l.advance()
	if l.peek() == '"' {
		l.advance()
		for !l.eof() && l.peek() != '"' {
			l.advance()
		}
		if !l.eof() {
			l.advance()
		}
	} else {
		for !l.eof() && (isIdentPart(l.peek()) || l.peek() == '/') {
			l.advance()
		}
	}
	l.emit(token.Punct, start, string(l.src[start.Offset:l.off]))
}

func (l *lexer) lexUniqueNodeSigil() {
	start := l.mark()
	l.advance()
	for !l.eof() && isIdentPart(l.peek()) {
		l.advance()
	}
	l.emit(token.Punct, start, string(l.src[start.Offset:l.off]))
}

func (l *lexer) lexNodePathSigil() {
	start := l.mark()
	l.advance()
	l.advance()
	for !l.eof() && l.peek() != '"' {
		l.advance()
	}
	if !l.eof() {
		l.advance()
	}
	l.emit(token.Punct, start, string(l.src[start.Offset:l.off]))
}

// multiCharOperators lists every operator longer than one rune, longest
// first so the scan below always matches the longest valid lexeme.
var multiCharOperators = []string{
	"<<=", ">>=", "**=",
	"<<", ">>", "**",
	"==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"->", "::",
}

func (l *lexer) lexOperator() {
	start := l.mark()
	rest := string(l.src[l.pos:min(l.pos+3, len(l.src))])
	for _, op := range multiCharOperators {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.advance()
			}
			l.emit(token.Punct, start, op)
			return
		}
	}
	ch := l.advance()
	l.emit(token.Punct, start, string(ch))
}

func isIdentStart(ch rune) bool { return ch == '_' || unicode.IsLetter(ch) }
func isIdentPart(ch rune) bool  { return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) }
func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
