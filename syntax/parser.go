package syntax

import "github.com/viant/gdlang/token"

// Parser turns a flat token stream into a Tree. It never raises an
// exception on malformed input: anything it cannot place into a slot is
// recorded as an invalid token on the nearest enclosing node and parsing
// continues from the next recognizable construct, per the reader's
// resumability requirement.
type Parser struct {
	tree *Tree

	toks []token.Token
	ids  []TokenID

	sig          []int // indices into toks/ids that matter to grammar decisions
	triviaBefore [][]TokenID

	pos int // index into sig
}

// ParseFile lexes and parses a complete GDScript source file, returning the
// Tree rooted at a ClassDecl.
func ParseFile(source string) (*Tree, error) {
	raw := tokenize(source)
	tree := NewTree()

	p := &Parser{tree: tree}
	p.ids = make([]TokenID, len(raw))
	for i, tok := range raw {
		p.ids[i] = tree.AddToken(tok)
	}
	p.toks = raw

	lastSig := -1
	for i, tok := range raw {
		if tok.Kind.IsTrivia() {
			continue
		}
		var lead []TokenID
		for j := lastSig + 1; j < i; j++ {
			lead = append(lead, p.ids[j])
		}
		p.sig = append(p.sig, i)
		p.triviaBefore = append(p.triviaBefore, lead)
		lastSig = i
	}

	root := p.parseClassBody()
	tree.Root = root
	return tree, nil
}

// ParseExpression parses a single standalone expression, useful for REPL or
// formatter-fragment tooling.
func ParseExpression(source string) (*Tree, error) {
	raw := tokenize(source)
	tree := NewTree()
	p := &Parser{tree: tree}
	p.ids = make([]TokenID, len(raw))
	for i, tok := range raw {
		p.ids[i] = tree.AddToken(tok)
	}
	p.toks = raw
	lastSig := -1
	for i, tok := range raw {
		if tok.Kind.IsTrivia() {
			continue
		}
		var lead []TokenID
		for j := lastSig + 1; j < i; j++ {
			lead = append(lead, p.ids[j])
		}
		p.sig = append(p.sig, i)
		p.triviaBefore = append(p.triviaBefore, lead)
		lastSig = i
	}
	root := p.parseExpr(0)
	tree.Root = root
	return tree, nil
}

// ParseStatement parses a single standalone statement.
func ParseStatement(source string) (*Tree, error) {
	raw := tokenize(source)
	tree := NewTree()
	p := &Parser{tree: tree}
	p.ids = make([]TokenID, len(raw))
	for i, tok := range raw {
		p.ids[i] = tree.AddToken(tok)
	}
	p.toks = raw
	lastSig := -1
	for i, tok := range raw {
		if tok.Kind.IsTrivia() {
			continue
		}
		var lead []TokenID
		for j := lastSig + 1; j < i; j++ {
			lead = append(lead, p.ids[j])
		}
		p.sig = append(p.sig, i)
		p.triviaBefore = append(p.triviaBefore, lead)
		lastSig = i
	}
	root := p.parseStatement()
	tree.Root = root
	return tree, nil
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.sig) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.sig[p.pos]]
}

func (p *Parser) curID() TokenID {
	if p.pos >= len(p.sig) {
		return NilToken
	}
	return p.ids[p.sig[p.pos]]
}

func (p *Parser) atEnd() bool { return p.cur().Kind == token.EOF }

// takeTrivia returns and consumes the trivia immediately preceding the
// current significant token; callers attach it to the node they are about
// to open.
func (p *Parser) takeTrivia() []TokenID {
	if p.pos >= len(p.triviaBefore) {
		return nil
	}
	return p.triviaBefore[p.pos]
}

// advance returns the current token's ID and moves past it.
func (p *Parser) advance() TokenID {
	id := p.curID()
	if p.pos < len(p.sig) {
		p.pos++
	}
	return id
}

func (p *Parser) isPunct(text string) bool {
	c := p.cur()
	return c.Kind == token.Punct && c.Text == text
}

func (p *Parser) isKeyword(text string) bool {
	c := p.cur()
	return c.Kind == token.Keyword && c.Text == text
}

// accept consumes the current token if it is the given punct/keyword text,
// returning its ID and true, or NilToken and false if it doesn't match.
func (p *Parser) accept(text string) (TokenID, bool) {
	c := p.cur()
	if (c.Kind == token.Punct || c.Kind == token.Keyword) && c.Text == text {
		return p.advance(), true
	}
	return NilToken, false
}

// expect consumes the current token if it matches, else records it (if
// anything is actually there) as an invalid token against invalidTarget and
// returns NilToken, leaving the stream positioned for the caller to retry
// recognition from the next construct.
func (p *Parser) expect(text string, invalidTarget *[]TokenID) TokenID {
	if id, ok := p.accept(text); ok {
		return id
	}
	if !p.atEnd() {
		*invalidTarget = append(*invalidTarget, p.advance())
	}
	return NilToken
}

// --- top level -------------------------------------------------------

func (p *Parser) parseClassBody() NodeID {
	b := NewBuilder(p.tree, KindClassDecl)
	var name, extends TokenID = NilToken, NilToken
	var invalid []TokenID
	var members []NodeID

	for !p.atEnd() {
		lead := p.takeTrivia()
		var member NodeID = NilNode
		switch {
		case p.isKeyword("extends"):
			p.advance()
			if p.cur().Kind == token.Identifier {
				extends = p.advance()
			}
		case p.isKeyword("class_name"):
			p.advance()
			if p.cur().Kind == token.Identifier {
				name = p.advance()
			}
		case p.isKeyword("tool"):
			p.advance()
		case p.isKeyword("func"):
			member = p.parseMethod()
		case p.isKeyword("var") || p.isKeyword("onready") || p.isKeyword("export"):
			member = p.parseClassVariable()
		case p.isKeyword("const"):
			member = p.parseConstant()
		case p.isKeyword("signal"):
			member = p.parseSignal()
		case p.isKeyword("enum"):
			member = p.parseEnum()
		case p.isKeyword("class"):
			member = p.parseInnerClass()
		default:
			if !p.atEnd() {
				invalid = append(invalid, p.advance())
			}
		}
		if member != NilNode {
			if len(lead) > 0 {
				p.tree.SetTrivia(member, lead)
			}
			members = append(members, member)
		} else if len(lead) > 0 {
			b.Trivia(lead...)
		}
	}
	if trailing := p.takeTrivia(); len(trailing) > 0 {
		b.TrailingTrivia(trailing...)
	}

	b.Token("Name", name).Token("Extends", extends).List("Members", members)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseClassVariable() NodeID {
	b := NewBuilder(p.tree, KindVariableDecl)
	var onready, export TokenID = NilToken, NilToken
	if p.isKeyword("onready") {
		onready = p.advance()
	}
	if p.isKeyword("export") {
		export = p.advance()
	}
	var invalid []TokenID
	p.expect("var", &invalid)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var typ NodeID = NilNode
	if _, ok := p.accept(":"); ok {
		typ = p.parseType()
	}
	var init NodeID = NilNode
	if _, ok := p.accept("="); ok {
		init = p.parseExpr(0)
	}
	b.Token("Onready", onready).Token("Export", export).Token("Name", name).
		Node("Type", typ).Node("Initializer", init)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseConstant() NodeID {
	b := NewBuilder(p.tree, KindConstantDecl)
	var invalid []TokenID
	p.expect("const", &invalid)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var typ NodeID = NilNode
	if _, ok := p.accept(":"); ok {
		typ = p.parseType()
	}
	var init NodeID = NilNode
	if _, ok := p.accept("="); ok {
		init = p.parseExpr(0)
	}
	b.Token("Name", name).Node("Type", typ).Node("Initializer", init)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseSignal() NodeID {
	b := NewBuilder(p.tree, KindSignalDecl)
	var invalid []TokenID
	p.expect("signal", &invalid)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var params []NodeID
	if _, ok := p.accept("("); ok {
		params = p.parseParameterItems()
		p.expect(")", &invalid)
	}
	b.Token("Name", name).List("Parameters", params)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseEnum() NodeID {
	b := NewBuilder(p.tree, KindEnumDecl)
	var invalid []TokenID
	p.expect("enum", &invalid)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var values []NodeID
	if _, ok := p.accept("{"); ok {
		for !p.isPunct("}") && !p.atEnd() {
			values = append(values, p.parseEnumValue())
			if _, ok := p.accept(","); !ok {
				break
			}
		}
		p.expect("}", &invalid)
	}
	b.Token("Name", name).List("Values", values)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseEnumValue() NodeID {
	b := NewBuilder(p.tree, KindEnumValueDecl)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var value NodeID = NilNode
	if _, ok := p.accept("="); ok {
		value = p.parseExpr(0)
	}
	b.Token("Name", name).Node("Value", value)
	return b.Build()
}

func (p *Parser) parseInnerClass() NodeID {
	b := NewBuilder(p.tree, KindInnerClassDecl)
	var invalid []TokenID
	p.expect("class", &invalid)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var extends TokenID = NilToken
	if p.isKeyword("extends") {
		p.advance()
		if p.cur().Kind == token.Identifier {
			extends = p.advance()
		}
	}
	p.expect(":", &invalid)
	var members []NodeID
	if p.cur().Kind == token.Indent {
		p.advance()
		for p.cur().Kind != token.Dedent && !p.atEnd() {
			lead := p.takeTrivia()
			var member NodeID = NilNode
			switch {
			case p.isKeyword("func"):
				member = p.parseMethod()
			case p.isKeyword("var") || p.isKeyword("onready") || p.isKeyword("export"):
				member = p.parseClassVariable()
			case p.isKeyword("const"):
				member = p.parseConstant()
			case p.isKeyword("signal"):
				member = p.parseSignal()
			case p.isKeyword("enum"):
				member = p.parseEnum()
			case p.isKeyword("class"):
				member = p.parseInnerClass()
			default:
				if !p.atEnd() {
					invalid = append(invalid, p.advance())
				}
			}
			if member != NilNode {
				if len(lead) > 0 {
					p.tree.SetTrivia(member, lead)
				}
				members = append(members, member)
			}
		}
		if p.cur().Kind == token.Dedent {
			p.advance()
		}
	}
	b.Token("Name", name).Token("Extends", extends).List("Members", members)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

// --- methods, parameters, types ---------------------------------------

func (p *Parser) parseMethod() NodeID {
	b := NewBuilder(p.tree, KindMethodDecl)
	var static TokenID = NilToken
	if p.isKeyword("static") {
		static = p.advance()
	}
	var invalid []TokenID
	p.expect("func", &invalid)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	p.expect("(", &invalid)
	params := p.parseParameterItems()
	p.expect(")", &invalid)
	var retType NodeID = NilNode
	if _, ok := p.accept("->"); ok {
		retType = p.parseType()
	}
	p.expect(":", &invalid)
	body := p.parseBlock()
	b.Token("Static", static).Token("Name", name).List("Parameters", params).
		Node("ReturnType", retType).Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseParameterItems() []NodeID {
	var items []NodeID
	for p.cur().Kind == token.Identifier {
		items = append(items, p.parseParameter())
		if _, ok := p.accept(","); !ok {
			break
		}
	}
	return items
}

func (p *Parser) parseParameter() NodeID {
	b := NewBuilder(p.tree, KindParameterDecl)
	var name TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		name = p.advance()
	}
	var typ NodeID = NilNode
	if _, ok := p.accept(":"); ok {
		typ = p.parseType()
	}
	var def NodeID = NilNode
	if _, ok := p.accept("="); ok {
		def = p.parseExpr(0)
	}
	b.Token("Name", name).Node("Type", typ).Node("Default", def)
	return b.Build()
}

func (p *Parser) parseType() NodeID {
	var invalid []TokenID
	if p.cur().Kind != token.Identifier && p.cur().Kind != token.Keyword {
		if !p.atEnd() {
			invalid = append(invalid, p.advance())
		}
		b := NewBuilder(p.tree, KindSingleType)
		for _, t := range invalid {
			b.Invalid(t)
		}
		return b.Build()
	}
	name := p.advance()
	text := p.tree.TokenAt(name).Text
	if _, ok := p.accept("["); ok {
		switch text {
		case "Array":
			elem := p.parseType()
			p.expect("]", &invalid)
			b := NewBuilder(p.tree, KindArrayOfType)
			b.Node("Element", elem)
			for _, t := range invalid {
				b.Invalid(t)
			}
			return b.Build()
		case "Dictionary":
			key := p.parseType()
			p.expect(",", &invalid)
			val := p.parseType()
			p.expect("]", &invalid)
			b := NewBuilder(p.tree, KindDictionaryOfType)
			b.Node("Key", key).Node("Value", val)
			for _, t := range invalid {
				b.Invalid(t)
			}
			return b.Build()
		default:
			// Unknown generic-looking type; treat the bracket body as
			// invalid tokens rather than guess its shape.
			for !p.isPunct("]") && !p.atEnd() {
				invalid = append(invalid, p.advance())
			}
			p.expect("]", &invalid)
		}
	}
	b := NewBuilder(p.tree, KindSingleType)
	b.Token("Name", name)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}
