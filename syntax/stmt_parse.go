package syntax

import "github.com/viant/gdlang/token"

// parseBlock parses an indented statement body, or — for GDScript's
// single-line form (`func f(): return 1`) — a single statement with no
// Indent/Dedent pair at all.
func (p *Parser) parseBlock() NodeID {
	b := NewBuilder(p.tree, KindStatementsList)
	var items []NodeID
	if p.cur().Kind == token.Indent {
		p.advance()
		for p.cur().Kind != token.Dedent && !p.atEnd() {
			lead := p.takeTrivia()
			stmt := p.parseStatement()
			if len(lead) > 0 {
				p.tree.SetTrivia(stmt, lead)
			}
			items = append(items, stmt)
		}
		if p.cur().Kind == token.Dedent {
			p.advance()
		}
	} else if !p.atEnd() {
		items = append(items, p.parseStatement())
	}
	b.List("Items", items)
	return b.Build()
}

func (p *Parser) parseStatement() NodeID {
	switch {
	case p.isKeyword("pass"):
		b := NewBuilder(p.tree, KindPassStmt)
		b.Token("Keyword", p.advance())
		return b.Build()
	case p.isKeyword("break"):
		b := NewBuilder(p.tree, KindBreakStmt)
		b.Token("Keyword", p.advance())
		return b.Build()
	case p.isKeyword("continue"):
		b := NewBuilder(p.tree, KindContinueStmt)
		b.Token("Keyword", p.advance())
		return b.Build()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("match"):
		return p.parseMatch()
	case p.isKeyword("var"):
		return p.parseVariableDeclStmt()
	case p.isKeyword("yield"):
		return p.parseYieldStmt()
	case p.isKeyword("await"):
		return p.parseAwaitStmt()
	case p.isKeyword("assert"):
		return p.parseAssertStmt()
	default:
		b := NewBuilder(p.tree, KindExprStmt)
		expr := p.parseExpr(0)
		b.Node("Expression", expr)
		return b.Build()
	}
}

func (p *Parser) parseReturn() NodeID {
	b := NewBuilder(p.tree, KindReturnStmt)
	kw := p.advance()
	var val NodeID = NilNode
	if !p.atStatementEnd() {
		val = p.parseExpr(0)
	}
	b.Token("Keyword", kw).Node("Value", val)
	return b.Build()
}

// atStatementEnd reports whether the current token cannot begin an
// expression, which in this indentation-delimited grammar means the
// previous statement just ended.
func (p *Parser) atStatementEnd() bool {
	c := p.cur()
	if c.Kind == token.Dedent || c.Kind == token.EOF {
		return true
	}
	if c.Kind == token.Keyword {
		switch c.Text {
		case "pass", "break", "continue", "return", "if", "elif", "else",
			"while", "for", "match", "var", "func", "const", "signal",
			"enum", "class", "static":
			return true
		}
	}
	return false
}

func (p *Parser) parseIf() NodeID {
	b := NewBuilder(p.tree, KindIfStmt)
	var invalid []TokenID
	p.expect("if", &invalid)
	cond := p.parseExpr(0)
	p.expect(":", &invalid)
	body := p.parseBlock()
	var elifs []NodeID
	for p.isKeyword("elif") {
		elifs = append(elifs, p.parseElif())
	}
	var elseNode NodeID = NilNode
	if p.isKeyword("else") {
		elseNode = p.parseElse()
	}
	b.Node("Condition", cond).Node("Body", body).List("Elifs", elifs).Node("Else", elseNode)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseElif() NodeID {
	b := NewBuilder(p.tree, KindElifClause)
	var invalid []TokenID
	p.expect("elif", &invalid)
	cond := p.parseExpr(0)
	p.expect(":", &invalid)
	body := p.parseBlock()
	b.Node("Condition", cond).Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseElse() NodeID {
	b := NewBuilder(p.tree, KindElseClause)
	var invalid []TokenID
	p.expect("else", &invalid)
	p.expect(":", &invalid)
	body := p.parseBlock()
	b.Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseWhile() NodeID {
	b := NewBuilder(p.tree, KindWhileStmt)
	var invalid []TokenID
	p.expect("while", &invalid)
	cond := p.parseExpr(0)
	p.expect(":", &invalid)
	body := p.parseBlock()
	b.Node("Condition", cond).Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseFor() NodeID {
	b := NewBuilder(p.tree, KindForStmt)
	var invalid []TokenID
	p.expect("for", &invalid)
	var variable TokenID = NilToken
	if p.cur().Kind == token.Identifier {
		variable = p.advance()
	}
	p.expect("in", &invalid)
	iterable := p.parseExpr(0)
	p.expect(":", &invalid)
	body := p.parseBlock()
	b.Token("Variable", variable).Node("Iterable", iterable).Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseMatch() NodeID {
	b := NewBuilder(p.tree, KindMatchStmt)
	var invalid []TokenID
	p.expect("match", &invalid)
	subject := p.parseExpr(0)
	p.expect(":", &invalid)
	var cases []NodeID
	if p.cur().Kind == token.Indent {
		p.advance()
		for p.cur().Kind != token.Dedent && !p.atEnd() {
			cases = append(cases, p.parseMatchCase())
		}
		if p.cur().Kind == token.Dedent {
			p.advance()
		}
	}
	b.Node("Subject", subject).List("Cases", cases)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseMatchCase() NodeID {
	b := NewBuilder(p.tree, KindMatchCase)
	var invalid []TokenID
	var patterns []NodeID
	patterns = append(patterns, p.parseExpr(0))
	for {
		if _, ok := p.accept(","); ok {
			patterns = append(patterns, p.parseExpr(0))
			continue
		}
		break
	}
	p.expect(":", &invalid)
	body := p.parseBlock()
	b.List("Patterns", patterns).Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseVariableDeclStmt() NodeID {
	b := NewBuilder(p.tree, KindVariableDeclStmt)
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
	b.Token("Name", name).Node("Type", typ).Node("Initializer", init)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseYieldStmt() NodeID {
	b := NewBuilder(p.tree, KindYieldStmt)
	var invalid []TokenID
	p.expect("yield", &invalid)
	var object, signal NodeID = NilNode, NilNode
	if _, ok := p.accept("("); ok {
		if !p.isPunct(")") {
			object = p.parseExpr(0)
			if _, ok := p.accept(","); ok {
				signal = p.parseExpr(0)
			}
		}
		p.expect(")", &invalid)
	}
	b.Node("Object", object).Node("Signal", signal)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}

func (p *Parser) parseAwaitStmt() NodeID {
	b := NewBuilder(p.tree, KindAwaitStmt)
	p.advance()
	target := p.parseExpr(0)
	b.Node("Target", target)
	return b.Build()
}

func (p *Parser) parseAssertStmt() NodeID {
	b := NewBuilder(p.tree, KindAssertStmt)
	var invalid []TokenID
	p.expect("assert", &invalid)
	var cond, msg NodeID = NilNode, NilNode
	if _, ok := p.accept("("); ok {
		cond = p.parseExpr(0)
		if _, ok := p.accept(","); ok {
			msg = p.parseExpr(0)
		}
		p.expect(")", &invalid)
	} else {
		cond = p.parseExpr(0)
	}
	b.Node("Condition", cond).Node("Message", msg)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}
