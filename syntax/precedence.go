package syntax

import "github.com/viant/gdlang/token"

// Precedence levels follow GDScript's documented operator table, lowest
// binding first. Assignment is handled as a right-associative BinaryExpr at
// the very bottom of the climb so `x = y = 1` and `x += 1` fall out of the
// same machinery as every other infix operator.
const (
	precNone = iota
	precAssignment
	precTernary
	precOr
	precAnd
	precNot
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPower
	precPostfix
)

var assignmentOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, "**=": true,
}

var binaryPrecedence = map[string]int{
	"or": precOr, "||": precOr,
	"and": precAnd, "&&": precAnd,
	"==": precComparison, "!=": precComparison,
	"<": precComparison, "<=": precComparison, ">": precComparison, ">=": precComparison,
	"is": precComparison, "in": precComparison, "as": precComparison,
	"|": precBitOr,
	"^": precBitXor,
	"&": precBitAnd,
	"<<": precShift, ">>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precPower,
}

var rightAssociative = map[string]bool{"**": true}

// parseExpr implements precedence climbing: minPrec is the lowest binding
// power the caller will accept for the operator that follows the primary it
// returns.
func (p *Parser) parseExpr(minPrec int) NodeID {
	left := p.parseUnary()
	for {
		c := p.cur()
		if c.Kind != token.Punct && c.Kind != token.Keyword {
			break
		}
		if assignmentOps[c.Text] && minPrec <= precAssignment {
			op := p.advance()
			right := p.parseExpr(precAssignment)
			b := NewBuilder(p.tree, KindBinaryExpr)
			b.Node("Left", left).Token("Operator", op).Node("Right", right)
			left = b.Build()
			continue
		}
		if c.Text == "if" && minPrec <= precTernary {
			p.advance()
			cond := p.parseExpr(precTernary + 1)
			var invalid []TokenID
			p.expect("else", &invalid)
			elseExpr := p.parseExpr(precTernary)
			b := NewBuilder(p.tree, KindTernaryExpr)
			b.Node("Then", left).Node("Condition", cond).Node("Else", elseExpr)
			for _, t := range invalid {
				b.Invalid(t)
			}
			left = b.Build()
			continue
		}
		prec, ok := binaryPrecedence[c.Text]
		if !ok || prec < minPrec {
			break
		}
		op := p.advance()
		nextMin := prec + 1
		if rightAssociative[c.Text] {
			nextMin = prec
		}
		right := p.parseExpr(nextMin)
		b := NewBuilder(p.tree, KindBinaryExpr)
		b.Node("Left", left).Token("Operator", op).Node("Right", right)
		left = b.Build()
	}
	return left
}

func (p *Parser) parseUnary() NodeID {
	c := p.cur()
	if (c.Kind == token.Punct && (c.Text == "-" || c.Text == "!" || c.Text == "~" || c.Text == "not")) ||
		(c.Kind == token.Keyword && c.Text == "not") {
		op := p.advance()
		operand := p.parseExpr(precUnary)
		b := NewBuilder(p.tree, KindUnaryExpr)
		b.Token("Operator", op).Node("Operand", operand)
		return b.Build()
	}
	if c.Kind == token.Keyword && c.Text == "await" {
		p.advance()
		target := p.parseExpr(precUnary)
		b := NewBuilder(p.tree, KindAwaitExpr)
		b.Node("Target", target)
		return b.Build()
	}
	if c.Kind == token.Keyword && c.Text == "yield" {
		p.advance()
		var object, signal NodeID = NilNode, NilNode
		var invalid []TokenID
		if _, ok := p.accept("("); ok {
			if !p.isPunct(")") {
				object = p.parseExpr(0)
				if _, ok := p.accept(","); ok {
					signal = p.parseExpr(0)
				}
			}
			p.expect(")", &invalid)
		}
		b := NewBuilder(p.tree, KindYieldExpr)
		b.Node("Object", object).Node("Signal", signal)
		for _, t := range invalid {
			b.Invalid(t)
		}
		return b.Build()
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(left NodeID) NodeID {
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			var member TokenID = NilToken
			if p.cur().Kind == token.Identifier || p.cur().Kind == token.Keyword {
				member = p.advance()
			}
			b := NewBuilder(p.tree, KindMemberAccessExpr)
			b.Node("Target", left).Token("Member", member)
			left = b.Build()
		case p.isPunct("("):
			p.advance()
			args := p.parseArgumentItems()
			var invalid []TokenID
			p.expect(")", &invalid)
			argsNode := NewBuilder(p.tree, KindArgumentList).List("Items", args).Build()
			b := NewBuilder(p.tree, KindCallExpr)
			b.Node("Callee", left).Node("Arguments", argsNode)
			for _, t := range invalid {
				b.Invalid(t)
			}
			left = b.Build()
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpr(0)
			var invalid []TokenID
			p.expect("]", &invalid)
			b := NewBuilder(p.tree, KindIndexerExpr)
			b.Node("Target", left).Node("Index", idx)
			for _, t := range invalid {
				b.Invalid(t)
			}
			left = b.Build()
		default:
			return left
		}
	}
}

func (p *Parser) parseArgumentItems() []NodeID {
	var items []NodeID
	for !p.isPunct(")") && !p.atEnd() {
		items = append(items, p.parseExpr(precAssignment+1))
		if _, ok := p.accept(","); !ok {
			break
		}
	}
	return items
}

func (p *Parser) parsePrimary() NodeID {
	c := p.cur()
	switch {
	case c.Kind == token.IntLiteral, c.Kind == token.FloatLiteral,
		c.Kind == token.StringLiteral, c.Kind == token.BoolLiteral, c.Kind == token.NullLiteral:
		tok := p.advance()
		b := NewBuilder(p.tree, KindLiteralExpr)
		b.Token("Value", tok)
		return b.Build()
	case c.Kind == token.Identifier:
		tok := p.advance()
		b := NewBuilder(p.tree, KindIdentifierExpr)
		b.Token("Name", tok)
		return b.Build()
	case c.Kind == token.Keyword && c.Text == "self":
		p.advance()
		return NewBuilder(p.tree, KindSelfExpr).Build()
	case c.Kind == token.Keyword && c.Text == "super":
		p.advance()
		return NewBuilder(p.tree, KindSuperExpr).Build()
	case c.Kind == token.Keyword && c.Text == "func":
		return p.parseLambda()
	case c.Kind == token.Punct && c.Text == "(":
		p.advance()
		inner := p.parseExpr(0)
		var invalid []TokenID
		p.expect(")", &invalid)
		b := NewBuilder(p.tree, KindBracketedExpr)
		b.Node("Inner", inner)
		for _, t := range invalid {
			b.Invalid(t)
		}
		return b.Build()
	case c.Kind == token.Punct && c.Text == "[":
		p.advance()
		var elems []NodeID
		for !p.isPunct("]") && !p.atEnd() {
			elems = append(elems, p.parseExpr(precAssignment+1))
			if _, ok := p.accept(","); !ok {
				break
			}
		}
		var invalid []TokenID
		p.expect("]", &invalid)
		b := NewBuilder(p.tree, KindArrayInitExpr)
		b.List("Elements", elems)
		for _, t := range invalid {
			b.Invalid(t)
		}
		return b.Build()
	case c.Kind == token.Punct && c.Text == "{":
		p.advance()
		var entries []NodeID
		for !p.isPunct("}") && !p.atEnd() {
			key := p.parseExpr(precAssignment + 1)
			var invalid []TokenID
			p.expect(":", &invalid)
			val := p.parseExpr(precAssignment + 1)
			entry := NewBuilder(p.tree, KindBinaryExpr).Node("Left", key).Node("Right", val).Build()
			for _, t := range invalid {
				p.tree.AddInvalid(entry, t)
			}
			entries = append(entries, entry)
			if _, ok := p.accept(","); !ok {
				break
			}
		}
		var invalid []TokenID
		p.expect("}", &invalid)
		b := NewBuilder(p.tree, KindDictInitExpr)
		b.List("Entries", entries)
		for _, t := range invalid {
			b.Invalid(t)
		}
		return b.Build()
	case c.Kind == token.Punct && len(c.Text) > 0 && c.Text[0] == '$':
		tok := p.advance()
		b := NewBuilder(p.tree, KindGetNodeExpr)
		b.Token("Path", tok)
		return b.Build()
	case c.Kind == token.Punct && len(c.Text) > 0 && c.Text[0] == '%':
		tok := p.advance()
		b := NewBuilder(p.tree, KindUniqueNodeExpr)
		b.Token("Name", tok)
		return b.Build()
	case c.Kind == token.Punct && len(c.Text) > 0 && c.Text[0] == '^':
		tok := p.advance()
		b := NewBuilder(p.tree, KindNodePathExpr)
		b.Token("Path", tok)
		return b.Build()
	default:
		var invalid []TokenID
		if !p.atEnd() {
			invalid = append(invalid, p.advance())
		}
		b := NewBuilder(p.tree, KindLiteralExpr)
		for _, t := range invalid {
			b.Invalid(t)
		}
		return b.Build()
	}
}

func (p *Parser) parseLambda() NodeID {
	b := NewBuilder(p.tree, KindLambdaExpr)
	var invalid []TokenID
	p.expect("func", &invalid)
	if p.cur().Kind == token.Identifier {
		p.advance() // optional lambda name, not kept as a slot
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
	b.List("Parameters", params).Node("ReturnType", retType).Node("Body", body)
	for _, t := range invalid {
		b.Invalid(t)
	}
	return b.Build()
}
