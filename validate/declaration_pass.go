package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// DeclarationPass builds the class-level scope and reports
// DuplicateDeclaration for any name declared twice at class level. It must
// run before ScopePass, TypePass, and CallPass, which all read ctx.ClassScope.
type DeclarationPass struct{}

func (DeclarationPass) Name() string { return "declaration" }

func (DeclarationPass) Run(ctx *Context) {
	ctx.FileScope = semantic.NewScope(semantic.ScopeFile, nil)
	ctx.ClassScope = semantic.NewScope(semantic.ScopeClass, ctx.FileScope)

	selfType, _ := ctx.Class.Name()
	ctx.ClassScope.Declare(&semantic.Symbol{Name: "self", Kind: semantic.SymbolVariable, Type: selfType})

	for _, member := range ctx.Class.Members() {
		declareClassMember(ctx, member)
	}
}

func declareClassMember(ctx *Context, member syntax.Node) {
	var sym *semantic.Symbol
	switch member.Kind() {
	case syntax.KindVariableDecl:
		v := syntax.AsVariableDecl(member)
		name, ok := v.Name()
		if !ok {
			return
		}
		sym = &semantic.Symbol{Name: name, Kind: semantic.SymbolVariable, Type: semantic.TypeName(v.Type())}
	case syntax.KindConstantDecl:
		c := syntax.AsConstantDecl(member)
		name, ok := c.Name()
		if !ok {
			return
		}
		sym = &semantic.Symbol{Name: name, Kind: semantic.SymbolConstant, Type: semantic.TypeName(c.Type())}
	case syntax.KindSignalDecl:
		s := syntax.AsSignalDecl(member)
		name, ok := s.Name()
		if !ok {
			return
		}
		sym = &semantic.Symbol{Name: name, Kind: semantic.SymbolSignal}
	case syntax.KindMethodDecl:
		m := syntax.AsMethodDecl(member)
		name, ok := m.Name()
		if !ok {
			return
		}
		sym = &semantic.Symbol{Name: name, Kind: semantic.SymbolMethod, Type: semantic.TypeName(m.ReturnType())}
	case syntax.KindEnumDecl:
		e := syntax.AsEnumDecl(member)
		if name, _ := e.Name(); name != "" {
			sym = &semantic.Symbol{Name: name, Kind: semantic.SymbolClass}
		}
		for _, v := range e.Values() {
			ev := syntax.AsEnumValueDecl(v)
			if vname, ok := ev.Name(); ok {
				evSym := &semantic.Symbol{Name: vname, Kind: semantic.SymbolEnumValue, Type: "int"}
				if _, redeclared := ctx.ClassScope.Declare(evSym); redeclared {
					reportDuplicate(ctx, vname, v)
				}
			}
		}
	case syntax.KindInnerClassDecl:
		c := syntax.AsInnerClassDecl(member)
		name, ok := c.Name()
		if !ok {
			return
		}
		sym = &semantic.Symbol{Name: name, Kind: semantic.SymbolClass}
	default:
		return
	}
	if sym == nil {
		return
	}
	if _, redeclared := ctx.ClassScope.Declare(sym); redeclared {
		reportDuplicate(ctx, sym.Name, member)
	}
}

func reportDuplicate(ctx *Context, name string, at syntax.Node) {
	ctx.Sink.Report(diagnostic.New(
		diagnostic.SeverityError, diagnostic.DuplicateDeclaration, at.Range(),
		"%q is already declared in this class", name,
	))
}
