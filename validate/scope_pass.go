package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// ScopePass walks every method body in its own nested scope, reporting
// UndefinedVariable/UndefinedFunction for names that resolve nowhere and
// VariableUsedBeforeDeclaration for a local referenced earlier in its own
// block than the `var` statement that declares it. It must run after
// DeclarationPass.
type ScopePass struct{}

func (ScopePass) Name() string { return "scope" }

func (ScopePass) Run(ctx *Context) {
	for _, member := range ctx.Class.Members() {
		if member.Kind() != syntax.KindMethodDecl {
			continue
		}
		method := syntax.AsMethodDecl(member)
		methodScope := semantic.NewScope(semantic.ScopeMethod, ctx.ClassScope)
		for _, p := range method.Parameters() {
			pd := syntax.AsParameterDecl(p)
			if name, ok := pd.Name(); ok {
				methodScope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolParameter, Type: semantic.TypeName(pd.Type())})
			}
		}
		stmts := method.Statements()
		w := &scopeWalker{ctx: ctx, declaredLater: hoistedLocals(stmts)}
		w.walkStatements(stmts, methodScope)
	}
}

// hoistedLocals collects every name a `var` statement or `for` loop
// variable will declare anywhere in this block or a nested block, used to
// distinguish "used before declared" from "never declared at all".
func hoistedLocals(stmts []syntax.Node) map[string]bool {
	out := map[string]bool{}
	var visit func([]syntax.Node)
	visit = func(list []syntax.Node) {
		for _, s := range list {
			switch s.Kind() {
			case syntax.KindVariableDeclStmt:
				if name, ok := syntax.AsVariableDeclStmt(s).Name(); ok {
					out[name] = true
				}
			case syntax.KindForStmt:
				f := syntax.AsForStmt(s)
				if name, ok := f.Variable(); ok {
					out[name] = true
				}
				visit(syntax.AsStatementsList(f.Body()).Items())
			case syntax.KindWhileStmt:
				visit(syntax.AsStatementsList(syntax.AsWhileStmt(s).Body()).Items())
			case syntax.KindIfStmt:
				ifs := syntax.AsIfStmt(s)
				visit(syntax.AsStatementsList(ifs.Body()).Items())
				for _, e := range ifs.Elifs() {
					visit(syntax.AsStatementsList(syntax.AsElifClause(e).Body()).Items())
				}
				if els := ifs.Else(); !els.IsNil() {
					visit(syntax.AsStatementsList(syntax.AsElseClause(els).Body()).Items())
				}
			case syntax.KindMatchStmt:
				for _, c := range syntax.AsMatchStmt(s).Cases() {
					visit(syntax.AsStatementsList(syntax.AsMatchCase(c).Body()).Items())
				}
			}
		}
	}
	visit(stmts)
	return out
}

type scopeWalker struct {
	ctx           *Context
	declaredLater map[string]bool
}

func (w *scopeWalker) walkStatements(stmts []syntax.Node, scope *semantic.Scope) {
	for _, s := range stmts {
		w.walkStatement(s, scope)
	}
}

func (w *scopeWalker) walkStatement(s syntax.Node, scope *semantic.Scope) {
	switch s.Kind() {
	case syntax.KindVariableDeclStmt:
		v := syntax.AsVariableDeclStmt(s)
		w.walkExpr(v.Initializer(), scope)
		name, ok := v.Name()
		if !ok {
			return
		}
		declared := semantic.TypeName(v.Type())
		if declared == semantic.Unknown {
			declared = w.ctx.Inferrer.Infer(v.Initializer(), scope)
		}
		scope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolVariable, Type: declared})
	case syntax.KindIfStmt:
		ifs := syntax.AsIfStmt(s)
		w.walkExpr(ifs.Condition(), scope)
		w.walkStatements(syntax.AsStatementsList(ifs.Body()).Items(), semantic.NewScope(semantic.ScopeBranch, scope))
		for _, e := range ifs.Elifs() {
			elif := syntax.AsElifClause(e)
			w.walkExpr(elif.Condition(), scope)
			w.walkStatements(syntax.AsStatementsList(elif.Body()).Items(), semantic.NewScope(semantic.ScopeBranch, scope))
		}
		if els := ifs.Else(); !els.IsNil() {
			w.walkStatements(syntax.AsStatementsList(syntax.AsElseClause(els).Body()).Items(), semantic.NewScope(semantic.ScopeBranch, scope))
		}
	case syntax.KindWhileStmt:
		wst := syntax.AsWhileStmt(s)
		w.walkExpr(wst.Condition(), scope)
		w.walkStatements(syntax.AsStatementsList(wst.Body()).Items(), semantic.NewScope(semantic.ScopeWhile, scope))
	case syntax.KindForStmt:
		f := syntax.AsForStmt(s)
		w.walkExpr(f.Iterable(), scope)
		loopScope := semantic.NewScope(semantic.ScopeFor, scope)
		if name, ok := f.Variable(); ok {
			loopScope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolVariable, Type: w.ctx.Inferrer.Infer(f.Iterable(), scope)})
		}
		w.walkStatements(syntax.AsStatementsList(f.Body()).Items(), loopScope)
	case syntax.KindMatchStmt:
		m := syntax.AsMatchStmt(s)
		w.walkExpr(m.Subject(), scope)
		for _, c := range m.Cases() {
			w.walkStatements(syntax.AsStatementsList(syntax.AsMatchCase(c).Body()).Items(), semantic.NewScope(semantic.ScopeMatchCase, scope))
		}
	case syntax.KindExprStmt:
		w.walkExpr(syntax.AsExprStmt(s).Expression(), scope)
	case syntax.KindReturnStmt:
		w.walkExpr(syntax.AsReturnStmt(s).Value(), scope)
	case syntax.KindAssertStmt:
		a := syntax.AsAssertStmt(s)
		w.walkExpr(a.Condition(), scope)
		w.walkExpr(a.Message(), scope)
	case syntax.KindAwaitStmt:
		w.walkExpr(syntax.AsAwaitStmt(s).Target(), scope)
	case syntax.KindYieldStmt:
		y := syntax.AsYieldStmt(s)
		w.walkExpr(y.Object(), scope)
		w.walkExpr(y.Signal(), scope)
	}
}

func (w *scopeWalker) walkExpr(e syntax.Node, scope *semantic.Scope) {
	if e.IsNil() {
		return
	}
	switch e.Kind() {
	case syntax.KindIdentifierExpr:
		w.checkIdentifier(syntax.AsIdentifierExpr(e), scope)
	case syntax.KindMemberAccessExpr:
		w.walkExpr(syntax.AsMemberAccessExpr(e).Target(), scope)
	case syntax.KindCallExpr:
		c := syntax.AsCallExpr(e)
		if callee := c.Callee(); callee.Kind() == syntax.KindIdentifierExpr {
			w.checkCallee(syntax.AsIdentifierExpr(callee), scope)
		} else {
			w.walkExpr(callee, scope)
		}
		for _, a := range c.Arguments() {
			w.walkExpr(a, scope)
		}
	case syntax.KindBinaryExpr:
		b := syntax.AsBinaryExpr(e)
		w.walkExpr(b.Left(), scope)
		w.walkExpr(b.Right(), scope)
	case syntax.KindUnaryExpr:
		w.walkExpr(syntax.AsUnaryExpr(e).Operand(), scope)
	case syntax.KindTernaryExpr:
		t := syntax.AsTernaryExpr(e)
		w.walkExpr(t.Condition(), scope)
		w.walkExpr(t.Then(), scope)
		w.walkExpr(t.Else(), scope)
	case syntax.KindIndexerExpr:
		idx := syntax.AsIndexerExpr(e)
		w.walkExpr(idx.Target(), scope)
		w.walkExpr(idx.Index(), scope)
	case syntax.KindArrayInitExpr:
		for _, el := range syntax.AsArrayInitExpr(e).Elements() {
			w.walkExpr(el, scope)
		}
	case syntax.KindDictInitExpr:
		for _, en := range syntax.AsDictInitExpr(e).Entries() {
			w.walkExpr(en, scope)
		}
	case syntax.KindBracketedExpr:
		w.walkExpr(syntax.AsBracketedExpr(e).Inner(), scope)
	case syntax.KindAwaitExpr:
		w.walkExpr(syntax.AsAwaitExpr(e).Target(), scope)
	case syntax.KindYieldExpr:
		y := syntax.AsYieldExpr(e)
		w.walkExpr(y.Object(), scope)
		w.walkExpr(y.Signal(), scope)
	}
}

func (w *scopeWalker) checkIdentifier(id syntax.IdentifierExpr, scope *semantic.Scope) {
	name, ok := id.Name()
	if !ok {
		return
	}
	if _, found := scope.Lookup(name); found {
		return
	}
	if w.ctx.Provider.IsBuiltIn(name) {
		return
	}
	if w.declaredLater[name] {
		w.ctx.Sink.Report(diagnostic.New(
			diagnostic.SeverityError, diagnostic.VariableUsedBeforeDeclaration, id.Range(),
			"%q is used before its declaration", name,
		))
		return
	}
	w.ctx.Sink.Report(diagnostic.New(
		diagnostic.SeverityError, diagnostic.UndefinedVariable, id.Range(),
		"undefined variable %q", name,
	))
}

func (w *scopeWalker) checkCallee(id syntax.IdentifierExpr, scope *semantic.Scope) {
	name, ok := id.Name()
	if !ok {
		return
	}
	if sym, found := scope.Lookup(name); found {
		if sym.Kind != semantic.SymbolMethod {
			// Calling a non-method local (e.g. a Callable variable) is
			// legal in GDScript; leave it to CallPass to judge.
			return
		}
		return
	}
	if w.ctx.Provider.IsBuiltIn(name) {
		return
	}
	w.ctx.Sink.Report(diagnostic.New(
		diagnostic.SeverityError, diagnostic.UndefinedFunction, id.Range(),
		"undefined function %q", name,
	))
}
