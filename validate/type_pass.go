package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// TypePass re-walks every method body with the type inferrer, reporting a
// TypeMismatch when a `var x: T = expr` initializer's inferred type can't
// assign to T, and InvalidOperandType for arithmetic between incompatible
// operand types. It must run after DeclarationPass.
type TypePass struct{}

func (TypePass) Name() string { return "type" }

func (TypePass) Run(ctx *Context) {
	for _, member := range ctx.Class.Members() {
		switch member.Kind() {
		case syntax.KindVariableDecl:
			v := syntax.AsVariableDecl(member)
			declared := semantic.TypeName(v.Type())
			if declared == semantic.Unknown || v.Initializer().IsNil() {
				continue
			}
			actual := ctx.Inferrer.Infer(v.Initializer(), ctx.ClassScope)
			if !ctx.Inferrer.IsAssignableTo(actual, declared) {
				reportMismatch(ctx, declared, actual, v.Initializer())
			}
		case syntax.KindMethodDecl:
			checkMethodTypes(ctx, syntax.AsMethodDecl(member))
		}
	}
}

func checkMethodTypes(ctx *Context, method syntax.MethodDecl) {
	methodScope := semantic.NewScope(semantic.ScopeMethod, ctx.ClassScope)
	for _, p := range method.Parameters() {
		pd := syntax.AsParameterDecl(p)
		if name, ok := pd.Name(); ok {
			methodScope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolParameter, Type: semantic.TypeName(pd.Type())})
		}
	}
	checkStatements(ctx, method.Statements(), methodScope)
}

func checkStatements(ctx *Context, stmts []syntax.Node, scope *semantic.Scope) {
	for _, s := range stmts {
		checkStatement(ctx, s, scope)
	}
}

func checkStatement(ctx *Context, s syntax.Node, scope *semantic.Scope) {
	switch s.Kind() {
	case syntax.KindVariableDeclStmt:
		v := syntax.AsVariableDeclStmt(s)
		declared := semantic.TypeName(v.Type())
		if init := v.Initializer(); !init.IsNil() {
			checkExpr(ctx, init, scope)
			if declared != semantic.Unknown {
				actual := ctx.Inferrer.Infer(init, scope)
				if !ctx.Inferrer.IsAssignableTo(actual, declared) {
					reportMismatch(ctx, declared, actual, init)
				}
			} else {
				declared = ctx.Inferrer.Infer(init, scope)
			}
		}
		if name, ok := v.Name(); ok {
			scope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolVariable, Type: declared})
		}
	case syntax.KindIfStmt:
		ifs := syntax.AsIfStmt(s)
		checkExpr(ctx, ifs.Condition(), scope)
		checkStatements(ctx, syntax.AsStatementsList(ifs.Body()).Items(), semantic.NewScope(semantic.ScopeBranch, scope))
		for _, e := range ifs.Elifs() {
			elif := syntax.AsElifClause(e)
			checkExpr(ctx, elif.Condition(), scope)
			checkStatements(ctx, syntax.AsStatementsList(elif.Body()).Items(), semantic.NewScope(semantic.ScopeBranch, scope))
		}
		if els := ifs.Else(); !els.IsNil() {
			checkStatements(ctx, syntax.AsStatementsList(syntax.AsElseClause(els).Body()).Items(), semantic.NewScope(semantic.ScopeBranch, scope))
		}
	case syntax.KindWhileStmt:
		w := syntax.AsWhileStmt(s)
		checkExpr(ctx, w.Condition(), scope)
		checkStatements(ctx, syntax.AsStatementsList(w.Body()).Items(), semantic.NewScope(semantic.ScopeWhile, scope))
	case syntax.KindForStmt:
		f := syntax.AsForStmt(s)
		checkExpr(ctx, f.Iterable(), scope)
		loopScope := semantic.NewScope(semantic.ScopeFor, scope)
		if name, ok := f.Variable(); ok {
			loopScope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolVariable, Type: ctx.Inferrer.Infer(f.Iterable(), scope)})
		}
		checkStatements(ctx, syntax.AsStatementsList(f.Body()).Items(), loopScope)
	case syntax.KindMatchStmt:
		m := syntax.AsMatchStmt(s)
		checkExpr(ctx, m.Subject(), scope)
		for _, c := range m.Cases() {
			checkStatements(ctx, syntax.AsStatementsList(syntax.AsMatchCase(c).Body()).Items(), semantic.NewScope(semantic.ScopeMatchCase, scope))
		}
	case syntax.KindExprStmt:
		checkExpr(ctx, syntax.AsExprStmt(s).Expression(), scope)
	case syntax.KindReturnStmt:
		checkExpr(ctx, syntax.AsReturnStmt(s).Value(), scope)
	}
}

func checkExpr(ctx *Context, e syntax.Node, scope *semantic.Scope) {
	if e.IsNil() || e.Kind() != syntax.KindBinaryExpr {
		return
	}
	b := syntax.AsBinaryExpr(e)
	op, _ := b.Operator()
	checkExpr(ctx, b.Left(), scope)
	checkExpr(ctx, b.Right(), scope)
	if op == "=" {
		leftType := ctx.Inferrer.Infer(b.Left(), scope)
		rightType := ctx.Inferrer.Infer(b.Right(), scope)
		if !ctx.Inferrer.IsAssignableTo(rightType, leftType) {
			reportMismatch(ctx, leftType, rightType, b.Right())
		}
		if b.Left().Kind() == syntax.KindIdentifierExpr {
			if name, ok := syntax.AsIdentifierExpr(b.Left()).Name(); ok {
				if sym, found := scope.Lookup(name); found && sym.Kind == semantic.SymbolConstant {
					ctx.Sink.Report(diagnostic.New(
						diagnostic.SeverityError, diagnostic.ConstantReassignment, b.Node.Range(),
						"cannot assign to constant %q", name,
					))
				}
			}
		}
		return
	}
	if isArithmetic(op) {
		leftType := ctx.Inferrer.Infer(b.Left(), scope)
		rightType := ctx.Inferrer.Infer(b.Right(), scope)
		if incompatibleOperands(leftType, rightType) {
			ctx.Sink.Report(diagnostic.New(
				diagnostic.SeverityError, diagnostic.InvalidOperandType, b.Node.Range(),
				"operator %q cannot be applied to %s and %s", op, leftType, rightType,
			))
		}
	}
}

func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%", "**":
		return true
	}
	return false
}

func incompatibleOperands(left, right string) bool {
	if left == semantic.Variant || right == semantic.Variant || left == semantic.Unknown || right == semantic.Unknown {
		return false
	}
	numeric := func(t string) bool { return t == "int" || t == "float" }
	if numeric(left) && numeric(right) {
		return false
	}
	// Same-type arithmetic (String + String, Array + Array, ...) is legal
	// via GDScript's operator overloads; only a genuine type mismatch
	// between two known, non-numeric, differing types is reported.
	return left != right
}

func reportMismatch(ctx *Context, declared, actual string, at syntax.Node) {
	ctx.Sink.Report(diagnostic.New(
		diagnostic.SeverityError, diagnostic.TypeMismatch, at.Range(),
		"cannot assign %s to %s", actual, declared,
	))
}
