package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/syntax"
)

// ControlFlowPass reports `break`/`continue` outside a loop, `return`
// outside a method, `await`/`yield` outside a method, and `super` outside a
// method body. It walks the tree directly rather than through Scope, since
// the question it answers ("is this node lexically inside a loop/method")
// is about syntactic nesting, not name resolution.
type ControlFlowPass struct{}

func (ControlFlowPass) Name() string { return "controlflow" }

func (ControlFlowPass) Run(ctx *Context) {
	for _, member := range ctx.Class.Members() {
		if member.Kind() != syntax.KindMethodDecl {
			continue
		}
		method := syntax.AsMethodDecl(member)
		checkFlow(ctx, method.Statements(), flowState{inFunction: true})
	}
	// Top-level statements belong to no method: break/continue/return/
	// await/yield there are always invalid, but GDScript class bodies carry
	// no bare statements outside declarations, so there is nothing further
	// to walk here.
}

type flowState struct {
	inLoop     bool
	inFunction bool
}

func checkFlow(ctx *Context, stmts []syntax.Node, st flowState) {
	for _, s := range stmts {
		checkFlowStatement(ctx, s, st)
	}
}

func checkFlowStatement(ctx *Context, s syntax.Node, st flowState) {
	switch s.Kind() {
	case syntax.KindBreakStmt:
		if !st.inLoop {
			report(ctx, diagnostic.BreakOutsideLoop, s, "'break' outside loop")
		}
	case syntax.KindContinueStmt:
		if !st.inLoop {
			report(ctx, diagnostic.ContinueOutsideLoop, s, "'continue' outside loop")
		}
	case syntax.KindReturnStmt:
		if !st.inFunction {
			report(ctx, diagnostic.ReturnOutsideFunction, s, "'return' outside function")
		}
		checkFlowExpr(ctx, syntax.AsReturnStmt(s).Value(), st)
	case syntax.KindAwaitStmt:
		if !st.inFunction {
			report(ctx, diagnostic.AwaitOutsideFunction, s, "'await' outside function")
		}
	case syntax.KindYieldStmt:
		if !st.inFunction {
			report(ctx, diagnostic.YieldOutsideFunction, s, "'yield' outside function")
		}
	case syntax.KindIfStmt:
		ifs := syntax.AsIfStmt(s)
		checkFlowExpr(ctx, ifs.Condition(), st)
		checkFlow(ctx, syntax.AsStatementsList(ifs.Body()).Items(), st)
		for _, e := range ifs.Elifs() {
			elif := syntax.AsElifClause(e)
			checkFlowExpr(ctx, elif.Condition(), st)
			checkFlow(ctx, syntax.AsStatementsList(elif.Body()).Items(), st)
		}
		if els := ifs.Else(); !els.IsNil() {
			checkFlow(ctx, syntax.AsStatementsList(syntax.AsElseClause(els).Body()).Items(), st)
		}
	case syntax.KindWhileStmt:
		w := syntax.AsWhileStmt(s)
		checkFlowExpr(ctx, w.Condition(), st)
		checkFlow(ctx, syntax.AsStatementsList(w.Body()).Items(), withLoop(st))
	case syntax.KindForStmt:
		f := syntax.AsForStmt(s)
		checkFlowExpr(ctx, f.Iterable(), st)
		checkFlow(ctx, syntax.AsStatementsList(f.Body()).Items(), withLoop(st))
	case syntax.KindMatchStmt:
		m := syntax.AsMatchStmt(s)
		checkFlowExpr(ctx, m.Subject(), st)
		for _, c := range m.Cases() {
			checkFlow(ctx, syntax.AsStatementsList(syntax.AsMatchCase(c).Body()).Items(), st)
		}
	case syntax.KindExprStmt:
		checkFlowExpr(ctx, syntax.AsExprStmt(s).Expression(), st)
	case syntax.KindVariableDeclStmt:
		checkFlowExpr(ctx, syntax.AsVariableDeclStmt(s).Initializer(), st)
	case syntax.KindAssertStmt:
		a := syntax.AsAssertStmt(s)
		checkFlowExpr(ctx, a.Condition(), st)
		checkFlowExpr(ctx, a.Message(), st)
	}
}

// checkFlowExpr only needs to recurse into expressions that can themselves
// contain a lambda (which resets inFunction/inLoop for its own body) or an
// await/yield/super use; every other expression kind carries no statements.
func checkFlowExpr(ctx *Context, e syntax.Node, st flowState) {
	if e.IsNil() {
		return
	}
	switch e.Kind() {
	case syntax.KindSuperExpr:
		if !st.inFunction {
			report(ctx, diagnostic.SuperOutsideMethod, e, "'super' outside method")
		}
	case syntax.KindAwaitExpr:
		if !st.inFunction {
			report(ctx, diagnostic.AwaitOutsideFunction, e, "'await' outside function")
		}
		checkFlowExpr(ctx, syntax.AsAwaitExpr(e).Target(), st)
	case syntax.KindYieldExpr:
		if !st.inFunction {
			report(ctx, diagnostic.YieldOutsideFunction, e, "'yield' outside function")
		}
	case syntax.KindLambdaExpr:
		l := syntax.AsLambdaExpr(e)
		checkFlow(ctx, syntax.AsStatementsList(l.Body()).Items(), flowState{inFunction: true})
	case syntax.KindCallExpr:
		c := syntax.AsCallExpr(e)
		checkFlowExpr(ctx, c.Callee(), st)
		for _, a := range c.Arguments() {
			checkFlowExpr(ctx, a, st)
		}
	case syntax.KindBinaryExpr:
		b := syntax.AsBinaryExpr(e)
		checkFlowExpr(ctx, b.Left(), st)
		checkFlowExpr(ctx, b.Right(), st)
	case syntax.KindUnaryExpr:
		checkFlowExpr(ctx, syntax.AsUnaryExpr(e).Operand(), st)
	case syntax.KindTernaryExpr:
		t := syntax.AsTernaryExpr(e)
		checkFlowExpr(ctx, t.Condition(), st)
		checkFlowExpr(ctx, t.Then(), st)
		checkFlowExpr(ctx, t.Else(), st)
	case syntax.KindMemberAccessExpr:
		checkFlowExpr(ctx, syntax.AsMemberAccessExpr(e).Target(), st)
	case syntax.KindIndexerExpr:
		idx := syntax.AsIndexerExpr(e)
		checkFlowExpr(ctx, idx.Target(), st)
		checkFlowExpr(ctx, idx.Index(), st)
	case syntax.KindBracketedExpr:
		checkFlowExpr(ctx, syntax.AsBracketedExpr(e).Inner(), st)
	}
}

func withLoop(st flowState) flowState {
	st.inLoop = true
	return st
}

func report(ctx *Context, code diagnostic.Code, at syntax.Node, message string) {
	ctx.Sink.Report(diagnostic.New(diagnostic.SeverityError, code, at.Range(), message))
}
