package validate

import (
	"github.com/viant/gdlang/diagnostic"
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// CallPass re-walks every call expression, reporting WrongArgumentCount
// against a resolvable callee's declared parameter list, MethodNotFound for
// a member-access call whose target type has no such member, and
// NotCallable for a call whose callee resolved to a non-method,
// non-Callable symbol. Calls against an unresolved receiver type are left
// alone: the project owns no further evidence to judge them by.
type CallPass struct{}

func (CallPass) Name() string { return "call" }

func (CallPass) Run(ctx *Context) {
	methodsByName := map[string]syntax.MethodDecl{}
	for _, member := range ctx.Class.Members() {
		if member.Kind() == syntax.KindMethodDecl {
			m := syntax.AsMethodDecl(member)
			if name, ok := m.Name(); ok {
				methodsByName[name] = m
			}
		}
	}
	for _, member := range ctx.Class.Members() {
		if member.Kind() != syntax.KindMethodDecl {
			continue
		}
		method := syntax.AsMethodDecl(member)
		scope := semantic.NewScope(semantic.ScopeMethod, ctx.ClassScope)
		for _, p := range method.Parameters() {
			pd := syntax.AsParameterDecl(p)
			if name, ok := pd.Name(); ok {
				scope.Declare(&semantic.Symbol{Name: name, Kind: semantic.SymbolParameter, Type: semantic.TypeName(pd.Type())})
			}
		}
		walkCalls(ctx, method.Statements(), scope, methodsByName)
	}
}

func walkCalls(ctx *Context, nodes []syntax.Node, scope *semantic.Scope, methods map[string]syntax.MethodDecl) {
	for _, n := range nodes {
		for node := range n.AllNodes() {
			if node.Kind() != syntax.KindCallExpr {
				continue
			}
			checkCall(ctx, syntax.AsCallExpr(node), scope, methods)
		}
	}
}

func checkCall(ctx *Context, call syntax.CallExpr, scope *semantic.Scope, methods map[string]syntax.MethodDecl) {
	callee := call.Callee()
	argCount := len(call.Arguments())

	switch callee.Kind() {
	case syntax.KindIdentifierExpr:
		name, ok := syntax.AsIdentifierExpr(callee).Name()
		if !ok {
			return
		}
		if method, found := methods[name]; found {
			checkArity(ctx, call.Node, method.Parameters(), argCount)
			return
		}
		if sym, found := scope.Lookup(name); found {
			if sym.Kind != semantic.SymbolMethod && sym.Type != "Callable" && sym.Type != semantic.Variant {
				ctx.Sink.Report(diagnostic.New(
					diagnostic.SeverityError, diagnostic.NotCallable, call.Range(),
					"%q is not callable", name,
				))
			}
			return
		}
		// Unresolved global function: left to ScopePass's UndefinedFunction.
	case syntax.KindMemberAccessExpr:
		ma := syntax.AsMemberAccessExpr(callee)
		targetType := ctx.Inferrer.Infer(ma.Target(), scope)
		memberName, ok := ma.Member()
		if !ok || targetType == semantic.Unknown || targetType == semantic.Variant {
			return
		}
		if !ctx.Provider.IsKnownType(targetType) {
			return
		}
		member, found := ctx.Provider.GetMember(targetType, memberName)
		if !found {
			ctx.Sink.Report(diagnostic.New(
				diagnostic.SeverityError, diagnostic.MethodNotFound, call.Range(),
				"%s has no method %q", targetType, memberName,
			))
			return
		}
		_ = member
	}
}

func checkArity(ctx *Context, call syntax.Node, params []syntax.Node, argCount int) {
	required := 0
	for _, p := range params {
		if syntax.AsParameterDecl(p).Default().IsNil() {
			required++
		}
	}
	if argCount < required || argCount > len(params) {
		ctx.Sink.Report(diagnostic.New(
			diagnostic.SeverityError, diagnostic.WrongArgumentCount, call.Range(),
			"expected %d argument(s), got %d", len(params), argCount,
		))
	}
}
