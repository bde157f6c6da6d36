package semantic

import (
	"github.com/viant/gdlang/syntax"
)

// RegisterCallSites walks every call expression in class and records it
// into registry, classifying the receiver per the four cases a call
// expression can present:
//   - a bare identifier callee targets the enclosing class directly;
//   - `self.m(...)` also targets the enclosing class, resolved;
//   - a member-access call whose target type inference resolves targets
//     that class, resolved;
//   - anything else (an unresolvable receiver, e.g. a Variant-typed local)
//     is filed under AnyClass at duck-typed confidence, so a later rename
//     sweep still finds it.
func (fm *FileModel) RegisterCallSites(registry *CallSiteRegistry, selfClass string) {
	for _, member := range fm.Class.Members() {
		if member.Kind() != syntax.KindMethodDecl {
			continue
		}
		method := syntax.AsMethodDecl(member)
		sourceMethod, _ := method.Name()
		scope := NewScope(ScopeMethod, fm.FileScope)
		scope.Declare(&Symbol{Name: "self", Kind: SymbolVariable, Type: selfClass})
		for _, p := range method.Parameters() {
			pd := syntax.AsParameterDecl(p)
			if name, ok := pd.Name(); ok {
				scope.Declare(&Symbol{Name: name, Kind: SymbolParameter, Type: TypeName(pd.Type())})
			}
		}
		for _, stmt := range method.Statements() {
			for node := range stmt.AllNodes() {
				if node.Kind() != syntax.KindCallExpr {
					continue
				}
				fm.registerCall(registry, selfClass, sourceMethod, syntax.AsCallExpr(node), scope)
			}
		}
	}
}

func (fm *FileModel) registerCall(registry *CallSiteRegistry, selfClass, sourceMethod string, call syntax.CallExpr, scope *Scope) {
	callee := call.Callee()
	args := call.Arguments()
	argTypes := make([]string, len(args))
	for i, a := range args {
		argTypes[i] = fm.inferrer.Infer(a, scope)
	}

	cs := &CallSite{File: fm.Path, SourceMethod: sourceMethod, ArgumentTypes: argTypes}

	switch callee.Kind() {
	case syntax.KindIdentifierExpr:
		name, ok := syntax.AsIdentifierExpr(callee).Name()
		if !ok {
			return
		}
		cs.TargetClass = selfClass
		cs.TargetMethod = name
		cs.Confidence = ConfidenceResolved
	case syntax.KindMemberAccessExpr:
		ma := syntax.AsMemberAccessExpr(callee)
		methodName, ok := ma.Member()
		if !ok {
			return
		}
		cs.TargetMethod = methodName
		if ma.Target().Kind() == syntax.KindSelfExpr {
			cs.TargetClass = selfClass
			cs.Confidence = ConfidenceResolved
		} else {
			targetType := fm.inferrer.Infer(ma.Target(), scope)
			if targetType == Unknown || targetType == Variant {
				cs.TargetClass = AnyClass
				cs.Confidence = ConfidenceDuckTyped
			} else {
				cs.TargetClass = targetType
				cs.Confidence = ConfidenceResolved
			}
		}
	default:
		return
	}
	registry.Register(cs)
}
