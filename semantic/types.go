package semantic

import (
	"strconv"
	"strings"

	"github.com/viant/gdlang/runtime"
	"github.com/viant/gdlang/syntax"
)

// Inferrer computes an expression's static type using the file's current
// scope and a runtime.Provider for built-in member/global resolution. It
// holds no mutable state of its own beyond its collaborators, so one
// Inferrer can be shared across every method of a file.
type Inferrer struct {
	Provider runtime.Provider
}

// NewInferrer builds an Inferrer backed by provider. A nil provider falls
// back to runtime.NopProvider.
func NewInferrer(provider runtime.Provider) *Inferrer {
	if provider == nil {
		provider = runtime.NopProvider{}
	}
	return &Inferrer{Provider: provider}
}

// Infer computes the static type of expression n evaluated in scope. It
// never fails: an expression whose type can't be narrowed resolves to
// Variant, matching GDScript's own dynamic fallback.
func (inf *Inferrer) Infer(n syntax.Node, scope *Scope) string {
	if n.IsNil() {
		return Unknown
	}
	switch n.Kind() {
	case syntax.KindLiteralExpr:
		return inf.literalType(syntax.AsLiteralExpr(n))
	case syntax.KindIdentifierExpr:
		return inf.identifierType(syntax.AsIdentifierExpr(n), scope)
	case syntax.KindSelfExpr:
		return inf.selfType(scope)
	case syntax.KindSuperExpr:
		if m := scope.EnclosingMethod(); m != nil {
			if sym, ok := m.Lookup("self"); ok {
				if base, ok := inf.Provider.GetBaseType(sym.Type); ok {
					return base
				}
			}
		}
		return Variant
	case syntax.KindMemberAccessExpr:
		return inf.memberAccessType(syntax.AsMemberAccessExpr(n), scope)
	case syntax.KindIndexerExpr:
		return inf.indexerType(syntax.AsIndexerExpr(n), scope)
	case syntax.KindCallExpr:
		return inf.callType(syntax.AsCallExpr(n), scope)
	case syntax.KindBinaryExpr:
		return inf.binaryType(syntax.AsBinaryExpr(n), scope)
	case syntax.KindUnaryExpr:
		return inf.unaryType(syntax.AsUnaryExpr(n), scope)
	case syntax.KindTernaryExpr:
		t := syntax.AsTernaryExpr(n)
		return inf.unify(inf.Infer(t.Then(), scope), inf.Infer(t.Else(), scope))
	case syntax.KindBracketedExpr:
		return inf.Infer(syntax.AsBracketedExpr(n).Inner(), scope)
	case syntax.KindArrayInitExpr:
		return "Array"
	case syntax.KindDictInitExpr:
		return "Dictionary"
	case syntax.KindAwaitExpr:
		return inf.Infer(syntax.AsAwaitExpr(n).Target(), scope)
	case syntax.KindYieldExpr:
		return Variant
	case syntax.KindGetNodeExpr, syntax.KindUniqueNodeExpr:
		return "Node"
	case syntax.KindNodePathExpr:
		return "NodePath"
	case syntax.KindLambdaExpr:
		return "Callable"
	default:
		return Variant
	}
}

func (inf *Inferrer) literalType(l syntax.LiteralExpr) string {
	value, has := l.Value()
	if !has {
		return Variant
	}
	switch {
	case value == "true" || value == "false":
		return "bool"
	case value == "null":
		return "null"
	case strings.HasPrefix(value, "\"") || strings.HasPrefix(value, "'"):
		return "String"
	}
	if _, err := strconv.ParseInt(value, 0, 64); err == nil {
		return "int"
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return "float"
	}
	return Variant
}

func (inf *Inferrer) identifierType(id syntax.IdentifierExpr, scope *Scope) string {
	name, ok := id.Name()
	if !ok {
		return Variant
	}
	if sym, ok := scope.Lookup(name); ok && sym.Type != Unknown {
		return sym.Type
	}
	if fn, ok := inf.Provider.GetGlobalFunction(name); ok {
		return fn.Type
	}
	if cls, ok := inf.Provider.GetGlobalClass(name); ok {
		return cls.Name
	}
	return Variant
}

func (inf *Inferrer) selfType(scope *Scope) string {
	if sym, ok := scope.Lookup("self"); ok && sym.Type != Unknown {
		return sym.Type
	}
	return Variant
}

func (inf *Inferrer) memberAccessType(m syntax.MemberAccessExpr, scope *Scope) string {
	targetType := inf.Infer(m.Target(), scope)
	memberName, ok := m.Member()
	if !ok || targetType == Unknown || targetType == Variant {
		return Variant
	}
	if member, ok := inf.Provider.GetMember(targetType, memberName); ok {
		return member.Type
	}
	return Variant
}

func (inf *Inferrer) indexerType(idx syntax.IndexerExpr, scope *Scope) string {
	targetType := inf.Infer(idx.Target(), scope)
	switch {
	case strings.HasPrefix(targetType, "Array["):
		return strings.TrimSuffix(strings.TrimPrefix(targetType, "Array["), "]")
	case strings.HasPrefix(targetType, "Dictionary["):
		parts := strings.SplitN(strings.TrimSuffix(strings.TrimPrefix(targetType, "Dictionary["), "]"), ", ", 2)
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return Variant
}

func (inf *Inferrer) callType(c syntax.CallExpr, scope *Scope) string {
	callee := c.Callee()
	switch callee.Kind() {
	case syntax.KindIdentifierExpr:
		name, _ := syntax.AsIdentifierExpr(callee).Name()
		if sym, ok := scope.Lookup(name); ok && sym.Kind == SymbolMethod && sym.Type != Unknown {
			return sym.Type
		}
		if fn, ok := inf.Provider.GetGlobalFunction(name); ok {
			return fn.Type
		}
	case syntax.KindMemberAccessExpr:
		ma := syntax.AsMemberAccessExpr(callee)
		targetType := inf.Infer(ma.Target(), scope)
		if memberName, ok := ma.Member(); ok {
			if member, ok := inf.Provider.GetMember(targetType, memberName); ok {
				return member.Type
			}
		}
	}
	return Variant
}

func (inf *Inferrer) binaryType(b syntax.BinaryExpr, scope *Scope) string {
	op, _ := b.Operator()
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "and", "or", "is", "in":
		return "bool"
	case "as":
		return TypeName(b.Right())
	}
	left := inf.Infer(b.Left(), scope)
	right := inf.Infer(b.Right(), scope)
	return inf.unify(left, right)
}

func (inf *Inferrer) unaryType(u syntax.UnaryExpr, scope *Scope) string {
	op, _ := u.Operator()
	if op == "not" || op == "!" {
		return "bool"
	}
	return inf.Infer(u.Operand(), scope)
}

// unify combines two branch types into one, the rule ternaries and binary
// arithmetic share: identical types pass through, a numeric mix promotes to
// float, anything else falls back to Variant.
func (inf *Inferrer) unify(a, b string) string {
	if a == b {
		return a
	}
	numeric := func(t string) bool { return t == "int" || t == "float" }
	if numeric(a) && numeric(b) {
		return "float"
	}
	return Variant
}

// IsAssignableTo reports whether a value of type from may be assigned to a
// variable declared as type to, consulting the runtime provider for
// built-in inheritance and falling back to exact-match for project types.
func (inf *Inferrer) IsAssignableTo(from, to string) bool {
	if to == Unknown || to == Variant || from == Variant || from == Unknown {
		return true
	}
	if from == to {
		return true
	}
	if from == "int" && to == "float" {
		return true
	}
	return inf.Provider.IsAssignableTo(from, to)
}
