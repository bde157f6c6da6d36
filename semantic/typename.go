package semantic

import "github.com/viant/gdlang/syntax"

// Variant is the inferred type used when an expression's type cannot be
// narrowed further, GDScript's dynamic fallback.
const Variant = "Variant"

// Unknown marks a type slot that inference has not yet visited at all, as
// opposed to Variant, which means inference ran and genuinely can't narrow.
const Unknown = ""

// TypeName renders a parsed type-annotation node back to its source text,
// e.g. "Array[int]" or "Dictionary[String, int]". Returns Unknown for a nil
// node (no annotation present).
func TypeName(n syntax.Node) string {
	if n.IsNil() {
		return Unknown
	}
	switch n.Kind() {
	case syntax.KindSingleType:
		name, _ := syntax.AsSingleType(n).Name()
		return name
	case syntax.KindArrayOfType:
		t := syntax.AsArrayOfType(n)
		return "Array[" + TypeName(t.Element()) + "]"
	case syntax.KindDictionaryOfType:
		t := syntax.AsDictionaryOfType(n)
		return "Dictionary[" + TypeName(t.Key()) + ", " + TypeName(t.Value()) + "]"
	default:
		return Unknown
	}
}
