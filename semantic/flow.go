package semantic

import (
	"sort"
	"strings"
)

// Confidence grades how much an inference derived from call-site evidence
// (rather than a local declaration or annotation) should be trusted.
type Confidence int

const (
	ConfidenceHigh Confidence = iota
	ConfidenceMedium
	ConfidenceLow
)

// ParameterInference is the cross-method flow analyzer's verdict for one
// parameter position: the type the call sites observed there converge on,
// and how confident that convergence is.
type ParameterInference struct {
	Type       string
	Confidence Confidence
}

// InferParameterTypes harvests the i-th argument's inferred type from every
// call site on file, and merges them into one verdict per parameter
// position, following the merge rule: all call sites agree on one type ->
// high confidence; two or more distinct known types -> their union (the
// sorted names joined with "|", e.g. "String|int") at medium confidence; some arguments unresolved -> medium confidence if over
// 80% of observations are known, else low; no call sites at all -> unknown
// Variant.
func InferParameterTypes(sites []*CallSite, arity int) []ParameterInference {
	out := make([]ParameterInference, arity)
	for i := range out {
		seen := map[string]int{}
		total, known := 0, 0
		for _, cs := range sites {
			if i >= len(cs.ArgumentTypes) {
				continue
			}
			total++
			t := cs.ArgumentTypes[i]
			if t == Unknown || t == Variant {
				continue
			}
			known++
			seen[t]++
		}
		out[i] = mergeObservations(seen, total, known)
	}
	return out
}

func mergeObservations(seen map[string]int, total, known int) ParameterInference {
	if total == 0 {
		return ParameterInference{Type: Variant, Confidence: ConfidenceLow}
	}
	if len(seen) == 1 {
		for t := range seen {
			if known == total {
				return ParameterInference{Type: t, Confidence: ConfidenceHigh}
			}
			if ratio(known, total) > 0.8 {
				return ParameterInference{Type: t, Confidence: ConfidenceMedium}
			}
			return ParameterInference{Type: t, Confidence: ConfidenceLow}
		}
	}
	if len(seen) >= 2 {
		types := make([]string, 0, len(seen))
		for t := range seen {
			types = append(types, t)
		}
		sort.Strings(types)
		return ParameterInference{Type: strings.Join(types, "|"), Confidence: ConfidenceMedium}
	}
	return ParameterInference{Type: Variant, Confidence: ConfidenceLow}
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Readiness classifies whether a field is safe to read in `_ready()` and
// beyond, the question Godot's `@onready`/initialization-order hazard
// raises: a field assigned only inside `_ready()` or declared `@onready` is
// Safe from `_ready()` onward but Unsafe from `_init()` or an earlier
// lifecycle method.
type Readiness int

const (
	ReadinessUnknown Readiness = iota
	ReadinessSafe
	ReadinessUnsafe
)

// FieldReadiness classifies every onready/regular field of a class by
// whether it is guaranteed initialized by the time `_ready()` runs.
type FieldReadiness struct {
	onreadyFields map[string]bool
	readyAssigned map[string]bool
}

// NewFieldReadiness builds a readiness tracker. onreadyFields lists field
// names declared `@onready` or `onready var`; readyAssigned lists field
// names assigned somewhere inside `_ready()`.
func NewFieldReadiness(onreadyFields, readyAssigned []string) *FieldReadiness {
	fr := &FieldReadiness{onreadyFields: map[string]bool{}, readyAssigned: map[string]bool{}}
	for _, f := range onreadyFields {
		fr.onreadyFields[f] = true
	}
	for _, f := range readyAssigned {
		fr.readyAssigned[f] = true
	}
	return fr
}

// Classify returns the readiness of field when accessed from a method named
// fromMethod.
func (fr *FieldReadiness) Classify(field, fromMethod string) Readiness {
	safeByReady := fr.onreadyFields[field] || fr.readyAssigned[field]
	switch fromMethod {
	case "_ready":
		if safeByReady {
			return ReadinessSafe
		}
		return ReadinessUnknown
	case "_init", "_enter_tree":
		if safeByReady {
			return ReadinessUnsafe
		}
		return ReadinessUnknown
	default:
		if safeByReady {
			return ReadinessSafe
		}
		return ReadinessUnknown
	}
}
