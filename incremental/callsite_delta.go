package incremental

import (
	"github.com/viant/gdlang/semantic"
	"github.com/viant/gdlang/syntax"
)

// methodBody captures enough of one method to diff it against a prior
// analysis: its exact printed text (by FastHash) rather than its tree shape,
// so any textual change, a whitespace-only reformat included, counts as an
// edit.
type methodBody struct {
	Name string
	Hash uint64
}

// methodsOf extracts a diffable fingerprint for each method declared in
// class, in source order.
func methodsOf(class syntax.ClassDecl, tree *syntax.Tree) []methodBody {
	var out []methodBody
	for _, member := range class.Members() {
		if member.Kind() != syntax.KindMethodDecl {
			continue
		}
		m := syntax.AsMethodDecl(member)
		name, ok := m.Name()
		if !ok {
			continue
		}
		// Take every token of the flat buffer inside the method's range:
		// syntax.Print would skip keywords, punctuation and whitespace that
		// sit in no slot.
		rng := m.Node.Range()
		var text []byte
		for i := 0; i < tree.TokenCount(); i++ {
			tok := tree.TokenAt(syntax.TokenID(i))
			if tok.Range.Start.Offset >= rng.Start.Offset && tok.Range.End.Offset <= rng.End.Offset {
				text = append(text, tok.Text...)
			}
		}
		out = append(out, methodBody{Name: name, Hash: FastHash(text)})
	}
	return out
}

// CallSiteDelta updates registry for one re-analyzed file: methods whose
// body hash changed (or that were removed) have their previously recorded
// call sites unregistered; re-registering fresh call sites afterward is left
// to the caller. It returns the names of the methods that are new or whose
// body hash changed, i.e. those whose call sites need re-registration.
func CallSiteDelta(registry *semantic.CallSiteRegistry, file string, oldClass, newClass syntax.ClassDecl, oldTree, newTree *syntax.Tree) []string {
	var oldMethods []methodBody
	if !oldClass.IsNil() {
		oldMethods = methodsOf(oldClass, oldTree)
	}
	newMethods := methodsOf(newClass, newTree)

	oldByName := make(map[string]uint64, len(oldMethods))
	for _, m := range oldMethods {
		oldByName[m.Name] = m.Hash
	}
	newByName := make(map[string]uint64, len(newMethods))
	for _, m := range newMethods {
		newByName[m.Name] = m.Hash
	}

	var changed []string
	for name, hash := range newByName {
		if oldHash, existed := oldByName[name]; !existed || oldHash != hash {
			changed = append(changed, name)
		}
	}
	for name := range oldByName {
		if _, stillExists := newByName[name]; !stillExists {
			registry.Unregister(file, name)
		}
	}
	for _, name := range changed {
		registry.Unregister(file, name)
	}
	return changed
}
