package syntax

import "github.com/viant/gdlang/token"

// NodeID addresses a node within a Tree's arena. Parent back-references are
// stored as NodeID values rather than pointers, so the tree has no owning
// cycles: it is freed in one step when the root Tree is dropped (spec's
// "Represent trees as arenas" redesign note).
type NodeID int32

// NilNode is the absent-node sentinel.
const NilNode NodeID = -1

// TokenID addresses a token within a Tree's flat token buffer.
type TokenID int32

// NilToken is the absent-token sentinel.
const NilToken TokenID = -1

// SlotKind tags what a Slot carries.
type SlotKind uint8

const (
	SlotNone SlotKind = iota
	SlotToken
	SlotNode
	SlotList
)

// Slot is one named, ordered position in a node's form. Exactly one of
// Token/Node/List is meaningful, per Kind.
type Slot struct {
	Name  string
	Kind  SlotKind
	Token TokenID
	Node  NodeID
	List  []NodeID
}

type nodeRec struct {
	kind     Kind
	parent   NodeID
	slots    []Slot
	trivia   []TokenID
	invalid  []TokenID
	trailing []TokenID
}

// Tree is the arena owning every node and token produced for one parse.
// A Node handle is a (tree, id) pair; it is valid only for the lifetime of
// the Tree it was produced from.
type Tree struct {
	nodes  []nodeRec
	tokens []token.Token
	Root   NodeID
}

// NewTree creates an empty, growable arena.
func NewTree() *Tree {
	return &Tree{Root: NilNode}
}

// AddToken appends a token to the flat buffer and returns its ID.
func (t *Tree) AddToken(tok token.Token) TokenID {
	t.tokens = append(t.tokens, tok)
	return TokenID(len(t.tokens) - 1)
}

// TokenAt resolves a TokenID to its Token value. Resolving NilToken panics;
// callers must check against NilToken first (slots expose Has* helpers).
func (t *Tree) TokenAt(id TokenID) token.Token {
	return t.tokens[id]
}

// SetTokenText rewrites a token's surface text in place. Kind and Range are
// left untouched; a formatter that changes a token's length is responsible
// for knowing it invalidates downstream Range data for printing purposes
// only (the formatter re-derives positions from scratch on its next parse,
// it never trusts stale ranges after a rewrite).
func (t *Tree) SetTokenText(id TokenID, text string) {
	t.tokens[id].Text = text
}

// NewNode allocates a node of the given kind with the given ordered slots
// and returns its ID. The new node's own parent is NilNode until a later
// NewNode call places it in a slot; every child already named in slots has
// its parent set to the new node.
func (t *Tree) NewNode(kind Kind, slots []Slot) NodeID {
	t.nodes = append(t.nodes, nodeRec{kind: kind, parent: NilNode, slots: slots})
	id := NodeID(len(t.nodes) - 1)
	for _, s := range slots {
		switch s.Kind {
		case SlotNode:
			if s.Node != NilNode {
				t.nodes[s.Node].parent = id
			}
		case SlotList:
			for _, child := range s.List {
				if child != NilNode {
					t.nodes[child].parent = id
				}
			}
		}
	}
	return id
}

// SetTrivia attaches trivia tokens (whitespace, newlines, comments) that sit
// in source order around this node's primary tokens.
func (t *Tree) SetTrivia(id NodeID, trivia []TokenID) {
	t.nodes[id].trivia = trivia
}

// SetTrailing attaches trivia that follows this node's last primary token
// but belongs to no later sibling, such as a file's final blank lines and
// comments after its last declaration.
func (t *Tree) SetTrailing(id NodeID, trivia []TokenID) {
	t.nodes[id].trailing = trivia
}

// AddInvalid attaches an invalid-token run to this node's recovery slot.
// Invalid tokens are never dropped (spec's cardinal parser invariant).
func (t *Tree) AddInvalid(id NodeID, invalid TokenID) {
	t.nodes[id].invalid = append(t.nodes[id].invalid, invalid)
}

// TokenCount returns the number of tokens in the flat buffer. Because tokens
// are appended in lexing order and never reordered, iterating IDs 0..Count-1
// visits every token of the file in source order, trivia included — the
// buffer a formatter rewrites in place without re-walking the tree.
func (t *Tree) TokenCount() int { return len(t.tokens) }

// Node returns a handle bundling this Tree with the given ID. The handle is
// the ergonomic surface most callers use; NodeID itself is just an index.
func (t *Tree) Node(id NodeID) Node {
	return Node{tree: t, id: id}
}

// Node is a handle into a Tree's arena: a tree pointer plus an index. It is
// a value type, cheap to copy, and carries no ownership.
type Node struct {
	tree *Tree
	id   NodeID
}

// ID returns the underlying arena index.
func (n Node) ID() NodeID { return n.id }

// Tree returns the arena this handle was produced from.
func (n Node) Tree() *Tree { return n.tree }

// IsNil reports whether this handle references no node.
func (n Node) IsNil() bool { return n.tree == nil || n.id == NilNode }

// Kind returns the node's tagged variant.
func (n Node) Kind() Kind {
	if n.IsNil() {
		return KindInvalid
	}
	return n.tree.nodes[n.id].kind
}

// Parent returns the enclosing node, or a nil handle at the tree root.
func (n Node) Parent() Node {
	if n.IsNil() {
		return Node{}
	}
	p := n.tree.nodes[n.id].parent
	if p == NilNode {
		return Node{}
	}
	return Node{tree: n.tree, id: p}
}

// Slot returns the named slot of this node's form, or the zero Slot (Kind
// SlotNone) if the form has no slot by that name.
func (n Node) Slot(name string) Slot {
	if n.IsNil() {
		return Slot{}
	}
	for _, s := range n.tree.nodes[n.id].slots {
		if s.Name == name {
			return s
		}
	}
	return Slot{}
}

// Slots returns every slot in form order.
func (n Node) Slots() []Slot {
	if n.IsNil() {
		return nil
	}
	return n.tree.nodes[n.id].slots
}

// Token resolves a slot's token, or the zero Token if the slot is absent or
// not a token slot.
func (n Node) Token(slotName string) (token.Token, bool) {
	s := n.Slot(slotName)
	if s.Kind != SlotToken || s.Token == NilToken {
		return token.Token{}, false
	}
	return n.tree.TokenAt(s.Token), true
}

// Child resolves a slot's child node, or a nil handle if the slot is absent
// or not a node slot.
func (n Node) Child(slotName string) Node {
	s := n.Slot(slotName)
	if s.Kind != SlotNode || s.Node == NilNode {
		return Node{}
	}
	return Node{tree: n.tree, id: s.Node}
}

// List resolves a slot's list children.
func (n Node) List(slotName string) []Node {
	s := n.Slot(slotName)
	if s.Kind != SlotList {
		return nil
	}
	out := make([]Node, 0, len(s.List))
	for _, id := range s.List {
		if id != NilNode {
			out = append(out, Node{tree: n.tree, id: id})
		}
	}
	return out
}

// Range computes this node's textual range as the union of every token it
// owns, directly or via descendants (its primary tokens plus trivia and
// invalid tokens, and recursively its node-slot children).
func (n Node) Range() token.Range {
	var rng token.Range
	first := true
	for tok := range n.AllTokens() {
		if first {
			rng.Start = tok.Range.Start
			rng.End = tok.Range.End
			first = false
			continue
		}
		if tok.Range.Start.Offset < rng.Start.Offset {
			rng.Start = tok.Range.Start
		}
		if tok.Range.End.Offset > rng.End.Offset {
			rng.End = tok.Range.End
		}
	}
	return rng
}

// AllNodes lazily yields this node and every descendant, in slot order, via
// a Go 1.23 range-over-func iterator — no intermediate slice is built, so a
// validator pass can stop a subtree walk early without materializing it.
func (n Node) AllNodes() func(yield func(Node) bool) {
	return func(yield func(Node) bool) {
		if n.IsNil() {
			return
		}
		if !yield(n) {
			return
		}
		for _, s := range n.Slots() {
			switch s.Kind {
			case SlotNode:
				if s.Node == NilNode {
					continue
				}
				child := Node{tree: n.tree, id: s.Node}
				ok := true
				child.AllNodes()(func(c Node) bool {
					ok = yield(c)
					return ok
				})
				if !ok {
					return
				}
			case SlotList:
				for _, id := range s.List {
					if id == NilNode {
						continue
					}
					child := Node{tree: n.tree, id: id}
					ok := true
					child.AllNodes()(func(c Node) bool {
						ok = yield(c)
						return ok
					})
					if !ok {
						return
					}
				}
			}
		}
	}
}

// AllTokens lazily yields every token owned by this subtree in source
// order: primary tokens, trivia, and invalid-token slots of this node and
// every descendant.
func (n Node) AllTokens() func(yield func(token.Token) bool) {
	return func(yield func(token.Token) bool) {
		if n.IsNil() {
			return
		}
		rec := n.tree.nodes[n.id]
		for _, tid := range rec.trivia {
			if !yield(n.tree.TokenAt(tid)) {
				return
			}
		}
		for _, s := range rec.slots {
			switch s.Kind {
			case SlotToken:
				if s.Token == NilToken {
					continue
				}
				if !yield(n.tree.TokenAt(s.Token)) {
					return
				}
			case SlotNode:
				if s.Node == NilNode {
					continue
				}
				child := Node{tree: n.tree, id: s.Node}
				ok := true
				child.AllTokens()(func(tok token.Token) bool {
					ok = yield(tok)
					return ok
				})
				if !ok {
					return
				}
			case SlotList:
				for _, id := range s.List {
					if id == NilNode {
						continue
					}
					child := Node{tree: n.tree, id: id}
					ok := true
					child.AllTokens()(func(tok token.Token) bool {
						ok = yield(tok)
						return ok
					})
					if !ok {
						return
					}
				}
			}
		}
		for _, tid := range rec.invalid {
			if !yield(n.tree.TokenAt(tid)) {
				return
			}
		}
		for _, tid := range rec.trailing {
			if !yield(n.tree.TokenAt(tid)) {
				return
			}
		}
	}
}

// AllInvalidTokens lazily yields every invalid token in this subtree. These
// are never silently dropped: each occupies a dedicated recovery slot so
// diagnostics can point at it.
func (n Node) AllInvalidTokens() func(yield func(token.Token) bool) {
	return func(yield func(token.Token) bool) {
		for node := range n.AllNodes() {
			for _, tid := range node.tree.nodes[node.id].invalid {
				if !yield(node.tree.TokenAt(tid)) {
					return
				}
			}
		}
	}
}
