package syntax

import "github.com/viant/gdlang/token"

// Builder accumulates slots for one node while the reader is still
// deciding its final shape, then commits it into the Tree in one call.
// The parser uses one Builder for each node it constructs.
type Builder struct {
	tree     *Tree
	kind     Kind
	slots    []Slot
	trivia   []TokenID
	invalid  []TokenID
	trailing []TokenID
}

// NewBuilder starts accumulating a node of the given kind against tree.
func NewBuilder(tree *Tree, kind Kind) *Builder {
	return &Builder{tree: tree, kind: kind}
}

// Token appends a named token slot. Pass NilToken to record the slot as
// present-but-empty (an optional piece of syntax that was not written).
func (b *Builder) Token(name string, id TokenID) *Builder {
	b.slots = append(b.slots, Slot{Name: name, Kind: SlotToken, Token: id, Node: NilNode})
	return b
}

// Node appends a named child-node slot.
func (b *Builder) Node(name string, id NodeID) *Builder {
	b.slots = append(b.slots, Slot{Name: name, Kind: SlotNode, Node: id})
	return b
}

// List appends a named child-list slot.
func (b *Builder) List(name string, ids []NodeID) *Builder {
	b.slots = append(b.slots, Slot{Name: name, Kind: SlotList, List: ids})
	return b
}

// Trivia records trivia tokens (whitespace, newlines, comments) that sit in
// source order immediately before this node's primary tokens.
func (b *Builder) Trivia(ids ...TokenID) *Builder {
	b.trivia = append(b.trivia, ids...)
	return b
}

// Invalid records a run of tokens the resolver could not place into any
// slot. These are never discarded; they surface later as diagnostics.
func (b *Builder) Invalid(ids ...TokenID) *Builder {
	b.invalid = append(b.invalid, ids...)
	return b
}

// TrailingTrivia records trivia that follows this node's last primary token
// but belongs to no later sibling (a file's final comments, for instance).
func (b *Builder) TrailingTrivia(ids ...TokenID) *Builder {
	b.trailing = append(b.trailing, ids...)
	return b
}

// Build commits the accumulated slots into the tree and returns the new
// node's ID. The Builder must not be reused afterward.
func (b *Builder) Build() NodeID {
	id := b.tree.NewNode(b.kind, b.slots)
	if len(b.trivia) > 0 {
		b.tree.SetTrivia(id, b.trivia)
	}
	for _, tid := range b.invalid {
		b.tree.AddInvalid(id, tid)
	}
	if len(b.trailing) > 0 {
		b.tree.SetTrailing(id, b.trailing)
	}
	return id
}

// emptyToken is the zero Token value. Optional token slots that were never
// written record their absence with NilToken, not with this value.
var emptyToken = token.Token{}
