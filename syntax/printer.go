package syntax

import "bytes"

// Print renders the tokens a subtree holds, in the order AllTokens yields
// them: trivia, then slots in form order, then any invalid-token recovery
// run and trailing trivia. Keywords and punctuation the parser matches
// without keeping them in a slot (such as `func`, `(`, `:`), Indent/Dedent
// tokens, and whitespace between a statement's tokens belong to no node and
// are not printed, so the output is not the subtree's full source text.
// PrintTree reproduces a whole file.
func Print(n Node) []byte {
	var buf bytes.Buffer
	for tok := range n.AllTokens() {
		buf.WriteString(tok.Text)
	}
	return buf.Bytes()
}

// PrintTree prints an entire parsed file by concatenating every token of
// the Tree's flat buffer in source order, so its output equals the parsed
// source byte for byte until a formatter rewrites token text.
func PrintTree(t *Tree) []byte {
	if t == nil || t.Root == NilNode {
		return nil
	}
	var buf bytes.Buffer
	for i := 0; i < t.TokenCount(); i++ {
		buf.WriteString(t.TokenAt(TokenID(i)).Text)
	}
	return buf.Bytes()
}
