package tincss

// Input is the polymorphic "text or already-tokenized sequence"
// parameter every parse entry point accepts. Use TextInput to hand in
// raw CSS text (the tokenizer runs first) or ValueInput to hand in a
// component-value sequence produced by an earlier Tokenize call.
//
// When the input is text, SkipComments on the relevant Options
// applies throughout the whole produced tree, including inside nested
// blocks. When the input is already a sequence, SkipComments only
// filters the top level of the result: a caller that tokenized with
// SkipComments already applied no longer has nested comments to
// filter, but top-level filtering still matters for sequences
// assembled by hand or spliced from another parse.
type Input interface {
	toValues(skipComments bool, disableUnicodeRange bool) []Node
}

// TextInput is raw, already-decoded CSS text.
type TextInput string

func (t TextInput) toValues(skipComments, disableUnicodeRange bool) []Node {
	return Tokenize(string(t), TokenizeOptions{SkipComments: skipComments, DisableUnicodeRange: disableUnicodeRange})
}

// ValueInput is a component-value sequence produced by an earlier
// Tokenize call (or assembled directly).
type ValueInput []Node

func (v ValueInput) toValues(skipComments, _ bool) []Node {
	if !skipComments {
		return []Node(v)
	}
	out := make([]Node, 0, len(v))
	for _, n := range v {
		if _, ok := n.(Comment); ok {
			continue
		}
		out = append(out, n)
	}
	return out
}
