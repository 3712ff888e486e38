package tincss

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Serialize turns a sequence of component values, rules or
// declarations back into CSS text. For any tree T produced by
// Tokenize(s, ...), Tokenize(Serialize(T), ...) yields a tree
// equivalent to T modulo optional whitespace/comment skipping.
func Serialize(nodes []Node) string {
	var b strings.Builder
	serializeSequence(&b, nodes)
	return b.String()
}

// SerializeNode serializes a single node; it is Serialize applied to
// a one-element sequence.
func SerializeNode(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// SerializeIdentifier escapes text so it re-tokenizes as a single
// Ident, for callers assembling output from a raw name rather than a
// parsed tree.
func SerializeIdentifier(text string) string {
	return serializeIdentifier(text)
}

// serializeSequence writes each node in order, inserting an empty
// comment between adjacent tokens whose serialized forms would
// otherwise merge into a single token on re-tokenization (e.g. two
// idents with no whitespace or comment node separating them, which
// can arise from Comment or Whitespace nodes dropped by SkipComments/
// SkipWhitespace, or from a hand-assembled ValueInput).
func serializeSequence(b *strings.Builder, nodes []Node) {
	prevEnd := rune(-1)
	for _, n := range nodes {
		var part strings.Builder
		writeNode(&part, n)
		s := part.String()
		if s == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(s)
		if prevEnd != -1 {
			if guard := mergeGuard(prevEnd, first); guard != "" {
				b.WriteString(guard)
			}
		}
		b.WriteString(s)
		prevEnd, _ = utf8.DecodeLastRuneInString(s)
	}
}

// mergeGuard returns the text to insert between a token ending in prev
// and a token starting with next so the two don't fuse into a single
// token on re-tokenization, or "" if none is needed.
//
// A lone trailing backslash (the delim token produced only when the
// source byte right after it was a newline or EOF) is a special case:
// any other following byte, comment included, starts a valid escape
// and gets consumed into an ident-like token instead of staying
// separate. A newline is the one guard that keeps the backslash a
// delim and itself tokenizes as whitespace, so it's used in place of
// the usual comment.
func mergeGuard(prev, next rune) string {
	if prev == '\\' {
		return "\n"
	}
	if needsMergeGuard(prev, next) {
		return "/**/"
	}
	return ""
}

func needsMergeGuard(prev, next rune) bool {
	switch {
	case isNameCodePoint(prev) && (isNameCodePoint(next) || next == '\\'):
		return true
	case (isDigit(prev) || prev == '-' || prev == '.') && isDigit(next):
		return true
	case prev == '@' && isNameCodePoint(next):
		return true
	case prev == '#' && isNameCodePoint(next):
		return true
	case prev == '.' && next == '.':
		return true
	default:
		return false
	}
}

func writeNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Whitespace:
		b.WriteByte(' ')
	case Comment:
		b.WriteString("/*")
		b.WriteString(v.Value)
		b.WriteString("*/")
	case Literal:
		b.WriteString(v.Value)
	case Ident:
		b.WriteString(serializeIdentifier(v.Value))
	case AtKeyword:
		b.WriteByte('@')
		b.WriteString(serializeIdentifier(v.Value))
	case Hash:
		b.WriteByte('#')
		b.WriteString(serializeName(v.Value))
	case String:
		writeQuotedString(b, v.Value)
	case URL:
		b.WriteString(`url(`)
		writeQuotedString(b, v.Value)
		b.WriteByte(')')
	case UnicodeRange:
		b.WriteString("U+")
		b.WriteString(strings.ToUpper(strconv.FormatUint(uint64(v.Start), 16)))
		if v.End != v.Start {
			b.WriteByte('-')
			b.WriteString(strings.ToUpper(strconv.FormatUint(uint64(v.End), 16)))
		}
	case Number:
		b.WriteString(v.Representation)
	case Percentage:
		b.WriteString(v.Representation)
		b.WriteByte('%')
	case Dimension:
		b.WriteString(v.Representation)
		b.WriteString(serializeUnit(v.Unit))
	case Block:
		writeBlock(b, v)
	case Function:
		b.WriteString(serializeIdentifier(v.Name))
		b.WriteByte('(')
		serializeSequence(b, v.Arguments)
		b.WriteByte(')')
	case ParseError:
		writeParseError(b, v)
	case Declaration:
		writeDeclaration(b, v)
	case QualifiedRule:
		serializeSequence(b, v.Prelude)
		b.WriteByte('{')
		serializeSequence(b, v.Content)
		b.WriteByte('}')
	case AtRule:
		b.WriteByte('@')
		b.WriteString(serializeIdentifier(v.AtKeyword))
		serializeSequence(b, v.Prelude)
		if v.HasContent {
			b.WriteByte('{')
			serializeSequence(b, v.Content)
			b.WriteByte('}')
		} else {
			b.WriteByte(';')
		}
	}
}

func writeBlock(b *strings.Builder, blk Block) {
	var open, close byte
	switch blk.Open {
	case '(':
		open, close = '(', ')'
	case '[':
		open, close = '[', ']'
	default:
		open, close = '{', '}'
	}
	b.WriteByte(open)
	serializeSequence(b, blk.Content)
	b.WriteByte(close)
}

func writeParseError(b *strings.Builder, e ParseError) {
	switch e.Kind {
	case "bad-string":
		b.WriteString(`"[bad string]` + "\n")
	case "bad-url":
		b.WriteString("url([bad url])")
	case ")", "]", "}":
		b.WriteString(e.Kind)
	}
}

func writeDeclaration(b *strings.Builder, d Declaration) {
	b.WriteString(serializeIdentifier(d.Name))
	b.WriteString(": ")
	serializeSequence(b, d.Value)
	if d.Important {
		b.WriteString(" !important")
	}
}

func writeQuotedString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
}

// serializeUnit serializes a Dimension's unit, guarding against the
// case where the unit's text, concatenated right after the number's
// representation, would be consumed as part of a scientific-notation
// exponent on re-tokenization (e.g. unit "e5" after "1" reparsing as
// the single number 100000).
func serializeUnit(unit string) string {
	if !unitLooksLikeExponent(unit) {
		return serializeIdentifier(unit)
	}
	var b strings.Builder
	b.WriteString(hexEscape(rune(unit[0])))
	b.WriteString(serializeNameBody(unit[1:]))
	return b.String()
}

func unitLooksLikeExponent(unit string) bool {
	if len(unit) < 2 || (unit[0] != 'e' && unit[0] != 'E') {
		return false
	}
	rest := unit[1:]
	if isDigit(rune(rest[0])) {
		return true
	}
	if (rest[0] == '+' || rest[0] == '-') && len(rest) > 1 && isDigit(rune(rest[1])) {
		return true
	}
	return false
}

func hexEscape(c rune) string {
	return `\` + strconv.FormatInt(int64(c), 16) + ` `
}

// serializeIdentifier implements the CSS Syntax "serialize an
// identifier" algorithm: NUL becomes U+FFFD, control characters and
// DEL become hex escapes, a leading digit (or a digit after a single
// leading '-') becomes a hex escape, a lone '-' becomes "\-", and any
// other non-name character is escaped with a literal backslash.
func serializeIdentifier(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, c := range runes {
		switch {
		case c == 0:
			b.WriteRune('�')
		case (c >= 1 && c <= 0x1F) || c == 0x7F:
			b.WriteString(hexEscape(c))
		case i == 0 && isDigit(c):
			b.WriteString(hexEscape(c))
		case i == 1 && isDigit(c) && runes[0] == '-':
			b.WriteString(hexEscape(c))
		case i == 0 && c == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case isNameCodePoint(c):
			b.WriteRune(c)
		default:
			b.WriteByte('\\')
			b.WriteRune(c)
		}
	}
	return b.String()
}

// serializeName serializes a Hash's payload: the same escaping as an
// identifier but without the leading-digit special case, since a
// hash's name grammar (used when IsIdentifier is false) permits a
// leading digit.
func serializeName(s string) string {
	var b strings.Builder
	for _, c := range s {
		writeNameChar(&b, c)
	}
	return b.String()
}

// serializeNameBody serializes a string as a name continuation (no
// leading-character special cases at all), used for the remainder of
// a Dimension unit after its disambiguated leading character.
func serializeNameBody(s string) string {
	return serializeName(s)
}

func writeNameChar(b *strings.Builder, c rune) {
	switch {
	case c == 0:
		b.WriteRune('�')
	case (c >= 1 && c <= 0x1F) || c == 0x7F:
		b.WriteString(hexEscape(c))
	case isNameCodePoint(c):
		b.WriteRune(c)
	default:
		b.WriteByte('\\')
		b.WriteRune(c)
	}
}
