package tincss

// ParseOptions are the caller-tunable knobs shared by the
// list-producing parse entry points.
type ParseOptions struct {
	// SkipComments drops comment nodes from the result. When the
	// input is text, this also drops comments from nested block and
	// rule contents; when the input is an already-tokenized sequence,
	// it only filters the top level of the result.
	SkipComments bool
	// SkipWhitespace drops whitespace nodes at the top level of the
	// result. Whitespace inside declaration values and rule
	// preludes/contents is always preserved.
	SkipWhitespace bool
}

func isSignificant(n Node) bool {
	switch n.(type) {
	case Whitespace, Comment:
		return false
	default:
		return true
	}
}

func filterTopWhitespace(nodes []Node, skip bool) []Node {
	if !skip {
		return nodes
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := n.(Whitespace); ok {
			continue
		}
		out = append(out, n)
	}
	return out
}

func significantOnly(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if isSignificant(n) {
			out = append(out, n)
		}
	}
	return out
}

// ParseComponentValueList tokenizes or accepts a component-value
// sequence, optionally dropping comments.
func ParseComponentValueList(input Input, skipComments bool) []Node {
	return input.toValues(skipComments, false)
}

// ParseOneComponentValue returns the first non-whitespace,
// non-comment component value in input, or a ParseError of kind
// "empty" / "extra-input".
func ParseOneComponentValue(input Input, skipComments bool) Node {
	values := significantOnly(input.toValues(skipComments, false))
	if len(values) == 0 {
		return newParseError(Position{1, 1}, "empty", "expected one component value, found none")
	}
	if len(values) > 1 {
		return newParseError(values[0].Pos(), "extra-input", "expected exactly one component value")
	}
	return values[0]
}

// ParseOneDeclaration expects an ident, a colon, and a declaration
// value spanning the rest of the input.
func ParseOneDeclaration(input Input, skipComments bool) Node {
	values := input.toValues(skipComments, false)
	if len(significantOnly(values)) == 0 {
		return newParseError(Position{1, 1}, "empty", "expected a declaration, found none")
	}
	return parseDeclaration(values, false)
}

// ParseDeclarationList interprets input as a legacy ';'-separated
// sequence of declarations; at-rules are recognized but nested
// qualified rules are not.
func ParseDeclarationList(input Input, opts ParseOptions) []Node {
	values := input.toValues(opts.SkipComments, false)
	var out []Node
	i := 0
	for i < len(values) {
		n := values[i]
		switch {
		case !isSignificant(n):
			out = append(out, n)
			i++
		case IsLiteralEq(n, ";"):
			i++
		case isAtKeyword(n):
			rule, consumed := consumeAtRule(values[i:])
			out = append(out, rule)
			i += consumed
		default:
			run, consumed := takeUntilSemicolon(values[i:])
			out = append(out, parseDeclaration(run, false))
			i += consumed
		}
	}
	return filterTopWhitespace(out, opts.SkipWhitespace)
}

// ParseBlocksContents is parse_blocks_contents: a declaration list
// that also recognizes nested qualified rules, per the Syntax-3
// "consume a block's contents" algorithm.
func ParseBlocksContents(input Input, opts ParseOptions) []Node {
	values := input.toValues(opts.SkipComments, false)
	out := consumeBlockContents(values)
	return filterTopWhitespace(out, opts.SkipWhitespace)
}

func consumeBlockContents(values []Node) []Node {
	var out []Node
	i := 0
	for i < len(values) {
		n := values[i]
		switch {
		case !isSignificant(n):
			out = append(out, n)
			i++
		case IsLiteralEq(n, ";"):
			i++
		case isAtKeyword(n):
			rule, consumed := consumeAtRule(values[i:])
			out = append(out, rule)
			i += consumed
		default:
			run, consumed := takeDeclarationOrQualifiedRuleSpan(values[i:])
			decl := parseDeclaration(run, true)
			if _, failed := decl.(ParseError); failed && containsBlock(run) {
				out = append(out, parseQualifiedRuleFromTokens(run))
			} else {
				out = append(out, decl)
			}
			i += consumed
		}
	}
	return out
}

func containsBlock(nodes []Node) bool {
	for _, n := range nodes {
		if b, ok := n.(Block); ok && b.Open == '{' {
			return true
		}
	}
	return false
}

// takeDeclarationOrQualifiedRuleSpan consumes up to and including the
// next ';' or the next {} block (whichever comes first), per the
// "consume the remnants" rule used by parse_blocks_contents.
func takeDeclarationOrQualifiedRuleSpan(values []Node) (run []Node, consumed int) {
	i := 0
	for i < len(values) {
		n := values[i]
		if IsLiteralEq(n, ";") {
			i++
			return values[:i-1], i
		}
		if b, ok := n.(Block); ok && b.Open == '{' {
			i++
			return values[:i], i
		}
		i++
	}
	return values[:i], i
}

func takeUntilSemicolon(values []Node) (run []Node, consumed int) {
	i := 0
	for i < len(values) {
		if IsLiteralEq(values[i], ";") {
			return values[:i], i + 1
		}
		i++
	}
	return values[:i], i
}

func isAtKeyword(n Node) bool {
	_, ok := n.(AtKeyword)
	return ok
}

// parseQualifiedRuleFromTokens re-interprets a token run already known
// to contain exactly one top-level {} block as a qualified rule:
// everything before the block is the prelude, the block's content is
// the rule's content.
func parseQualifiedRuleFromTokens(run []Node) Node {
	for i, n := range run {
		if b, ok := n.(Block); ok && b.Open == '{' {
			pos := Position{1, 1}
			if len(run) > 0 {
				pos = run[0].Pos()
			}
			return QualifiedRule{base{pos}, run[:i], b.Content}
		}
	}
	pos := Position{1, 1}
	if len(run) > 0 {
		pos = run[0].Pos()
	}
	return newParseError(pos, "invalid", "qualified rule has no block")
}

// parseDeclaration implements the declaration-construction algorithm
// of CSS Syntax 3 section 5.4.5 over an already-isolated token run
// (everything up to, but not including, the terminating ';' or {}
// block boundary). The nested flag is accepted for symmetry with the
// block-contents caller, which needs to fall back to qualified-rule
// parsing on failure; the declaration grammar itself does not differ
// between the two contexts.
func parseDeclaration(run []Node, nested bool) Node {
	_ = nested
	pos := Position{1, 1}
	if len(run) > 0 {
		pos = run[0].Pos()
	}

	i := 0
	for i < len(run) && !isSignificant(run[i]) {
		i++
	}
	if i >= len(run) {
		return newParseError(pos, "invalid", "expected an identifier")
	}
	ident, ok := run[i].(Ident)
	if !ok {
		return newParseError(pos, "invalid", "expected an identifier")
	}
	i++
	for i < len(run) && !isSignificant(run[i]) {
		i++
	}
	if i >= len(run) || !IsLiteralEq(run[i], ":") {
		return newParseError(ident.Pos(), "invalid", "expected ':' after declaration name")
	}
	i++

	value := append([]Node(nil), run[i:]...)
	important := false
	if strip, ok := stripImportant(value); ok {
		value = strip
		important = true
	}

	if containsBlock(value) {
		for _, n := range value {
			if isSignificant(n) {
				if b, ok := n.(Block); !ok || b.Open != '{' {
					return newParseError(ident.Pos(), "invalid", "block mixed with other tokens in declaration value")
				}
			}
		}
	}

	return Declaration{base{pos}, ident.Value, ident.Lower, value, important}
}

// stripImportant recognizes a trailing "! important" marker: a '!'
// literal, optional whitespace/comments, an ident whose Lower is
// "important", then only whitespace/comments to the end.
func stripImportant(value []Node) ([]Node, bool) {
	i := len(value) - 1
	for i >= 0 && !isSignificant(value[i]) {
		i--
	}
	if i < 0 {
		return value, false
	}
	important, ok := value[i].(Ident)
	if !ok || important.Lower != "important" {
		return value, false
	}
	i--
	for i >= 0 && !isSignificant(value[i]) {
		i--
	}
	if i < 0 || !IsLiteralEq(value[i], "!") {
		return value, false
	}
	return append([]Node(nil), value[:i]...), true
}

// consumeAtRule implements CSS Syntax 3 section 5.4.2 "consume an
// at-rule" starting at values[0], which must be an AtKeyword.
func consumeAtRule(values []Node) (Node, int) {
	kw := values[0].(AtKeyword)
	i := 1
	for i < len(values) {
		if IsLiteralEq(values[i], ";") {
			return AtRule{base{kw.Pos()}, kw.Value, kw.Lower, values[1:i], nil, false}, i + 1
		}
		if b, ok := values[i].(Block); ok && b.Open == '{' {
			return AtRule{base{kw.Pos()}, kw.Value, kw.Lower, values[1:i], b.Content, true}, i + 1
		}
		i++
	}
	return AtRule{base{kw.Pos()}, kw.Value, kw.Lower, values[1:i], nil, false}, i
}

// consumeQualifiedRule implements CSS Syntax 3 section 5.4.3 starting
// at values[0].
func consumeQualifiedRule(values []Node) (Node, int) {
	startPos := values[0].Pos()
	i := 0
	for i < len(values) {
		if b, ok := values[i].(Block); ok && b.Open == '{' {
			return QualifiedRule{base{startPos}, values[:i], b.Content}, i + 1
		}
		i++
	}
	errPos := startPos
	if i > 0 {
		errPos = values[i-1].Pos()
	}
	return newParseError(errPos, "invalid", "qualified rule reached end of input before a {} block"), i
}

// ParseOneRule expects exactly one qualified rule or at-rule,
// surrounded only by whitespace and comments.
func ParseOneRule(input Input, skipComments bool) Node {
	values := input.toValues(skipComments, false)
	i := 0
	for i < len(values) && !isSignificant(values[i]) {
		i++
	}
	if i >= len(values) {
		return newParseError(Position{1, 1}, "empty", "expected one rule, found none")
	}

	var rule Node
	var consumed int
	if _, ok := values[i].(AtKeyword); ok {
		rule, consumed = consumeAtRule(values[i:])
	} else {
		rule, consumed = consumeQualifiedRule(values[i:])
	}
	j := i + consumed
	for j < len(values) && !isSignificant(values[j]) {
		j++
	}
	if j < len(values) {
		return newParseError(values[j].Pos(), "extra-input", "expected exactly one rule")
	}
	return rule
}

// consumeRuleList implements CSS Syntax 3 section 5.4.1 "consume a
// list of rules". When ignoreCDOCDC is true (parse_stylesheet), '<!--'
// and '-->' literals are dropped; when false (parse_rule_list), they
// are treated as ordinary tokens starting a qualified rule.
func consumeRuleList(values []Node, ignoreCDOCDC bool) []Node {
	var out []Node
	i := 0
	for i < len(values) {
		n := values[i]
		switch {
		case !isSignificant(n):
			out = append(out, n)
			i++
		case ignoreCDOCDC && (IsLiteralEq(n, "<!--") || IsLiteralEq(n, "-->")):
			i++
		case isAtKeyword(n):
			rule, consumed := consumeAtRule(values[i:])
			out = append(out, rule)
			i += consumed
		default:
			rule, consumed := consumeQualifiedRule(values[i:])
			out = append(out, rule)
			if consumed == 0 {
				i = len(values)
			} else {
				i += consumed
			}
		}
	}
	return out
}

// ParseRuleList parses input as a top-level sequence of rules without
// ignoring CDO/CDC literals.
func ParseRuleList(input Input, opts ParseOptions) []Node {
	values := input.toValues(opts.SkipComments, false)
	return filterTopWhitespace(consumeRuleList(values, false), opts.SkipWhitespace)
}

// ParseStylesheet parses input as a top-level sequence of rules,
// ignoring top-level '<!--'/'-->' literals.
func ParseStylesheet(input Input, opts ParseOptions) []Node {
	values := input.toValues(opts.SkipComments, false)
	return filterTopWhitespace(consumeRuleList(values, true), opts.SkipWhitespace)
}
