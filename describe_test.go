package tincss

import "fmt"

// describe renders a Node as a compact, comparable string for table-
// driven tests, in the spirit of the teacher package's token.String()
// helper: enough detail to catch regressions, without dragging
// reflect.DeepEqual through every position field.
func describe(n Node) string {
	switch v := n.(type) {
	case Whitespace:
		return "ws"
	case Literal:
		return fmt.Sprintf("lit(%q)", v.Value)
	case Ident:
		return fmt.Sprintf("ident(%q/%q)", v.Value, v.Lower)
	case AtKeyword:
		return fmt.Sprintf("at-kw(%q)", v.Value)
	case Hash:
		return fmt.Sprintf("hash(%q,id=%v)", v.Value, v.IsIdentifier)
	case String:
		return fmt.Sprintf("str(%q)", v.Value)
	case URL:
		return fmt.Sprintf("url(%q)", v.Value)
	case UnicodeRange:
		return fmt.Sprintf("urange(%x-%x)", v.Start, v.End)
	case Number:
		return fmt.Sprintf("num(%v,int=%v,repr=%q)", v.Value, v.IsInteger, v.Representation)
	case Percentage:
		return fmt.Sprintf("pct(%v,int=%v,repr=%q)", v.Value, v.IsInteger, v.Representation)
	case Dimension:
		return fmt.Sprintf("dim(%v,unit=%q,repr=%q)", v.Value, v.Unit, v.Representation)
	case Comment:
		return fmt.Sprintf("comment(%q)", v.Value)
	case Block:
		return fmt.Sprintf("block(%c,%v)", v.Open, describeAll(v.Content))
	case Function:
		return fmt.Sprintf("func(%q,%v)", v.Name, describeAll(v.Arguments))
	case ParseError:
		return fmt.Sprintf("err(%s)", v.Kind)
	case Declaration:
		return fmt.Sprintf("decl(%q,important=%v,%v)", v.Name, v.Important, describeAll(v.Value))
	case QualifiedRule:
		return fmt.Sprintf("rule(prelude=%v,content=%v)", describeAll(v.Prelude), describeAll(v.Content))
	case AtRule:
		return fmt.Sprintf("at-rule(%q,has=%v,prelude=%v,content=%v)", v.AtKeyword, v.HasContent, describeAll(v.Prelude), describeAll(v.Content))
	default:
		return fmt.Sprintf("?%T", n)
	}
}

func describeAll(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = describe(n)
	}
	return out
}
