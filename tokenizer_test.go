package tincss

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tok(text string) []string {
	return describeAll(Tokenize(text, TokenizeOptions{}))
}

func TestTokenizeBasics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "ident and block",
			in:   "a { color: red }",
			want: []string{
				`ident("a"/"a")`, `ws`, `block({,[ws ident("color"/"color") lit(":") ws ident("red"/"red") ws])`,
			},
		},
		{
			name: "hash identifier vs name",
			in:   "#foo #369",
			want: []string{`hash("foo",id=true)`, `ws`, `hash("369",id=false)`},
		},
		{
			name: "numbers",
			in:   "10 -3.5 +2e3 50% 10px",
			want: []string{
				`num(10,int=true,repr="10")`, `ws`,
				`num(-3.5,int=false,repr="-3.5")`, `ws`,
				`num(2000,int=false,repr="+2e3")`, `ws`,
				`pct(50,int=true,repr="50")`, `ws`,
				`dim(10,unit="px",repr="10")`,
			},
		},
		{
			name: "string with escape",
			in:   `"a\"b"`,
			want: []string{`str("a\"b")`},
		},
		{
			name: "unterminated string is bad-string",
			in:   "\"abc\ndef",
			want: []string{`err(bad-string)`, `ws`, `ident("def"/"def")`},
		},
		{
			name: "url function forms",
			in:   `url(foo.png) url("foo.png")`,
			want: []string{`url("foo.png")`, `ws`, `url("foo.png")`},
		},
		{
			name: "bad url recovers to next paren",
			in:   `url(a"b) c`,
			want: []string{`err(bad-url)`, `ws`, `ident("c"/"c")`},
		},
		{
			name: "at-keyword",
			in:   "@media",
			want: []string{`at-kw("media")`},
		},
		{
			name: "comment preserved",
			in:   "/* hi */",
			want: []string{`comment(" hi ")`},
		},
		{
			name: "cdo cdc",
			in:   "<!-- -->",
			want: []string{`lit("<!--")`, `ws`, `lit("-->")`},
		},
		{
			name: "match operators",
			in:   "~= |= ^= $= *= || = |",
			want: []string{
				`lit("~=")`, `ws`, `lit("|=")`, `ws`, `lit("^=")`, `ws`, `lit("$=")`, `ws`, `lit("*=")`, `ws`,
				`lit("||")`, `ws`, `lit("=")`, `ws`, `lit("|")`,
			},
		},
		{
			name: "unicode range",
			in:   "U+26 U+0-7F U+4??",
			want: []string{
				`urange(26-26)`, `ws`, `urange(0-7f)`, `ws`, `urange(400-4ff)`,
			},
		},
		{
			name: "mismatched closer emits parse error and stays flat",
			in:   "a ] b",
			want: []string{`ident("a"/"a")`, `ws`, `err(])`, `ws`, `ident("b"/"b")`},
		},
		{
			name: "function nesting",
			in:   "foo(1, bar(2))",
			want: []string{`func("foo",[num(1,int=true,repr="1") lit(",") ws func("bar",[num(2,int=true,repr="2")])])`},
		},
		{
			name: "null byte replaced",
			in:   "a\x00b",
			want: []string{`ident("a�b"/"a�b")`},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tok(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	nodes := Tokenize("a\nb", TokenizeOptions{})
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if got := nodes[0].Pos(); got != (Position{1, 1}) {
		t.Errorf("first ident pos = %+v, want {1,1}", got)
	}
	if got := nodes[2].Pos(); got != (Position{2, 1}) {
		t.Errorf("second ident pos = %+v, want {2,1}", got)
	}
}

func TestEscapeHexOutOfRangeBecomesReplacementChar(t *testing.T) {
	nodes := Tokenize(`\110000`, TokenizeOptions{})
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	id, ok := nodes[0].(Ident)
	if !ok {
		t.Fatalf("got %T, want Ident", nodes[0])
	}
	if id.Value != "�" {
		t.Errorf("Value = %q, want U+FFFD", id.Value)
	}
}

func TestDisableUnicodeRange(t *testing.T) {
	nodes := Tokenize("u+1f", TokenizeOptions{DisableUnicodeRange: true})
	got := describeAll(nodes)
	want := []string{`ident("u"/"u")`, `dim(1,unit="f",repr="+1")`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScientificNotation(t *testing.T) {
	nodes := Tokenize("1e3 1E-2 1.5e+2", TokenizeOptions{})
	got := describeAll(nodes)
	want := []string{
		`num(1000,int=false,repr="1e3")`, `ws`,
		`num(0.01,int=false,repr="1E-2")`, `ws`,
		`num(150,int=false,repr="1.5e+2")`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
