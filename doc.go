/*
Package tincss implements the CSS Syntax Module Level 3 tokenizer and
structural parser, plus a CSS Color Level 4 value parser and a
serializer that round-trips a tokenized tree back to text.

It is written to https://www.w3.org/TR/css-syntax-3/ and
https://www.w3.org/TR/css-color-4/. Selector matching, the cascade,
computed-value resolution, media-query evaluation and the CSSOM are
out of scope: this package only turns bytes or text into a tree of
component values, rules and declarations, and back.

Tokenizing

Turn decoded CSS text into a flat, nested tree of component values:

	nodes := tincss.Tokenize("a { color: red; }", tincss.TokenizeOptions{})

Parsing

Turn component values into declarations and rules:

	sheet := tincss.ParseStylesheet(tincss.TextInput(src), tincss.ParseOptions{SkipWhitespace: true})

Decoding

Turn a byte buffer into text, honoring @charset sniffing:

	text, enc, err := tincss.DecodeBytes(b, tincss.DecodeOptions{ProtocolEncoding: "iso-8859-1"})

Colors

	c, isCurrentColor := tincss.ParseColor(tincss.TextInput("rgb(10, 22, 77)"))

Serializing

Turn a tree back into text that re-tokenizes to an equivalent tree:

	text = tincss.Serialize(sheet)

Errors produced anywhere in this package are in-band ParseError nodes,
not Go errors returned up a call stack, except where a Go function
signature needs an error for "no result at all" (e.g. DecodeBytes's
underlying transform failing outright, which in practice never
happens since invalid sequences are replaced rather than rejected).
*/
package tincss
