package tincss

import "testing"

func TestDecodeBytesProtocolEncodingWins(t *testing.T) {
	b := []byte(`@charset "windows-1252"; a { color: red }`)
	text, enc, err := DecodeBytes(b, DecodeOptions{ProtocolEncoding: "utf-8"})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
	if text != string(b) {
		t.Errorf("text = %q, want unchanged", text)
	}
}

func TestDecodeBytesSniffsCharsetRule(t *testing.T) {
	b := []byte(`@charset "utf-8"; a { color: red }`)
	_, enc, err := DecodeBytes(b, DecodeOptions{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
}

func TestDecodeBytesUTF16LabelFallsBackToUTF8(t *testing.T) {
	// Per CSS Syntax 3.2, a sniffed UTF-16BE/LE label is treated as
	// UTF-8: the bytes on the wire are assumed to already be ASCII-
	// compatible since the sniff itself only works on ASCII-compatible
	// encodings.
	b := []byte(`@charset "UTF-16BE"; a { color: red }`)
	_, enc, err := DecodeBytes(b, DecodeOptions{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
}

func TestDecodeBytesEnvironmentEncodingFallback(t *testing.T) {
	b := []byte(`a { color: red }`)
	_, enc, err := DecodeBytes(b, DecodeOptions{EnvironmentEncoding: "utf-8"})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
}

func TestDecodeBytesDefaultsToUTF8(t *testing.T) {
	b := []byte(`a { color: red }`)
	text, enc, err := DecodeBytes(b, DecodeOptions{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
	if text != string(b) {
		t.Errorf("text = %q, want unchanged", text)
	}
}

func TestDecodeBytesStripsBOM(t *testing.T) {
	b := append([]byte("\xef\xbb\xbf"), []byte(`a { color: red }`)...)
	text, _, err := DecodeBytes(b, DecodeOptions{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if text != `a { color: red }` {
		t.Errorf("text = %q, want BOM stripped", text)
	}
}

func TestDecodeBytesMalformedCharsetRuleIgnored(t *testing.T) {
	// No closing quote within the sniff window: the rule is not
	// recognized, so decoding falls through to the UTF-8 default.
	b := []byte(`@charset "unterminated`)
	text, enc, err := DecodeBytes(b, DecodeOptions{})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
	if text != string(b) {
		t.Errorf("text = %q, want unchanged", text)
	}
}

func TestParseStylesheetBytes(t *testing.T) {
	b := []byte(`@charset "utf-8"; a { color: red }`)
	nodes, enc, err := ParseStylesheetBytes(b, DecodeOptions{}, ParseOptions{SkipWhitespace: true})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("usedEncoding = %q, want utf-8", enc)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2 (the @charset at-rule and the qualified rule): %v", len(nodes), describeAll(nodes))
	}
}
