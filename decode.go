package tincss

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DecodeOptions configures DecodeBytes, implementing the "determine
// the fallback encoding" algorithm of CSS Syntax 3 section 3.2.
type DecodeOptions struct {
	// ProtocolEncoding is the encoding label supplied by HTTP or an
	// equivalent transport-level protocol, if any. It wins over
	// everything else, including an @charset rule.
	ProtocolEncoding string
	// EnvironmentEncoding is the encoding of the referring document,
	// consulted only when neither ProtocolEncoding nor a sniffed
	// @charset rule resolves to a known encoding.
	EnvironmentEncoding string
}

// DecodeBytes turns a raw CSS byte buffer into decoded text. It tries,
// in order, ProtocolEncoding, a sniffed leading @charset rule,
// EnvironmentEncoding, and finally UTF-8. A leading byte-order mark
// for the chosen encoding is stripped. DecodeBytes never fails on the
// byte content itself: invalid sequences in the chosen encoding are
// replaced with U+FFFD by the underlying decoder. The returned error
// is non-nil only if the resolved decoder itself reports a non-input
// failure, which does not happen for the decoders reachable from this
// function.
func DecodeBytes(b []byte, opts DecodeOptions) (text string, usedEncoding string, err error) {
	if enc, name, ok := lookupEncoding(opts.ProtocolEncoding); ok {
		return decodeWith(b, enc, name)
	}
	if label, ok := sniffCharsetRule(b); ok {
		if enc, name, ok := lookupEncoding(label); ok {
			if name == "utf-16be" || name == "utf-16le" {
				enc, name, _ = lookupEncoding("utf-8")
			}
			return decodeWith(b, enc, name)
		}
	}
	if enc, name, ok := lookupEncoding(opts.EnvironmentEncoding); ok {
		return decodeWith(b, enc, name)
	}
	enc, name, _ := lookupEncoding("utf-8")
	return decodeWith(b, enc, name)
}

// charsetRulePrefix is the exact ten ASCII bytes the sniff looks for
// at the very start of the buffer.
var charsetRulePrefix = []byte(`@charset "`)

// sniffCharsetRule implements the second priority of the fallback
// algorithm: a leading `@charset "<label>";` with the closing quote
// within 90 bytes of the prefix.
func sniffCharsetRule(b []byte) (label string, ok bool) {
	if !bytes.HasPrefix(b, charsetRulePrefix) {
		return "", false
	}
	window := b[len(charsetRulePrefix):min(len(b), 100)]
	end := bytes.IndexByte(window, '"')
	if end == -1 {
		return "", false
	}
	closeQuote := len(charsetRulePrefix) + end
	if closeQuote+1 >= len(b) || b[closeQuote+1] != ';' {
		return "", false
	}
	return string(b[len(charsetRulePrefix):closeQuote]), true
}

// lookupEncoding resolves an encoding label to a usable
// encoding.Encoding and its canonical lowercase IANA name. An empty or
// unrecognized label reports ok == false.
func lookupEncoding(label string) (enc encoding.Encoding, name string, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, "", false
	}
	e, err := ianaindex.IANA.Encoding(label)
	if err != nil || e == nil {
		return nil, "", false
	}
	n, err := ianaindex.IANA.Name(e)
	if err != nil {
		n = strings.ToLower(label)
	}
	return e, strings.ToLower(n), true
}

// decodeWith runs enc's decoder over b and strips a leading BOM that
// decoded along with the text.
func decodeWith(b []byte, enc encoding.Encoding, name string) (string, string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", name, err
	}
	return strings.TrimPrefix(string(out), "﻿"), name, nil
}

// ParseStylesheetBytes decodes b per DecodeOptions and parses the
// result as a stylesheet, combining DecodeBytes and ParseStylesheet
// for callers that only have raw bytes (e.g. a fetched stylesheet
// response body).
func ParseStylesheetBytes(b []byte, opts DecodeOptions, parseOpts ParseOptions) (nodes []Node, usedEncoding string, err error) {
	text, enc, err := DecodeBytes(b, opts)
	if err != nil {
		return nil, enc, err
	}
	return ParseStylesheet(TextInput(text), parseOpts), enc, nil
}
