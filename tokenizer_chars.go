package tincss

import "unicode/utf8"

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }

func isLetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexValue(c rune) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint8(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint8(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint8(c-'A') + 10, true
	default:
		return 0, false
	}
}

// isIdentStartCodePoint reports whether c alone can begin an
// identifier: an ASCII letter, '_', or any non-ASCII code point.
func isIdentStartCodePoint(c rune) bool {
	return isLetter(c) || c >= utf8.RuneSelf || c == '_'
}

// isNameCodePoint reports whether c may appear within an identifier
// body: ident-start, digit, or '-'.
func isNameCodePoint(c rune) bool {
	return isIdentStartCodePoint(c) || isDigit(c) || c == '-'
}

// isNonPrintable reports the control characters CSS Syntax 4.3.5
// treats as invalid inside an unquoted url() body.
func isNonPrintable(c rune) bool {
	return (c >= 0x0000 && c <= 0x0008) || c == 0x000B || (c >= 0x000E && c <= 0x001F) || c == 0x007F
}

// isEscapeStart reports whether c0, c1 form a valid escape: a
// backslash not followed by a newline.
func isEscapeStart(c0, c1 rune) bool {
	return c0 == '\\' && c1 != '\n' && c1 != -1
}

// isIdentStart3 reports whether the next three code points would
// start an identifier, per CSS Syntax 4.3.9.
func isIdentStart3(c0, c1, c2 rune) bool {
	if c0 == '-' {
		return isIdentStartCodePoint(c1) || c1 == '-' || isEscapeStart(c1, c2)
	}
	if isIdentStartCodePoint(c0) {
		return true
	}
	return isEscapeStart(c0, c1)
}

// isNumberStart3 reports whether the three code points starting at c0
// would start a number, per CSS Syntax 4.3.10.
func isNumberStart3(c0, c1, c2 rune) bool {
	switch {
	case c0 == '+', c0 == '-':
		if isDigit(c1) {
			return true
		}
		return c1 == '.' && isDigit(c2)
	case c0 == '.':
		return isDigit(c1)
	default:
		return isDigit(c0)
	}
}
