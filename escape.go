package ci

import (
	"fmt"
	"strconv"
	"strings"
)

// itoa is a tiny int64-to-string helper kept local so every call site
// that builds C source text goes through one place.
func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// cEscapeTable is the simple-escape table the scanner decodes literals
// with (§4.1): `\n \t \r \v \b \f \\ \' \" \0`. Re-escaping on the way
// back out goes through cUnescapeTable, with `\0` and `\'` handled
// inline by escapeCString and escapeCRune.
var cEscapeTable = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'b': '\b', 'f': '\f',
	'\\': '\\', '\'': '\'', '"': '"', '0': 0,
}

var cUnescapeTable = map[rune]string{
	'\n': `\n`, '\t': `\t`, '\r': `\r`, '\v': `\v`, '\b': `\b`, '\f': `\f`,
	'\\': `\\`, '"': `\"`,
}

// escapeCString re-escapes a decoded string value back into C source
// text, the inverse of the scanner's decoding step.
func escapeCString(s string) string {
	var b strings.Builder
	for _, r := range s {
		if esc, ok := cUnescapeTable[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r == 0 {
			b.WriteString(`\0`)
			continue
		}
		if r < 0x20 || r == 0x7f {
			b.WriteString(fmt.Sprintf(`\x%02x`, r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func escapeCRune(r rune) string {
	if r == '\'' {
		return `\'`
	}
	return escapeCString(string(r))
}

// decodeCEscape decodes one escape sequence (the character right
// after a backslash already consumed): simple
// escapes from cEscapeTable, plus octal/hex/unicode escapes.
// It returns the decoded rune and how many extra runes (beyond the
// introducer) were consumed from extra.
func decodeCEscape(introducer rune, extra []rune) (rune, int, error) {
	if v, ok := cEscapeTable[introducer]; ok && introducer != '0' {
		return v, 0, nil
	}

	switch introducer {
	case '0', '1', '2', '3', '4', '5', '6', '7':
		digits := []rune{introducer}
		n := 0
		for n < 2 && n < len(extra) && isOctalDigit(extra[n]) {
			digits = append(digits, extra[n])
			n++
		}
		v, err := strconv.ParseInt(string(digits), 8, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed octal escape: %w", err)
		}
		return rune(v), n, nil

	case 'x':
		n := 0
		var digits []rune
		for n < len(extra) && isHexDigit(extra[n]) {
			digits = append(digits, extra[n])
			n++
		}
		if len(digits) == 0 {
			return 0, 0, fmt.Errorf("empty hex escape")
		}
		v, err := strconv.ParseInt(string(digits), 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed hex escape: %w", err)
		}
		return rune(v), n, nil

	case 'u', 'U':
		width := 4
		if introducer == 'U' {
			width = 8
		}
		if len(extra) < width {
			return 0, 0, fmt.Errorf("truncated unicode escape")
		}
		digits := string(extra[:width])
		v, err := strconv.ParseInt(digits, 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed unicode escape: %w", err)
		}
		return rune(v), width, nil
	}

	return 0, 0, fmt.Errorf("invalid escape sequence \\%c", introducer)
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }
func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
