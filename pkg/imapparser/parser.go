// Package imapparser holds the token-level primitives of the Akonadi protocol:
// parenthesized lists, quoted strings, literals, numbers and versioned keys.
//
// Every parse function takes the data and a start offset and returns the offset
// right after what it consumed, so callers can chain them over one buffer.
// Nested lists are matched iteratively; no function recurses on input nesting.
package imapparser

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/kdepim/akonadi.go/pkg/constants"
)

var nilAtom = []byte("NIL")

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDelimiter(c byte) bool {
	return isWhitespace(c) || c == '(' || c == ')'
}

// SkipWhitespace returns the first offset at or after pos that is not whitespace.
func SkipWhitespace(data []byte, pos int) int {
	for pos < len(data) && isWhitespace(data[pos]) {
		pos++
	}
	return pos
}

// AtEnd reports whether only whitespace remains from pos on.
func AtEnd(data []byte, pos int) bool {
	return SkipWhitespace(data, pos) >= len(data)
}

// ParseParenthesizedList parses a "(a b (c d) "e f")" list starting at start.
//
// Plain elements are returned decoded (quotes and literal framing removed).
// Nested lists are returned raw, parentheses included, so they can be handed to
// another parser. A bare NIL yields an empty list.
func ParseParenthesizedList(data []byte, start int) ([][]byte, int, error) {
	pos := SkipWhitespace(data, start)
	if pos >= len(data) {
		return nil, start, fmt.Errorf("%w: expected list at offset %d", constants.ErrUnexpectedEnd, pos)
	}
	if hasAtom(data, pos, nilAtom) {
		return nil, pos + len(nilAtom), nil
	}
	if data[pos] != '(' {
		return nil, start, fmt.Errorf("%w: expected '(' at offset %d, got %q", constants.ErrMalformedList, pos, data[pos])
	}
	pos++

	var list [][]byte
	for {
		pos = SkipWhitespace(data, pos)
		if pos >= len(data) {
			return nil, start, fmt.Errorf("%w: unterminated list starting at offset %d", constants.ErrMalformedList, start)
		}
		switch data[pos] {
		case ')':
			return list, pos + 1, nil
		case '(':
			end, err := matchParen(data, pos)
			if err != nil {
				return nil, start, err
			}
			list = append(list, data[pos:end])
			pos = end
		default:
			value, next, err := ParseString(data, pos)
			if err != nil {
				return nil, start, err
			}
			list = append(list, value)
			pos = next
		}
	}
}

// matchParen returns the offset after the parenthesis closing the one at pos.
func matchParen(data []byte, pos int) (int, error) {
	start := pos
	depth := 0
	for pos < len(data) {
		switch data[pos] {
		case '(':
			depth++
			pos++
		case ')':
			depth--
			pos++
			if depth == 0 {
				return pos, nil
			}
		case '"':
			end, err := skipQuoted(data, pos)
			if err != nil {
				return 0, err
			}
			pos = end
		case '{':
			if size, body, ok := literalHeader(data, pos); ok {
				if size > len(data)-body {
					return 0, fmt.Errorf("%w: literal at offset %d", constants.ErrUnexpectedEnd, pos)
				}
				pos = body + size
				continue
			}
			pos++
		default:
			pos++
		}
	}
	return 0, fmt.Errorf("%w: unterminated list starting at offset %d", constants.ErrMalformedList, start)
}

// ParseString parses a quoted string, a literal or an atom starting at start.
// The atom NIL yields an empty value.
func ParseString(data []byte, start int) ([]byte, int, error) {
	pos := SkipWhitespace(data, start)
	if pos >= len(data) {
		return nil, start, fmt.Errorf("%w: expected string at offset %d", constants.ErrUnexpectedEnd, pos)
	}

	switch data[pos] {
	case '"':
		return parseQuoted(data, pos)
	case '{':
		if size, body, ok := literalHeader(data, pos); ok {
			if size > len(data)-body {
				return nil, start, fmt.Errorf("%w: literal of %d bytes at offset %d", constants.ErrUnexpectedEnd, size, pos)
			}
			return data[body : body+size], body + size, nil
		}
	case '(', ')':
		return nil, start, fmt.Errorf("%w: unexpected %q at offset %d", constants.ErrMalformedString, data[pos], pos)
	}

	end := scanAtom(data, pos)
	atom := data[pos:end]
	if bytes.Equal(atom, nilAtom) {
		return []byte{}, end, nil
	}
	return atom, end, nil
}

// scanAtom returns the end of the atom at pos. Brackets are balanced so that
// keys like "PLD:RFC822[1]" or "BODY[HEADER (FROM)]" stay in one atom.
func scanAtom(data []byte, pos int) int {
	brackets := 0
	for pos < len(data) {
		c := data[pos]
		switch {
		case c == '[':
			brackets++
		case c == ']' && brackets > 0:
			brackets--
		case brackets == 0 && isDelimiter(c):
			return pos
		}
		pos++
	}
	return pos
}

func hasAtom(data []byte, pos int, atom []byte) bool {
	end := pos + len(atom)
	return end <= len(data) && bytes.Equal(data[pos:end], atom) && (end == len(data) || isDelimiter(data[end]))
}

func skipQuoted(data []byte, pos int) (int, error) {
	start := pos
	pos++
	for pos < len(data) {
		switch data[pos] {
		case '\\':
			pos += 2
		case '"':
			return pos + 1, nil
		default:
			pos++
		}
	}
	return 0, fmt.Errorf("%w: unterminated quoted string at offset %d", constants.ErrMalformedString, start)
}

func parseQuoted(data []byte, pos int) ([]byte, int, error) {
	start := pos
	pos++
	var out []byte
	for pos < len(data) {
		c := data[pos]
		switch c {
		case '\\':
			if pos+1 >= len(data) {
				return nil, start, fmt.Errorf("%w: dangling escape at offset %d", constants.ErrMalformedString, pos)
			}
			out = append(out, data[pos+1])
			pos += 2
		case '"':
			if out == nil {
				out = []byte{}
			}
			return out, pos + 1, nil
		default:
			out = append(out, c)
			pos++
		}
	}
	return nil, start, fmt.Errorf("%w: unterminated quoted string at offset %d", constants.ErrMalformedString, start)
}

// literalHeader recognizes "{n}\r\n" (or "{n}\n") at pos and returns the literal
// size and the offset of its first byte.
func literalHeader(data []byte, pos int) (size, body int, ok bool) {
	i := pos + 1
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == pos+1 || i >= len(data) || data[i] != '}' {
		return 0, 0, false
	}
	n, err := strconv.Atoi(string(data[pos+1 : i]))
	if err != nil {
		return 0, 0, false
	}
	i++
	if i < len(data) && data[i] == '\r' {
		i++
	}
	if i >= len(data) || data[i] != '\n' {
		return 0, 0, false
	}
	return n, i + 1, true
}

// ParseNumber parses a decimal, optionally negative, integer starting at start.
// The number must be followed by a delimiter or the end of data.
func ParseNumber(data []byte, start int) (int64, int, error) {
	pos := SkipWhitespace(data, start)
	if pos >= len(data) {
		return 0, start, fmt.Errorf("%w: expected number at offset %d", constants.ErrUnexpectedEnd, pos)
	}
	end := pos
	if data[end] == '-' {
		end++
	}
	digits := end
	for end < len(data) && data[end] >= '0' && data[end] <= '9' {
		end++
	}
	if end == digits || (end < len(data) && !isDelimiter(data[end])) {
		return 0, start, fmt.Errorf("%w: at offset %d", constants.ErrMalformedNumber, pos)
	}
	n, err := strconv.ParseInt(string(data[pos:end]), 10, 64)
	if err != nil {
		return 0, start, fmt.Errorf("%w: %v", constants.ErrMalformedNumber, err)
	}
	return n, end, nil
}

// ToNumber parses a whole token as a decimal integer.
func ToNumber(token []byte) (int64, error) {
	n, end, err := ParseNumber(token, 0)
	if err != nil {
		return 0, err
	}
	if !AtEnd(token, end) {
		return 0, fmt.Errorf("%w: trailing data in %q", constants.ErrMalformedNumber, token)
	}
	return n, nil
}

// Quote returns data as a quoted string, escaping backslashes and double quotes.
func Quote(data []byte) []byte {
	out := make([]byte, 0, len(data)+2)
	out = append(out, '"')
	for _, c := range data {
		if c == '\\' || c == '"' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return append(out, '"')
}

// Literal returns data framed as a synchronizing literal.
func Literal(data []byte) []byte {
	out := make([]byte, 0, len(data)+16)
	out = append(out, '{')
	out = strconv.AppendInt(out, int64(len(data)), 10)
	out = append(out, "}\r\n"...)
	return append(out, data...)
}

// NeedsLiteral reports whether data cannot travel inside a quoted string.
func NeedsLiteral(data []byte) bool {
	return bytes.ContainsAny(data, "\r\n\x00")
}

// QuoteOrLiteral quotes data, falling back to a literal when quoting cannot carry it.
func QuoteOrLiteral(data []byte) []byte {
	if NeedsLiteral(data) {
		return Literal(data)
	}
	return Quote(data)
}

// Astring returns data unchanged when it can travel as an atom, quoted or as a
// literal otherwise.
func Astring(data []byte) []byte {
	if len(data) == 0 || bytes.Equal(data, nilAtom) {
		return Quote(data)
	}
	for _, c := range data {
		if isDelimiter(c) || c == '"' || c == '\\' || c == '{' || c < 0x20 || c == 0x7f {
			return QuoteOrLiteral(data)
		}
	}
	return data
}

// Join concatenates list with sep between elements.
func Join(list [][]byte, sep string) []byte {
	return bytes.Join(list, []byte(sep))
}

// SplitVersionedKey splits "label[n]" into label and n. Keys without a valid
// version suffix are returned unchanged with version 0 and ok false.
func SplitVersionedKey(key []byte) (label []byte, version int, ok bool) {
	if len(key) < 3 || key[len(key)-1] != ']' {
		return key, 0, false
	}
	open := bytes.LastIndexByte(key, '[')
	if open <= 0 || open == len(key)-2 {
		return key, 0, false
	}
	digits := key[open+1 : len(key)-1]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return key, 0, false
		}
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return key, 0, false
	}
	return key[:open], n, true
}

// ParseDateTime parses an IMAP date-time such as "08-Mar-2009 17:04:05 +0100".
func ParseDateTime(data []byte) (time.Time, error) {
	s := string(bytes.TrimSpace(data))
	t, err := time.Parse(constants.DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date-time %q: %v", constants.ErrMalformedString, s, err)
	}
	return t, nil
}

// FormatDateTime renders t in the IMAP date-time format.
func FormatDateTime(t time.Time) string {
	return t.Format(constants.DateTimeFormat)
}
