package imapparser

import (
	"testing"
	"time"

	"github.com/kdepim/akonadi.go/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toStrings(list [][]byte) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = string(v)
	}
	return out
}

func TestParseParenthesizedList(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		start    int
		expected []string
		next     int
	}{
		{name: "empty list", data: "()", expected: nil, next: 2},
		{name: "atoms", data: "(a b c)", expected: []string{"a", "b", "c"}, next: 7},
		{name: "quoted", data: `(NAME "foo bar")`, expected: []string{"NAME", "foo bar"}, next: 16},
		{name: "nested kept raw", data: `(MIMETYPE (text/plain "x y") X)`, expected: []string{"MIMETYPE", `(text/plain "x y")`, "X"}, next: 31},
		{name: "offset and trailing data", data: `12 (A B) rest`, start: 2, expected: []string{"A", "B"}, next: 8},
		{name: "literal", data: "(DATA {5}\r\nhe)lo END)", expected: []string{"DATA", "he)lo", "END"}, next: 21},
		{name: "nil", data: "NIL rest", expected: nil, next: 3},
		{name: "bracketed atom", data: "(PLD:RFC822[1] x)", expected: []string{"PLD:RFC822[1]", "x"}, next: 17},
		{name: "escaped quote", data: `("a\"b" c)`, expected: []string{`a"b`, "c"}, next: 10},
		{name: "paren in quoted nested", data: `((1 ")") (2 "x"))`, expected: []string{`(1 ")")`, `(2 "x")`}, next: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, next, err := ParseParenthesizedList([]byte(tt.data), tt.start)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Empty(t, list)
			} else {
				assert.Equal(t, tt.expected, toStrings(list))
			}
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestParseParenthesizedList_Malformed(t *testing.T) {
	tests := []struct {
		data string
		err  error
	}{
		{data: "", err: constants.ErrUnexpectedEnd},
		{data: "abc", err: constants.ErrMalformedList},
		{data: "(a b", err: constants.ErrMalformedList},
		{data: "(a (b c)", err: constants.ErrMalformedList},
		{data: `(a "b)`, err: constants.ErrMalformedString},
		{data: "(a {10}\r\nshort)", err: constants.ErrUnexpectedEnd},
		{data: "(a {9223372036854775807}\r\nx)", err: constants.ErrUnexpectedEnd},
		{data: "(a ({9223372036854775800}\nx))", err: constants.ErrUnexpectedEnd},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			_, next, err := ParseParenthesizedList([]byte(tt.data), 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, next)
		})
	}
}

func TestParseParenthesizedList_DeepNestingIsIterative(t *testing.T) {
	depth := 100000
	data := make([]byte, 0, 2*depth+2)
	data = append(data, '(')
	for i := 0; i < depth; i++ {
		data = append(data, '(')
	}
	for i := 0; i < depth; i++ {
		data = append(data, ')')
	}
	data = append(data, ')')

	list, next, err := ParseParenthesizedList(data, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, len(data), next)
}

func TestParseString(t *testing.T) {
	tests := []struct {
		data     string
		expected string
		next     int
	}{
		{data: `"hello world" x`, expected: "hello world", next: 13},
		{data: `  atom rest`, expected: "atom", next: 6},
		{data: `""`, expected: "", next: 2},
		{data: `NIL`, expected: "", next: 3},
		{data: `NILS`, expected: "NILS", next: 4},
		{data: "{3}\r\nabcdef", expected: "abc", next: 8},
		{data: "{3}\nabc", expected: "abc", next: 7},
		{data: `"back\\slash"`, expected: `back\slash`, next: 13},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			value, next, err := ParseString([]byte(tt.data), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(value))
			assert.Equal(t, tt.next, next)
		})
	}

	_, _, err := ParseString([]byte("(x)"), 0)
	assert.ErrorIs(t, err, constants.ErrMalformedString)
	_, _, err = ParseString([]byte("   "), 0)
	assert.ErrorIs(t, err, constants.ErrUnexpectedEnd)
}

func TestParseNumber(t *testing.T) {
	n, next, err := ParseNumber([]byte("42 7"), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)
	assert.Equal(t, 2, next)

	n, next, err = ParseNumber([]byte("42 -7"), next)
	require.NoError(t, err)
	assert.EqualValues(t, -7, n)
	assert.Equal(t, 5, next)

	n, _, err = ParseNumber([]byte("3(A)"), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	for _, bad := range []string{"abc", "12abc", "-", "", "99999999999999999999"} {
		_, next, err := ParseNumber([]byte(bad), 0)
		assert.Error(t, err, bad)
		assert.Equal(t, 0, next)
	}

	_, err = ToNumber([]byte("5 6"))
	assert.ErrorIs(t, err, constants.ErrMalformedNumber)
	v, err := ToNumber([]byte(" 17 "))
	require.NoError(t, err)
	assert.EqualValues(t, 17, v)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, string(Quote([]byte("plain"))))
	assert.Equal(t, `"a\"b\\c"`, string(Quote([]byte(`a"b\c`))))
	assert.Equal(t, `""`, string(Quote(nil)))

	quoted := Quote([]byte(`say "hi" \o/`))
	value, _, err := ParseString(quoted, 0)
	require.NoError(t, err)
	assert.Equal(t, `say "hi" \o/`, string(value))
}

func TestQuoteOrLiteral(t *testing.T) {
	assert.Equal(t, `"x"`, string(QuoteOrLiteral([]byte("x"))))

	lit := QuoteOrLiteral([]byte("a\r\nb"))
	assert.Equal(t, "{4}\r\na\r\nb", string(lit))
	value, next, err := ParseString(lit, 0)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb", string(value))
	assert.Equal(t, len(lit), next)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a b c", string(Join([][]byte{[]byte("a"), []byte("b"), []byte("c")}, " ")))
	assert.Empty(t, Join(nil, " "))
}

func TestSplitVersionedKey(t *testing.T) {
	tests := []struct {
		key     string
		label   string
		version int
		ok      bool
	}{
		{key: "RFC822[2]", label: "RFC822", version: 2, ok: true},
		{key: "PLD:HEAD[10]", label: "PLD:HEAD", version: 10, ok: true},
		{key: "RFC822", label: "RFC822", version: 0, ok: false},
		{key: "RFC822[]", label: "RFC822[]", version: 0, ok: false},
		{key: "RFC822[x]", label: "RFC822[x]", version: 0, ok: false},
		{key: "[3]", label: "[3]", version: 0, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			label, version, ok := SplitVersionedKey([]byte(tt.key))
			assert.Equal(t, tt.label, string(label))
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	ts, err := ParseDateTime([]byte("08-Mar-2009 17:04:05 +0100"))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2009, time.March, 8, 16, 4, 5, 0, time.UTC)))

	ts, err = ParseDateTime([]byte(" 8-Mar-2009 17:04:05 +0000"))
	require.NoError(t, err)
	assert.Equal(t, 8, ts.Day())

	formatted := FormatDateTime(time.Date(2009, time.March, 8, 16, 4, 5, 0, time.UTC))
	assert.Equal(t, "08-Mar-2009 16:04:05 +0000", formatted)
	ts, err = ParseDateTime([]byte(formatted))
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2009, time.March, 8, 16, 4, 5, 0, time.UTC)))

	_, err = ParseDateTime([]byte("yesterday"))
	assert.ErrorIs(t, err, constants.ErrMalformedString)
}

func TestAstring(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "PLD:RFC822", expected: "PLD:RFC822"},
		{in: "PLD RFC822", expected: `"PLD RFC822"`},
		{in: "", expected: `""`},
		{in: "NIL", expected: `"NIL"`},
		{in: `a"b`, expected: `"a\"b"`},
		{in: "(x)", expected: `"(x)"`},
		{in: "line\nbreak", expected: "{10}\r\nline\nbreak"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := Astring([]byte(tt.in))
			assert.Equal(t, tt.expected, string(out))
			value, _, err := ParseString(out, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(value))
		})
	}
}
