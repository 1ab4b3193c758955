package wordlist

import (
	"bytes"
	"testing"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		line string
		want []byte
	}{
		{"single quoted", `'secret'`, []byte("secret")},
		{"double quoted", `"secret"`, []byte("secret")},
		{"byte literal single", `b'secret'`, []byte("secret")},
		{"byte literal double", `b"secret"`, []byte("secret")},
		{"hex escapes", `'\x00\x13\x37'`, []byte{0x00, 0x13, 0x37}},
		{"newline escape", `'a\nb'`, []byte("a\nb")},
		{"tab and cr", `'a\tb\r'`, []byte("a\tb\r")},
		{"null escape", `'a\0b'`, []byte{'a', 0, 'b'}},
		{"escaped quote", `'it\'s'`, []byte("it's")},
		{"escaped backslash", `'a\\b'`, []byte(`a\b`)},
		{"unknown escape keeps backslash", `'a\db'`, []byte(`a\db`)},
		{"unquoted verbatim", `plain-secret`, []byte("plain-secret")},
		{"surrounding whitespace trimmed", "  spaced  \t", []byte("spaced")},
		{"quoted with whitespace around", `  'secret'  `, []byte("secret")},
		{"empty literal", `''`, []byte{}},
		{"embedded quote invalidates literal", `'a'b'`, []byte(`'a'b'`)},
		{"unterminated literal falls back", `'abc`, []byte(`'abc`)},
		{"truncated hex escape falls back", `'\x4'`, []byte(`'\x4'`)},
		{"lone quote", `'`, []byte(`'`)},
		{"blank line", ``, []byte{}},
		{"mixed quotes stay raw", `'abc"`, []byte(`'abc"`)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.line); !bytes.Equal(got, tc.want) {
				t.Errorf("Parse(%q) = %q, want %q", tc.line, got, tc.want)
			}
		})
	}
}
