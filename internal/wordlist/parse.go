package wordlist

import (
	"strconv"
	"strings"
)

// Parse interprets one wordlist line. Lines are conventionally
// wrapped in Python string literals so binary secrets can live in a
// plain text file: quoted lines (including b'...' byte literals) are
// unquoted with the Python escape rules, anything else is used
// verbatim after trimming surrounding whitespace. A malformed literal
// falls back to the trimmed raw line rather than failing.
func Parse(line string) []byte {
	s := strings.TrimSpace(line)

	lit := s
	if strings.HasPrefix(lit, "b'") || strings.HasPrefix(lit, `b"`) {
		lit = lit[1:]
	}
	if len(lit) >= 2 && (lit[0] == '\'' || lit[0] == '"') && lit[len(lit)-1] == lit[0] {
		if out, ok := unquote(lit); ok {
			return out
		}
	}
	return []byte(s)
}

// unquote decodes a single- or double-quoted Python string literal
// body. Recognized escapes: \\ \' \" \n \r \t \0 and \xNN; unknown
// escapes keep their backslash, as Python's parser does. An unescaped
// quote character inside the body makes the literal invalid.
func unquote(lit string) ([]byte, bool) {
	quote := lit[0]
	body := lit[1 : len(lit)-1]
	out := make([]byte, 0, len(body))

	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch == quote {
			return nil, false
		}
		if ch != '\\' {
			out = append(out, ch)
			continue
		}
		i++
		if i >= len(body) {
			return nil, false
		}
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0)
		case '\\', '\'', '"':
			out = append(out, body[i])
		case 'x':
			if i+2 >= len(body) {
				return nil, false
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return nil, false
			}
			out = append(out, byte(v))
			i += 2
		default:
			out = append(out, '\\', body[i])
		}
	}
	return out, true
}
