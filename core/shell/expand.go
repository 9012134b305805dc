package shell

import (
	"strings"
)

// expandLine replaces $NAME, ${NAME} and $? references in line before it is
// split into words, following the quoting rules of a POSIX shell:
//
//   - nothing is expanded between single quotes
//   - a value expanded inside double quotes stays a single word
//   - an unquoted value is split on white space, an empty one adds no word
//
// Expanded values are escaped so the splitter keeps them literal.
func expandLine(line string, lookup func(string) string) string {
	var sb strings.Builder
	var single, double bool

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case single:
			if c == '\'' {
				single = false
			}
			sb.WriteByte(c)

		case c == '\\' && i+1 < len(line):
			next := line[i+1]
			i++
			if double && next == '$' {
				// The splitter keeps unknown escapes inside double quotes.
				sb.WriteByte(next)
				continue
			}
			sb.WriteByte(c)
			sb.WriteByte(next)

		case c == '\'' && !double:
			single = true
			sb.WriteByte(c)

		case c == '"':
			double = !double
			sb.WriteByte(c)

		case c == '$':
			name, width := parseVarRef(line[i+1:])
			if width == 0 {
				sb.WriteByte(c)
				continue
			}
			i += width

			value := lookup(name)
			if double {
				sb.WriteString(escapeDoubleQuoted(value))
			} else {
				sb.WriteString(escapeUnquoted(value))
			}

		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// parseVarRef reads the variable name following a $ and returns it along with
// the number of bytes consumed. A width of 0 means s doesn't start a
// reference.
func parseVarRef(s string) (name string, width int) {
	switch {
	case s == "":
		return "", 0
	case s[0] == '?':
		return "?", 1
	case s[0] == '{':
		end := strings.IndexByte(s, '}')
		if end < 2 || !isName(s[1:end]) {
			return "", 0
		}
		return s[1:end], end + 1
	}

	n := 0
	for n < len(s) && isNameByte(s[n], n == 0) {
		n++
	}
	return s[:n], n
}

func isName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i], i == 0) {
			return false
		}
	}
	return s != ""
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return !first
	default:
		return false
	}
}

func escapeDoubleQuoted(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func escapeUnquoted(s string) string {
	fields := strings.Fields(s)
	for i, field := range fields {
		var sb strings.Builder
		for _, r := range field {
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
		fields[i] = sb.String()
	}
	return strings.Join(fields, " ")
}
