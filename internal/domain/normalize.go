package domain

import (
	"bytes"
	"encoding/json"
)

// DeduplicateStrings returns a new slice with duplicate strings removed,
// preserving the order of first occurrence. Returns nil for nil input.
func DeduplicateStrings(ss []string) []string {
	if ss == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(ss))
	result := make([]string, 0, len(ss))

	for _, s := range ss {
		if _, exists := seen[s]; exists {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}

	return result
}

// CoerceString converts a decoded JSON value to its string form:
//   - strings are returned as is
//   - json.Number keeps its literal text
//   - booleans become "true"/"false"
//   - null becomes ""
//   - objects and arrays become compact JSON
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		b, err := MarshalLiteral(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// MarshalLiteral encodes v as compact JSON without HTML escaping, so
// non-ASCII text (U+2028 and U+2029 included) and <, >, & are emitted
// literally.
func MarshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

var lineSepEscape = []byte(`\u202`)

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always writes back into the characters themselves.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, lineSepEscape) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			out = append(out, b[i])
			continue
		}
		if bytes.HasPrefix(b[i:], lineSepEscape) && i+5 < len(b) && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		// Any other escape is copied whole so an escaped backslash is not
		// mistaken for the start of one.
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
