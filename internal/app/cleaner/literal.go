package cleaner

import (
	"github.com/tidwall/gjson"

	"github.com/q2019715/jieci-dictionary/internal/domain"
)

// appendLiteral appends v to buf as compact JSON in its original key order.
// Strings are re-encoded so that escaped non-ASCII input ("苹") comes
// out as literal UTF-8. Numbers and literals keep their raw text.
func appendLiteral(buf []byte, v gjson.Result) []byte {
	switch {
	case v.IsObject():
		buf = append(buf, '{')
		n := 0
		v.ForEach(func(key, val gjson.Result) bool {
			if n > 0 {
				buf = append(buf, ',')
			}
			n++
			buf = appendString(buf, key.String())
			buf = append(buf, ':')
			buf = appendLiteral(buf, val)
			return true
		})
		return append(buf, '}')
	case v.IsArray():
		buf = append(buf, '[')
		n := 0
		v.ForEach(func(_, val gjson.Result) bool {
			if n > 0 {
				buf = append(buf, ',')
			}
			n++
			buf = appendLiteral(buf, val)
			return true
		})
		return append(buf, ']')
	case v.Type == gjson.String:
		return appendString(buf, v.Str)
	default:
		return append(buf, v.Raw...)
	}
}

func appendString(buf []byte, s string) []byte {
	// Encoding a string cannot fail.
	b, _ := domain.MarshalLiteral(s)
	return append(buf, b...)
}
