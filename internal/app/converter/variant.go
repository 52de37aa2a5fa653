package converter

// TranslationValue is the shape a translations-like field was found in.
// Classify picks the variant; normalization switches over it.
type TranslationValue interface {
	isTranslationValue()
}

// PlainString is a bare string used where a list was expected.
type PlainString string

// StringList is a list whose items are all strings.
type StringList []string

// PairList is a list holding records, possibly mixed with plain strings.
// Items are PlainString or SinglePair; other item kinds are dropped.
type PairList []TranslationValue

// SinglePair is one {type, translation} style record.
type SinglePair map[string]any

func (PlainString) isTranslationValue() {}
func (StringList) isTranslationValue()  {}
func (PairList) isTranslationValue()    {}
func (SinglePair) isTranslationValue()  {}

// Classify maps a decoded JSON value to its variant. It returns nil for
// values of no usable shape (numbers, booleans, null, absent fields).
func Classify(v any) TranslationValue {
	switch x := v.(type) {
	case string:
		return PlainString(x)
	case map[string]any:
		return SinglePair(x)
	case []any:
		return classifyList(x)
	default:
		return nil
	}
}

func classifyList(items []any) TranslationValue {
	strs := make(StringList, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			break
		}
		strs = append(strs, s)
	}
	if len(strs) == len(items) {
		return strs
	}

	pairs := make(PairList, 0, len(items))
	for _, item := range items {
		switch x := item.(type) {
		case string:
			pairs = append(pairs, PlainString(x))
		case map[string]any:
			pairs = append(pairs, SinglePair(x))
		}
	}
	return pairs
}

// translationKeys are tried in order when reading a record's text.
var translationKeys = []string{"translation", "trans", "meaning"}

// text returns the record's translation text from the first of
// translationKeys that holds a non-null value.
func (p SinglePair) text() (string, bool) {
	for _, k := range translationKeys {
		if v, ok := p[k]; ok && v != nil {
			return coerce(v), true
		}
	}
	return "", false
}
