package converter

import (
	"github.com/q2019715/jieci-dictionary/internal/domain"
)

var coerce = domain.CoerceString

// Normalize maps a decoded JSON value to a canonical entry. It reports false
// when the value is not an object or carries no usable word.
func Normalize(v any) (domain.Entry, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return domain.Entry{}, false
	}

	word := coerce(obj["word"])
	if word == "" {
		return domain.Entry{}, false
	}

	entry := domain.NewEntry(word)
	for _, tr := range normalizeTranslations(Classify(obj["translations"])) {
		entry.AddTranslation(tr.Type, tr.Translation)
	}

	if list, ok := obj["phrases"].([]any); ok {
		for _, item := range list {
			if ph, ok := normalizePhrase(item); ok {
				entry.Phrases = append(entry.Phrases, ph)
			}
		}
	}

	return entry, true
}

func normalizeTranslations(tv TranslationValue) []domain.Translation {
	switch t := tv.(type) {
	case PlainString:
		return []domain.Translation{{Type: "", Translation: string(t)}}
	case StringList:
		out := make([]domain.Translation, 0, len(t))
		for _, s := range t {
			out = append(out, domain.Translation{Type: "", Translation: s})
		}
		return out
	case SinglePair:
		return normalizeTranslations(PairList{t})
	case PairList:
		out := make([]domain.Translation, 0, len(t))
		for _, item := range t {
			switch x := item.(type) {
			case PlainString:
				out = append(out, domain.Translation{Type: "", Translation: string(x)})
			case SinglePair:
				text, ok := x.text()
				if !ok {
					continue
				}
				out = append(out, domain.Translation{Type: coerce(x["type"]), Translation: text})
			}
		}
		return out
	default:
		return nil
	}
}

// phraseListKeys hold list-valued phrase translations, scanned in order.
var phraseListKeys = []string{"translations", "trans", "meanings"}

func normalizePhrase(item any) (domain.Phrase, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return domain.Phrase{}, false
	}
	phrase := coerce(obj["phrase"])
	if phrase == "" {
		return domain.Phrase{}, false
	}

	var texts []string
	add := func(s string) {
		if s != "" {
			texts = append(texts, s)
		}
	}

	for _, k := range phraseListKeys {
		switch t := Classify(obj[k]).(type) {
		case StringList:
			for _, s := range t {
				add(s)
			}
		case PairList:
			for _, item := range t {
				switch x := item.(type) {
				case PlainString:
					add(string(x))
				case SinglePair:
					if text, ok := x.text(); ok {
						add(text)
					}
				}
			}
		}
	}

	// Rare shape: a single string stored under the plural key.
	if s, ok := obj["translations"].(string); ok {
		add(s)
	}
	for _, k := range []string{"translation", "trans"} {
		if s, ok := obj[k].(string); ok {
			add(s)
		}
	}

	return domain.Phrase{
		Phrase:       phrase,
		Translations: domain.DeduplicateStrings(texts),
	}, true
}
