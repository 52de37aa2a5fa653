package domain

// Entry is one word of a dictionary word list in canonical form.
type Entry struct {
	Word         string        `json:"word"`
	Translations []Translation `json:"translations"`
	Phrases      []Phrase      `json:"phrases,omitempty"`
}

// Translation is one sense of a word. Type is usually a part-of-speech
// label ("n.", "vt.") and may be empty.
type Translation struct {
	Type        string `json:"type"`
	Translation string `json:"translation"`
}

// Phrase is a set expression containing the word, with its translations.
type Phrase struct {
	Phrase       string   `json:"phrase"`
	Translations []string `json:"translations,omitempty"`
}

// NewEntry returns an Entry with a non-nil, empty translations list so that
// it always serializes as "translations": [].
func NewEntry(word string) Entry {
	return Entry{
		Word:         word,
		Translations: make([]Translation, 0),
	}
}

// AddTranslation appends a translation record.
func (e *Entry) AddTranslation(typ, text string) {
	e.Translations = append(e.Translations, Translation{Type: typ, Translation: text})
}
