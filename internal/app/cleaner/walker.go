package cleaner

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Options controls how entries are cleaned.
type Options struct {
	// SplitPhrases replaces phrases[*].translation with a
	// phrases[*].translations list split on semicolons.
	SplitPhrases bool
}

// Stats counts what a rewrite touched.
type Stats struct {
	Entries             int
	SkippedEntries      int
	TranslationsCleaned int
	PhrasesCleaned      int
	PhrasesSplit        int
}

// CleanEntry cleans the translations and phrases of one raw JSON entry and
// returns the edited entry. Object key order is preserved. Values that do
// not have the expected shapes are returned unchanged.
func CleanEntry(raw []byte, opts Options, stats *Stats) ([]byte, error) {
	entry := gjson.ParseBytes(raw)
	if !entry.IsObject() {
		stats.SkippedEntries++
		return raw, nil
	}

	out := raw
	var err error

	if translations := entry.Get("translations"); translations.IsArray() {
		for i, item := range translations.Array() {
			if !item.IsObject() {
				continue
			}
			tr := item.Get("translation")
			if tr.Type != gjson.String {
				continue
			}
			path := fmt.Sprintf("translations.%d.translation", i)
			if out, err = sjson.SetBytes(out, path, CleanText(tr.String())); err != nil {
				return nil, fmt.Errorf("set %s: %w", path, err)
			}
			stats.TranslationsCleaned++
		}
	}

	if phrases := entry.Get("phrases"); phrases.IsArray() {
		for i, ph := range phrases.Array() {
			if !ph.IsObject() {
				continue
			}
			if out, err = cleanPhrase(out, ph, fmt.Sprintf("phrases.%d", i), opts, stats); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// cleanPhrase edits the phrase found at base inside out.
func cleanPhrase(out []byte, ph gjson.Result, base string, opts Options, stats *Stats) ([]byte, error) {
	var err error
	translations := ph.Get("translations")
	touched := false

	if tr := ph.Get("translation"); tr.Type == gjson.String {
		cleaned := CleanText(tr.String())
		if opts.SplitPhrases {
			// The split list replaces any translations already present.
			// Each piece is cleaned again so "a; n. b" loses the second POS.
			senses := cleanStrings(SplitSenses(cleaned))
			if out, err = sjson.SetBytes(out, base+".translations", senses); err != nil {
				return nil, fmt.Errorf("set %s.translations: %w", base, err)
			}
			if out, err = sjson.DeleteBytes(out, base+".translation"); err != nil {
				return nil, fmt.Errorf("delete %s.translation: %w", base, err)
			}
			stats.PhrasesSplit++
			stats.PhrasesCleaned++
			return out, nil
		}

		if out, err = sjson.SetBytes(out, base+".translation", cleaned); err != nil {
			return nil, fmt.Errorf("set %s.translation: %w", base, err)
		}
		touched = true
	}

	if translations.IsArray() {
		var items []string
		for _, x := range translations.Array() {
			if x.Type == gjson.String {
				items = append(items, x.String())
			}
		}
		if out, err = sjson.SetBytes(out, base+".translations", cleanStrings(items)); err != nil {
			return nil, fmt.Errorf("set %s.translations: %w", base, err)
		}
		touched = true
	}

	if touched {
		stats.PhrasesCleaned++
	}
	return out, nil
}

// cleanStrings applies CleanText to every element. The result is never nil
// so it always encodes as a JSON list.
func cleanStrings(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, CleanText(s))
	}
	return out
}
