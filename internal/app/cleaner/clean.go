// Package cleaner strips annotation markup from the translations of a JSON
// word list and optionally splits multi-sense phrase translations.
package cleaner

import (
	"regexp"
	"strings"
)

// edgeCutset is trimmed from both ends of a cleaned string.
const edgeCutset = " \t\r\n;；，,"

var (
	// Full-width or ASCII parentheses, one non-greedy span each.
	parensRe   = regexp.MustCompile(`（[^）]*）|\([^)]*\)`)
	bracketsRe = regexp.MustCompile(`\[[^\]]*\]`)

	posPrefixRe = regexp.MustCompile(
		`(?i)^[\s\v\x1c-\x1f\p{Z}\x{85}]*(?:n|v|adj|adv|vt|vi|prep|conj|pron|interj|abbr|aux|num|art|det|modal)\.[\s\v\x1c-\x1f\p{Z}\x{85}]*`,
	)

	// \s alone is ASCII-only in RE2; \p{Z} adds U+3000, NBSP and friends,
	// and \x1c-\x1f are the ASCII information separators.
	whitespaceRe = regexp.MustCompile(`[\s\v\x1c-\x1f\p{Z}\x{85}]+`)

	senseSepRe = regexp.MustCompile(`[;；]+`)
)

// CleanText removes parenthetical asides, bracketed tags and a leading
// part-of-speech abbreviation from s, collapses whitespace, and trims
// whitespace and separator punctuation from both ends.
//
// Parentheses and brackets are removed before the POS prefix, so
// "v.[正式] 去做" becomes "去做".
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	s = parensRe.ReplaceAllString(s, "")
	s = bracketsRe.ReplaceAllString(s, "")
	s = posPrefixRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.Trim(s, edgeCutset)
}

// SplitSenses splits s on runs of ASCII or full-width semicolons, trims each
// piece and drops empty ones. A string without separators yields a single
// element equal to the trimmed input; a blank string yields an empty slice.
func SplitSenses(s string) []string {
	parts := senseSepRe.Split(s, -1)
	senses := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			senses = append(senses, p)
		}
	}
	return senses
}
