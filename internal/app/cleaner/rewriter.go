package cleaner

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/q2019715/jieci-dictionary/internal/domain"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// Width 0 keeps every array element on its own line.
	prettyOptions = &pretty.Options{Indent: "  "}
)

// Rewrite cleans every entry of the JSON array in data and returns the whole
// document pretty-printed with a two-space indent, non-ASCII text written
// literally, and a trailing newline.
//
// A document whose top-level value is not an array fails with
// domain.ErrNotArray; nothing is produced in that case.
func Rewrite(data []byte, opts Options) ([]byte, Stats, error) {
	var stats Stats

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, stats, fmt.Errorf("%w: not valid UTF-8", domain.ErrInvalidInput)
	}
	if !gjson.ValidBytes(data) {
		return nil, stats, fmt.Errorf("%w: malformed JSON", domain.ErrInvalidInput)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, stats, domain.ErrNotArray
	}

	compact := make([]byte, 0, len(data))
	compact = append(compact, '[')

	var walkErr error
	doc.ForEach(func(_, value gjson.Result) bool {
		cleaned, err := CleanEntry([]byte(value.Raw), opts, &stats)
		if err != nil {
			walkErr = fmt.Errorf("entry %d: %w", stats.Entries, err)
			return false
		}
		if stats.Entries > 0 {
			compact = append(compact, ',')
		}
		compact = appendLiteral(compact, gjson.ParseBytes(cleaned))
		stats.Entries++
		return true
	})
	if walkErr != nil {
		return nil, stats, walkErr
	}

	compact = append(compact, ']')

	return pretty.PrettyOptions(compact, prettyOptions), stats, nil
}

// RewriteFile reads inPath, rewrites it and writes the result to outPath.
// outPath is only created once the whole document has been rewritten.
func RewriteFile(inPath, outPath string, opts Options, log *slog.Logger) (Stats, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("read input: %w", err)
	}

	out, stats, err := Rewrite(data, opts)
	if err != nil {
		return stats, domain.NewInputError(inPath, err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return stats, fmt.Errorf("write output: %w", err)
	}

	log.Info("clean complete",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.Bool("split_phrases", opts.SplitPhrases),
		slog.Int("entries", stats.Entries),
		slog.Int("skipped", stats.SkippedEntries),
		slog.Int("translations_cleaned", stats.TranslationsCleaned),
		slog.Int("phrases_cleaned", stats.PhrasesCleaned),
		slog.Int("phrases_split", stats.PhrasesSplit),
	)
	return stats, nil
}
