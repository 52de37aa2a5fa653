// Package converter streams a JSON word list of mixed shapes into a
// canonical, pretty-printed word list.
package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/q2019715/jieci-dictionary/internal/domain"
	"github.com/q2019715/jieci-dictionary/pkg/jsonarray"
)

// Options holds converter settings.
type Options struct {
	Encoding  string
	ChunkSize int
}

// Result holds the outcome of a conversion.
type Result struct {
	Read    int // array elements decoded
	Written int // canonical entries written
	Skipped int // elements dropped by normalization
}

// Run converts the JSON array at inPath into canonical entries at outPath.
//
// The output file is created only after the input has been recognised as
// an array. An error part way through leaves a partial output file behind.
func Run(ctx context.Context, inPath, outPath string, opts Options, log *slog.Logger) (Result, error) {
	var result Result
	start := time.Now()

	in, err := os.Open(inPath)
	if err != nil {
		return result, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	src, err := NewDecodingReader(in, opts.Encoding)
	if err != nil {
		return result, err
	}

	reader := jsonarray.NewReader(src, opts.ChunkSize)

	// Pull the first element before touching the output so a document that
	// is not an array fails without creating it.
	more := reader.Next()
	if err := reader.Err(); err != nil {
		return result, readError(inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return result, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer := NewWriter(out)

	for ; more; more = reader.Next() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Read++

		entry, ok := Normalize(reader.Value())
		if !ok {
			result.Skipped++
			log.Debug("skipped element",
				slog.Int("index", result.Read-1),
				slog.Int64("offset", reader.Offset()),
			)
			continue
		}
		if err := writer.Write(entry); err != nil {
			return result, err
		}
	}
	if err := reader.Err(); err != nil {
		return result, readError(inPath, err)
	}

	if err := writer.Close(); err != nil {
		return result, err
	}
	if err := out.Close(); err != nil {
		return result, fmt.Errorf("close output: %w", err)
	}
	result.Written = writer.Count()

	log.Info("convert complete",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.String("encoding", opts.Encoding),
		slog.Int("read", result.Read),
		slog.Int("written", result.Written),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// readError marks structural problems with the document as input errors.
// Decode and I/O errors are returned as they are.
func readError(path string, err error) error {
	var syn *jsonarray.SyntaxError
	if errors.Is(err, jsonarray.ErrNoArray) ||
		errors.Is(err, jsonarray.ErrUnexpectedEnd) ||
		errors.As(err, &syn) {
		return domain.NewInputError(path, err)
	}
	return err
}
