package converter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/tidwall/pretty"

	"github.com/q2019715/jieci-dictionary/internal/domain"
)

// entryPretty indents entries one level so they nest inside the array.
var entryPretty = &pretty.Options{Prefix: "  ", Indent: "  "}

// Writer emits a JSON array one entry at a time. Only the entry being
// written is held in memory.
type Writer struct {
	w       *bufio.Writer
	count   int
	started bool
	err     error
}

// NewWriter returns a Writer emitting to w. Nothing is written until the
// first call to Write or Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends one entry to the array.
func (w *Writer) Write(e domain.Entry) error {
	if w.err != nil {
		return w.err
	}

	compact, err := domain.MarshalLiteral(e)
	if err != nil {
		return fmt.Errorf("encode entry %q: %w", e.Word, err)
	}
	body := bytes.TrimSuffix(pretty.PrettyOptions(compact, entryPretty), []byte("\n"))

	if !w.started {
		w.writeString("[\n")
		w.started = true
	} else {
		w.writeString(",\n")
	}
	w.write(body)
	if w.err != nil {
		return w.err
	}

	w.count++
	return nil
}

// Close terminates the array and flushes buffered output. It does not close
// the underlying writer.
func (w *Writer) Close() error {
	if !w.started {
		w.writeString("[\n")
		w.started = true
	}
	w.writeString("\n]\n")
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// Count returns the number of entries written.
func (w *Writer) Count() int {
	return w.count
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = fmt.Errorf("write output: %w", err)
	}
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	if _, err := w.w.Write(b); err != nil {
		w.err = fmt.Errorf("write output: %w", err)
	}
}
