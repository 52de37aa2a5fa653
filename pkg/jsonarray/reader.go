// Package jsonarray streams the elements of a top-level JSON array from an
// io.Reader without holding the whole document in memory.
//
// Input is read in fixed-size chunks. An element that straddles a chunk
// boundary is completed by reading more input, so memory stays proportional
// to the chunk size plus the largest single element.
package jsonarray

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is used when NewReader is given a chunk size below one.
const DefaultChunkSize = 64 * 1024

var (
	// ErrNoArray is returned when the first non-whitespace byte of the input
	// is not '[' or the input is empty.
	ErrNoArray = errors.New("input does not start with a JSON array")

	// ErrUnexpectedEnd is returned when the input ends before the array is
	// closed.
	ErrUnexpectedEnd = errors.New("unexpected end of input inside JSON array")
)

// SyntaxError reports malformed JSON at an absolute byte offset of the input.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed JSON at offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Reader yields array elements one at a time.
//
//	r := jsonarray.NewReader(f, 0)
//	for r.Next() {
//		v := r.Value()
//	}
//	if err := r.Err(); err != nil { ... }
//
// Numbers are decoded as json.Number so their literal text survives.
type Reader struct {
	src       io.Reader
	chunkSize int

	buf  []byte
	pos  int   // cursor into buf
	base int64 // input offset of buf[0]
	eof  bool

	started bool
	done    bool
	value   any
	err     error
}

// NewReader returns a Reader over src reading chunkSize bytes at a time.
func NewReader(src io.Reader, chunkSize int) *Reader {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &Reader{
		src:       src,
		chunkSize: chunkSize,
	}
}

// Next advances to the next element. It returns false when the array is
// closed or an error occurred; Err tells the two apart.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}
	r.value = nil

	if !r.started {
		if err := r.open(); err != nil {
			return r.fail(err)
		}
		r.started = true
	}

	for {
		if err := r.skipSeparators(); err != nil {
			return r.fail(err)
		}
		if r.buf[r.pos] == ']' {
			r.pos++
			r.done = true
			return false
		}

		v, n, err := r.decodeAt(r.pos)
		if err == nil {
			r.value = v
			r.pos += n
			return true
		}
		if !errors.Is(err, errNeedMore) {
			return r.fail(err)
		}
		if r.eof {
			return r.fail(ErrUnexpectedEnd)
		}
		if err := r.fill(); err != nil {
			return r.fail(err)
		}
	}
}

// Value returns the element decoded by the last successful call to Next.
func (r *Reader) Value() any {
	return r.value
}

// Err returns the first error encountered, or nil after a clean end.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the number of input bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.base + int64(r.pos)
}

var errNeedMore = errors.New("need more input")

// decodeAt decodes one value starting at buf[at]. It reports errNeedMore
// when the value may continue past the buffered input.
func (r *Reader) decodeAt(at int) (any, int, error) {
	dec := json.NewDecoder(bytes.NewReader(r.buf[at:]))
	dec.UseNumber()

	var v any
	err := dec.Decode(&v)
	n := int(dec.InputOffset())

	switch {
	case err == nil:
		// A scalar ending exactly at the buffer end may be cut short,
		// e.g. "12" of "123".
		if at+n == len(r.buf) && !r.eof {
			return nil, 0, errNeedMore
		}
		return v, n, nil
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return nil, 0, errNeedMore
	}

	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		// syn.Offset counts the offending byte.
		return nil, 0, &SyntaxError{Offset: r.base + int64(at) + syn.Offset - 1, Err: err}
	}
	return nil, 0, &SyntaxError{Offset: r.base + int64(at), Err: err}
}

// open consumes leading whitespace and the opening bracket.
func (r *Reader) open() error {
	for {
		r.pos = skipSpace(r.buf, r.pos)
		if r.pos < len(r.buf) {
			break
		}
		if r.eof {
			return ErrNoArray
		}
		if err := r.fill(); err != nil {
			return err
		}
	}
	if r.buf[r.pos] != '[' {
		return ErrNoArray
	}
	r.pos++
	return nil
}

// skipSeparators advances past whitespace and commas until a value or the
// closing bracket is buffered.
func (r *Reader) skipSeparators() error {
	for {
		for r.pos < len(r.buf) && (isSpace(r.buf[r.pos]) || r.buf[r.pos] == ',') {
			r.pos++
		}
		if r.pos < len(r.buf) {
			return nil
		}
		if r.eof {
			return ErrUnexpectedEnd
		}
		if err := r.fill(); err != nil {
			return err
		}
	}
}

// fill appends up to one chunk of input to the buffer, dropping bytes the
// cursor has already passed.
func (r *Reader) fill() error {
	if r.pos > 0 && len(r.buf) > r.chunkSize {
		n := copy(r.buf, r.buf[r.pos:])
		r.buf = r.buf[:n]
		r.base += int64(r.pos)
		r.pos = 0
	}

	start := len(r.buf)
	r.buf = append(r.buf, make([]byte, r.chunkSize)...)
	n, err := io.ReadFull(r.src, r.buf[start:])
	r.buf = r.buf[:start+n]

	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		r.eof = true
		return nil
	default:
		return fmt.Errorf("read input: %w", err)
	}
}

func (r *Reader) fail(err error) bool {
	r.err = err
	r.done = true
	return false
}

func skipSpace(b []byte, i int) int {
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
