package converter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUnknownEncoding is returned for an encoding label that is not
// recognised.
var ErrUnknownEncoding = errors.New("unknown encoding")

// ErrIllegalSequence reports input bytes that the chosen legacy encoding
// cannot decode.
var ErrIllegalSequence = errors.New("illegal byte sequence")

// DecodeError reports input text that is not valid in the chosen encoding.
type DecodeError struct {
	Encoding string
	// Offset counts decoded bytes delivered before the failure.
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s input after %d bytes: %v", e.Encoding, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodingReader returns a reader producing UTF-8 from r, which is
// encoded as label. UTF-8 input is validated strictly and a leading byte
// order mark is dropped. Other labels are resolved with the WHATWG encoding
// names ("gbk", "gb18030", "shift_jis", "utf-16le", "latin1", ...) and
// fail on bytes the encoding cannot decode.
func NewDecodingReader(r io.Reader, label string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(label))

	var t transform.Transformer
	switch name {
	case "", "utf-8", "utf8", "utf-8-sig", "utf8-sig":
		name = "utf-8"
		t = encoding.UTF8Validator
		br := bufio.NewReader(r)
		if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
		}
		r = br
	default:
		enc, canonical := charset.Lookup(name)
		if enc == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
		}
		name = canonical
		t = newStrictDecoder(enc)
	}

	return &decodeReader{
		r:    transform.NewReader(r, t),
		name: name,
	}, nil
}

type decodeReader struct {
	r    io.Reader
	name string
	n    int64
}

func (d *decodeReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	d.n += int64(n)
	if err != nil && (errors.Is(err, encoding.ErrInvalidUTF8) || errors.Is(err, ErrIllegalSequence)) {
		return n, &DecodeError{Encoding: d.name, Offset: d.n, Err: err}
	}
	return n, err
}

var replacementChar = []byte("\uFFFD")

// strictDecoder fails where the wrapped decoder substitutes U+FFFD for
// bytes it cannot decode. A U+FFFD that the input itself encodes is kept.
type strictDecoder struct {
	dec transform.Transformer
	// encoded is U+FFFD in the source encoding, nil if it has no form there.
	encoded []byte
}

func newStrictDecoder(enc encoding.Encoding) *strictDecoder {
	d := &strictDecoder{dec: enc.NewDecoder()}
	if b, err := enc.NewEncoder().Bytes(replacementChar); err == nil && len(b) > 0 {
		d.encoded = b
	}
	return d
}

func (d *strictDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst, nSrc, err = d.dec.Transform(dst, src, atEOF)

	out := dst[:nDst]
	got := bytes.Count(out, replacementChar)
	if got == 0 {
		return nDst, nSrc, err
	}
	want := 0
	if d.encoded != nil {
		want = bytes.Count(src[:nSrc], d.encoded)
	}
	if got <= want {
		return nDst, nSrc, err
	}

	// Cut the output before the first substitution the input does not
	// account for.
	cut := 0
	for i := 0; ; i++ {
		cut += bytes.Index(out[cut:], replacementChar)
		if i == want {
			break
		}
		cut += len(replacementChar)
	}
	return cut, nSrc, ErrIllegalSequence
}

func (d *strictDecoder) Reset() {
	d.dec.Reset()
}
