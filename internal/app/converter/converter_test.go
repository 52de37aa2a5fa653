package converter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/q2019715/jieci-dictionary/internal/domain"
	"github.com/q2019715/jieci-dictionary/pkg/jsonarray"
)

const mixedInput = `[
  {"word": "apple", "translations": [{"type": "n", "translation": "苹果"}],
   "phrases": [{"phrase": "apple pie", "translations": ["苹果派", "苹果派"]}]},
  {"translations": "no word"},
  "stray",
  {"word": "go", "translations": "去"}
]`

const mixedOutput = `[
  {
    "word": "apple",
    "translations": [
      {
        "type": "n",
        "translation": "苹果"
      }
    ],
    "phrases": [
      {
        "phrase": "apple pie",
        "translations": [
          "苹果派"
        ]
      }
    ]
  },
  {
    "word": "go",
    "translations": [
      {
        "type": "",
        "translation": "去"
      }
    ]
  }
]
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInput(t *testing.T, content string) (in, out string) {
	t.Helper()
	dir := t.TempDir()
	in = filepath.Join(dir, "in.json")
	out = filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))
	return in, out
}

func TestRun(t *testing.T) {
	t.Parallel()

	for _, chunk := range []int{1, 5, 64 * 1024} {
		in, out := writeInput(t, mixedInput)

		result, err := Run(context.Background(), in, out, Options{Encoding: "utf-8", ChunkSize: chunk}, discardLogger())
		require.NoError(t, err, "chunk size %d", chunk)
		assert.Equal(t, Result{Read: 4, Written: 2, Skipped: 2}, result, "chunk size %d", chunk)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, mixedOutput, string(got), "chunk size %d", chunk)
	}
}

func TestRun_EmptyArray(t *testing.T) {
	t.Parallel()

	in, out := writeInput(t, " [ ] ")

	result, err := Run(context.Background(), in, out, Options{}, discardLogger())
	require.NoError(t, err)
	assert.Zero(t, result.Written)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[\n\n]\n", string(got))
}

func TestRun_GBK(t *testing.T) {
	t.Parallel()

	gbk, err := simplifiedchinese.GBK.NewEncoder().String(`[{"word":"go","translations":"去"}]`)
	require.NoError(t, err)
	in, out := writeInput(t, gbk)

	result, err := Run(context.Background(), in, out, Options{Encoding: "gbk", ChunkSize: 3}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"translation": "去"`)
}

func TestRun_NotArrayCreatesNoOutput(t *testing.T) {
	t.Parallel()

	in, out := writeInput(t, `{"word":"apple"}`)

	_, err := Run(context.Background(), in, out, Options{}, discardLogger())
	require.Error(t, err)

	var inputErr *domain.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, jsonarray.ErrNoArray)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output file should not be created")
}

func TestRun_Truncated(t *testing.T) {
	t.Parallel()

	in, out := writeInput(t, `[{"word":"a"}, {"word":"b"},`)

	result, err := Run(context.Background(), in, out, Options{ChunkSize: 4}, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, jsonarray.ErrUnexpectedEnd)
	assert.Equal(t, 2, result.Read)
}

func TestRun_SyntaxError(t *testing.T) {
	t.Parallel()

	in, out := writeInput(t, `[{"word":"a"}, {"word": oops}]`)

	_, err := Run(context.Background(), in, out, Options{}, discardLogger())
	require.Error(t, err)

	var syn *jsonarray.SyntaxError
	assert.ErrorAs(t, err, &syn)
	var inputErr *domain.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestRun_DecodeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		encoding string
		content  string
	}{
		{encoding: "utf-8", content: "[{\"word\":\"\xff\xfe\"}]"},
		{encoding: "gbk", content: "[{\"word\":\"a\x81 \",\"translations\":\"x\"}]"},
	}

	for _, tt := range tests {
		in, out := writeInput(t, tt.content)

		result, err := Run(context.Background(), in, out, Options{Encoding: tt.encoding}, discardLogger())
		require.Error(t, err, tt.encoding)
		assert.Zero(t, result.Written, tt.encoding)

		var decErr *DecodeError
		assert.True(t, errors.As(err, &decErr), "%s: want *DecodeError, got %v", tt.encoding, err)
	}
}

func TestRun_UnknownEncoding(t *testing.T) {
	t.Parallel()

	in, out := writeInput(t, `[]`)

	_, err := Run(context.Background(), in, out, Options{Encoding: "nope"}, discardLogger())
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Run(context.Background(), filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.json"),
		Options{}, discardLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	in, out := writeInput(t, mixedInput)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, in, out, Options{}, discardLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
