package cleaner

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q2019715/jieci-dictionary/internal/domain"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRewrite_Golden(t *testing.T) {
	t.Parallel()

	in, err := os.ReadFile(testdataPath("wordlist.json"))
	require.NoError(t, err)
	want, err := os.ReadFile(testdataPath("wordlist.golden.json"))
	require.NoError(t, err)

	got, stats, err := Rewrite(in, Options{})
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
	assert.Equal(t, Stats{
		Entries:             4,
		SkippedEntries:      1,
		TranslationsCleaned: 2,
		PhrasesCleaned:      2,
	}, stats)
}

func TestRewrite_Formatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty array",
			in:   `[]`,
			want: "[]\n",
		},
		{
			name: "escaped unicode written literally",
			in:   `[{"word":"\u82f9\u679c"}]`,
			want: "[\n  {\n    \"word\": \"苹果\"\n  }\n]\n",
		},
		{
			name: "html characters not escaped",
			in:   `[{"word":"a<b> & c"}]`,
			want: "[\n  {\n    \"word\": \"a<b> & c\"\n  }\n]\n",
		},
		{
			name: "scalars kept",
			in:   `[1, "s", null, true, 2.50e3]`,
			want: "[\n  1,\n  \"s\",\n  null,\n  true,\n  2.50e3\n]\n",
		},
		{
			name: "byte order mark ignored",
			in:   "\ufeff[1]",
			want: "[\n  1\n]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _, err := Rewrite([]byte(tt.in), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRewrite_SplitPhrases(t *testing.T) {
	t.Parallel()

	in := `[{"word":"take","phrases":[{"phrase":"take off","translation":"起飞；脱下（衣服）"}]}]`
	want := "[\n" +
		"  {\n" +
		"    \"word\": \"take\",\n" +
		"    \"phrases\": [\n" +
		"      {\n" +
		"        \"phrase\": \"take off\",\n" +
		"        \"translations\": [\n" +
		"          \"起飞\",\n" +
		"          \"脱下\"\n" +
		"        ]\n" +
		"      }\n" +
		"    ]\n" +
		"  }\n" +
		"]\n"

	got, stats, err := Rewrite([]byte(in), Options{SplitPhrases: true})
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
	assert.Equal(t, 1, stats.PhrasesSplit)
}

func TestRewrite_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "object at top level", in: `{"word":"x"}`, wantErr: domain.ErrNotArray},
		{name: "string at top level", in: `"x"`, wantErr: domain.ErrNotArray},
		{name: "malformed json", in: `[{"word":`, wantErr: domain.ErrInvalidInput},
		{name: "empty input", in: ``, wantErr: domain.ErrInvalidInput},
		{name: "invalid utf-8", in: "[\"\xff\"]", wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _, err := Rewrite([]byte(tt.in), Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestRewriteFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "cleaned.json")

	stats, err := RewriteFile(testdataPath("wordlist.json"), out, Options{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Entries)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want, err := os.ReadFile(testdataPath("wordlist.golden.json"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRewriteFile_NotArrayWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"word":"apple"}`), 0o644))

	_, err := RewriteFile(in, out, Options{}, discardLogger())
	require.Error(t, err)

	var inputErr *domain.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, in, inputErr.Path)
	assert.ErrorIs(t, err, domain.ErrNotArray)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output file should not be created")
}

func TestRewriteFile_MissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := RewriteFile(filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.json"), Options{}, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
