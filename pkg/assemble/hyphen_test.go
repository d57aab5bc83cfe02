package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDehyphenate(t *testing.T) {
	opts := DefaultHyphenOptions()

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "simple word break",
			lines: []string{"transcrip-", "tion continues"},
			want:  []string{"transcription continues"},
		},
		{
			name:  "em dash break",
			lines: []string{"some—", "thing"},
			want:  []string{"something"},
		},
		{
			name:  "no break leaves lines alone",
			lines: []string{"first line", "second line"},
			want:  []string{"first line", "second line"},
		},
		{
			name:  "multiple breaks in one group",
			lines: []string{"hyphen-", "ated and frag-", "mented"},
			want:  []string{"hyphenated and fragmented"},
		},
		{
			name:  "merge result hyphenated again",
			lines: []string{"a-", "-", "b"},
			want:  []string{"ab"},
		},
		{
			name:  "single line untouched",
			lines: []string{"alone-"},
			want:  []string{"alone-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dehyphenate(tt.lines, opts))
		})
	}
}

func TestDehyphenateDisabled(t *testing.T) {
	opts := DefaultHyphenOptions()
	opts.Enabled = false

	lines := []string{"hyphen-", "ated"}
	assert.Equal(t, lines, Dehyphenate(lines, opts))
}

func TestDehyphenatePassCap(t *testing.T) {
	opts := DefaultHyphenOptions()
	opts.MaxPasses = 2

	// Every pass halves the count; the cap stops the loop before
	// everything collapses into one line.
	lines := []string{"a-", "b-", "c-", "d-", "e-", "f-", "g-", "h"}
	got := Dehyphenate(lines, opts)
	assert.Equal(t, []string{"abcd-", "efgh"}, got)
}

func TestDehyphenateLastLineNeverMergesPastEnd(t *testing.T) {
	got := Dehyphenate([]string{"first", "trailing-"}, DefaultHyphenOptions())
	assert.Equal(t, []string{"first", "trailing-"}, got)
}

func TestCompilePatternsDropsInvalid(t *testing.T) {
	compiled := CompilePatterns([]string{`-$`, `([`, `—$`})
	assert.Len(t, compiled, 2)
}

func TestStripTrailingBreak(t *testing.T) {
	opts := DefaultHyphenOptions()

	got, had := stripTrailingBreak("word- ", opts)
	assert.True(t, had)
	assert.Equal(t, "word", got)

	got, had = stripTrailingBreak("word", opts)
	assert.False(t, had)
	assert.Equal(t, "word", got)
}
