package assemble

import (
	"regexp"
	"strings"
)

// HyphenOptions configure dehyphenation of line-final word breaks.
type HyphenOptions struct {
	Enabled    bool             // Whether hyphenation resolution runs at all
	Patterns   []*regexp.Regexp // Trailing patterns that mark a hyphenated line
	BreakChars []string         // Break characters stripped before concatenation
	MaxPasses  int              // Hard bound on re-merge passes
}

// DefaultHyphenOptions returns hyphenation settings covering ASCII hyphen
// and em/en dashes, with the standard pass bound.
func DefaultHyphenOptions() HyphenOptions {
	return HyphenOptions{
		Enabled:    true,
		Patterns:   CompilePatterns([]string{`-$`, `—$`, `–$`}),
		BreakChars: []string{"-", "—", "–"},
		MaxPasses:  10,
	}
}

// CompilePatterns compiles trailing-hyphen patterns, dropping any that fail
// to compile. Malformed configuration degrades instead of aborting.
func CompilePatterns(patterns []string) []*regexp.Regexp {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

// Dehyphenate joins hyphen-terminated lines directly with their successors,
// reconstructing words split across line breaks. The pass loop repeats until
// a pass makes no merge, so a concatenation result that is itself
// hyphen-terminated gets merged again; MaxPasses bounds the loop and the
// best-effort result is returned when the cap is reached.
//
// Lines are never merged past the end of the given slice.
func Dehyphenate(lines []string, opts HyphenOptions) []string {
	if !opts.Enabled || len(lines) <= 1 {
		return lines
	}

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = 10
	}

	current := append([]string(nil), lines...)
	for pass := 0; pass < maxPasses; pass++ {
		var processed []string
		changed := false

		for i := 0; i < len(current); {
			line := current[i]
			if i+1 < len(current) && opts.isHyphenated(line) {
				processed = append(processed, opts.stripBreak(line)+current[i+1])
				i += 2
				changed = true
			} else {
				processed = append(processed, line)
				i++
			}
		}

		current = processed
		if !changed {
			break
		}
	}
	return current
}

// isHyphenated reports whether the line matches a trailing break pattern.
func (o HyphenOptions) isHyphenated(line string) bool {
	for _, re := range o.Patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// stripBreak removes the first matching break character from the line end.
func (o HyphenOptions) stripBreak(line string) string {
	for _, ch := range o.BreakChars {
		if strings.HasSuffix(line, ch) {
			return strings.TrimSuffix(line, ch)
		}
	}
	return line
}

// stripTrailingBreak removes a line-final break character, tolerating
// trailing whitespace after it. The second result reports whether a break
// character was found and removed.
func stripTrailingBreak(text string, opts HyphenOptions) (string, bool) {
	trimmed := strings.TrimRight(text, " ")
	for _, ch := range opts.BreakChars {
		if strings.HasSuffix(trimmed, ch) {
			return strings.TrimRight(strings.TrimSuffix(trimmed, ch), " "), true
		}
	}
	return text, false
}
