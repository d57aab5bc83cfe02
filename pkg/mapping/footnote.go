package mapping

import (
	"regexp"
	"strings"
)

// Footnote is one marginal note split into its reference symbol and body.
type Footnote struct {
	Symbol string // Leading reference mark, empty when none was found
	Text   string // Note body without the mark
	Full   string // Original text as transcribed
}

// genericSymbolRe matches a leading run of non-alphanumeric marks, the
// fallback when no configured pattern applies.
var genericSymbolRe = regexp.MustCompile(`^([^\p{L}\p{N}\s]+)\s*`)

// SplitFootnote separates a footnote's reference symbol from its body text.
// Configured patterns are tried in order; when none matches, a generic
// leading-symbol match is attempted before giving up and returning the text
// unsplit.
func (r *Rules) SplitFootnote(text string) Footnote {
	fn := Footnote{Full: text, Text: text}
	trimmed := strings.TrimSpace(text)

	for _, re := range r.footnoteRes {
		m := re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		fn.Symbol = strings.TrimSpace(m[len(m)-1])
		fn.Text = strings.TrimSpace(trimmed[len(m[0]):])
		return fn
	}

	if m := genericSymbolRe.FindStringSubmatch(trimmed); m != nil {
		fn.Symbol = m[1]
		fn.Text = strings.TrimSpace(trimmed[len(m[0]):])
	}
	return fn
}
