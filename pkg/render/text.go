package render

import (
	"regexp"
	"strings"

	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/mapping"
)

// Text renders finalized page units as plain text.
func Text(units []assemble.Unit, pageNumber string, rules *mapping.Rules) string {
	lineSep := rules.Text.LineSeparator
	if lineSep == "" {
		lineSep = "\n"
	}
	paraSep := rules.Text.ParagraphSeparator
	if paraSep == "" {
		paraSep = "\n\n"
	}

	var blocks []string
	if pageNumber != "" && rules.Page.IncludePageBreaks {
		blocks = append(blocks,
			strings.ReplaceAll(rules.Page.PageBreakTemplate, "{page}", pageNumber))
	}
	for _, unit := range units {
		if len(unit.Lines) == 0 {
			continue
		}
		blocks = append(blocks, strings.Join(unit.Lines, lineSep))
	}

	out := strings.Join(blocks, paraSep)
	if rules.Page.CleanOutput {
		out = Clean(out)
	}
	if out != "" {
		out += "\n"
	}
	return out
}

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes whitespace in rendered output: trailing spaces are
// stripped and runs of blank lines collapse to a single blank line.
func Clean(s string) string {
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
