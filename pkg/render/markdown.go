package render

import (
	"strings"

	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/mapping"
)

// Markdown renders finalized page units as lightweight markup. Line
// templates are applied when the units' lines are collected, so this stage
// only arranges blocks and separators. An extracted page number renders as a
// leading break marker when page breaks are enabled.
func Markdown(units []assemble.Unit, pageNumber string, rules *mapping.Rules) string {
	lineSep := rules.Markdown.LineSeparator
	if lineSep == "" {
		lineSep = "\n"
	}
	paraSep := rules.Markdown.ParagraphSeparator
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
