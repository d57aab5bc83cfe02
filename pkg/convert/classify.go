// Package convert runs the page conversion pipeline: it classifies the
// regions of a parsed transcription page, collects their content lines,
// assembles structural units and renders the selected output format.
package convert

import (
	"fmt"
	"strings"

	"github.com/altoweave/altoweave/pkg/alto"
	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/mapping"
)

// Format selects the output document format.
type Format string

const (
	FormatTEI      Format = "tei"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTEI:
		return FormatTEI, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want tei, markdown or text)", s)
}

// ContentBlock is one region together with its resolved semantic type.
type ContentBlock struct {
	Block alto.TextBlock
	Type  string
}

// Classified is the result of sorting a page's regions by role.
type Classified struct {
	PageNumber string          // Extracted printed page number, empty when none
	Footnotes  []mapping.Footnote
	FormWork   []ContentBlock  // Regions rendered as form-work elements
	Content    []ContentBlock  // Regions contributing content lines
}

// Classify sorts the regions of a page by their configured role. Regions of
// unconfigured types take the default block type's rule, so unfamiliar zone
// labels still convert as content.
func Classify(doc *alto.Document, rules *mapping.Rules) Classified {
	var c Classified
	if len(doc.Pages) == 0 {
		return c
	}

	for _, block := range doc.Pages[0].Blocks {
		blockType := rules.BlockType(block.TagRefs, doc.Tags)
		rule := rules.Block(blockType)

		switch {
		case rule.ExtractPageNumber:
			text := block.Text()
			if c.PageNumber == "" && alto.HasDigits(text) {
				c.PageNumber = text
			}

		case rule.ExtractFootnote:
			for _, line := range block.Lines {
				if text := line.Text(); text != "" {
					c.Footnotes = append(c.Footnotes, rules.SplitFootnote(text))
				}
			}

		case rule.SkipContent:
			if rule.Element != "" {
				c.FormWork = append(c.FormWork, ContentBlock{Block: block, Type: blockType})
			}

		case rule.ProcessLines:
			c.Content = append(c.Content, ContentBlock{Block: block, Type: blockType})
		}
	}
	return c
}

// ContentLines collects the non-empty lines of one content region as
// assembly input. For lightweight-markup and plain-text output the line
// templates are applied here, so assembly and rendering see the final line
// texts. zoneIDs, when non-nil, links each line to its facsimile zone.
func ContentLines(cb ContentBlock, doc *alto.Document, rules *mapping.Rules, format Format, zoneIDs map[string]string) []assemble.ContentLine {
	var lines []assemble.ContentLine
	for _, line := range cb.Block.Lines {
		text := line.Text()
		if text == "" {
			continue
		}
		lineType := rules.LineType(line.TagRefs, doc.Tags)
		rule := rules.Line(lineType)

		switch format {
		case FormatMarkdown:
			if rule.Template != "" {
				text = strings.ReplaceAll(rule.Template, "{text}", text)
			}
		case FormatText:
			if rule.TextTemplate != "" {
				text = strings.ReplaceAll(rule.TextTemplate, "{text}", text)
			}
		}

		cl := assemble.ContentLine{
			Text:     text,
			Type:     lineType,
			RegionID: cb.Block.ID,
		}
		if zoneIDs != nil {
			cl.Ref = zoneIDs[line.ID]
		}
		lines = append(lines, cl)
	}
	return lines
}

// RegionUnits runs one region's lines through the container state machine
// and returns its finalized units.
func RegionUnits(lines []assemble.ContentLine, rules *mapping.Rules) []assemble.Unit {
	state := assemble.NewRegionState()
	var units []assemble.Unit
	for _, line := range lines {
		units = append(units, state.Feed(line, rules.Behavior(line.Type))...)
	}
	return append(units, state.Flush()...)
}
