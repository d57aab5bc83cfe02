package book

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/altoweave/altoweave/pkg/alto"
	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/convert"
	"github.com/altoweave/altoweave/pkg/facsimile"
	"github.com/altoweave/altoweave/pkg/mapping"
	"github.com/altoweave/altoweave/pkg/render"
)

// Assembler converts a sequence of transcription pages into one document.
type Assembler struct {
	Rules      *mapping.Rules
	MergeLines bool // Continue paragraphs across page boundaries
	Facsimile  bool // Include the spatial overlay for all pages
}

// Report summarizes one assembly run.
type Report struct {
	ConversionID string
	TotalPages   int
	Processed    int
	Skipped      []SkippedPage
	Words        int
}

// SkippedPage records one page left out of the assembled document.
type SkippedPage struct {
	Path   string
	Reason error
}

// page is one successfully parsed manifest entry.
type page struct {
	seq int // 1-based manifest position
	doc *alto.Document
}

// ConvertBook assembles all pages of a manifest into one XML document.
// Pages that cannot be read or parsed are reported and skipped; the open
// paragraph state carries over them unchanged.
func (a *Assembler) ConvertBook(m *Manifest) ([]byte, Report, error) {
	rules := a.Rules
	if rules == nil {
		rules = mapping.Default()
	}

	report := Report{
		ConversionID: uuid.NewString(),
		TotalPages:   m.TotalPages,
	}

	var pages []page
	for i, path := range m.Pages {
		doc, err := loadPage(path)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedPage{Path: path, Reason: err})
			continue
		}
		pages = append(pages, page{seq: i + 1, doc: doc})
	}
	report.Processed = len(pages)
	if len(pages) == 0 {
		return nil, report, fmt.Errorf("no readable pages in manifest %s", m.Path)
	}

	var surfaces []facsimile.PageFacsimile
	zoneIDs := make(map[int]map[string]string)
	if a.Facsimile {
		for _, p := range pages {
			pf, err := facsimile.ExtractPage(p.doc, p.seq)
			if err != nil {
				continue
			}
			surfaces = append(surfaces, pf)
			zoneIDs[p.seq] = pf.ZoneIDs()
		}
	}

	root := render.Document(rules)
	render.BookHeader(root, m.TotalPages, report.ConversionID, rules)
	if len(surfaces) > 0 {
		root.Append(facsimile.Section(surfaces, rules.Facsimile))
	}

	body := root.SubElement("text").SubElement("body")
	target := body
	if rules.Book.CreateBookDiv {
		target = body.SubElement("div")
		if rules.Book.DivType != "" {
			target.Set("type", rules.Book.DivType)
		}
	}

	if a.MergeLines {
		report.Words = a.assembleMerged(target, pages, zoneIDs, rules)
	} else {
		report.Words = a.assemblePaged(target, pages, zoneIDs, rules)
	}

	return render.Serialize(root), report, nil
}

// assembleMerged threads the open paragraph state across all pages.
func (a *Assembler) assembleMerged(target *render.Element, pages []page, zoneIDs map[int]map[string]string, rules *mapping.Rules) int {
	opts := assemble.BookOptions{Hyphen: rules.HyphenOptions()}
	var st assemble.OpenState
	words := 0

	for i, p := range pages {
		in := assemble.PageInput{
			Break: assemble.PageBreak{
				Number: p.seq,
				Facs:   a.pageFacs(p, zoneIDs),
			},
			// The flow opens with the first page's content; break
			// markers only separate it from the pages that follow.
			InsertBreak: i > 0,
			Lines:       bookLines(p, zoneIDs[p.seq], rules),
		}
		units, next := assemble.ProcessPage(in, st, rules.Behavior, opts)
		st = next
		words += countBookWords(units)
		render.AppendBookUnits(target, units, rules)
		appendPageExtras(target, p, rules)
	}

	final := assemble.Finish(st)
	words += countBookWords(final)
	render.AppendBookUnits(target, final, rules)
	return words
}

// assemblePaged keeps each page's units separate behind its break marker.
func (a *Assembler) assemblePaged(target *render.Element, pages []page, zoneIDs map[int]map[string]string, rules *mapping.Rules) int {
	words := 0
	for _, p := range pages {
		pb := target.SubElement("pb")
		pb.Set("n", fmt.Sprintf("%d", p.seq))
		if facs := a.pageFacs(p, zoneIDs); facs != "" {
			pb.Set("facs", facs)
		}

		lines := bookLines(p, zoneIDs[p.seq], rules)
		units := groupByRegion(lines, rules)
		for _, u := range units {
			for _, line := range u.Lines {
				words += len(strings.Fields(line))
			}
		}
		render.AppendUnits(target, units, rules)
		appendPageExtras(target, p, rules)
	}
	return words
}

// appendPageExtras renders the page's excluded regions as standalone
// elements: running titles, quire marks, figures and marginal notes keep
// their output element but never interrupt paragraph continuity. Numbering
// regions are represented by the page's break marker and emit nothing here.
func appendPageExtras(target *render.Element, p page, rules *mapping.Rules) {
	if len(p.doc.Pages) == 0 {
		return
	}
	for _, block := range p.doc.Pages[0].Blocks {
		blockType := rules.BlockType(block.TagRefs, p.doc.Tags)
		rule := rules.Block(blockType)
		if !rule.SkipInBookFlow || rule.Element == "" || rule.ExtractPageNumber {
			continue
		}
		e := target.SubElement(rule.Element)
		for k, v := range rule.Attributes {
			e.Set(k, v)
		}
		if rule.ExtractFootnote {
			fn := rules.SplitFootnote(block.Text())
			if fn.Symbol != "" {
				e.Set("n", fn.Symbol)
			}
			e.Text = fn.Text
		} else {
			e.Text = block.Text()
		}
	}
}

// pageFacs returns the break marker's facsimile reference: the page surface
// identifier when the overlay is included, the source image name otherwise.
func (a *Assembler) pageFacs(p page, zoneIDs map[int]map[string]string) string {
	if _, ok := zoneIDs[p.seq]; ok {
		return fmt.Sprintf("#facs_page_%d", p.seq)
	}
	if p.doc.SourceImage != "" {
		return p.doc.SourceImage
	}
	return ""
}

// bookLines collects the content lines of one page that participate in the
// book flow. Regions configured out of the flow, page numbers, running
// titles and marginal notes among them, contribute nothing here.
func bookLines(p page, zones map[string]string, rules *mapping.Rules) []assemble.ContentLine {
	var lines []assemble.ContentLine
	if len(p.doc.Pages) == 0 {
		return nil
	}
	for _, block := range p.doc.Pages[0].Blocks {
		blockType := rules.BlockType(block.TagRefs, p.doc.Tags)
		rule := rules.Block(blockType)
		if !rule.ProcessLines || rule.SkipInBookFlow {
			continue
		}
		cb := convert.ContentBlock{Block: block, Type: blockType}
		lines = append(lines, convert.ContentLines(cb, p.doc, rules, convert.FormatTEI, zones)...)
	}
	return lines
}

// groupByRegion runs each region's lines through the container state
// machine separately, preserving region isolation.
func groupByRegion(lines []assemble.ContentLine, rules *mapping.Rules) []assemble.Unit {
	var units []assemble.Unit
	for start := 0; start < len(lines); {
		end := start + 1
		for end < len(lines) && lines[end].RegionID == lines[start].RegionID {
			end++
		}
		units = append(units, convert.RegionUnits(lines[start:end], rules)...)
		start = end
	}
	return units
}

func countBookWords(units []assemble.BookUnit) int {
	words := 0
	for _, u := range units {
		words += len(strings.Fields(u.Text()))
	}
	return words
}

// loadPage reads and parses one transcription page file.
func loadPage(path string) (*alto.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !alto.IsALTO(data) {
		return nil, fmt.Errorf("%s is not a recognized transcription file", filepath.Base(path))
	}
	return alto.Parse(data)
}
