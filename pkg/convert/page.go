package convert

import (
	"fmt"
	"strings"

	"github.com/altoweave/altoweave/pkg/alto"
	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/facsimile"
	"github.com/altoweave/altoweave/pkg/mapping"
	"github.com/altoweave/altoweave/pkg/render"
)

// Options configure a single-page conversion.
type Options struct {
	Rules      *mapping.Rules
	Format     Format
	MergeLines bool   // Merge grouped lines into single text runs
	Facsimile  bool   // Include the spatial overlay, XML output only
	Sequence   int    // Page sequence number for facsimile identifiers
	Title      string // Document title, defaults to the source image name
}

// Result is the outcome of a single-page conversion.
type Result struct {
	Output     []byte
	PageNumber string // Extracted printed page number, empty when none
	Footnotes  int
	VerseLines int
	Words      int
}

// Page converts one transcription page to the selected output format.
func Page(data []byte, opts Options) (Result, error) {
	if opts.Rules == nil {
		opts.Rules = mapping.Default()
	}
	if opts.Sequence <= 0 {
		opts.Sequence = 1
	}

	doc, err := alto.Parse(data)
	if err != nil {
		return Result{}, fmt.Errorf("parsing page: %w", err)
	}

	classified := Classify(doc, opts.Rules)

	var zoneIDs map[string]string
	var pf facsimile.PageFacsimile
	if opts.Facsimile && opts.Format == FormatTEI {
		pf, err = facsimile.ExtractPage(doc, opts.Sequence)
		if err == nil {
			zoneIDs = pf.ZoneIDs()
		}
	}

	var units []assemble.Unit
	for _, cb := range classified.Content {
		lines := ContentLines(cb, doc, opts.Rules, opts.Format, zoneIDs)
		if opts.MergeLines {
			units = append(units, assemble.Merge(lines, cb.Block.ID, opts.Rules.Behavior, opts.Rules.MergeOptions())...)
		} else {
			units = append(units, RegionUnits(lines, opts.Rules)...)
		}
	}

	res := Result{
		PageNumber: classified.PageNumber,
		Footnotes:  len(classified.Footnotes),
	}
	for _, u := range units {
		if u.Kind == assemble.KindVerse {
			res.VerseLines += len(u.Lines)
		}
		for _, line := range u.Lines {
			res.Words += len(strings.Fields(line))
		}
	}

	switch opts.Format {
	case FormatTEI:
		res.Output = renderTEI(doc, classified, units, pf, zoneIDs != nil, opts)
	case FormatMarkdown:
		res.Output = []byte(render.Markdown(units, classified.PageNumber, opts.Rules) +
			footnoteBlock(classified.Footnotes, "\n---\n\n"))
	case FormatText:
		res.Output = []byte(render.Text(units, classified.PageNumber, opts.Rules) +
			footnoteBlock(classified.Footnotes, "\n"))
	default:
		return Result{}, fmt.Errorf("unknown output format %q", opts.Format)
	}
	return res, nil
}

func renderTEI(doc *alto.Document, classified Classified, units []assemble.Unit, pf facsimile.PageFacsimile, withFacsimile bool, opts Options) []byte {
	rules := opts.Rules
	root := render.Document(rules)

	title := opts.Title
	if title == "" {
		title = doc.SourceImage
	}
	if title == "" {
		title = "Transcribed page"
	}
	render.Header(root, title, rules)

	if withFacsimile {
		root.Append(facsimile.Section([]facsimile.PageFacsimile{pf}, rules.Facsimile))
	}

	body := root.SubElement("text").SubElement("body")

	if classified.PageNumber != "" {
		pb := body.SubElement("pb")
		pb.Set("n", classified.PageNumber)
	}
	for _, fw := range classified.FormWork {
		rule := rules.Block(fw.Type)
		e := body.SubElement(rule.Element)
		for k, v := range rule.Attributes {
			e.Set(k, v)
		}
		if text := fw.Block.Text(); text != "" {
			e.Text = text
		}
	}

	render.AppendUnits(body, units, rules)

	if len(classified.Footnotes) > 0 {
		notes := body.SubElement("div")
		notes.Set("type", "notes")
		for _, fn := range classified.Footnotes {
			note := notes.SubElement("note")
			note.Set("place", "bottom")
			if fn.Symbol != "" {
				note.Set("n", fn.Symbol)
			}
			note.Text = fn.Text
		}
	}

	return render.Serialize(root)
}

// footnoteBlock renders extracted footnotes for the non-XML formats.
func footnoteBlock(notes []mapping.Footnote, lead string) string {
	if len(notes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lead)
	for _, fn := range notes {
		if fn.Symbol != "" {
			b.WriteString(fn.Symbol + " " + fn.Text + "\n")
		} else {
			b.WriteString(fn.Text + "\n")
		}
	}
	return b.String()
}
