package render

import (
	"strconv"
	"strings"

	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/mapping"
)

// Document creates the scholarly markup root element with its namespace.
func Document(rules *mapping.Rules) *Element {
	root := NewElement("TEI")
	if ns := rules.TEI.Namespace; ns != "" {
		root.Set("xmlns", ns)
	}
	return root
}

// Header appends a minimal file header carrying the document title, the
// publisher and the provenance note from the rule set.
func Header(root *Element, title string, rules *mapping.Rules) *Element {
	header := root.SubElement("teiHeader")
	fileDesc := header.SubElement("fileDesc")

	titleStmt := fileDesc.SubElement("titleStmt")
	titleStmt.SubElement("title").Text = title

	pubStmt := fileDesc.SubElement("publicationStmt")
	pubStmt.SubElement("publisher").Text = rules.TEI.Publisher

	sourceDesc := fileDesc.SubElement("sourceDesc")
	sourceDesc.SubElement("p").Text = rules.TEI.SourceNote
	return header
}

// BookHeader appends the file header of an assembled book, including the
// conversion identifier minted for this run.
func BookHeader(root *Element, totalPages int, conversionID string, rules *mapping.Rules) *Element {
	title := strings.ReplaceAll(rules.Book.HeaderTitleTemplate,
		"{total_pages}", strconv.Itoa(totalPages))
	header := Header(root, title, rules)

	pubStmt := header.Children[0].Children[1]
	idno := pubStmt.SubElement("idno")
	idno.Set("type", "conversion")
	idno.Text = conversionID
	return header
}

// AppendUnits renders finalized page units into a body element.
func AppendUnits(parent *Element, units []assemble.Unit, rules *mapping.Rules) {
	for _, unit := range units {
		switch unit.Kind {
		case assemble.KindParagraph:
			appendParagraph(parent, unit, rules)
		case assemble.KindVerse:
			appendVerse(parent, unit, rules)
		default:
			appendStandalone(parent, unit, rules)
		}
	}
}

func appendParagraph(parent *Element, unit assemble.Unit, rules *mapping.Rules) {
	p := parent.SubElement("p")
	setFacs(p, unit.Refs)
	appendLines(p, unit.Lines, rules.TEI.PreserveLineBreaks)
}

// appendLines fills an element with line texts, separated by line break
// markers when configured, by spaces otherwise.
func appendLines(e *Element, lines []string, preserveBreaks bool) {
	if !preserveBreaks || len(lines) <= 1 {
		e.Text = strings.Join(lines, " ")
		return
	}
	e.Text = lines[0]
	for _, line := range lines[1:] {
		lb := e.SubElement("lb")
		lb.Tail = line
	}
}

func appendVerse(parent *Element, unit assemble.Unit, rules *mapping.Rules) {
	rule := rules.Line(unit.Type)
	container := rule.Container
	if container == "" {
		container = "lg"
	}
	lg := parent.SubElement(container)
	for k, v := range rule.ContainerAttributes {
		lg.Set(k, v)
	}
	setFacs(lg, unit.Refs)

	lineTag := rule.Element
	if lineTag == "" {
		lineTag = "l"
	}
	for _, line := range unit.Lines {
		lg.SubElement(lineTag).Text = line
	}
}

func appendStandalone(parent *Element, unit assemble.Unit, rules *mapping.Rules) {
	rule := rules.Line(unit.Type)
	tag := rule.Element
	if tag == "" {
		tag = "p"
	}
	for _, line := range unit.Lines {
		e := parent.SubElement(tag)
		for k, v := range rule.Attributes {
			e.Set(k, v)
		}
		setFacs(e, unit.Refs)
		e.Text = line
	}
}

// AppendBookUnits renders assembled book units into a division element.
// Page boundaries inside a unit become interior break markers whose tail
// carries the text that continues on the new page.
func AppendBookUnits(parent *Element, units []assemble.BookUnit, rules *mapping.Rules) {
	for _, unit := range units {
		switch unit.Kind {
		case assemble.KindPageBreak:
			appendPageBreak(parent, unit.Break)
		case assemble.KindParagraph:
			p := parent.SubElement("p")
			setFacs(p, unit.Refs)
			appendSegments(p, unit.Segments)
		default:
			rule := rules.Line(unit.Type)
			tag := rule.Element
			if tag == "" {
				tag = "p"
			}
			e := parent.SubElement(tag)
			for k, v := range rule.Attributes {
				e.Set(k, v)
			}
			setFacs(e, unit.Refs)
			appendSegments(e, unit.Segments)
		}
	}
}

func appendSegments(e *Element, segments []assemble.Segment) {
	for i, seg := range segments {
		if seg.Break == nil {
			if i == 0 {
				e.Text = seg.Text
			} else if n := len(e.Children); n > 0 {
				e.Children[n-1].Tail += seg.Text
			} else {
				e.Text += seg.Text
			}
			continue
		}
		pb := e.SubElement("pb")
		pb.Set("n", strconv.Itoa(seg.Break.Number))
		if seg.Break.Facs != "" {
			pb.Set("facs", seg.Break.Facs)
		}
		pb.Tail = seg.Text
	}
}

func appendPageBreak(parent *Element, br *assemble.PageBreak) {
	if br == nil {
		return
	}
	pb := parent.SubElement("pb")
	pb.Set("n", strconv.Itoa(br.Number))
	if br.Facs != "" {
		pb.Set("facs", br.Facs)
	}
}

// setFacs links an element to its first spatial zone reference.
func setFacs(e *Element, refs []string) {
	if len(refs) == 0 {
		return
	}
	ref := refs[0]
	if !strings.HasPrefix(ref, "#") {
		ref = "#" + ref
	}
	e.Set("facs", ref)
}
