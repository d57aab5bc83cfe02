package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altoweave/altoweave/pkg/assemble"
	"github.com/altoweave/altoweave/pkg/mapping"
)

func TestHeader(t *testing.T) {
	rules := mapping.Default()
	root := Document(rules)
	Header(root, "Test page", rules)

	got := string(Serialize(root))
	assert.Contains(t, got, `<TEI xmlns="http://www.tei-c.org/ns/1.0">`)
	assert.Contains(t, got, "<title>Test page</title>")
	assert.Contains(t, got, "<publisher>Digital edition</publisher>")
	assert.Contains(t, got, "<p>Converted from OCR transcription</p>")
}

func TestBookHeader(t *testing.T) {
	rules := mapping.Default()
	root := Document(rules)
	BookHeader(root, 12, "abc-123", rules)

	got := string(Serialize(root))
	assert.Contains(t, got, "<title>Assembled transcription (12 pages)</title>")
	assert.Contains(t, got, `<idno type="conversion">abc-123</idno>`)
}

func TestAppendUnitsParagraphWithLineBreaks(t *testing.T) {
	rules := mapping.Default()
	body := NewElement("body")

	AppendUnits(body, []assemble.Unit{{
		Kind:  assemble.KindParagraph,
		Type:  "DefaultLine",
		Lines: []string{"first line", "second line"},
	}}, rules)

	got := string(Serialize(body))
	assert.Contains(t, got, "<p>first line<lb/>second line</p>")
}

func TestAppendUnitsMergedParagraph(t *testing.T) {
	rules := mapping.Default()
	body := NewElement("body")

	AppendUnits(body, []assemble.Unit{{
		Kind:  assemble.KindParagraph,
		Type:  "DefaultLine",
		Lines: []string{"already merged text"},
		Refs:  []string{"facs_block_1_1"},
	}}, rules)

	got := string(Serialize(body))
	assert.Contains(t, got, `<p facs="#facs_block_1_1">already merged text</p>`)
}

func TestAppendUnitsVerse(t *testing.T) {
	rules := mapping.Default()
	body := NewElement("body")

	AppendUnits(body, []assemble.Unit{{
		Kind:  assemble.KindVerse,
		Type:  "CustomLine:verse",
		Lines: []string{"Roses are red", "violets are blue"},
	}}, rules)

	got := string(Serialize(body))
	assert.Contains(t, got, `<lg type="poem">`)
	assert.Contains(t, got, "<l>Roses are red</l>")
	assert.Contains(t, got, "<l>violets are blue</l>")
}

func TestAppendUnitsHeading(t *testing.T) {
	rules := mapping.Default()
	body := NewElement("body")

	AppendUnits(body, []assemble.Unit{{
		Kind:  assemble.KindHeading,
		Type:  "HeadingLine",
		Lines: []string{"Chapter One"},
	}}, rules)

	got := string(Serialize(body))
	assert.Contains(t, got, "<head>Chapter One</head>")
}

func TestAppendBookUnitsSplicedBreak(t *testing.T) {
	rules := mapping.Default()
	div := NewElement("div")

	AppendBookUnits(div, []assemble.BookUnit{{
		Kind: assemble.KindParagraph,
		Type: "DefaultLine",
		Segments: []assemble.Segment{
			{Text: "Once upon a time "},
			{Break: &assemble.PageBreak{Number: 2, Facs: "#facs_page_2"}, Text: "there was a castle."},
		},
	}}, rules)

	got := string(Serialize(div))
	assert.Contains(t, got,
		`<p>Once upon a time <pb n="2" facs="#facs_page_2"/>there was a castle.</p>`)
}

func TestAppendBookUnitsStandaloneBreak(t *testing.T) {
	rules := mapping.Default()
	div := NewElement("div")

	AppendBookUnits(div, []assemble.BookUnit{{
		Kind:  assemble.KindPageBreak,
		Break: &assemble.PageBreak{Number: 5, Facs: "page_0005.jpg"},
	}}, rules)

	got := string(Serialize(div))
	assert.Contains(t, got, `<pb n="5" facs="page_0005.jpg"/>`)
}

func TestMarkdownOutput(t *testing.T) {
	rules := mapping.Default()

	out := Markdown([]assemble.Unit{
		{Kind: assemble.KindHeading, Lines: []string{"## Chapter One"}},
		{Kind: assemble.KindParagraph, Lines: []string{"Body text here."}},
		{Kind: assemble.KindVerse, Lines: []string{"> line one", "> line two"}},
	}, "17", rules)

	require.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "--- Page 17 ---")
	assert.Contains(t, out, "## Chapter One\n\nBody text here.")
	assert.Contains(t, out, "> line one\n> line two")
}

func TestTextOutput(t *testing.T) {
	rules := mapping.Default()

	out := Text([]assemble.Unit{
		{Kind: assemble.KindParagraph, Lines: []string{"First paragraph."}},
		{Kind: assemble.KindParagraph, Lines: []string{"Second paragraph."}},
	}, "", rules)

	assert.Equal(t, "First paragraph.\n\nSecond paragraph.\n", out)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a\n\nb", Clean("a  \n\n\n\nb\n"))
}
