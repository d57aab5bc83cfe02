package book

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altoweave/altoweave/pkg/mapping"
)

// pageXML builds a minimal one-block transcription page. Each entry in
// lines is a tag reference followed by the line text.
func pageXML(image string, lines ...[2]string) string {
	body := ""
	for i, l := range lines {
		body += fmt.Sprintf(
			`<TextLine ID="line_%d" TAGREFS="%s"><String ID="s_%d" CONTENT="%s"/></TextLine>`,
			i, l[0], i, l[1])
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v4#">
  <Description>
    <sourceImageInformation><fileName>%s</fileName></sourceImageInformation>
  </Description>
  <Tags>
    <OtherTag ID="BT1" LABEL="MainZone"/>
    <OtherTag ID="BT2" LABEL="NumberingZone"/>
    <OtherTag ID="LT1" LABEL="DefaultLine"/>
    <OtherTag ID="LT2" LABEL="HeadingLine"/>
    <OtherTag ID="LT3" LABEL="CustomLine:paragraph_start"/>
  </Tags>
  <Layout>
    <Page ID="page_1" WIDTH="2000" HEIGHT="3000">
      <TextBlock ID="num_1" TAGREFS="BT2">
        <TextLine ID="nline_1" TAGREFS="LT1"><String ID="ns_1" CONTENT="42"/></TextLine>
      </TextBlock>
      <TextBlock ID="main_1" TAGREFS="BT1" HPOS="100" VPOS="300" WIDTH="1800" HEIGHT="2200">%s</TextBlock>
    </Page>
  </Layout>
</alto>`, image, body)
}

// writeBook writes page files plus a manifest listing them in order.
func writeBook(t *testing.T, pages map[string]string, order []string) *Manifest {
	t.Helper()
	dir := t.TempDir()
	for name, content := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	files := ""
	for i, name := range order {
		files += fmt.Sprintf(
			`<file ID="f%d"><FLocat LOCTYPE="URL" xlink:href="%s"/></file>`, i, name)
	}
	mets := fmt.Sprintf(`<mets xmlns="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink">
		<fileSec><fileGrp USE="export">%s</fileGrp></fileSec>
	</mets>`, files)

	path := filepath.Join(dir, "METS.xml")
	require.NoError(t, os.WriteFile(path, []byte(mets), 0o644))

	m, err := ParseManifest(path)
	require.NoError(t, err)
	return m
}

func TestConvertBookParagraphSpansPages(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg",
			[2]string{"LT3", "Once upon a time"}),
		"p2.xml": pageXML("p2.jpg",
			[2]string{"LT1", "there was a castle."}),
	}, []string{"p1.xml", "p2.xml"})

	a := &Assembler{MergeLines: true}
	out, report, err := a.ConvertBook(m)
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got,
		`Once upon a time <pb n="2" facs="p2.jpg"/>there was a castle.`)
	assert.Contains(t, got, `<div type="book">`)
	assert.Contains(t, got, "<title>Assembled transcription (2 pages)</title>")
	assert.Contains(t, got, `<idno type="conversion">`+report.ConversionID)
	// Page numbers stay out of the assembled flow.
	assert.NotContains(t, got, ">42<")
	// No break marker precedes the first page's content.
	assert.NotContains(t, got, `<pb n="1"`)

	assert.Equal(t, 2, report.Processed)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, 8, report.Words)
}

func TestConvertBookHyphenReconnectsAcrossPages(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg", [2]string{"LT3", "transcrip-"}),
		"p2.xml": pageXML("p2.jpg", [2]string{"LT1", "tion continues."}),
	}, []string{"p1.xml", "p2.xml"})

	a := &Assembler{MergeLines: true}
	out, _, err := a.ConvertBook(m)
	require.NoError(t, err)

	assert.Contains(t, string(out),
		`transcrip<pb n="2" facs="p2.jpg"/>tion continues.`)
}

func TestConvertBookHeadingStaysStandalone(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg",
			[2]string{"LT2", "Chapter One"},
			[2]string{"LT3", "Body begins here."}),
	}, []string{"p1.xml"})

	a := &Assembler{MergeLines: true}
	out, _, err := a.ConvertBook(m)
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "<head>Chapter One</head>")
	assert.Contains(t, got, "<p>Body begins here.</p>")
}

func TestConvertBookSkipsBrokenPages(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg", [2]string{"LT3", "Text carries"}),
		"p2.xml": "this is not a transcription file",
		"p3.xml": pageXML("p3.jpg", [2]string{"LT1", "onward regardless."}),
	}, []string{"p1.xml", "p2.xml", "p3.xml"})

	a := &Assembler{MergeLines: true}
	out, report, err := a.ConvertBook(m)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Path, "p2.xml")

	// The paragraph continues over the broken page; the splice carries
	// the next readable page's number.
	assert.Contains(t, string(out),
		`Text carries <pb n="3" facs="p3.jpg"/>onward regardless.`)
}

func TestConvertBookAllPagesBroken(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": "garbage",
	}, []string{"p1.xml"})

	a := &Assembler{}
	_, report, err := a.ConvertBook(m)
	assert.Error(t, err)
	assert.Equal(t, 0, report.Processed)
}

func TestConvertBookWithFacsimile(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg", [2]string{"LT3", "Illustrated text"}),
		"p2.xml": pageXML("p2.jpg", [2]string{"LT1", "continues on."}),
	}, []string{"p1.xml", "p2.xml"})

	a := &Assembler{MergeLines: true, Facsimile: true}
	out, _, err := a.ConvertBook(m)
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "<facsimile>")
	assert.Contains(t, got, `xml:id="facs_page_1"`)
	assert.Contains(t, got, `<graphic url="p1.jpg"/>`)
	// The spliced break marker points at the second page's surface; the
	// first page opens the flow without a marker of its own.
	assert.Contains(t, got, `Illustrated text <pb n="2" facs="#facs_page_2"/>continues on.`)
	assert.NotContains(t, got, `<pb n="1"`)
}

func TestConvertBookPagedMode(t *testing.T) {
	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg", [2]string{"LT3", "First page text."}),
		"p2.xml": pageXML("p2.jpg", [2]string{"LT3", "Second page text."}),
	}, []string{"p1.xml", "p2.xml"})

	a := &Assembler{MergeLines: false}
	out, _, err := a.ConvertBook(m)
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, `<pb n="1" facs="p1.jpg"/>`)
	assert.Contains(t, got, `<pb n="2" facs="p2.jpg"/>`)
	assert.Contains(t, got, "<p>First page text.</p>")
	assert.Contains(t, got, "<p>Second page text.</p>")
}

func TestConvertBookExcludedRegionsBecomeStandaloneElements(t *testing.T) {
	page := `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v4#">
  <Tags>
    <OtherTag ID="BT1" LABEL="MainZone"/>
    <OtherTag ID="BT5" LABEL="RunningTitleZone"/>
    <OtherTag ID="BT6" LABEL="MarginTextZone:note"/>
    <OtherTag ID="LT3" LABEL="CustomLine:paragraph_start"/>
    <OtherTag ID="LT1" LABEL="DefaultLine"/>
  </Tags>
  <Layout>
    <Page ID="page_1">
      <TextBlock ID="title_1" TAGREFS="BT5">
        <TextLine ID="t_1" TAGREFS="LT1"><String ID="ts_1" CONTENT="THE CASTLE BOOK"/></TextLine>
      </TextBlock>
      <TextBlock ID="main_1" TAGREFS="BT1">
        <TextLine ID="l_1" TAGREFS="LT3"><String ID="s_1" CONTENT="Body text."/></TextLine>
      </TextBlock>
      <TextBlock ID="note_1" TAGREFS="BT6">
        <TextLine ID="n_1" TAGREFS="LT1"><String ID="ns_1" CONTENT="* A marginal remark."/></TextLine>
      </TextBlock>
    </Page>
  </Layout>
</alto>`

	m := writeBook(t, map[string]string{"p1.xml": page}, []string{"p1.xml"})

	a := &Assembler{MergeLines: true}
	out, _, err := a.ConvertBook(m)
	require.NoError(t, err)

	got := string(out)
	// Excluded regions come out as standalone elements, outside the flow.
	assert.Contains(t, got, `<fw type="running-title">THE CASTLE BOOK</fw>`)
	assert.Contains(t, got, `<note place="margin" n="*">A marginal remark.</note>`)
	assert.Contains(t, got, "<p>Body text.</p>")
	assert.NotContains(t, got, "THE CASTLE BOOK Body text.")
}

func TestConvertBookCustomRules(t *testing.T) {
	rules := mapping.Default()
	rules.Book.DivType = "volume"

	m := writeBook(t, map[string]string{
		"p1.xml": pageXML("p1.jpg", [2]string{"LT3", "Text."}),
	}, []string{"p1.xml"})

	a := &Assembler{Rules: rules, MergeLines: true}
	out, _, err := a.ConvertBook(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<div type="volume">`)
}
