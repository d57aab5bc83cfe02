package alto

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
	"golang.org/x/text/encoding/charmap"
)

// Parse converts raw ALTO XML data into a structured Document.
func Parse(data []byte) (*Document, error) {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return nil, err
	}

	root, err := xmlquery.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ALTO XML: %w", err)
	}

	doc := &Document{
		Tags: make(map[string]string),
	}

	// Document-level metadata from the Description section
	if n := xmlquery.FindOne(root, "//*[local-name()='sourceImageInformation']/*[local-name()='fileName']"); n != nil {
		doc.SourceImage = strings.TrimSpace(n.InnerText())
	}
	if n := xmlquery.FindOne(root, "//*[local-name()='MeasurementUnit']"); n != nil {
		doc.MeasurementUnit = strings.TrimSpace(n.InnerText())
	}

	// Build the tag table mapping tag IDs to semantic type labels
	for _, tag := range xmlquery.Find(root, "//*[local-name()='Tags']/*[local-name()='OtherTag']") {
		id := tag.SelectAttr("ID")
		label := tag.SelectAttr("LABEL")
		if id != "" && label != "" {
			doc.Tags[id] = label
		}
	}

	// Process all Page elements
	for _, pageNode := range xmlquery.Find(root, "//*[local-name()='Page']") {
		doc.Pages = append(doc.Pages, processPage(pageNode))
	}

	if len(doc.Pages) == 0 {
		return doc, fmt.Errorf("no Page elements found in ALTO data")
	}
	return doc, nil
}

// IsALTO reports whether the XML data has an ALTO root element.
// Malformed XML is reported as not ALTO rather than as an error.
func IsALTO(data []byte) bool {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return false
	}
	root, err := xmlquery.Parse(bytes.NewReader(decoded))
	if err != nil {
		return false
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return strings.Contains(strings.ToLower(child.Data), "alto")
		}
	}
	return false
}

// decodeToUTF8 degrades non-UTF-8 input to a Latin-1 decode so that a page
// with a stale encoding declaration still converts instead of failing.
func decodeToUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode non-UTF-8 input: %w", err)
	}
	return decoded, nil
}

// processPage extracts page information and its text blocks
func processPage(n *xmlquery.Node) Page {
	page := Page{
		ID: n.SelectAttr("ID"),
	}
	page.Width = intAttr(n, "WIDTH")
	page.Height = intAttr(n, "HEIGHT")

	for _, blockNode := range xmlquery.Find(n, ".//*[local-name()='TextBlock']") {
		page.Blocks = append(page.Blocks, processBlock(blockNode))
	}
	return page
}

// processBlock extracts region information and its text lines
func processBlock(n *xmlquery.Node) TextBlock {
	block := TextBlock{
		ID:       n.SelectAttr("ID"),
		TagRefs:  n.SelectAttr("TAGREFS"),
		Geometry: geometryOf(n),
		Polygon:  polygonOf(n),
	}
	for _, lineNode := range xmlquery.Find(n, ".//*[local-name()='TextLine']") {
		block.Lines = append(block.Lines, processLine(lineNode))
	}
	return block
}

// processLine extracts line information and its strings
func processLine(n *xmlquery.Node) TextLine {
	line := TextLine{
		ID:       n.SelectAttr("ID"),
		TagRefs:  n.SelectAttr("TAGREFS"),
		Baseline: n.SelectAttr("BASELINE"),
		Geometry: geometryOf(n),
		Polygon:  polygonOf(n),
	}
	for _, stringNode := range xmlquery.Find(n, ".//*[local-name()='String']") {
		line.Strings = append(line.Strings, String{
			ID:       stringNode.SelectAttr("ID"),
			Content:  stringNode.SelectAttr("CONTENT"),
			Geometry: geometryOf(stringNode),
			Polygon:  polygonOf(stringNode),
		})
	}
	return line
}

// geometryOf reads the positional attributes of a layout element.
// Returns nil unless all four attributes are present and numeric.
func geometryOf(n *xmlquery.Node) *Geometry {
	attrs := [4]string{"HPOS", "VPOS", "WIDTH", "HEIGHT"}
	var values [4]float64
	for i, name := range attrs {
		raw := n.SelectAttr(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil
		}
		values[i] = v
	}
	return &Geometry{HPos: values[0], VPos: values[1], Width: values[2], Height: values[3]}
}

// polygonOf extracts the Shape/Polygon POINTS attribute when present
func polygonOf(n *xmlquery.Node) string {
	poly := xmlquery.FindOne(n, "*[local-name()='Shape']/*[local-name()='Polygon']")
	if poly == nil {
		return ""
	}
	return poly.SelectAttr("POINTS")
}

// intAttr parses a numeric attribute, tolerating decimal values
func intAttr(n *xmlquery.Node, name string) int {
	raw := n.SelectAttr(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
