// Package render builds the output documents: a scholarly XML markup tree,
// lightweight markup, and plain text.
//
// XML output is built as an explicit element tree rather than through
// streaming encoders, because page break markers and line break elements sit
// inside mixed content where text follows a child element. Each element
// therefore carries both its own text and the tail text rendered after its
// closing tag.
package render

import (
	"bytes"
	"strings"
)

// Attr is one XML attribute. Attribute order is preserved as written.
type Attr struct {
	Key   string
	Value string
}

// Element is one node of the output XML tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string // Text before the first child
	Tail     string // Text after this element's closing tag
	Children []*Element
}

// NewElement returns a childless element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Set adds or replaces an attribute.
func (e *Element) Set(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// Append adds a child element.
func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return e
}

// SubElement creates a new child with the given tag, appends it and
// returns it.
func (e *Element) SubElement(tag string) *Element {
	child := NewElement(tag)
	e.Children = append(e.Children, child)
	return child
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
)

// Serialize renders the tree as an indented UTF-8 XML document. Elements
// holding text are rendered on one line with their children inline, so mixed
// content keeps its exact spacing; element-only content is indented two
// spaces per level.
func Serialize(root *Element) []byte {
	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	writeElement(&buf, root, 0)
	buf.WriteString("\n")
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	writeOpenTag(buf, e)

	switch {
	case e.Text == "" && len(e.Children) == 0:
		// Rewrite the open tag as self-closing.
		buf.Truncate(buf.Len() - 1)
		buf.WriteString("/>")

	case hasMixedContent(e):
		buf.WriteString(textEscaper.Replace(e.Text))
		for _, child := range e.Children {
			writeInline(buf, child)
		}
		buf.WriteString("</" + e.Tag + ">")

	default:
		buf.WriteString("\n")
		for _, child := range e.Children {
			writeElement(buf, child, depth+1)
			buf.WriteString("\n")
		}
		buf.WriteString(indent)
		buf.WriteString("</" + e.Tag + ">")
	}
}

// writeInline renders an element and its tail without indentation, for use
// inside mixed content.
func writeInline(buf *bytes.Buffer, e *Element) {
	writeOpenTag(buf, e)
	if e.Text == "" && len(e.Children) == 0 {
		buf.Truncate(buf.Len() - 1)
		buf.WriteString("/>")
	} else {
		buf.WriteString(textEscaper.Replace(e.Text))
		for _, child := range e.Children {
			writeInline(buf, child)
		}
		buf.WriteString("</" + e.Tag + ">")
	}
	buf.WriteString(textEscaper.Replace(e.Tail))
}

func writeOpenTag(buf *bytes.Buffer, e *Element) {
	buf.WriteString("<" + e.Tag)
	for _, a := range e.Attrs {
		buf.WriteString(" " + a.Key + `="` + attrEscaper.Replace(a.Value) + `"`)
	}
	buf.WriteString(">")
}

// hasMixedContent reports whether the element holds text alongside or before
// its children, or any child carries tail text.
func hasMixedContent(e *Element) bool {
	if e.Text != "" {
		return true
	}
	for _, child := range e.Children {
		if child.Tail != "" {
			return true
		}
	}
	return false
}

// Expand substitutes the line text into a rendering template. Templates use
// a literal {text} placeholder; a template without the placeholder renders
// as-is.
func Expand(template, text string) string {
	return strings.ReplaceAll(template, "{text}", text)
}
