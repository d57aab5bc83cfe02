package assemble

import "strings"

// PageBreak marks the boundary where a new source page begins in the
// assembled flow.
type PageBreak struct {
	Number int    // 1-based page sequence number
	Facs   string // Facsimile or image reference for the page, may be empty
}

// Segment is one stretch of text inside a cross-page unit. A non-nil Break
// means the page boundary falls immediately before Text.
type Segment struct {
	Break *PageBreak
	Text  string
}

// BookUnit is a finalized unit of the assembled book flow. Units that span
// a page boundary carry the boundary as an interior segment, so renderers
// can place the break marker inside the unit at the exact splice point.
type BookUnit struct {
	Kind     Kind      // Container kind, or KindPageBreak for a bare marker
	Type     string    // Semantic type of the opening line
	Segments []Segment // Text segments with interior page boundaries
	Break    *PageBreak
	Refs     []string // Spatial references carried from member lines
}

// Text joins the unit's segments into one text run.
func (u BookUnit) Text() string {
	var b strings.Builder
	for _, seg := range u.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// OpenState is the paragraph left open at the end of a page, threaded
// explicitly from one page to the next. The zero value means no open unit.
type OpenState struct {
	Unit     *BookUnit // Unit still accumulating text, nil when closed
	Explicit bool      // Whether the unit was opened by an explicit start line
}

// PageInput is the prepared content of one source page.
type PageInput struct {
	Break       PageBreak     // Boundary descriptor for this page
	InsertBreak bool          // Whether to emit the boundary into the flow
	Lines       []ContentLine // Content lines in reading order
}

// BookOptions configure cross-page assembly.
type BookOptions struct {
	Hyphen HyphenOptions
}

// DefaultBookOptions returns standard cross-page assembly settings.
func DefaultBookOptions() BookOptions {
	return BookOptions{Hyphen: DefaultHyphenOptions()}
}

// ProcessPage feeds one page of content into the book flow and returns the
// units finalized on this page together with the state to thread into the
// next page.
//
// The page boundary is spliced into the open unit when one carries over: a
// trailing break character on the pre-break text is stripped and the texts
// concatenate directly, otherwise a single space separates them. When no
// unit is open the boundary becomes a standalone marker, emitted just before
// the first surviving content line. A page whose lines are all skipped
// contributes nothing, not even the marker.
func ProcessPage(in PageInput, st OpenState, behavior BehaviorFunc, opts BookOptions) ([]BookUnit, OpenState) {
	var out []BookUnit
	breakPending := in.InsertBreak

	for _, line := range in.Lines {
		b := behavior(line.Type)
		if b.Skip {
			continue
		}

		if breakPending {
			breakPending = false
			if st.Unit != nil {
				spliceBreak(st.Unit, in.Break, opts)
			} else {
				out = append(out, BookUnit{Kind: KindPageBreak, Break: &PageBreak{Number: in.Break.Number, Facs: in.Break.Facs}})
			}
		}

		switch {
		case b.Kind == KindParagraph && b.Starts:
			if st.Unit != nil {
				out = append(out, *st.Unit)
			}
			st = newParagraph(line)

		case b.Standalone || b.Kind == KindHeading:
			if st.Unit != nil {
				out = append(out, *st.Unit)
				st = OpenState{}
			}
			kind := b.Kind
			if kind == "" {
				kind = KindStandalone
			}
			out = append(out, BookUnit{
				Kind:     kind,
				Type:     line.Type,
				Segments: []Segment{{Text: line.Text}},
				Refs:     refsOf(line),
			})

		default:
			if st.Unit == nil {
				st = OpenState{Unit: &BookUnit{Kind: KindParagraph, Type: line.Type}}
			}
			appendText(st.Unit, line, opts)
		}
	}
	return out, st
}

// Finish flushes the unit still open after the last page.
func Finish(st OpenState) []BookUnit {
	if st.Unit == nil {
		return nil
	}
	return []BookUnit{*st.Unit}
}

// newParagraph opens an explicitly started paragraph seeded with the line.
func newParagraph(line ContentLine) OpenState {
	return OpenState{
		Unit: &BookUnit{
			Kind:     KindParagraph,
			Type:     line.Type,
			Segments: []Segment{{Text: line.Text}},
			Refs:     refsOf(line),
		},
		Explicit: true,
	}
}

// spliceBreak inserts a page boundary into an open unit. The text before the
// boundary is joined with the text after it according to hyphenation: a
// trailing break character means the split word reconnects directly, no break
// character means a single space.
func spliceBreak(u *BookUnit, br PageBreak, opts BookOptions) {
	if n := len(u.Segments); n > 0 {
		last := &u.Segments[n-1]
		stripped, hadBreak := stripTrailingBreak(last.Text, opts.Hyphen)
		if hadBreak {
			last.Text = stripped
		} else {
			last.Text = strings.TrimRight(last.Text, " ") + " "
		}
	}
	u.Segments = append(u.Segments, Segment{Break: &PageBreak{Number: br.Number, Facs: br.Facs}})
}

// appendText extends the last segment of an open unit with one more line,
// reconnecting a hyphenated word break or inserting a joining space.
func appendText(u *BookUnit, line ContentLine, opts BookOptions) {
	u.Refs = append(u.Refs, refsOf(line)...)
	if len(u.Segments) == 0 {
		u.Segments = []Segment{{Text: line.Text}}
		return
	}
	last := &u.Segments[len(u.Segments)-1]
	if last.Text == "" {
		last.Text = line.Text
		return
	}
	if stripped, hadBreak := stripTrailingBreak(last.Text, opts.Hyphen); hadBreak {
		last.Text = stripped + line.Text
		return
	}
	last.Text += " " + line.Text
}
