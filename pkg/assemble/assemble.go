// Package assemble implements the line and paragraph assembly engine that
// turns recognized text lines into finalized structural units.
//
// Transcription lines arrive one content region at a time, each tagged with a
// resolved semantic type. The engine decides, line by line, whether a line
// starts a new structural unit (paragraph, verse group, heading), continues
// an open one, or stands alone, and merges hyphenated word breaks across
// lines and across page boundaries.
//
// This package provides:
//
// - Merge: groups consecutive same-container lines of a region and joins them
// - Dehyphenate: hyphenation-aware joining of line-final word breaks
// - RegionState: the per-region container state machine
// - ProcessPage: the cross-page continuation controller for book assembly
//
// The engine never raises errors for noisy input: unknown types degrade to
// default behaviors upstream, closing a container that is not open is a
// no-op, and the hyphenation loop is capped rather than unbounded.
package assemble

// Kind identifies the structural container a line belongs to.
type Kind string

const (
	KindParagraph  Kind = "paragraph"
	KindVerse      Kind = "verse"
	KindHeading    Kind = "heading"
	KindStandalone Kind = "standalone"
	KindOther      Kind = "other"
	KindPageBreak  Kind = "page-break"
)

// Behavior describes how a resolved line type participates in assembly.
// Descriptors are produced by the configuration layer; unknown line types
// resolve to a default descriptor there, never to an error here.
type Behavior struct {
	Kind       Kind   // Container kind the line belongs to
	Starts     bool   // Explicitly opens a fresh container of Kind
	Continues  bool   // Extends an open container of Kind
	Standalone bool   // Rendered as its own one-line unit
	Skip       bool   // Dropped from output entirely
	Closes     []Kind // Containers finalized before this line renders
}

// BehaviorFunc looks up the behavior descriptor for a semantic line type.
type BehaviorFunc func(lineType string) Behavior

// ContentLine is one recognized line of text inside a content region.
type ContentLine struct {
	Text     string // Line text, non-empty
	Type     string // Resolved semantic line type
	RegionID string // Enclosing content region; merging never crosses regions
	Ref      string // Optional spatial zone reference
}

// Unit is a finalized structural unit produced by the merge engine or the
// region state machine. A Unit is immutable once emitted.
type Unit struct {
	Kind  Kind     // Container kind of the unit
	Type  string   // Semantic type of the first member line
	Lines []string // Member texts; a single entry when lines were merged
	Refs  []string // Spatial references carried from member lines
}

func refsOf(line ContentLine) []string {
	if line.Ref == "" {
		return nil
	}
	return []string{line.Ref}
}
