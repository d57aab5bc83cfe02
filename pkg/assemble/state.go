package assemble

// RegionState tracks the open containers of one content region. A paragraph
// and a verse group may be open at the same time; closing one leaves the
// other untouched. Used by the per-page converters, where verse groups are
// tracked independently of the paragraph flow.
type RegionState struct {
	paragraph *openUnit
	verse     *openUnit
}

// openUnit is a container accumulating member lines until finalized.
type openUnit struct {
	unitType string
	lines    []string
	refs     []string
}

func (u *openUnit) add(line ContentLine) {
	u.lines = append(u.lines, line.Text)
	u.refs = append(u.refs, refsOf(line)...)
}

// NewRegionState returns a state machine with no open containers.
func NewRegionState() *RegionState {
	return &RegionState{}
}

// Feed processes one line and returns the units finalized by it, in order.
// The line itself may remain pending inside an open container; Flush emits
// whatever is still open at the end of the region.
func (s *RegionState) Feed(line ContentLine, b Behavior) []Unit {
	if b.Skip {
		return nil
	}

	var out []Unit
	for _, kind := range b.Closes {
		out = append(out, s.closeContainer(kind)...)
	}

	switch {
	case b.Kind == KindParagraph && b.Starts:
		out = append(out, s.closeContainer(KindParagraph)...)
		s.paragraph = &openUnit{unitType: line.Type}
		s.paragraph.add(line)

	case b.Kind == KindParagraph && b.Continues:
		// Implicit paragraph start when nothing is open.
		if s.paragraph == nil {
			s.paragraph = &openUnit{unitType: line.Type}
		}
		s.paragraph.add(line)

	case b.Kind == KindVerse && !b.Standalone:
		if s.verse == nil {
			s.verse = &openUnit{unitType: line.Type}
		}
		s.verse.add(line)

	default:
		kind := b.Kind
		if kind == "" || kind == KindParagraph {
			kind = KindStandalone
		}
		out = append(out, Unit{
			Kind:  kind,
			Type:  line.Type,
			Lines: []string{line.Text},
			Refs:  refsOf(line),
		})
	}
	return out
}

// Flush finalizes any still-open containers unconditionally. Paragraphs are
// emitted before verse groups, matching the order containers were opened in
// typical mixed regions.
func (s *RegionState) Flush() []Unit {
	out := s.closeContainer(KindParagraph)
	return append(out, s.closeContainer(KindVerse)...)
}

// closeContainer finalizes the named container. Closing a container that is
// not open is a no-op, not an error.
func (s *RegionState) closeContainer(kind Kind) []Unit {
	var open **openUnit
	switch kind {
	case KindParagraph:
		open = &s.paragraph
	case KindVerse:
		open = &s.verse
	default:
		return nil
	}
	if *open == nil {
		return nil
	}
	unit := Unit{
		Kind:  kind,
		Type:  (*open).unitType,
		Lines: (*open).lines,
		Refs:  (*open).refs,
	}
	*open = nil
	return []Unit{unit}
}
