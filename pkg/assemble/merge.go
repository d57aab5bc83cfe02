package assemble

import (
	"fmt"
	"strings"
)

// MergeOptions control how grouped lines are joined into units.
type MergeOptions struct {
	MergeParagraph bool          // Join paragraph lines into one text run
	MergeVerse     bool          // Join verse lines into one text run
	Joiner         string        // String joining merged lines, default one space
	Hyphen         HyphenOptions // Hyphenation resolution applied before joining
}

// DefaultMergeOptions returns the standard merge settings: paragraphs merge,
// verse keeps one line per unit, lines join with a single space.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		MergeParagraph: true,
		MergeVerse:     false,
		Joiner:         " ",
		Hyphen:         DefaultHyphenOptions(),
	}
}

// taggedLine carries a line together with its computed group key.
type taggedLine struct {
	key  string
	kind Kind
	line ContentLine
}

// Merge consumes the lines of one content region in document order and
// returns finalized units, one per maximal run of lines sharing a group key.
//
// Each explicit paragraph start gets a fresh key, so two consecutive explicit
// starts never collapse into one unit. Continuation lines reuse the key of
// the open explicit paragraph when there is one. All other keys are prefixed
// with the region identifier so that units never merge across regions.
func Merge(lines []ContentLine, regionID string, behavior BehaviorFunc, opts MergeOptions) []Unit {
	tagged := tagLines(lines, regionID, behavior)

	var units []Unit
	for start := 0; start < len(tagged); {
		end := start + 1
		for end < len(tagged) && tagged[end].key == tagged[start].key {
			end++
		}
		units = append(units, finalizeRun(tagged[start:end], opts))
		start = end
	}
	return units
}

// tagLines assigns a group key to every line that survives skipping.
func tagLines(lines []ContentLine, regionID string, behavior BehaviorFunc) []taggedLine {
	var tagged []taggedLine
	paragraphSeq := 0
	openKey := ""

	for _, line := range lines {
		b := behavior(line.Type)
		if b.Skip {
			continue
		}
		kind := b.Kind
		if kind == "" {
			kind = KindOther
		}

		var key string
		switch {
		case kind == KindParagraph && b.Starts:
			key = fmt.Sprintf("%s\x1fparagraph\x1f%d", regionID, paragraphSeq)
			paragraphSeq++
			openKey = key
		case kind == KindParagraph && openKey != "":
			key = openKey
		case kind == KindParagraph:
			key = regionID + "\x1fparagraph"
		default:
			key = regionID + "\x1f" + string(kind)
			openKey = ""
		}
		tagged = append(tagged, taggedLine{key: key, kind: kind, line: line})
	}
	return tagged
}

// finalizeRun turns one run of same-key lines into a unit, merging member
// texts when the run's container kind is configured as mergeable. Kinds other
// than paragraph and verse are one line per sub-unit by design.
func finalizeRun(run []taggedLine, opts MergeOptions) Unit {
	kind := run[0].kind
	unit := Unit{Kind: kind, Type: run[0].line.Type}
	for _, t := range run {
		unit.Lines = append(unit.Lines, t.line.Text)
		unit.Refs = append(unit.Refs, refsOf(t.line)...)
	}

	mergeable := (kind == KindParagraph && opts.MergeParagraph) ||
		(kind == KindVerse && opts.MergeVerse)
	if !mergeable || len(unit.Lines) <= 1 {
		return unit
	}

	joiner := opts.Joiner
	if joiner == "" {
		joiner = " "
	}
	merged := Dehyphenate(unit.Lines, opts.Hyphen)
	unit.Lines = []string{strings.Join(merged, joiner)}
	return unit
}
