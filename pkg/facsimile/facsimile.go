// Package facsimile extracts the spatial layout of transcription pages and
// renders it as a facsimile overlay, linking output elements back to the
// regions of the source image they were recognized in.
//
// Zone identifiers are deterministic functions of the page number and the
// element's 1-based position in the layout hierarchy, so the same input always
// yields the same identifiers and content elements can reference their zones
// by identifier alone.
package facsimile

import (
	"fmt"

	"github.com/altoweave/altoweave/pkg/alto"
	"github.com/altoweave/altoweave/pkg/mapping"
	"github.com/altoweave/altoweave/pkg/render"
)

// Level classifies a zone by the layout element it outlines.
type Level string

const (
	LevelBlock  Level = "textblock"
	LevelLine   Level = "textline"
	LevelString Level = "string"
)

// Zone is the bounding region of one layout element.
type Zone struct {
	ID        string // Deterministic zone identifier
	Level     Level  // Layout level the zone outlines
	ElementID string // Identifier of the source layout element
	ULX       int    // Upper-left x
	ULY       int    // Upper-left y
	LRX       int    // Lower-right x
	LRY       int    // Lower-right y
	Polygon   string // Outline point list, empty for plain rectangles
	Baseline  string // Text line baseline points, lines only
}

// PageFacsimile is the spatial layout of one page.
type PageFacsimile struct {
	ID          string // Deterministic surface identifier
	Number      int    // 1-based page sequence number
	SourceImage string // Source image filename from the document
	Width       int
	Height      int
	Zones       []Zone
}

// ExtractPage collects the zones of one page. Layout elements without usable
// coordinates are left out rather than reported as errors.
func ExtractPage(doc *alto.Document, number int) (PageFacsimile, error) {
	if len(doc.Pages) == 0 {
		return PageFacsimile{}, fmt.Errorf("document has no pages")
	}
	page := doc.Pages[0]

	pf := PageFacsimile{
		ID:          fmt.Sprintf("facs_page_%d", number),
		Number:      number,
		SourceImage: doc.SourceImage,
		Width:       page.Width,
		Height:      page.Height,
	}

	for i, block := range page.Blocks {
		if z, ok := zoneOf(block.Geometry, block.Polygon); ok {
			z.ID = fmt.Sprintf("facs_block_%d_%d", number, i+1)
			z.Level = LevelBlock
			z.ElementID = block.ID
			pf.Zones = append(pf.Zones, z)
		}
		for j, line := range block.Lines {
			if z, ok := zoneOf(line.Geometry, line.Polygon); ok {
				z.ID = fmt.Sprintf("facs_line_%d_%d_%d", number, i+1, j+1)
				z.Level = LevelLine
				z.ElementID = line.ID
				z.Baseline = line.Baseline
				pf.Zones = append(pf.Zones, z)
			}
			for k, s := range line.Strings {
				if z, ok := zoneOf(s.Geometry, s.Polygon); ok {
					z.ID = fmt.Sprintf("facs_string_%d_%d_%d_%d", number, i+1, j+1, k+1)
					z.Level = LevelString
					z.ElementID = s.ID
					pf.Zones = append(pf.Zones, z)
				}
			}
		}
	}
	return pf, nil
}

// zoneOf converts a layout geometry into zone corners.
func zoneOf(g *alto.Geometry, polygon string) (Zone, bool) {
	if g == nil {
		return Zone{}, false
	}
	return Zone{
		ULX:     int(g.HPos),
		ULY:     int(g.VPos),
		LRX:     int(g.HPos + g.Width),
		LRY:     int(g.VPos + g.Height),
		Polygon: polygon,
	}, true
}

// ZoneIDs maps source layout element identifiers to their zone identifiers,
// for linking content elements to zones.
func (pf PageFacsimile) ZoneIDs() map[string]string {
	ids := make(map[string]string, len(pf.Zones))
	for _, z := range pf.Zones {
		if z.ElementID != "" {
			ids[z.ElementID] = z.ID
		}
	}
	return ids
}

// Section renders the facsimile overlay for a sequence of pages, one surface
// per page, filtered by the configured zone levels.
func Section(pages []PageFacsimile, cfg mapping.FacsimileConfig) *render.Element {
	section := render.NewElement("facsimile")
	for _, pf := range pages {
		surface := section.SubElement("surface")
		surface.Set("xml:id", pf.ID)
		surface.Set("ulx", "0")
		surface.Set("uly", "0")
		surface.Set("lrx", fmt.Sprintf("%d", pf.Width))
		surface.Set("lry", fmt.Sprintf("%d", pf.Height))

		if cfg.IncludeGraphic && pf.SourceImage != "" {
			graphic := surface.SubElement("graphic")
			graphic.Set("url", pf.SourceImage)
		}

		for _, z := range pf.Zones {
			if !includeLevel(z.Level, cfg) {
				continue
			}
			zone := surface.SubElement("zone")
			zone.Set("xml:id", z.ID)
			zone.Set("type", string(z.Level))
			zone.Set("ulx", fmt.Sprintf("%d", z.ULX))
			zone.Set("uly", fmt.Sprintf("%d", z.ULY))
			zone.Set("lrx", fmt.Sprintf("%d", z.LRX))
			zone.Set("lry", fmt.Sprintf("%d", z.LRY))
			if cfg.UsePolygons && z.Polygon != "" {
				zone.Set("points", z.Polygon)
			}
			if cfg.IncludeBaselines && z.Baseline != "" {
				zone.Set("baseline", z.Baseline)
			}
		}
	}
	return section
}

func includeLevel(level Level, cfg mapping.FacsimileConfig) bool {
	switch level {
	case LevelBlock:
		return cfg.IncludeTextBlocks
	case LevelLine:
		return cfg.IncludeTextLines
	case LevelString:
		return cfg.IncludeStrings
	}
	return false
}
