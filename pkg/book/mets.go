// Package book assembles a multi-page transcription into one continuous
// document, driven by a structural manifest listing the page files in
// reading order. Paragraphs continue across page boundaries, with the
// boundary marker spliced into the flowing text at the exact break point.
package book

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Manifest is a parsed structural manifest.
type Manifest struct {
	Path       string   // Manifest file location
	Pages      []string // Page file paths in reading order, resolved
	TotalPages int
}

// ParseManifest reads a METS manifest and returns the transcription page
// files of its export file group, in document order. Relative file
// references resolve against the manifest's directory.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	root, err := xmlquery.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	m := &Manifest{Path: path}
	dir := filepath.Dir(path)

	locators := xmlquery.Find(root,
		`//*[local-name()='fileGrp'][@USE='export']//*[local-name()='file']//*[local-name()='FLocat']`)
	for _, loc := range locators {
		href := loc.SelectAttr("xlink:href")
		if href == "" {
			href = loc.SelectAttr("href")
		}
		if href == "" {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(href), ".xml") {
			continue
		}
		if !filepath.IsAbs(href) {
			href = filepath.Join(dir, href)
		}
		m.Pages = append(m.Pages, href)
	}

	if len(m.Pages) == 0 {
		return nil, fmt.Errorf("manifest %s lists no transcription files in its export group", path)
	}
	m.TotalPages = len(m.Pages)
	return m, nil
}
