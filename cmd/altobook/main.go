// altobook is a command-line tool for assembling a multi-page OCR
// transcription into one structured document.
//
// It reads a METS manifest listing the transcription page files in reading
// order, converts every page, and splices them into a single XML document in
// which paragraphs continue across page boundaries. Hyphenated words split
// by a page break are reconnected and the break marker is placed at the
// exact splice point inside the flowing text.
//
// Usage:
//
//	altobook -mets METS.xml -output book.xml [options]
//
// Required flags:
//
//	-mets string    Path to the METS manifest file
//	-output string  Path to save the assembled document
//
// Conversion options:
//
//	-rules string   Path to a YAML rule file overriding the built-in rules
//	-merge          Continue paragraphs across page boundaries (default true)
//	-facsimile      Include the spatial overlay for all pages
//
// Example:
//
//	altobook -mets export/METS.xml -output book.xml -facsimile
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/altoweave/altoweave/pkg/book"
	"github.com/altoweave/altoweave/pkg/mapping"
)

func main() {
	metsPath := flag.String("mets", "", "Path to the METS manifest file (required)")
	outputPath := flag.String("output", "", "Path to save the assembled document (required)")
	rulesPath := flag.String("rules", "", "YAML rule file overriding the built-in rules")
	mergeLines := flag.Bool("merge", true, "Continue paragraphs across page boundaries")
	withFacsimile := flag.Bool("facsimile", false, "Include the spatial overlay for all pages")
	flag.Parse()

	if *metsPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -mets and -output are required")
		flag.Usage()
		os.Exit(1)
	}

	rules := mapping.Default()
	if *rulesPath != "" {
		var err error
		rules, err = mapping.Load(*rulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
	}

	manifest, err := book.ParseManifest(*metsPath)
	if err != nil {
		log.Fatalf("Failed to parse manifest: %v", err)
	}

	assembler := &book.Assembler{
		Rules:      rules,
		MergeLines: *mergeLines,
		Facsimile:  *withFacsimile,
	}

	output, report, err := assembler.ConvertBook(manifest)
	if err != nil {
		log.Fatalf("Assembly failed: %v", err)
	}

	if err := os.WriteFile(*outputPath, output, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	for _, skipped := range report.Skipped {
		yellow.Fprintf(os.Stderr, "⚠️  Skipped %s: %v\n", skipped.Path, skipped.Reason)
	}
	green.Fprintf(os.Stderr, "✅ Assembled %d of %d pages (%d words) into %s\n",
		report.Processed, report.TotalPages, report.Words, *outputPath)
}
