// altopage is a command-line tool for converting OCR transcription pages to
// structured output formats.
//
// It reads one or more transcription XML files, resolves the semantic types
// of their layout regions and text lines, assembles paragraphs, verse groups
// and headings, and writes scholarly XML markup, lightweight markup or plain
// text.
//
// Usage:
//
//	altopage -input page.xml -format tei [options]
//
// Required flags:
//
//	-input string   Path to a transcription XML file, a comma-separated list
//	                of files, a glob pattern, or a directory (expands to its
//	                *.xml files) for batch conversion
//
// Output options:
//
//	-format string  Output format: tei, markdown or text (default "tei")
//	-output string  Output file path; with multiple inputs, a directory.
//	                Defaults to stdout for a single input
//
// Conversion options:
//
//	-rules string   Path to a YAML rule file overriding the built-in rules
//	-merge          Merge grouped lines into single text runs (default true)
//	-facsimile      Include the spatial overlay, XML output only
//	-validate       Print rule warnings and exit
//
// Example:
//
//	altopage -input page_0005.xml -format markdown -output page_0005.md
//	altopage -input a.xml,b.xml,c.xml -format tei -output out/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/altoweave/altoweave/pkg/convert"
	"github.com/altoweave/altoweave/pkg/mapping"
)

func main() {
	inputPath := flag.String("input", "", "Transcription XML file, or comma-separated list (required)")
	formatName := flag.String("format", "tei", "Output format: tei, markdown or text")
	outputPath := flag.String("output", "", "Output file, or directory for multiple inputs")
	rulesPath := flag.String("rules", "", "YAML rule file overriding the built-in rules")
	mergeLines := flag.Bool("merge", true, "Merge grouped lines into single text runs")
	withFacsimile := flag.Bool("facsimile", false, "Include the spatial overlay (tei only)")
	validateOnly := flag.Bool("validate", false, "Print rule warnings and exit")
	flag.Parse()

	rules := mapping.Default()
	if *rulesPath != "" {
		var err error
		rules, err = mapping.Load(*rulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
	}

	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if *validateOnly {
		warnings := rules.Validate()
		for _, w := range warnings {
			yellow.Printf("⚠️  %s\n", w)
		}
		if len(warnings) == 0 {
			green.Println("✅ Rules are consistent")
		}
		return
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	format, err := convert.ParseFormat(*formatName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	inputs := splitList(*inputPath)
	if len(inputs) > 1 && *outputPath == "" {
		log.Fatalf("Multiple inputs require -output to name a directory")
	}

	failures := 0
	for i, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			red.Printf("⚠️  %s: %v\n", input, err)
			failures++
			continue
		}

		res, err := convert.Page(data, convert.Options{
			Rules:      rules,
			Format:     format,
			MergeLines: *mergeLines,
			Facsimile:  *withFacsimile,
			Sequence:   i + 1,
		})
		if err != nil {
			red.Printf("⚠️  %s: %v\n", input, err)
			failures++
			continue
		}

		if err := writeResult(res.Output, input, *outputPath, format, len(inputs) > 1); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}

		summary := fmt.Sprintf("%d words", res.Words)
		if res.PageNumber != "" {
			summary += fmt.Sprintf(", page %s", res.PageNumber)
		}
		if res.VerseLines > 0 {
			summary += fmt.Sprintf(", %d verse lines", res.VerseLines)
		}
		if res.Footnotes > 0 {
			summary += fmt.Sprintf(", %d footnotes", res.Footnotes)
		}
		green.Fprintf(os.Stderr, "✅ %s (%s)\n", input, summary)
	}

	if failures > 0 {
		yellow.Fprintf(os.Stderr, "⚠️  %d of %d pages failed\n", failures, len(inputs))
		os.Exit(1)
	}
}

// splitList expands a comma-separated input list. Entries may be glob
// patterns or directories; a directory expands to its *.xml files.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if info, err := os.Stat(part); err == nil && info.IsDir() {
			part = filepath.Join(part, "*.xml")
		}
		if strings.ContainsAny(part, "*?[") {
			matches, err := filepath.Glob(part)
			if err == nil && len(matches) > 0 {
				out = append(out, matches...)
				continue
			}
		}
		out = append(out, part)
	}
	return out
}

// writeResult writes one converted page to its destination: stdout when no
// output was named, a directory entry for batch runs, a file otherwise.
func writeResult(output []byte, input, dest string, format convert.Format, batch bool) error {
	if dest == "" {
		_, err := os.Stdout.Write(output)
		return err
	}
	path := dest
	if batch {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		path = filepath.Join(dest, base+extFor(format))
	}
	return os.WriteFile(path, output, 0o644)
}

func extFor(format convert.Format) string {
	switch format {
	case convert.FormatMarkdown:
		return ".md"
	case convert.FormatText:
		return ".txt"
	}
	return ".xml"
}
