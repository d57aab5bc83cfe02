// Package mapping resolves the semantic types of layout regions and text
// lines and maps each type to its conversion behavior.
//
// Transcription documents label regions and lines with tag references into a
// document-level tag table. This package resolves those references to type
// names, looks the names up in a YAML-configured rule set, and exposes the
// per-type behavior to the converters: which regions contribute content,
// which hold page numbers or footnotes, how each line type participates in
// paragraph assembly, and which output element it renders as.
//
// A built-in rule set covering the standard layout vocabulary ships embedded
// in the binary; a user rule file overrides it field by field.
package mapping

// Config is the full conversion rule set, loaded from YAML.
type Config struct {
	DefaultBlockType string               `yaml:"default_block_type"`
	DefaultLineType  string               `yaml:"default_line_type"`
	BlockTypes       map[string]BlockRule `yaml:"block_types"`
	LineTypes        map[string]LineRule  `yaml:"line_types"`
	FootnotePatterns []FootnotePattern    `yaml:"footnote_patterns"`
	TEI              TEIConfig            `yaml:"tei"`
	Markdown         MarkdownConfig       `yaml:"markdown"`
	Text             TextConfig           `yaml:"text"`
	Page             PageConfig           `yaml:"page"`
	Merge            MergeConfig          `yaml:"line_merging"`
	Hyphen           HyphenConfig         `yaml:"hyphenation"`
	Book             BookConfig           `yaml:"book_structure"`
	Facsimile        FacsimileConfig      `yaml:"facsimile"`
}

// BlockRule describes how one region type is handled.
type BlockRule struct {
	ProcessLines      bool              `yaml:"process_lines"`       // Region lines enter the content flow
	SkipContent       bool              `yaml:"skip_content"`        // Region text is dropped entirely
	ExtractPageNumber bool              `yaml:"extract_page_number"` // Region text is captured as the page number
	ExtractFootnote   bool              `yaml:"extract_footnote"`    // Region lines are captured as footnotes
	SkipInBookFlow    bool              `yaml:"skip_in_book_flow"`   // Region is excluded from cross-page assembly
	Element           string            `yaml:"element"`             // Output element for non-content regions
	Attributes        map[string]string `yaml:"attributes"`          // Static attributes on the output element
}

// LineRule describes how one line type is handled.
type LineRule struct {
	Kind                string            `yaml:"kind"`                 // Container kind: paragraph, verse, heading
	Action              string            `yaml:"action"`               // start_paragraph, add_to_paragraph or create_element
	Element             string            `yaml:"element"`              // Output element the line renders as
	Attributes          map[string]string `yaml:"attributes"`           // Static attributes on the output element
	Container           string            `yaml:"container"`            // Wrapping element for grouped lines
	ContainerAttributes map[string]string `yaml:"container_attributes"` // Static attributes on the container
	Closes              []string          `yaml:"closes"`               // Containers finalized before this line
	Standalone          bool              `yaml:"standalone"`           // Rendered as its own unit, never grouped
	Skip                bool              `yaml:"skip"`                 // Dropped from output entirely
	Template            string            `yaml:"template"`             // Lightweight-markup template, {text} placeholder
	TextTemplate        string            `yaml:"text_template"`        // Plain-text template, {text} placeholder
}

// FootnotePattern is one configured symbol/text split pattern.
type FootnotePattern struct {
	Pattern string `yaml:"pattern"`
}

// TEIConfig holds scholarly-markup output settings.
type TEIConfig struct {
	Namespace          string `yaml:"namespace"`
	PreserveLineBreaks bool   `yaml:"preserve_line_breaks"`
	Publisher          string `yaml:"publisher"`
	SourceNote         string `yaml:"source_note"`
}

// MarkdownConfig holds lightweight-markup output settings.
type MarkdownConfig struct {
	ParagraphSeparator string `yaml:"paragraph_separator"`
	LineSeparator      string `yaml:"line_separator"`
}

// TextConfig holds plain-text output settings.
type TextConfig struct {
	LineSeparator      string `yaml:"line_separator"`
	ParagraphSeparator string `yaml:"paragraph_separator"`
}

// PageConfig holds single-page conversion settings.
type PageConfig struct {
	IncludePageBreaks bool   `yaml:"include_page_breaks"`
	PageBreakTemplate string `yaml:"page_break_template"`
	CleanOutput       bool   `yaml:"clean_output"`
}

// MergeConfig holds line merging settings.
type MergeConfig struct {
	Enabled             bool   `yaml:"enabled"`
	MergeParagraphLines bool   `yaml:"merge_paragraph_lines"`
	MergeVerseLines     bool   `yaml:"merge_verse_lines"`
	LineJoiner          string `yaml:"line_joiner"`
}

// HyphenConfig holds hyphenation resolution settings.
type HyphenConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Patterns       []string `yaml:"patterns"`
	WordBreakChars []string `yaml:"word_break_chars"`
	MaxPasses      int      `yaml:"max_passes"`
}

// BookConfig holds multi-page book assembly settings.
type BookConfig struct {
	CreateBookDiv       bool   `yaml:"create_book_div"`
	DivType             string `yaml:"div_type"`
	HeaderTitleTemplate string `yaml:"header_title_template"`
	DefaultImageExt     string `yaml:"default_image_ext"`
}

// FacsimileConfig holds spatial overlay settings.
type FacsimileConfig struct {
	IncludeGraphic    bool `yaml:"include_graphic"`
	IncludeTextBlocks bool `yaml:"include_text_blocks"`
	IncludeTextLines  bool `yaml:"include_text_lines"`
	IncludeStrings    bool `yaml:"include_strings"`
	IncludeBaselines  bool `yaml:"include_baselines"`
	UsePolygons       bool `yaml:"use_polygons"`
}
