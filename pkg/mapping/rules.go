package mapping

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/altoweave/altoweave/pkg/assemble"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Rules is a loaded rule set with its regular expressions compiled.
type Rules struct {
	Config
	footnoteRes []*regexp.Regexp
	hyphenRes   []*regexp.Regexp
}

// Default returns the built-in rule set.
func Default() *Rules {
	rules, err := load(nil)
	if err != nil {
		// The embedded rule file is validated by tests; a parse failure
		// here is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded default rules: %v", err))
	}
	return rules
}

// Load reads a user rule file and overlays it on the built-in rule set.
// Fields absent from the user file keep their built-in values.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	rules, err := load(data)
	if err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	return rules, nil
}

func load(overlay []byte) (*Rules, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, err
	}
	if overlay != nil {
		if err := yaml.Unmarshal(overlay, &cfg); err != nil {
			return nil, err
		}
	}

	r := &Rules{Config: cfg}
	for _, p := range cfg.FootnotePatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.footnoteRes = append(r.footnoteRes, re)
	}
	r.hyphenRes = assemble.CompilePatterns(cfg.Hyphen.Patterns)
	return r, nil
}

// Block returns the rule for a region type, falling back to the default
// block type's rule when the type is not configured. An unconfigured region
// therefore converts as ordinary content rather than vanishing.
func (r *Rules) Block(blockType string) BlockRule {
	if rule, ok := r.BlockTypes[blockType]; ok {
		return rule
	}
	return r.BlockTypes[r.DefaultBlockType]
}

// Line returns the rule for a line type, falling back to the default line
// type's rule when the type is not configured.
func (r *Rules) Line(lineType string) LineRule {
	if rule, ok := r.LineTypes[lineType]; ok {
		return rule
	}
	return r.LineTypes[r.DefaultLineType]
}

// Behavior adapts a line type's rule into an assembly behavior descriptor.
func (r *Rules) Behavior(lineType string) assemble.Behavior {
	rule := r.Line(lineType)

	b := assemble.Behavior{
		Standalone: rule.Standalone,
		Skip:       rule.Skip,
	}
	switch rule.Kind {
	case "verse", "poetry":
		b.Kind = assemble.KindVerse
		b.Continues = true
	case "heading":
		b.Kind = assemble.KindHeading
		b.Standalone = true
	case "", "paragraph":
		b.Kind = assemble.KindParagraph
	default:
		b.Kind = assemble.KindOther
	}
	switch rule.Action {
	case "start_paragraph":
		b.Starts = true
	case "add_to_paragraph":
		b.Continues = true
	}
	for _, name := range rule.Closes {
		switch name {
		case "paragraph":
			b.Closes = append(b.Closes, assemble.KindParagraph)
		case "verse", "poetry":
			b.Closes = append(b.Closes, assemble.KindVerse)
		}
	}
	return b
}

// MergeOptions builds the line merging settings from the rule set.
func (r *Rules) MergeOptions() assemble.MergeOptions {
	return assemble.MergeOptions{
		MergeParagraph: r.Merge.MergeParagraphLines,
		MergeVerse:     r.Merge.MergeVerseLines,
		Joiner:         r.Merge.LineJoiner,
		Hyphen:         r.HyphenOptions(),
	}
}

// HyphenOptions builds the hyphenation settings from the rule set.
func (r *Rules) HyphenOptions() assemble.HyphenOptions {
	return assemble.HyphenOptions{
		Enabled:    r.Hyphen.Enabled,
		Patterns:   r.hyphenRes,
		BreakChars: r.Hyphen.WordBreakChars,
		MaxPasses:  r.Hyphen.MaxPasses,
	}
}

// Validate checks the rule set for inconsistencies and returns a warning
// per finding. Warnings do not prevent conversion.
func (r *Rules) Validate() []string {
	var warnings []string
	for name, rule := range r.BlockTypes {
		if rule.SkipContent && rule.ProcessLines {
			warnings = append(warnings,
				fmt.Sprintf("block type %q sets both skip_content and process_lines; skip_content wins", name))
		}
	}
	for name, rule := range r.LineTypes {
		switch rule.Action {
		case "", "start_paragraph", "add_to_paragraph", "create_element":
		default:
			warnings = append(warnings,
				fmt.Sprintf("line type %q has unknown action %q", name, rule.Action))
		}
		if rule.Action == "create_element" && rule.Element == "" {
			warnings = append(warnings,
				fmt.Sprintf("line type %q uses create_element without an element name", name))
		}
	}
	if _, ok := r.BlockTypes[r.DefaultBlockType]; !ok {
		warnings = append(warnings,
			fmt.Sprintf("default block type %q has no rule", r.DefaultBlockType))
	}
	if _, ok := r.LineTypes[r.DefaultLineType]; !ok {
		warnings = append(warnings,
			fmt.Sprintf("default line type %q has no rule", r.DefaultLineType))
	}
	return warnings
}
