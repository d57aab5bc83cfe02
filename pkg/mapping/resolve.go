package mapping

import "strings"

// Region and line tag references are prefixed in the document tag table.
const (
	blockTagPrefix = "BT"
	lineTagPrefix  = "LT"
)

// ResolveType maps a space-separated tag reference list to a type name via
// the document tag table. Only references with the given prefix are
// considered; the first one that resolves wins. Missing or unresolvable
// references fall back to defaultType, never to an error.
func ResolveType(tagRefs string, tags map[string]string, prefix, defaultType string) string {
	for _, ref := range strings.Fields(tagRefs) {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}
		if label, ok := tags[ref]; ok && label != "" {
			return label
		}
	}
	return defaultType
}

// BlockType resolves the semantic type of a region.
func (r *Rules) BlockType(tagRefs string, tags map[string]string) string {
	return ResolveType(tagRefs, tags, blockTagPrefix, r.DefaultBlockType)
}

// LineType resolves the semantic type of a text line.
func (r *Rules) LineType(tagRefs string, tags map[string]string) string {
	return ResolveType(tagRefs, tags, lineTagPrefix, r.DefaultLineType)
}
