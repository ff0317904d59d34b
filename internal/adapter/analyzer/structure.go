package analyzer

import (
	"regexp"
	"strings"

	"coursekit/internal/domain"
)

var (
	numberedHeadingRe    = regexp.MustCompile(`(?m)^[ \t]*(\d+\.[\d.]*[ \t]+[A-Z][^\n]+)$`)
	capitalizedHeadingRe = regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Z \t]+[A-Z])[ \t]*$`)
	chapterMarkerRe      = regexp.MustCompile(`(?i)\b(?:chapter|section|part)\s+\d+`)
)

// maxHeadingLength keeps long numbered list items out of the outline.
const maxHeadingLength = 80

// IdentifyStructure finds section headings and chapter markers in raw,
// un-normalized text. Line breaks must still be present.
func IdentifyStructure(raw string) domain.Structure {
	var st domain.Structure
	seen := make(map[string]struct{})

	add := func(list *[]string, s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(s) > maxHeadingLength {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		*list = append(*list, s)
	}

	for _, m := range numberedHeadingRe.FindAllStringSubmatch(raw, -1) {
		add(&st.Sections, m[1])
	}
	for _, m := range capitalizedHeadingRe.FindAllStringSubmatch(raw, -1) {
		add(&st.Sections, m[1])
	}
	for _, m := range chapterMarkerRe.FindAllString(raw, -1) {
		add(&st.Chapters, m)
	}

	return st
}
