package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// lineKind tags a catalog line after classification.
type lineKind int

const (
	kindOther lineKind = iota
	kindSynonymSection
	kindMatrixSection
	kindSectionEnd
	kindCanonicalHeader
	kindSynonymEntry
	kindGroupName
	kindSkip
	kindSpeciesRow
	kindTotal
	kindMatrixEntry
	kindBadCount
)

// section is the catalog section the scanner is in.
type section int

const (
	sectionNone section = iota
	sectionSynonyms
	sectionMatrix
)

var (
	reSynonymSection = compile(`(?i)SECTION 1:\s*Species aggregation`)
	reMatrixSection  = compile(`(?i)SECTION 4:\s*Similarity`)
	reSectionEnd     = compile(`(?i)SECTION [23]:`)

	reCanonicalHeader = compile(`^([A-Za-z].*?)\s+-\s*(\d+)\s*$`)
	reSynonymEntry    = compile(`^\s+([A-Za-z].*?)\s+(\d+)\s*$`)

	reGroupName   = compile(`^(Group\d+)\s*name:\s*(.+)\s*$`)
	reSpeciesRow  = compile(`(?i)^\s*([A-Za-z].+?)\s*$`)
	reTotal       = compile(`(?i)^\s*Total:\s*(\d+)\s*$`)
	reMatrixEntry = compile(`(?i)^\s*(Group\d+):\s*(\d+)\s*$`)

	matrixBoilerplate = []string{"Count:", "No.", "Frequency table"}
)

// Catalog lines may be indented with no-break spaces (0xA0 in
// Windows-1250), so \s and \S of catalog patterns cover Unicode
// whitespace, not only ASCII.
var unicodeSpace = strings.NewReplacer(
	`\S`, `[^\s\p{Z}\x{85}]`,
	`\s`, `[\s\p{Z}\x{85}]`,
)

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(unicodeSpace.Replace(pattern))
}

// catalogLine is a classified line. Name and Value hold the captured
// fields relevant to the kind, Count is set for matrix entries.
type catalogLine struct {
	kind  lineKind
	name  string
	value string
	count int
}

// classifyLine applies the section markers first and then the rules of the
// active section in priority order. Whitespace handling differs per rule:
// synonym entries are only recognized on the raw, indented line.
func classifyLine(sec section, raw string) catalogLine {
	switch {
	case reSynonymSection.MatchString(raw):
		return catalogLine{kind: kindSynonymSection}
	case reMatrixSection.MatchString(raw):
		return catalogLine{kind: kindMatrixSection}
	case reSectionEnd.MatchString(raw):
		return catalogLine{kind: kindSectionEnd}
	}

	switch sec {
	case sectionSynonyms:
		return classifySynonymLine(raw)
	case sectionMatrix:
		return classifyMatrixLine(raw)
	default:
		return catalogLine{kind: kindOther}
	}
}

func classifySynonymLine(raw string) catalogLine {
	clean := strings.TrimSpace(raw)
	if m := reCanonicalHeader.FindStringSubmatch(clean); m != nil {
		return catalogLine{kind: kindCanonicalHeader, name: strings.TrimSpace(m[1])}
	}
	if m := reSynonymEntry.FindStringSubmatch(raw); m != nil {
		return catalogLine{kind: kindSynonymEntry, name: strings.TrimSpace(m[1])}
	}
	return catalogLine{kind: kindOther}
}

func classifyMatrixLine(raw string) catalogLine {
	clean := strings.TrimSpace(raw)

	if m := reGroupName.FindStringSubmatch(clean); m != nil {
		display, _, _ := strings.Cut(m[2], " Count:")
		return catalogLine{
			kind:  kindGroupName,
			name:  strings.TrimSpace(m[1]),
			value: strings.TrimSpace(display),
		}
	}

	for _, prefix := range matrixBoilerplate {
		if strings.HasPrefix(clean, prefix) {
			return catalogLine{kind: kindSkip}
		}
	}

	if m := reSpeciesRow.FindStringSubmatch(raw); m != nil &&
		!strings.Contains(raw, "Total:") && !strings.Contains(raw, "Group") {
		return catalogLine{kind: kindSpeciesRow, name: strings.TrimSpace(m[1])}
	}

	if reTotal.MatchString(raw) {
		return catalogLine{kind: kindTotal}
	}

	if m := reMatrixEntry.FindStringSubmatch(raw); m != nil {
		group := strings.TrimSpace(m[1])
		count, err := strconv.Atoi(m[2])
		if err != nil {
			return catalogLine{kind: kindBadCount, name: group, value: m[2]}
		}
		return catalogLine{kind: kindMatrixEntry, name: group, count: count}
	}

	return catalogLine{kind: kindOther}
}
