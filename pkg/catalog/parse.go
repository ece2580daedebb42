package catalog

import (
	"strings"
)

// ParseStats counts what the parser saw in a catalog.
type ParseStats struct {
	// Lines is the number of lines in the catalog text.
	Lines int `json:"lines" yaml:"lines"`

	// SynonymEntries counts synonym lines attached to a canonical name.
	SynonymEntries int `json:"synonymEntries" yaml:"synonym_entries"`

	// DuplicateSynonyms counts synonym lines ignored because the name was
	// already registered for an earlier canonical name.
	DuplicateSynonyms int `json:"duplicateSynonyms" yaml:"duplicate_synonyms"`

	// GroupNames counts group name lines, repeated ids included.
	GroupNames int `json:"groupNames" yaml:"group_names"`

	// SpeciesRows counts species rows of the similarity section.
	SpeciesRows int `json:"speciesRows" yaml:"species_rows"`

	// MatrixEntries counts recorded species/group frequencies.
	MatrixEntries int `json:"matrixEntries" yaml:"matrix_entries"`

	// SkippedRows counts matrix entries dropped because the count
	// was not a usable integer.
	SkippedRows int `json:"skippedRows" yaml:"skipped_rows"`
}

// Parse reads catalog text and builds the synonym map, the group name table
// and the frequency matrix. Parse fails with a CatalogMalformed error when
// the text has no group names or no matrix entries.
func Parse(text string) (*Catalog, error) {
	var stats ParseStats

	synonyms := make(map[string]string)
	groups := make(map[string]string)
	matrix := make(map[string]map[string]int)

	sec := sectionNone
	var canonical, species string

	lines := strings.Split(text, "\n")
	stats.Lines = len(lines)

	for _, raw := range lines {
		l := classifyLine(sec, raw)

		switch l.kind {
		case kindSynonymSection:
			sec = sectionSynonyms
		case kindMatrixSection:
			sec = sectionMatrix
			canonical = ""
		case kindSectionEnd:
			sec = sectionNone
		case kindCanonicalHeader:
			canonical = l.name
		case kindSynonymEntry:
			if canonical == "" {
				continue
			}
			if _, ok := synonyms[l.name]; ok {
				stats.DuplicateSynonyms++
				continue
			}
			synonyms[l.name] = canonical
			stats.SynonymEntries++
		case kindGroupName:
			groups[l.name] = l.value
			stats.GroupNames++
		case kindSpeciesRow:
			species = l.name
			stats.SpeciesRows++
		case kindMatrixEntry:
			if species == "" {
				continue
			}
			row, ok := matrix[species]
			if !ok {
				row = make(map[string]int)
				matrix[species] = row
			}
			row[l.name] = l.count
			stats.MatrixEntries++
		case kindBadCount:
			if species != "" {
				stats.SkippedRows++
			}
		}
	}

	if stats.GroupNames == 0 || stats.MatrixEntries == 0 {
		return nil, MalformedError(stats.GroupNames, stats.MatrixEntries)
	}

	res := New(synonyms, groups, matrix)
	res.Stats = stats
	return res, nil
}
