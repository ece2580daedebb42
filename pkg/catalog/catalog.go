// Package catalog parses the habitat catalog and keeps the reference data
// used for habitat scoring: synonyms, habitat group names, the species by
// group frequency matrix and the derived maximum frequency of every group.
//
// This package has no I/O dependencies. A Catalog is never modified after
// it is created, so it can be shared by concurrent analyses.
package catalog

import (
	"maps"
	"slices"
)

// Catalog holds the parsed habitat catalog.
type Catalog struct {
	// ID identifies the catalog content. It is set by the loader and is
	// empty for catalogs created directly from text.
	ID string `json:"id" yaml:"id"`

	// Encoding is the text encoding the catalog was decoded with.
	Encoding string `json:"encoding" yaml:"encoding"`

	// Synonyms maps an alternative species name to its canonical name.
	Synonyms map[string]string `json:"synonyms" yaml:"synonyms"`

	// Groups maps a habitat group id (e.g. "Group12") to its display name,
	// a habitat code followed by the habitat name.
	Groups map[string]string `json:"groups" yaml:"groups"`

	// Matrix maps a canonical species name to its frequency in each
	// habitat group. Missing entries mean zero.
	Matrix map[string]map[string]int `json:"matrix" yaml:"matrix"`

	// MaxFrequency is the sum of all species frequencies per group.
	// It is the denominator of the Frequency Quality Index.
	MaxFrequency map[string]int `json:"maxFrequency" yaml:"max_frequency"`

	// Stats describes what the parser found in the catalog text.
	Stats ParseStats `json:"stats" yaml:"stats"`

	known map[string]struct{}
}

// New creates a Catalog from already parsed data and computes the derived
// aggregates.
func New(
	synonyms map[string]string,
	groups map[string]string,
	matrix map[string]map[string]int,
) *Catalog {
	return &Catalog{
		Synonyms:     synonyms,
		Groups:       groups,
		Matrix:       matrix,
		MaxFrequency: MaxFrequency(matrix, groups),
		known:        AllKnown(synonyms, matrix),
	}
}

// MaxFrequency sums the frequencies of all species for every group of the
// group name table. Groups that are not in the table are ignored.
func MaxFrequency(
	matrix map[string]map[string]int,
	groups map[string]string,
) map[string]int {
	res := make(map[string]int)
	for _, row := range matrix {
		for group, count := range row {
			if _, ok := groups[group]; ok {
				res[group] += count
			}
		}
	}
	return res
}

// AllKnown returns every name the catalog can resolve: canonical species,
// synonyms and the canonical names synonyms point to.
func AllKnown(
	synonyms map[string]string,
	matrix map[string]map[string]int,
) map[string]struct{} {
	res := make(map[string]struct{}, len(matrix)+2*len(synonyms))
	for k := range matrix {
		res[k] = struct{}{}
	}
	for k, v := range synonyms {
		res[k] = struct{}{}
		res[v] = struct{}{}
	}
	return res
}

// Resolve returns the canonical form of a species name. Names without a
// synonym entry are considered canonical already.
func (c *Catalog) Resolve(name string) string {
	if canonical, ok := c.Synonyms[name]; ok {
		return canonical
	}
	return name
}

// IsKnown checks if a name belongs to the known-species universe.
func (c *Catalog) IsKnown(name string) bool {
	_, ok := c.known[name]
	return ok
}

// Known returns the known-species universe sorted alphabetically.
func (c *Catalog) Known() []string {
	return slices.Sorted(maps.Keys(c.known))
}

// GroupIDs returns the ids of all habitat groups in natural order.
func (c *Catalog) GroupIDs() []string {
	res := slices.Collect(maps.Keys(c.Groups))
	slices.SortFunc(res, CompareGroupIDs)
	return res
}

// Summary gives the headline numbers of the catalog.
type Summary struct {
	ID            string     `json:"id" yaml:"id"`
	Encoding      string     `json:"encoding" yaml:"encoding"`
	GroupsNum     int        `json:"groupsNum" yaml:"groups_num"`
	SpeciesNum    int        `json:"speciesNum" yaml:"species_num"`
	SynonymsNum   int        `json:"synonymsNum" yaml:"synonyms_num"`
	KnownNamesNum int        `json:"knownNamesNum" yaml:"known_names_num"`
	Parse         ParseStats `json:"parse" yaml:"parse"`
}

// Summary returns the headline numbers of the catalog.
func (c *Catalog) Summary() Summary {
	return Summary{
		ID:            c.ID,
		Encoding:      c.Encoding,
		GroupsNum:     len(c.Groups),
		SpeciesNum:    len(c.Matrix),
		SynonymsNum:   len(c.Synonyms),
		KnownNamesNum: len(c.known),
		Parse:         c.Stats,
	}
}
