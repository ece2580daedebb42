// Package classify splits an uploaded species list into names the catalog
// knows and names it does not know.
package classify

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Membership tells if a name belongs to the known-species universe.
// *catalog.Catalog satisfies it.
type Membership interface {
	IsKnown(name string) bool
}

// Partition is the result of classification. Both lists are
// deduplicated and sorted.
type Partition struct {
	Known   []string `json:"known" yaml:"known"`
	Unknown []string `json:"unknown" yaml:"unknown"`
}

// CleanName collapses whitespace runs to a single space and trims the name.
func CleanName(name string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(name, " "))
}

// Names returns cleaned, non-empty lines of a species list in their
// original order. Duplicates are kept.
func Names(text string) []string {
	var res []string
	for line := range strings.Lines(text) {
		name := CleanName(line)
		if name == "" {
			continue
		}
		res = append(res, name)
	}
	return res
}

// Classify divides the lines of a species list into known and unknown
// names.
func Classify(text string, known Membership) Partition {
	knownSet := make(map[string]struct{})
	unknownSet := make(map[string]struct{})

	for _, name := range Names(text) {
		if known.IsKnown(name) {
			knownSet[name] = struct{}{}
		} else {
			unknownSet[name] = struct{}{}
		}
	}

	return Partition{
		Known:   sorted(knownSet),
		Unknown: sorted(unknownSet),
	}
}

func sorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(set))
}
