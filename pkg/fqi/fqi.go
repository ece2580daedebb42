// Package fqi scores a list of observed species against the habitat catalog
// and ranks habitat groups by their Frequency Quality Index (FQI).
//
// FQI of a group is the sum of catalog frequencies of the observed
// canonical species in that group, divided by the sum of frequencies of all
// catalog species in the group, in percent.
//
// This is a pure package. Analyze only reads the catalog and keeps its
// running state per call, so concurrent calls are safe.
package fqi

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
)

// DefaultTopN is the number of habitat groups reported by default.
const DefaultTopN = 3

// Match is one ranked habitat group.
type Match struct {
	// Rank starts from 1.
	Rank int `json:"rank" yaml:"rank"`

	// GroupID is the catalog id of the habitat group, e.g. "Group12".
	GroupID string `json:"groupId" yaml:"group_id"`

	// Code is the habitat code, e.g. "LES05.1a".
	Code string `json:"code" yaml:"code"`

	// Name is the habitat name.
	Name string `json:"name" yaml:"name"`

	// Score is FQI in percent.
	Score float64 `json:"score" yaml:"score"`

	// Percent is Score formatted with two decimals, e.g. "87.50%".
	Percent string `json:"percent" yaml:"percent"`

	// Cumulative is the summed frequency of observed species in the group.
	Cumulative int `json:"cumulative" yaml:"cumulative"`

	// Max is the summed frequency of all catalog species in the group.
	Max int `json:"max" yaml:"max"`
}

// Result is the outcome of an analysis with its provenance.
type Result struct {
	// NoMatch is true when none of the input names resolved to a species of
	// the frequency matrix. Matches is empty in that case.
	NoMatch bool `json:"noMatch" yaml:"no_match"`

	// Matches are the best habitat groups, highest FQI first.
	Matches []Match `json:"matches" yaml:"matches"`

	// Processed are canonical species that contributed to the scores,
	// sorted alphabetically.
	Processed []string `json:"processed" yaml:"processed"`

	// Conversions maps every contributing or ignored input to its
	// canonical name, including inputs that are canonical already.
	Conversions map[string]string `json:"conversions" yaml:"conversions"`

	// Ignored are inputs that resolved to an already processed canonical
	// species, in input order.
	Ignored []string `json:"ignored" yaml:"ignored"`
}

// TrueConversions returns only the conversions where the input differs
// from its canonical name.
func (r Result) TrueConversions() map[string]string {
	res := make(map[string]string)
	for k, v := range r.Conversions {
		if k != v {
			res[k] = v
		}
	}
	return res
}

// Option modifies analysis settings.
type Option func(*settings)

type settings struct {
	topN int
}

// OptTopN sets how many habitat groups are reported. Values less than
// one are ignored.
func OptTopN(i int) Option {
	return func(s *settings) {
		if i > 0 {
			s.topN = i
		}
	}
}

// Analyze resolves the species names against the catalog, accumulates their
// frequencies per habitat group and ranks the groups by FQI.
// Names that do not resolve to a species of the matrix are dropped, a
// canonical species contributes only once.
func Analyze(
	species []string,
	cat *catalog.Catalog,
	opts ...Option,
) Result {
	s := settings{topN: DefaultTopN}
	for _, opt := range opts {
		opt(&s)
	}

	res := Result{
		Conversions: make(map[string]string),
		Processed:   []string{},
		Ignored:     []string{},
		Matches:     []Match{},
	}
	processed := make(map[string]struct{})
	cumulative := make(map[string]int)

	for _, input := range species {
		input = strings.TrimSpace(input)
		canonical := cat.Resolve(input)

		row, ok := cat.Matrix[canonical]
		if !ok {
			continue
		}

		res.Conversions[input] = canonical

		if _, seen := processed[canonical]; seen {
			res.Ignored = append(res.Ignored, input)
			continue
		}
		processed[canonical] = struct{}{}

		for group, count := range row {
			if _, ok := cat.Groups[group]; ok {
				cumulative[group] += count
			}
		}
	}
	if len(processed) > 0 {
		res.Processed = slices.Sorted(maps.Keys(processed))
	}

	if len(cumulative) == 0 {
		res.NoMatch = true
		return res
	}

	res.Matches = rank(cumulative, cat, s.topN)
	return res
}

func rank(cumulative map[string]int, cat *catalog.Catalog, topN int) []Match {
	scores := make([]Match, 0, len(cumulative))
	for group, sum := range cumulative {
		m := Match{
			GroupID:    group,
			Cumulative: sum,
			Max:        cat.MaxFrequency[group],
		}
		if m.Max > 0 {
			m.Score = 100 * float64(sum) / float64(m.Max)
		}
		scores = append(scores, m)
	}

	slices.SortFunc(scores, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return catalog.CompareGroupIDs(a.GroupID, b.GroupID)
	})

	if len(scores) > topN {
		scores = scores[:topN]
	}

	for i := range scores {
		m := &scores[i]
		m.Rank = i + 1
		m.Code, m.Name = catalog.SplitDisplayName(m.GroupID, cat.Groups[m.GroupID])
		m.Percent = FormatPercent(m.Score)
	}
	return scores
}

// FormatPercent formats FQI with two decimals and a percent sign.
func FormatPercent(score float64) string {
	return fmt.Sprintf("%.2f%%", score)
}
