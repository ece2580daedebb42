package output

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/mattn/go-runewidth"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/classify"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/fqi"
)

// NoMatchMsg is shown when no input species is in the frequency matrix.
const NoMatchMsg = "No input species was found in the similarity matrix, " +
	"FQI cannot be computed."

var matchHeader = []string{
	"Rank", "GroupID", "Code", "Habitat", "FQI", "Cumulative", "Max",
}

// Item is a named analysis result, such as one file of a batch.
type Item struct {
	Source string     `json:"source"`
	Result fqi.Result `json:"result"`
	Error  string     `json:"error,omitempty"`
}

// NewItem creates an Item. A non-nil error replaces the result.
func NewItem(source string, res fqi.Result, err error) Item {
	item := Item{Source: source, Result: res}
	if err != nil {
		item.Error = ErrorMessage(err)
		item.Result = fqi.Result{}
	}
	return item
}

// ErrorMessage returns the user-facing message of an error.
func ErrorMessage(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Msg != "" {
		msg := fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
		return strings.NewReplacer("<em>", "", "</em>", "").Replace(msg)
	}
	return err.Error()
}

// Result renders the ranked habitat groups and the provenance of an
// analysis.
func Result(res fqi.Result, f Format) (string, error) {
	switch {
	case f.isJSON():
		return encodeJSON(res, f)
	case f == CSV || f == TSV:
		var rows [][]string
		for _, m := range res.Matches {
			rows = append(rows, matchRow(m))
		}
		if len(rows) == 0 {
			rows = [][]string{noMatchRow()}
		}
		return table(f, matchHeader, rows), nil
	case f == Text:
		return resultText(res), nil
	}
	return "", FormatError(f.String())
}

// Partition renders known and unknown names of a species list with
// suggested known names for unknown ones.
func Partition(
	p classify.Partition,
	suggestions map[string]string,
	f Format,
) (string, error) {
	switch {
	case f.isJSON():
		out := struct {
			classify.Partition
			Suggestions map[string]string `json:"suggestions"`
		}{p, suggestions}
		if out.Suggestions == nil {
			out.Suggestions = map[string]string{}
		}
		return encodeJSON(out, f)
	case f == CSV || f == TSV:
		var rows [][]string
		for _, v := range p.Known {
			rows = append(rows, []string{v, "known", ""})
		}
		for _, v := range p.Unknown {
			rows = append(rows, []string{v, "unknown", suggestions[v]})
		}
		return table(f, []string{"Name", "Status", "Suggestion"}, rows), nil
	case f == Text:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Known species (%d):\n", len(p.Known))
		for _, v := range p.Known {
			fmt.Fprintf(&sb, "  %s\n", v)
		}
		fmt.Fprintf(&sb, "\nUnknown species (%d):\n", len(p.Unknown))
		for _, v := range p.Unknown {
			if s, ok := suggestions[v]; ok {
				fmt.Fprintf(&sb, "  %s (did you mean: %s)\n", v, s)
				continue
			}
			fmt.Fprintf(&sb, "  %s\n", v)
		}
		return sb.String(), nil
	}
	return "", FormatError(f.String())
}

// Names renders a list of names, one per line or row.
func Names(names []string, f Format) (string, error) {
	if names == nil {
		names = []string{}
	}
	switch {
	case f.isJSON():
		return encodeJSON(names, f)
	case f == CSV || f == TSV:
		rows := make([][]string, len(names))
		for i, v := range names {
			rows[i] = []string{v}
		}
		return table(f, []string{"Name"}, rows), nil
	case f == Text:
		if len(names) == 0 {
			return "", nil
		}
		return strings.Join(names, "\n") + "\n", nil
	}
	return "", FormatError(f.String())
}

// Summary renders catalog statistics.
func Summary(s catalog.Summary, f Format) (string, error) {
	if f.isJSON() {
		return encodeJSON(s, f)
	}

	id := s.ID
	if id == "" {
		id = "none"
	}
	fields := [][]string{
		{"Catalog ID", id},
		{"Encoding", s.Encoding},
		{"Habitat groups", comma(s.GroupsNum)},
		{"Matrix species", comma(s.SpeciesNum)},
		{"Synonyms", comma(s.SynonymsNum)},
		{"Known names", comma(s.KnownNamesNum)},
		{"Lines", comma(s.Parse.Lines)},
		{"Group name lines", comma(s.Parse.GroupNames)},
		{"Species rows", comma(s.Parse.SpeciesRows)},
		{"Matrix entries", comma(s.Parse.MatrixEntries)},
		{"Duplicate synonyms", comma(s.Parse.DuplicateSynonyms)},
		{"Skipped rows", comma(s.Parse.SkippedRows)},
	}

	switch f {
	case CSV, TSV:
		return table(f, []string{"Field", "Value"}, fields), nil
	case Text:
		return alignText(fields, 2), nil
	}
	return "", FormatError(f.String())
}

// CacheEntry describes a cached catalog.
type CacheEntry struct {
	ID         string    `json:"id"`
	Encoding   string    `json:"encoding"`
	SpeciesNum int       `json:"speciesNum"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CacheEntries renders the list of cached catalogs. Text output is empty
// when nothing is cached.
func CacheEntries(entries []CacheEntry, f Format) (string, error) {
	if entries == nil {
		entries = []CacheEntry{}
	}
	switch {
	case f.isJSON():
		return encodeJSON(entries, f)
	case f == CSV || f == TSV:
		rows := make([][]string, len(entries))
		for i, v := range entries {
			rows[i] = []string{
				v.ID,
				v.CreatedAt.Format(time.RFC3339),
				v.Encoding,
				strconv.Itoa(v.SpeciesNum),
			}
		}
		header := []string{"ID", "Created", "Encoding", "Species"}
		return table(f, header, rows), nil
	case f == Text:
		var sb strings.Builder
		for _, v := range entries {
			fmt.Fprintf(&sb, "%s  %s  %s  %s species\n",
				v.ID, v.CreatedAt.Format("2006-01-02 15:04"), v.Encoding,
				comma(v.SpeciesNum))
		}
		return sb.String(), nil
	}
	return "", FormatError(f.String())
}

// Batch renders results of many species lists.
func Batch(items []Item, f Format) (string, error) {
	if items == nil {
		items = []Item{}
	}
	switch {
	case f.isJSON():
		return encodeJSON(items, f)
	case f == CSV || f == TSV:
		header := append([]string{"Source"}, matchHeader...)
		header = append(header, "Error")
		var rows [][]string
		for _, v := range items {
			if v.Error != "" || len(v.Result.Matches) == 0 {
				row := make([]string, len(header))
				row[0] = v.Source
				row[len(row)-1] = v.Error
				if v.Error == "" {
					row[len(row)-1] = NoMatchMsg
				}
				rows = append(rows, row)
				continue
			}
			for _, m := range v.Result.Matches {
				row := append([]string{v.Source}, matchRow(m)...)
				rows = append(rows, append(row, ""))
			}
		}
		return table(f, header, rows), nil
	case f == Text:
		var sb strings.Builder
		for i, v := range items {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "== %s ==\n", v.Source)
			if v.Error != "" {
				fmt.Fprintf(&sb, "Error: %s\n", v.Error)
				continue
			}
			sb.WriteString(matchesText(v.Result))
		}
		return sb.String(), nil
	}
	return "", FormatError(f.String())
}

func resultText(res fqi.Result) string {
	var sb strings.Builder
	sb.WriteString(matchesText(res))

	fmt.Fprintf(&sb, "\nProcessed canonical species (%d):\n", len(res.Processed))
	for _, v := range res.Processed {
		fmt.Fprintf(&sb, "  %s\n", v)
	}

	conv := res.TrueConversions()
	if len(conv) == 0 {
		sb.WriteString("\nNo synonyms were converted.\n")
	} else {
		fmt.Fprintf(&sb, "\nSynonym conversions (%d):\n", len(conv))
		keys := slices.Sorted(maps.Keys(conv))
		rows := make([][]string, len(keys))
		for i, k := range keys {
			rows[i] = []string{k, "-> " + conv[k]}
		}
		sb.WriteString(alignText(rows, 2))
	}

	if len(res.Ignored) == 0 {
		sb.WriteString("\nNo duplicate inputs were ignored.\n")
	} else {
		fmt.Fprintf(&sb, "\nIgnored duplicate inputs (%d):\n", len(res.Ignored))
		for _, v := range res.Ignored {
			fmt.Fprintf(&sb, "  %s\n", v)
		}
	}
	return sb.String()
}

func matchesText(res fqi.Result) string {
	if res.NoMatch || len(res.Matches) == 0 {
		return NoMatchMsg + "\n"
	}
	rows := [][]string{{"Rank", "Code", "Habitat", "FQI"}}
	for _, m := range res.Matches {
		rows = append(rows, []string{
			strconv.Itoa(m.Rank), m.Code, m.Name, m.Percent,
		})
	}
	return alignText(rows, 0)
}

// noMatchRow keeps the match columns blank and puts the message into the
// Habitat column.
func noMatchRow() []string {
	row := make([]string, len(matchHeader))
	row[3] = NoMatchMsg
	return row
}

func matchRow(m fqi.Match) []string {
	return []string{
		strconv.Itoa(m.Rank),
		m.GroupID,
		m.Code,
		m.Name,
		strconv.FormatFloat(m.Score, 'f', 2, 64),
		strconv.Itoa(m.Cumulative),
		strconv.Itoa(m.Max),
	}
}

// alignText pads columns to the widest cell, taking the display width of
// accented characters into account.
func alignText(rows [][]string, indent int) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	pad := strings.Repeat(" ", indent)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		sb.WriteString(pad)
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func table(f Format, header []string, rows [][]string) string {
	var sb strings.Builder
	for _, row := range append([][]string{header}, rows...) {
		sb.WriteString(strings.TrimRight(gnfmt.ToCSV(row, f.sep()), "\r\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func encodeJSON(v any, f Format) (string, error) {
	enc := gnfmt.GNjson{Pretty: f == PrettyJSON}
	res, err := enc.Encode(v)
	if err != nil {
		return "", err
	}
	return string(res) + "\n", nil
}

func comma(i int) string {
	return humanize.Comma(int64(i))
}
