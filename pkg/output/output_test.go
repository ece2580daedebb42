package output_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/classify"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/fqi"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaBeta() fqi.Result {
	cat := catalog.New(
		map[string]string{"Alpha": "Beta"},
		map[string]string{"Group1": "G1name X", "Group2": "G2name Y"},
		map[string]map[string]int{"Beta": {"Group1": 10, "Group2": 5}},
	)
	return fqi.Analyze([]string{"Alpha", "Beta"}, cat)
}

func TestNewFormat(t *testing.T) {
	tests := []struct {
		msg string
		in  string
		res output.Format
	}{
		{"text", "text", output.Text},
		{"csv", "CSV", output.CSV},
		{"tsv", " tsv ", output.TSV},
		{"compact", "compact", output.CompactJSON},
		{"pretty", "pretty", output.PrettyJSON},
	}
	for _, v := range tests {
		res, err := output.NewFormat(v.in)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
		assert.Equal(t, strings.TrimSpace(strings.ToLower(v.in)), res.String(), v.msg)
	}

	res, err := output.NewFormat("xml")
	assert.Equal(t, output.FormatNone, res)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.OutputFormatError, gnErr.Code)
}

func TestResultText(t *testing.T) {
	assert := assert.New(t)
	res, err := output.Result(alphaBeta(), output.Text)
	require.NoError(t, err)

	lines := strings.Split(res, "\n")
	assert.Equal("Rank  Code    Habitat  FQI", lines[0])
	assert.Equal("1     G1name  X        100.00%", lines[1])
	assert.Equal("2     G2name  Y        100.00%", lines[2])
	assert.Contains(res, "Processed canonical species (1):\n  Beta\n")
	assert.Contains(res, "Synonym conversions (1):\n  Alpha  -> Beta\n")
	assert.Contains(res, "Ignored duplicate inputs (1):\n  Beta\n")
}

func TestResultNoMatch(t *testing.T) {
	res, err := output.Result(fqi.Result{NoMatch: true}, output.Text)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res, output.NoMatchMsg))
	assert.Contains(t, res, "No synonyms were converted.")
	assert.Contains(t, res, "No duplicate inputs were ignored.")

	tests := []struct {
		msg string
		f   output.Format
		res string
	}{
		{"csv", output.CSV,
			"Rank,GroupID,Code,Habitat,FQI,Cumulative,Max\n" +
				",,,\"" + output.NoMatchMsg + "\",,,\n"},
		{"tsv", output.TSV,
			"Rank\tGroupID\tCode\tHabitat\tFQI\tCumulative\tMax\n" +
				"\t\t\t" + output.NoMatchMsg + "\t\t\t\n"},
	}

	for _, v := range tests {
		res, err := output.Result(fqi.Result{NoMatch: true}, v.f)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestResultCSV(t *testing.T) {
	res, err := output.Result(alphaBeta(), output.CSV)
	require.NoError(t, err)
	assert.Equal(t, "Rank,GroupID,Code,Habitat,FQI,Cumulative,Max\n"+
		"1,Group1,G1name,X,100.00,10,10\n"+
		"2,Group2,G2name,Y,100.00,5,5\n", res)

	res, err = output.Result(alphaBeta(), output.TSV)
	require.NoError(t, err)
	assert.Contains(t, res, "1\tGroup1\tG1name\tX\t100.00\t10\t10\n")
}

func TestResultJSON(t *testing.T) {
	orig := alphaBeta()
	for _, f := range []output.Format{output.CompactJSON, output.PrettyJSON} {
		res, err := output.Result(orig, f)
		require.NoError(t, err)

		var decoded fqi.Result
		require.NoError(t, json.Unmarshal([]byte(res), &decoded))
		assert.Equal(t, orig.Matches, decoded.Matches)
		assert.Equal(t, orig.Conversions, decoded.Conversions)
		assert.Equal(t, orig.Ignored, decoded.Ignored)
	}
}

func TestPartition(t *testing.T) {
	assert := assert.New(t)
	p := classify.Partition{
		Known:   []string{"Beta"},
		Unknown: []string{"Beta L.", "Gamma"},
	}
	sugg := map[string]string{"Beta L.": "Beta"}

	res, err := output.Partition(p, sugg, output.Text)
	require.NoError(t, err)
	assert.Equal("Known species (1):\n  Beta\n\n"+
		"Unknown species (2):\n  Beta L. (did you mean: Beta)\n  Gamma\n", res)

	res, err = output.Partition(p, sugg, output.CSV)
	require.NoError(t, err)
	assert.Equal("Name,Status,Suggestion\nBeta,known,\n"+
		"Beta L.,unknown,Beta\nGamma,unknown,\n", res)

	res, err = output.Partition(p, nil, output.CompactJSON)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(res), &decoded))
	assert.Contains(decoded, "known")
	assert.Contains(decoded, "unknown")
	assert.Equal(map[string]any{}, decoded["suggestions"])
}

func TestNames(t *testing.T) {
	res, err := output.Names([]string{"Beta", "Gamma"}, output.Text)
	require.NoError(t, err)
	assert.Equal(t, "Beta\nGamma\n", res)

	res, err = output.Names(nil, output.Text)
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = output.Names(nil, output.CompactJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", res)

	res, err = output.Names([]string{"Beta"}, output.TSV)
	require.NoError(t, err)
	assert.Equal(t, "Name\nBeta\n", res)
}

func TestSummary(t *testing.T) {
	s := catalog.Summary{
		Encoding:      "windows-1250",
		GroupsNum:     120,
		SpeciesNum:    1532,
		SynonymsNum:   2410,
		KnownNamesNum: 3001,
	}
	res, err := output.Summary(s, output.Text)
	require.NoError(t, err)
	assert.Contains(t, res, "Catalog ID          none\n")
	assert.Contains(t, res, "Matrix species")
	assert.Contains(t, res, "1,532")

	res, err = output.Summary(s, output.CSV)
	require.NoError(t, err)
	assert.Contains(t, res, "Field,Value\n")
	assert.Contains(t, res, "Known names,\"3,001\"\n")

	s.ID = "1c4a2b0e-1a6f-5b3c-9d8e-7f6a5b4c3d2e"
	res, err = output.Summary(s, output.CSV)
	require.NoError(t, err)
	assert.Contains(t, res, "Catalog ID,"+s.ID+"\n")
}

func TestCacheEntries(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	entries := []output.CacheEntry{
		{
			ID:         "1c4a2b0e-1a6f-5b3c-9d8e-7f6a5b4c3d2e",
			Encoding:   "windows-1250",
			SpeciesNum: 1520,
			CreatedAt:  created,
		},
	}

	tests := []struct {
		msg string
		f   output.Format
		res string
	}{
		{"text", output.Text,
			"1c4a2b0e-1a6f-5b3c-9d8e-7f6a5b4c3d2e  2026-03-14 09:26  " +
				"windows-1250  1,520 species\n"},
		{"csv", output.CSV,
			"ID,Created,Encoding,Species\n" +
				"1c4a2b0e-1a6f-5b3c-9d8e-7f6a5b4c3d2e,2026-03-14T09:26:00Z," +
				"windows-1250,1520\n"},
		{"tsv", output.TSV,
			"ID\tCreated\tEncoding\tSpecies\n" +
				"1c4a2b0e-1a6f-5b3c-9d8e-7f6a5b4c3d2e\t2026-03-14T09:26:00Z\t" +
				"windows-1250\t1520\n"},
	}

	for _, v := range tests {
		res, err := output.CacheEntries(entries, v.f)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}

	res, err := output.CacheEntries(entries, output.CompactJSON)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "windows-1250", decoded[0]["encoding"])
	assert.Equal(t, float64(1520), decoded[0]["speciesNum"])
	assert.Equal(t, "2026-03-14T09:26:00Z", decoded[0]["createdAt"])

	empty := []struct {
		msg string
		f   output.Format
		res string
	}{
		{"empty text", output.Text, ""},
		{"empty csv", output.CSV, "ID,Created,Encoding,Species\n"},
		{"empty json", output.CompactJSON, "[]\n"},
	}

	for _, v := range empty {
		res, err := output.CacheEntries(nil, v.f)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}

	_, err = output.CacheEntries(entries, output.FormatNone)
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	assert := assert.New(t)
	items := []output.Item{
		output.NewItem("a.txt", alphaBeta(), nil),
		output.NewItem("b.txt", fqi.Result{}, &gn.Error{
			Msg: "Cannot read <em>%s</em>", Vars: []any{"b.txt"},
		}),
		output.NewItem("c.txt", fqi.Result{NoMatch: true}, nil),
	}
	assert.Equal("Cannot read b.txt", items[1].Error)

	res, err := output.Batch(items, output.Text)
	require.NoError(t, err)
	assert.Contains(res, "== a.txt ==\nRank")
	assert.Contains(res, "== b.txt ==\nError: Cannot read b.txt\n")
	assert.Contains(res, "== c.txt ==\n"+output.NoMatchMsg)

	res, err = output.Batch(items, output.CSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(res), "\n")
	require.Len(t, lines, 5)
	assert.Equal("Source,Rank,GroupID,Code,Habitat,FQI,Cumulative,Max,Error", lines[0])
	assert.Equal("a.txt,1,Group1,G1name,X,100.00,10,10,", lines[1])
	assert.Equal("b.txt,,,,,,,,Cannot read b.txt", lines[3])
}
