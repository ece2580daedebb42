// Package iobatch analyzes many species-list files against one catalog.
// Files are read and scored concurrently. A file that cannot be read or
// decoded gets its own error and does not stop the batch.
package iobatch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnfmt"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iotext"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/fqi"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/names"
	"golang.org/x/sync/errgroup"
)

// Report is the analysis outcome of one species-list file.
type Report struct {
	// Path of the species list.
	Path string `json:"path" yaml:"path"`

	// NamesNum is the number of non-empty lines in the list.
	NamesNum int `json:"namesNum" yaml:"names_num"`

	// Result of the analysis. It is empty when Err is set.
	Result fqi.Result `json:"result" yaml:"result"`

	// Err is the reason the file could not be analyzed.
	Err error `json:"-" yaml:"-"`
}

// Option modifies a batch run.
type Option func(*batch)

type batch struct {
	jobsNum    int
	topN       int
	normalizer *names.Normalizer
	progress   io.Writer
}

// OptJobsNumber sets the number of files processed concurrently.
func OptJobsNumber(i int) Option {
	return func(b *batch) {
		if i > 0 {
			b.jobsNum = i
		}
	}
}

// OptTopN sets how many habitat groups are reported for each file.
func OptTopN(i int) Option {
	return func(b *batch) {
		b.topN = i
	}
}

// OptNormalizer replaces unknown names by known names with the same
// canonical form before scoring.
func OptNormalizer(n *names.Normalizer) Option {
	return func(b *batch) {
		b.normalizer = n
	}
}

// OptProgress sets where the progress bar is drawn. Nil hides it.
func OptProgress(w io.Writer) Option {
	return func(b *batch) {
		b.progress = w
	}
}

// Files expands directories to the regular files they contain, skipping
// hidden ones. Files given explicitly are kept as they are. The order of
// arguments is preserved, files of a directory are sorted.
func Files(paths []string) ([]string, error) {
	var res []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			res = append(res, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, iotext.ListReadError(path, err)
		}
		var files []string
		for _, v := range entries {
			if !v.Type().IsRegular() || strings.HasPrefix(v.Name(), ".") {
				continue
			}
			files = append(files, filepath.Join(path, v.Name()))
		}
		slices.Sort(files)
		res = append(res, files...)
	}
	return res, nil
}

// Run analyzes every file against the catalog. Reports follow the order
// of paths. Run returns an error only when the context is canceled.
func Run(
	ctx context.Context,
	cat *catalog.Catalog,
	paths []string,
	opts ...Option,
) ([]Report, error) {
	b := batch{
		jobsNum: runtime.NumCPU(),
		topN:    fqi.DefaultTopN,
	}
	for _, opt := range opts {
		opt(&b)
	}

	start := time.Now()
	slog.Info("Starting batch analysis", "files", len(paths), "jobs", b.jobsNum)

	bar := pb.Full.New(len(paths))
	if b.progress != nil {
		bar.SetWriter(b.progress)
		bar.Set("prefix", "Analyzing lists: ")
		bar.Set(pb.CleanOnFinish, true)
		bar.Start()
		defer bar.Finish()
	}

	res := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobsNum)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res[i] = b.analyze(ctx, cat, path)
			if b.progress != nil {
				bar.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failed int
	for _, v := range res {
		if v.Err != nil {
			failed++
		}
	}
	slog.Info("Batch analysis finished",
		"files", len(paths),
		"failed", failed,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (b *batch) analyze(ctx context.Context, cat *catalog.Catalog, path string) Report {
	res := Report{Path: path}

	text, err := iotext.ReadList(path)
	if err != nil {
		slog.Warn("Cannot read species list", "path", path, "error", err)
		res.Err = err
		return res
	}

	species := iotext.Lines(text)
	res.NamesNum = len(species)

	if b.normalizer != nil {
		var unknown []string
		for _, v := range species {
			if !cat.IsKnown(v) {
				unknown = append(unknown, v)
			}
		}
		suggestions, err := b.normalizer.Suggest(ctx, unknown, cat)
		if err != nil {
			res.Err = err
			return res
		}
		species = names.Replace(species, suggestions)
	}

	res.Result = fqi.Analyze(species, cat, fqi.OptTopN(b.topN))
	return res
}
