/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iobatch"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/spf13/cobra"
)

// getBatchCmd returns the batch command.
func getBatchCmd() *cobra.Command {
	var quiet bool

	batchCmd := &cobra.Command{
		Use:   "batch <file|dir>...",
		Short: "Analyze many species lists at once",
		Long: `Rank habitat groups for every species list file. Directories are
expanded to the files they contain. Files are processed concurrently,
a file that cannot be read or decoded is reported and does not stop the
rest of the batch.

Examples:
  # Analyze all lists of a directory, CSV output
  biotope batch relevés/ -f csv > habitats.csv

  # Analyze two files with 8 workers
  biotope batch -j 8 site1.txt site2.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBatch(cmd, args, quiet)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	analysisFlags(batchCmd)
	batchCmd.Flags().BoolVarP(
		&quiet, "quiet", "q", false,
		"do not show progress bar",
	)

	return batchCmd
}

func runBatch(cmd *cobra.Command, args []string, quiet bool) error {
	ctx := cmd.Context()
	cfg.Update(analysisFlagOptions(cmd))

	frmt, err := outputFormat()
	if err != nil {
		return err
	}

	paths, err := iobatch.Files(args)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	batchOpts := []iobatch.Option{
		iobatch.OptJobsNumber(cfg.JobsNumber),
		iobatch.OptTopN(cfg.Analysis.TopN),
	}
	if !quiet {
		batchOpts = append(batchOpts, iobatch.OptProgress(os.Stderr))
	}
	if cfg.Analysis.Normalize {
		norm, closePool := newNormalizer()
		defer closePool()
		batchOpts = append(batchOpts, iobatch.OptNormalizer(norm))
	}

	reports, err := iobatch.Run(ctx, cat, paths, batchOpts...)
	if err != nil {
		return err
	}

	items := make([]output.Item, len(reports))
	var failed int
	for i, v := range reports {
		if v.Err != nil {
			failed++
		}
		items[i] = output.NewItem(v.Path, v.Result, v.Err)
	}

	out, err := output.Batch(items, frmt)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if failed > 0 {
		gn.Warn("<em>%s</em> of <em>%s</em> species lists could not be analyzed",
			humanize.Comma(int64(failed)), humanize.Comma(int64(len(reports))))
	}
	return nil
}
