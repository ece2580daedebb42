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
	"log/slog"
	"strings"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iotext"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/fqi"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/names"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
func getAnalyzeCmd() *cobra.Command {
	var input string

	analyzeCmd := &cobra.Command{
		Use:   "analyze [species...]",
		Short: "Rank habitat groups by FQI for a list of species",
		Long: `Rank habitat groups of the catalog by their Frequency Quality
Index (FQI) for observed species.

Species are given as arguments, as a list file with one name per line
(UTF-8 or Windows-1250), or both. Synonyms are converted to canonical
catalog names, every canonical species is counted once, and names that are
not in the frequency matrix are ignored.

Examples:
  # Analyze species given as arguments
  biotope analyze "Fagus sylvatica" "Carex pilosa"

  # Analyze a list file and report 5 best habitats as CSV
  biotope analyze -i relevé.txt -n 5 -f csv

  # Match names with authorships to catalog names
  biotope analyze -i relevé.txt --normalize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnalyze(cmd, args, input)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	analyzeCmd.Flags().StringVarP(
		&input, "input", "i", "",
		"species list file, one name per line",
	)
	analysisFlags(analyzeCmd)

	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, args []string, input string) error {
	ctx := cmd.Context()
	cfg.Update(analysisFlagOptions(cmd))

	frmt, err := outputFormat()
	if err != nil {
		return err
	}

	species := iotext.Lines(strings.Join(args, "\n"))
	if input != "" {
		text, err := iotext.ReadList(input)
		if err != nil {
			return err
		}
		species = append(species, iotext.Lines(text)...)
	}
	if len(species) == 0 {
		source := input
		if source == "" {
			source = "arguments"
		}
		return iotext.ListEmptyError(source)
	}

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	if cfg.Analysis.Normalize {
		norm, closePool := newNormalizer()
		defer closePool()

		var unknown []string
		for _, v := range species {
			if !cat.IsKnown(v) {
				unknown = append(unknown, v)
			}
		}
		suggestions, err := norm.Suggest(ctx, unknown, cat)
		if err != nil {
			return err
		}
		for k, v := range suggestions {
			slog.Info("Normalized species name", "input", k, "name", v)
		}
		species = names.Replace(species, suggestions)
	}

	slog.Info("Analyzing species", "species", len(species), "top_n", cfg.Analysis.TopN)
	res := fqi.Analyze(species, cat, fqi.OptTopN(cfg.Analysis.TopN))
	if res.NoMatch {
		slog.Warn("No input species found in the similarity matrix")
	}

	out, err := output.Result(res, frmt)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
