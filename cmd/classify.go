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

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iotext"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/classify"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/spf13/cobra"
)

// getClassifyCmd returns the classify command.
func getClassifyCmd() *cobra.Command {
	var noSuggest bool

	classifyCmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Split a species list into known and unknown names",
		Long: `Check every line of a species list file against all names the
catalog knows: canonical species, their synonyms and the names synonyms
point to. Whitespace runs inside a line are collapsed, empty lines are
skipped, and both resulting lists are deduplicated and sorted.

Unknown names get a suggestion when their canonical form, without
authorship, is known to the catalog.

Examples:
  biotope classify relevé.txt
  biotope classify relevé.txt -f csv --no-suggest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runClassify(cmd, args[0], noSuggest)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	classifyCmd.Flags().BoolVar(
		&noSuggest, "no-suggest", false,
		"do not suggest known names for unknown ones",
	)

	return classifyCmd
}

func runClassify(cmd *cobra.Command, path string, noSuggest bool) error {
	ctx := cmd.Context()

	frmt, err := outputFormat()
	if err != nil {
		return err
	}

	text, err := iotext.ReadList(path)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	part := classify.Classify(text, cat)

	var suggestions map[string]string
	if !noSuggest && len(part.Unknown) > 0 {
		norm, closePool := newNormalizer()
		defer closePool()
		suggestions, err = norm.Suggest(ctx, part.Unknown, cat)
		if err != nil {
			return err
		}
	}

	out, err := output.Partition(part, suggestions, frmt)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
