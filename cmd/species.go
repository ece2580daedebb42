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
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/spf13/cobra"
)

// getSpeciesCmd returns the species command.
func getSpeciesCmd() *cobra.Command {
	speciesCmd := &cobra.Command{
		Use:   "species",
		Short: "Print all species names known to the catalog",
		Long: `Print the sorted list of all names the catalog knows: species of
the frequency matrix, synonyms and the canonical names of synonyms.

The list can be used to prepare field lists that match the catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSpecies(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return speciesCmd
}

func runSpecies(cmd *cobra.Command) error {
	frmt, err := outputFormat()
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	out, err := output.Names(cat.Known(), frmt)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
