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
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iocache"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iofs"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/spf13/cobra"
)

// getCacheCmd returns the cache command with its subcommands.
func getCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache of parsed catalogs",
		Long: `Parsed catalogs are kept in ~/.cache/biotope/catalogs.sqlite and
are found by the content of the catalog file. An edited catalog is parsed
again automatically, so the cache only needs to be cleared to save space.`,
	}

	cacheCmd.AddCommand(getCacheListCmd(), getCacheClearCmd())
	return cacheCmd
}

func getCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached catalogs",
		Long: `List cached catalogs, newest first. The output follows the
--format flag, so the list can be exported as CSV, TSV or JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheList(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func getCacheClearCmd() *cobra.Command {
	var purge bool

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheClear(cmd, purge)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	clearCmd.Flags().BoolVar(
		&purge, "purge", false,
		"delete the cache database file",
	)
	return clearCmd
}

func runCacheList(cmd *cobra.Command) error {
	frmt, err := outputFormat()
	if err != nil {
		return err
	}

	cache, err := iocache.Open(config.CacheFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer cache.Close()

	entries, err := cache.List(cmd.Context())
	if err != nil {
		return err
	}

	res := make([]output.CacheEntry, len(entries))
	for i, v := range entries {
		res[i] = output.CacheEntry{
			ID:         v.ID,
			Encoding:   v.Encoding,
			SpeciesNum: v.SpeciesNum,
			CreatedAt:  v.CreatedAt,
		}
	}

	out, err := output.CacheEntries(res, frmt)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runCacheClear(cmd *cobra.Command, purge bool) error {
	if purge {
		if err := iofs.RemoveCache(cfg.HomeDir); err != nil {
			return err
		}
		gn.Info("Removed <em>%s</em>", config.CacheFilePath(cfg.HomeDir))
		return nil
	}

	cache, err := iocache.Open(config.CacheFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer cache.Close()

	num, err := cache.Clear(cmd.Context())
	if err != nil {
		return err
	}
	gn.Info("Removed <em>%d</em> cached catalogs", num)
	return nil
}
