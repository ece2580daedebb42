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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/ioconfig"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iofs"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iologger"
	biotope "github.com/robertsuvada-sys/biotope-fqi-app/pkg"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", biotope.Version, biotope.Build),
		Use:     "biotope",
		Short:   "biotope finds habitats that match a list of plant species",
		Long: `biotope ranks habitat groups of the Slovak habitat catalog
(Šuvada R. (ed.), 2023: Katalóg biotopov Slovenska) by their Frequency
Quality Index (FQI) for a list of observed plant species.

FQI of a habitat group is the summed catalog frequency of the observed
species in the group divided by the summed frequency of all catalog
species in the group, in percent.

Commands:
  - analyze:  rank habitat groups for a species list
  - classify: split a species list into known and unknown names
  - species:  print all species names the catalog knows
  - stats:    print catalog statistics
  - batch:    analyze many species lists at once
  - cache:    manage parsed catalogs cache
  - config:   print effective configuration

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BIOTOPE_*)
  3. Config file (~/.config/biotope/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (catalog.path → BIOTOPE_CATALOG_PATH).

  Examples:
    BIOTOPE_CATALOG_PATH        Catalog text file
    BIOTOPE_CATALOG_WITH_CACHE  Keep parsed catalogs (true/false)
    BIOTOPE_ANALYSIS_TOP_N      Number of reported habitat groups
    BIOTOPE_OUTPUT_FORMAT       text, csv, tsv, compact, pretty
    BIOTOPE_LOG_LEVEL           Log level (debug/info/warn/error)
    BIOTOPE_JOBS_NUMBER         Number of concurrent workers`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "biotope version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for biotope")

	rootCmd.PersistentFlags().StringP(
		"catalog", "c", "",
		"habitat catalog file (default from config)",
	)
	rootCmd.PersistentFlags().StringP(
		"format", "f", "",
		"output format: text, csv, tsv, compact, pretty",
	)
	rootCmd.PersistentFlags().Bool(
		"no-cache", false,
		"parse the catalog without the catalog cache",
	)
	rootCmd.PersistentFlags().IntP(
		"jobs", "j", 0,
		"number of concurrent workers",
	)

	rootCmd.AddCommand(
		getAnalyzeCmd(),
		getClassifyCmd(),
		getSpeciesCmd(),
		getStatsCmd(),
		getBatchCmd(),
		getCacheCmd(),
		getConfigCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	logDir := config.LogDir(homeDir)
	if err = iologger.Init(logDir, defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = ioconfig.Load(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	cfg.Update(globalFlagOptions(cmd))

	// Reconfigure logging with user's settings, keeping the messages
	// written so far
	if err = iologger.Init(logDir, cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := getRootCmd().ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
