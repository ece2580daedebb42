package cmd

import (
	"context"

	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iocatalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/names"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/output"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/parserpool"
	"github.com/spf13/cobra"
)

// globalFlagOptions converts explicitly set persistent flags to config
// options.
func globalFlagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("catalog") {
		s, _ := flags.GetString("catalog")
		res = append(res, config.OptCatalogPath(s))
	}
	if flags.Changed("format") {
		s, _ := flags.GetString("format")
		res = append(res, config.OptOutputFormat(s))
	}
	if flags.Changed("no-cache") {
		noCache, _ := flags.GetBool("no-cache")
		withCache := !noCache
		res = append(res, config.OptCatalogWithCache(&withCache))
	}
	if flags.Changed("jobs") {
		i, _ := flags.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}

// analysisFlags adds flags shared by analyze and batch commands.
func analysisFlags(cmd *cobra.Command) {
	cmd.Flags().IntP(
		"top-n", "n", 0,
		"number of best habitat groups to report (default from config)",
	)
	cmd.Flags().Bool(
		"normalize", false,
		"replace unknown names by known names with the same canonical form",
	)
}

// analysisFlagOptions converts explicitly set analysis flags to config
// options.
func analysisFlagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("top-n") {
		i, _ := cmd.Flags().GetInt("top-n")
		res = append(res, config.OptAnalysisTopN(i))
	}
	if cmd.Flags().Changed("normalize") {
		b, _ := cmd.Flags().GetBool("normalize")
		res = append(res, config.OptAnalysisNormalize(b))
	}
	return res
}

func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return iocatalog.New(cfg).Load(ctx)
}

// newNormalizer creates a name normalizer. The returned function
// releases its parsers.
func newNormalizer() (*names.Normalizer, func()) {
	pool := parserpool.NewPool(cfg.JobsNumber, cfg.NomCode())
	return names.New(pool, cfg.JobsNumber), pool.Close
}

func outputFormat() (output.Format, error) {
	return output.NewFormat(cfg.Output.Format)
}
