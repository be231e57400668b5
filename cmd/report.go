/*
Copyright © 2025 Dispatch Lab <dev@dispatchlab.org>

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

	"github.com/dispatchlab/crtbox/internal/iofetch"
	"github.com/dispatchlab/crtbox/internal/ioreport"
	"github.com/dispatchlab/crtbox/internal/iosources"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getReportCmd returns the report command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getReportCmd() *cobra.Command {
	var (
		from        string
		to          string
		supervisors []string
		crates      []float64
		round       bool
		out         string
		source      string
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Export pivot and raw CSV reports",
		Long: `Build the crates-per-box report and export it as CSV files.

The report joins sales lines with products and route supervisors,
derives the crates-per-box ratio and pivots it by route and date.
Two files are written to the output directory: the route-by-date
pivot table and the raw enriched rows behind it.

Filters default to the full data: all supervisors, all
crates-per-box values and the complete date span. Passing an empty
value selects nothing: --supervisors "" produces an empty report.

Examples:
  crtbox report
  crtbox report --from 2024-01-01 --to 2024-03-31
  crtbox report --supervisors Amal,Basem --crates 24
  crtbox report --round --out ./reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var runOpts []config.Option
			if source != "" {
				runOpts = append(runOpts, config.OptSourceName(source))
			}
			if cmd.Flags().Changed("from") {
				runOpts = append(runOpts, config.OptReportFrom(from))
			}
			if cmd.Flags().Changed("to") {
				runOpts = append(runOpts, config.OptReportTo(to))
			}
			if cmd.Flags().Changed("supervisors") {
				runOpts = append(runOpts,
					config.OptReportSupervisors(supervisors))
			}
			if cmd.Flags().Changed("crates") {
				runOpts = append(runOpts, config.OptReportCrates(crates))
			}
			if cmd.Flags().Changed("round") {
				runOpts = append(runOpts, config.OptReportRoundRatio(round))
			}
			if cmd.Flags().Changed("out") {
				runOpts = append(runOpts, config.OptReportOutputDir(out))
			}
			cfg.Update(runOpts)

			return runReport()
		},
	}

	reportCmd.Flags().StringVar(&from, "from", "",
		"start of the date range (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&to, "to", "",
		"end of the date range (YYYY-MM-DD)")
	reportCmd.Flags().StringSliceVar(&supervisors, "supervisors", nil,
		"restrict the report to these supervisors")
	reportCmd.Flags().Float64SliceVar(&crates, "crates", nil,
		"restrict the report to these crates-per-box values")
	reportCmd.Flags().BoolVar(&round, "round", false,
		"round the crates-per-box ratio to whole numbers")
	reportCmd.Flags().StringVarP(&out, "out", "o", "",
		"directory for the exported CSV files")
	reportCmd.Flags().StringVarP(&source, "source", "s", "",
		"dataset name from sources.yaml")

	return reportCmd
}

func runReport() error {
	ctx := context.Background()

	ds, err := iosources.Select(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	prov := iofetch.New(cfg, ds)
	runner := ioreport.NewRunner(cfg, prov)

	if err = runner.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
