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
	"github.com/dispatchlab/crtbox/internal/ioserve"
	"github.com/dispatchlab/crtbox/internal/iosources"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getServeCmd() *cobra.Command {
	var (
		host   string
		port   int
		source string
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the report HTTP API",
		Long: `Run an HTTP API that serves the crates-per-box report.

The API exposes the filter domains, filtered rows, the route-by-date
pivot, summary metrics and CSV exports. The enriched table is cached
in memory and reloaded when the database file changes.

Endpoints:
  GET /healthz
  GET /api/v1/filters
  GET /api/v1/rows
  GET /api/v1/pivot
  GET /api/v1/summary
  GET /api/v1/export/pivot.csv
  GET /api/v1/export/raw.csv

Examples:
  crtbox serve
  crtbox serve --port 9090
  crtbox serve --host 0.0.0.0 --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var runOpts []config.Option
			if source != "" {
				runOpts = append(runOpts, config.OptSourceName(source))
			}
			if cmd.Flags().Changed("host") {
				runOpts = append(runOpts, config.OptServerHost(host))
			}
			if cmd.Flags().Changed("port") {
				runOpts = append(runOpts, config.OptServerPort(port))
			}
			cfg.Update(runOpts)

			return runServe()
		},
	}

	serveCmd.Flags().StringVar(&host, "host", "",
		"interface the server binds to")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0,
		"port the server listens on")
	serveCmd.Flags().StringVarP(&source, "source", "s", "",
		"dataset name from sources.yaml")

	return serveCmd
}

func runServe() error {
	ctx := context.Background()

	ds, err := iosources.Select(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	prov := iofetch.New(cfg, ds)
	loader := ioreport.NewLoader(cfg, prov)
	srv := ioserve.New(cfg, loader)

	if err = srv.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
