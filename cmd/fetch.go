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
	"github.com/dispatchlab/crtbox/internal/iosources"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getFetchCmd() *cobra.Command {
	var (
		force   bool
		refresh bool
		source  string
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the dispatch database file",
		Long: `Download the dispatch SQLite database into the local cache.

The file is downloaded once and reused by the report, serve and
publish commands. Use --refresh to re-download only when the remote
copy is newer than the cached one, or --force to discard the cache
and download again.

Examples:
  crtbox fetch
  crtbox fetch --refresh
  crtbox fetch --force
  crtbox fetch --source dispatch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source != "" {
				cfg.Update([]config.Option{config.OptSourceName(source)})
			}
			return runFetch(force, refresh)
		},
	}

	fetchCmd.Flags().BoolVarP(&force, "force", "f", false,
		"discard the cached file and download again")
	fetchCmd.Flags().BoolVarP(&refresh, "refresh", "r", false,
		"re-download only when the remote copy is newer")
	fetchCmd.Flags().StringVarP(&source, "source", "s", "",
		"dataset name from sources.yaml")

	return fetchCmd
}

func runFetch(force, refresh bool) error {
	ctx := context.Background()

	ds, err := iosources.Select(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	prov := iofetch.New(cfg, ds)

	if force {
		if err = prov.Remove(); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	if refresh {
		path, updated, err := prov.Refresh(ctx)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if updated {
			gn.Info("Downloaded a newer copy of <em>%s</em> to %s",
				ds.Name, path)
		} else {
			gn.Info("The cached copy of <em>%s</em> is up to date", ds.Name)
		}
		return nil
	}

	path, err := prov.Ensure(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Database <em>%s</em> is available at %s", ds.Name, path)
	return nil
}
