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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dispatchlab/crtbox/internal/iodb"
	"github.com/dispatchlab/crtbox/internal/iofetch"
	"github.com/dispatchlab/crtbox/internal/iopublish"
	"github.com/dispatchlab/crtbox/internal/ioreport"
	"github.com/dispatchlab/crtbox/internal/ioschema"
	"github.com/dispatchlab/crtbox/internal/iosources"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/db"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPublishCmd returns the publish command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPublishCmd() *cobra.Command {
	var (
		drop   bool
		force  bool
		source string
	)

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Mirror the enriched table into PostgreSQL",
		Long: `Publish the enriched sales table to the PostgreSQL warehouse.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Creates the warehouse schema on first run (GORM AutoMigrate)
  3. Replaces the dataset's facts with the current enriched table
  4. Refreshes the route_daily_totals materialized view

Re-publishing the same dataset replaces its facts, so the command
is safe to run repeatedly. Use --drop to rebuild the schema from
scratch; --force skips the confirmation prompt.

Examples:
  crtbox publish
  crtbox publish --drop
  crtbox publish --drop --force
  crtbox publish --source dispatch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source != "" {
				cfg.Update([]config.Option{config.OptSourceName(source)})
			}
			return runPublish(drop, force)
		},
	}

	publishCmd.Flags().BoolVarP(&drop, "drop", "d", false,
		"drop and recreate the warehouse schema")
	publishCmd.Flags().BoolVarP(&force, "force", "f", false,
		"skip the confirmation prompt for --drop")
	publishCmd.Flags().StringVarP(&source, "source", "s", "",
		"dataset name from sources.yaml")

	return publishCmd
}

func runPublish(drop, force bool) error {
	ctx := context.Background()

	ds, err := iosources.Select(cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = prepareSchema(ctx, op, hasTables, drop, force); err != nil {
		return err
	}

	prov := iofetch.New(cfg, ds)
	loader := ioreport.NewLoader(cfg, prov)

	tbl, err := loader.Load(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if tbl.Dropped > 0 {
		gn.Warn("Dropped %s rows with unparseable sales dates",
			humanize.Comma(int64(tbl.Dropped)))
	}

	pub := iopublish.New(cfg, op)
	n, err := pub.Publish(ctx, ds.Name, tbl)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Published <em>%s</em> facts for dataset <em>%s</em>",
		humanize.Comma(int64(n)), ds.Name)

	return nil
}

// prepareSchema brings the warehouse schema to the state publishing
// needs: created from scratch on an empty database or with --drop,
// migrated in place otherwise.
func prepareSchema(
	ctx context.Context,
	op db.Operator,
	hasTables, drop, force bool,
) error {
	if hasTables && drop {
		if !force && !confirmDrop() {
			gn.Info("Keeping the existing schema.")
			drop = false
		}
		if drop {
			gn.Info("Dropping the warehouse schema...")
			if err := op.DropMaterializedViews(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if err := op.DropAllTables(ctx); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			hasTables = false
		}
	}

	sm := ioschema.NewManager(op)

	if !hasTables {
		gn.Info("Creating schema using GORM AutoMigrate...")
		if err := sm.Create(ctx, cfg); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if err := op.CreateMaterializedViews(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		return nil
	}

	if err := sm.Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}

// confirmDrop prompts the user before dropping existing tables.
func confirmDrop() bool {
	gn.Warn("\nWarning: Database contains existing tables.")
	gn.Warn("Dropping the schema removes ALL published data.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
