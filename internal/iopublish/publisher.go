// Package iopublish mirrors the enriched sales table into the
// PostgreSQL warehouse. This is an impure I/O package that implements
// the crtbox.Publisher contract with pgx bulk copies.
package iopublish

import (
	"context"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/crtbox"
	"github.com/dispatchlab/crtbox/pkg/db"
	"github.com/dispatchlab/crtbox/pkg/report"
	"github.com/jackc/pgx/v5"
)

// factColumns is the CopyFrom projection into sales_facts.
var factColumns = []string{
	"dataset", "code", "sales_date", "qty", "route",
	"description", "cake", "crates_box", "crt_box", "supervisor",
}

type publisher struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Publisher that writes through the given operator.
// The operator must be connected before Publish is called.
func New(cfg *config.Config, op db.Operator) crtbox.Publisher {
	return &publisher{cfg: cfg, operator: op}
}

// Publish replaces the dataset's facts in the warehouse with the
// rows of tbl, records the publication and refreshes the
// materialized views. Returns the number of facts written.
func (p *publisher) Publish(
	ctx context.Context,
	dataset string,
	tbl report.Table,
) (int, error) {
	pool := p.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	// Re-publishing a dataset replaces its previous facts.
	_, err := pool.Exec(ctx,
		"DELETE FROM sales_facts WHERE dataset = $1", dataset)
	if err != nil {
		return 0, FactsError(dataset, err)
	}

	n, err := p.copyFacts(ctx, dataset, tbl.Rows)
	if err != nil {
		return 0, FactsError(dataset, err)
	}

	if err := p.recordPublication(ctx, dataset, n, tbl.Dropped); err != nil {
		return 0, err
	}

	if err := p.operator.RefreshMaterializedViews(ctx); err != nil {
		return 0, ViewError(dataset, err)
	}

	return n, nil
}

// copyFacts bulk-inserts rows in batches using pgx CopyFrom.
func (p *publisher) copyFacts(
	ctx context.Context,
	dataset string,
	rows []report.Row,
) (int, error) {
	batchSize := p.cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 50_000
	}

	pool := p.operator.Pool()
	var total int

	bar := pb.Full.Start(len(rows))
	bar.Set("prefix", "Publishing facts: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		batch := rows[i:end]

		records := make([][]any, len(batch))
		for j, row := range batch {
			records[j] = []any{
				dataset,
				row.Code,
				row.Date,
				row.Qty,
				row.Route,
				row.Description,
				row.Cake,
				row.CratesBox,
				row.CrtBox,
				row.Supervisor,
			}
		}

		n, err := pool.CopyFrom(
			ctx,
			pgx.Identifier{"sales_facts"},
			factColumns,
			pgx.CopyFromRows(records),
		)
		if err != nil {
			return total, err
		}

		total += int(n)
		bar.Add(len(batch))
	}

	return total, nil
}

// recordPublication replaces the dataset's publication record.
func (p *publisher) recordPublication(
	ctx context.Context,
	dataset string,
	records, dropped int,
) error {
	pool := p.operator.Pool()

	_, err := pool.Exec(ctx,
		"DELETE FROM publications WHERE dataset = $1", dataset)
	if err != nil {
		return RecordError(dataset, err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO publications
			(dataset, record_count, dropped_count, published_at)
		VALUES ($1, $2, $3, $4)`,
		dataset, records, dropped, time.Now().UTC(),
	)
	if err != nil {
		return RecordError(dataset, err)
	}

	return nil
}
