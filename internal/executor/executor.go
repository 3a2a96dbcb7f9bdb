// Package executor applies purge and fixture loading inside transactional
// boundaries.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"seedcli/internal/fixtures"
	"seedcli/internal/orm"
	"seedcli/internal/purge"
)

// ProgressFunc receives operator-facing progress messages during a run.
type ProgressFunc func(message string)

// Options controls how one execution run behaves.
type Options struct {
	// Append skips the purge step so fixtures add to existing data.
	Append bool
	// MultipleTransactions wraps each fixture source in its own
	// transaction instead of one transaction for the whole run.
	MultipleTransactions bool
}

// Executor loads fixtures into a session, purging first unless appending.
type Executor struct {
	logger *slog.Logger
}

// New creates an executor.
func New(logger *slog.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run purges (unless appending) and loads every fixture. With
// MultipleTransactions the purge and each fixture source get their own
// transaction; otherwise the entire run is one transaction and any failure
// rolls back everything.
func (e *Executor) Run(ctx context.Context, session *orm.Session, purger *purge.Purger, fxs []fixtures.Fixture, opts Options, onProgress ProgressFunc) error {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	tables := fixtures.TableNames(fxs)

	if opts.MultipleTransactions {
		if err := e.runPerFixture(ctx, session, purger, fxs, tables, opts, onProgress); err != nil {
			return err
		}
	} else {
		if err := e.runSingle(ctx, session, purger, fxs, tables, opts, onProgress); err != nil {
			return err
		}
	}

	rows := 0
	for i := range fxs {
		rows += fxs[i].RowCount()
	}
	onProgress(fmt.Sprintf("loaded %d fixture sources (%d rows across %d tables)", len(fxs), rows, len(tables)))
	e.logger.InfoContext(ctx, "fixture run complete",
		"fixtures", len(fxs),
		"rows", rows,
		"tables", len(tables))

	return nil
}

// runSingle executes the whole run inside one transaction.
func (e *Executor) runSingle(ctx context.Context, session *orm.Session, purger *purge.Purger, fxs []fixtures.Fixture, tables []string, opts Options, onProgress ProgressFunc) error {
	return session.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !opts.Append {
			onProgress(fmt.Sprintf("purging database (%s)", purger.Mode()))
			if err := purger.Purge(ctx, tx, tables); err != nil {
				return err
			}
		}
		for i := range fxs {
			if err := e.loadFixture(ctx, tx, &fxs[i], onProgress); err != nil {
				return err
			}
		}
		return nil
	})
}

// runPerFixture purges in its own transaction, then commits each fixture
// source separately. A failure leaves previously committed sources in place.
func (e *Executor) runPerFixture(ctx context.Context, session *orm.Session, purger *purge.Purger, fxs []fixtures.Fixture, tables []string, opts Options, onProgress ProgressFunc) error {
	db := session.DB().WithContext(ctx)

	if !opts.Append {
		onProgress(fmt.Sprintf("purging database (%s)", purger.Mode()))
		if err := db.Transaction(func(tx *gorm.DB) error {
			return purger.Purge(ctx, tx, tables)
		}); err != nil {
			return err
		}
	}

	for i := range fxs {
		fixture := &fxs[i]
		if err := db.Transaction(func(tx *gorm.DB) error {
			return e.loadFixture(ctx, tx, fixture, onProgress)
		}); err != nil {
			return err
		}
	}

	return nil
}

// loadFixture inserts every row of one fixture source through the ORM.
func (e *Executor) loadFixture(ctx context.Context, tx *gorm.DB, fixture *fixtures.Fixture, onProgress ProgressFunc) error {
	onProgress("loading " + fixture.Path)
	e.logger.DebugContext(ctx, "loading fixture", "path", fixture.Path, "tables", len(fixture.Tables))

	for _, table := range fixture.Tables {
		if len(table.Rows) == 0 {
			continue
		}
		rows := make([]map[string]interface{}, len(table.Rows))
		for i, row := range table.Rows {
			rows[i] = map[string]interface{}(row)
		}
		if err := tx.Table(table.Name).Create(rows).Error; err != nil {
			return fmt.Errorf("failed to load fixture %s into table %s: %w", fixture.Path, table.Name, err)
		}
	}

	return nil
}
