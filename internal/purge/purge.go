// Package purge removes existing data from the tables a fixture run is
// about to load, using either DELETE or TRUNCATE semantics.
package purge

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"seedcli/internal/orm"
)

// Mode selects how existing rows are removed before loading.
type Mode int

const (
	// ModeDelete removes rows with DELETE statements. This is the default
	// and works inside a transaction on every dialect.
	ModeDelete Mode = iota
	// ModeTruncate uses TRUNCATE TABLE where the dialect supports it,
	// falling back to DELETE plus a sequence reset on sqlite.
	ModeTruncate
)

func (m Mode) String() string {
	if m == ModeTruncate {
		return "truncate"
	}
	return "delete"
}

// ModeFor maps the --purge-with-truncate flag to a purge mode.
func ModeFor(withTruncate bool) Mode {
	if withTruncate {
		return ModeTruncate
	}
	return ModeDelete
}

// Purger clears tables on one session according to a mode.
type Purger struct {
	session    *orm.Session
	mode       Mode
	exclusions map[string]bool
}

// Option configures a Purger.
type Option func(*Purger)

// WithExclusions marks tables the purger must leave untouched.
func WithExclusions(tables []string) Option {
	return func(p *Purger) {
		for _, t := range tables {
			p.exclusions[t] = true
		}
	}
}

// New creates a purger bound to the given session and mode.
func New(session *orm.Session, mode Mode, opts ...Option) *Purger {
	p := &Purger{
		session:    session,
		mode:       mode,
		exclusions: map[string]bool{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the configured purge mode.
func (p *Purger) Mode() Mode {
	return p.mode
}

// Purge clears the given tables inside the supplied transaction handle.
// Tables are cleared in reverse order so child rows go before their parents
// under foreign key constraints. Excluded tables and tables absent from the
// schema are skipped; a fixture naming an unknown table fails later, during
// load, where the error can cite its source.
func (p *Purger) Purge(ctx context.Context, tx *gorm.DB, tables []string) error {
	dialect := p.session.Dialect()

	for i := len(tables) - 1; i >= 0; i-- {
		table := tables[i]
		if p.exclusions[table] {
			continue
		}
		if !tx.Migrator().HasTable(table) {
			continue
		}
		for _, stmt := range statements(dialect, p.mode, table) {
			if err := tx.WithContext(ctx).Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to purge table %s: %w", table, err)
			}
		}
		if p.mode == ModeTruncate && dialect == "sqlite" {
			// Reset the AUTOINCREMENT counter. The sequence table only
			// exists once an AUTOINCREMENT column has been used, so a
			// failure here is not an error.
			tx.WithContext(ctx).Exec("DELETE FROM sqlite_sequence WHERE name = ?", table)
		}
	}

	return nil
}

// statements builds the SQL needed to clear one table for the given dialect
// and mode.
func statements(dialect string, mode Mode, table string) []string {
	quoted := quoteIdent(dialect, table)

	if mode == ModeDelete {
		return []string{"DELETE FROM " + quoted}
	}

	switch dialect {
	case "sqlite":
		// sqlite has no TRUNCATE; DELETE is the closest equivalent. The
		// AUTOINCREMENT reset happens separately in Purge.
		return []string{"DELETE FROM " + quoted}
	case "mysql":
		return []string{"TRUNCATE TABLE " + quoted}
	default:
		return []string{"TRUNCATE TABLE " + quoted + " CASCADE"}
	}
}

// quoteIdent quotes a table name for the given dialect.
func quoteIdent(dialect, name string) string {
	if dialect == "mysql" {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}
