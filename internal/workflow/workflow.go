package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"seedcli/internal/executor"
	"seedcli/internal/fixtures"
	"seedcli/internal/infrastructure"
	"seedcli/internal/orm"
	"seedcli/internal/purge"
)

// Options is the immutable configuration of one fixture load invocation,
// built from command-line input.
type Options struct {
	// FixturePaths are the paths to search. Empty means the configured
	// default paths.
	FixturePaths []string
	// Append skips the purge so fixtures add to existing data.
	Append bool
	// EntityManager names the connection to use; empty means the default.
	EntityManager string
	// ShardID, when set, binds the connection to the named shard before
	// any data access.
	ShardID string
	// PurgeWithTruncate selects TRUNCATE over DELETE semantics.
	PurgeWithTruncate bool
	// MultipleTransactions commits each fixture source separately.
	MultipleTransactions bool
	// PurgeExclusions lists tables the purger must leave untouched.
	PurgeExclusions []string
}

// FixtureRepository discovers fixture sources from filesystem paths.
type FixtureRepository interface {
	Discover(paths []string) ([]fixtures.Fixture, error)
}

// Runner applies purge and fixture loading inside transactional boundaries.
type Runner interface {
	Run(ctx context.Context, session *orm.Session, purger *purge.Purger, fxs []fixtures.Fixture, opts executor.Options, onProgress executor.ProgressFunc) error
}

// Deps holds the collaborators a Workflow needs, resolved once at startup
// and passed in explicitly.
type Deps struct {
	Provider     orm.Provider
	Repository   FixtureRepository
	Executor     Runner
	Confirmer    Confirmer
	DefaultPaths []string
	// Out is the operator-facing output stream for progress messages.
	Out io.Writer
	Logger *slog.Logger
}

// Workflow executes one fixture-load run to completion or fails fast with
// an actionable error.
type Workflow struct {
	deps Deps
}

// New creates a workflow from its collaborators.
func New(deps Deps) *Workflow {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Workflow{deps: deps}
}

// Run executes the load: resolve the session, confirm the destructive
// action when interactive, bind the shard if requested, discover fixtures,
// then purge and load. Declining the confirmation is a successful no-op;
// every other failure aborts the run.
func (w *Workflow) Run(ctx context.Context, opts Options, interactive bool) error {
	ctx = infrastructure.EnsureTraceID(ctx)
	logger := w.deps.Logger

	session, err := w.deps.Provider.Resolve(opts.EntityManager)
	if err != nil {
		return err
	}

	if interactive && !opts.Append {
		question := fmt.Sprintf("Careful, database %q will be purged. Do you want to continue?", session.Name())
		ok, err := w.deps.Confirmer.Confirm(question)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(w.deps.Out, "Fixture loading cancelled.")
			logger.InfoContext(ctx, "fixture load declined by operator", "entity_manager", session.Name())
			return nil
		}
	}

	if opts.ShardID != "" {
		conn := session.Connection()
		if !conn.SupportsSharding() {
			return &orm.ConfigurationError{
				Manager: session.Name(),
				Reason:  fmt.Sprintf("connection does not support shards, cannot bind shard %q", opts.ShardID),
			}
		}
		if err := conn.BindShard(opts.ShardID); err != nil {
			return &orm.ConfigurationError{
				Manager: session.Name(),
				Reason:  "shard binding failed",
				Err:     err,
			}
		}
		logger.InfoContext(ctx, "shard bound", "entity_manager", session.Name(), "shard", opts.ShardID)
	}

	paths := opts.FixturePaths
	if len(paths) == 0 {
		paths = w.deps.DefaultPaths
	}

	found, err := w.deps.Repository.Discover(paths)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return noFixturesError(paths)
	}
	logger.InfoContext(ctx, "fixtures discovered", "count", len(found), "paths", len(paths))

	purger := purge.New(session, purge.ModeFor(opts.PurgeWithTruncate),
		purge.WithExclusions(opts.PurgeExclusions))

	onProgress := func(message string) {
		fmt.Fprintf(w.deps.Out, "  > %s\n", message)
	}

	if err := w.deps.Executor.Run(ctx, session, purger, found, executor.Options{
		Append:               opts.Append,
		MultipleTransactions: opts.MultipleTransactions,
	}, onProgress); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "fixture load failed",
			"entity_manager", session.Name())
		return err
	}
	return nil
}

// noFixturesError builds the empty-result error, listing every searched
// path so the operator can fix the invocation.
func noFixturesError(paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString("\n  - ")
		b.WriteString(p)
	}
	return fmt.Errorf("%w in:%s", fixtures.ErrNoFixturesFound, b.String())
}
