// seedcli loads data fixtures into a relational database, optionally
// purging existing data first.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"seedcli/internal/config"
	"seedcli/internal/executor"
	"seedcli/internal/fixtures"
	"seedcli/internal/infrastructure"
	"seedcli/internal/orm"
	"seedcli/internal/workflow"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "seedcli",
		Usage: "load data fixtures into a relational database",
		Commands: []*cli.Command{
			loadCommand(),
		},
	}
}

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "purge the database and load data fixtures",
		Flags: loadFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer infrastructure.CloseLogFile()

			wf := workflow.New(workflow.Deps{
				Provider:     orm.NewProvider(cfg, infrastructure.WithComponent(logger, "orm")),
				Repository:   fixtures.NewRepository(infrastructure.WithComponent(logger, "fixtures")),
				Executor:     executor.New(infrastructure.WithComponent(logger, "executor")),
				Confirmer:    workflow.NewTerminalConfirmer(os.Stdin, os.Stdout),
				DefaultPaths: cfg.Fixtures.DefaultPaths,
				Out:          os.Stdout,
				Logger:       infrastructure.WithComponent(logger, "workflow"),
			})

			return wf.Run(c.Context, optionsFromCLI(c), isInteractive(c))
		},
	}
}

func loadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "fixtures",
			Usage: "fixture file or directory to load (repeatable, defaults to configured paths)",
		},
		&cli.BoolFlag{
			Name:  "append",
			Usage: "append fixtures instead of purging the database first",
		},
		&cli.StringFlag{
			Name:  "em",
			Usage: "entity manager to use (defaults to \"default\")",
		},
		&cli.StringFlag{
			Name:  "shard",
			Usage: "shard connection to bind before loading",
		},
		&cli.BoolFlag{
			Name:  "purge-with-truncate",
			Usage: "purge with TRUNCATE instead of DELETE",
		},
		&cli.BoolFlag{
			Name:  "multiple-transactions",
			Usage: "commit each fixture source in its own transaction",
		},
		&cli.StringSliceFlag{
			Name:  "purge-exclusions",
			Usage: "table the purger must leave untouched (repeatable)",
		},
		&cli.BoolFlag{
			Name:    "no-interaction",
			Aliases: []string{"n"},
			Usage:   "never ask for confirmation",
		},
	}
}

// optionsFromCLI maps parsed command-line flags onto invocation options.
func optionsFromCLI(c *cli.Context) workflow.Options {
	return workflow.Options{
		FixturePaths:         c.StringSlice("fixtures"),
		Append:               c.Bool("append"),
		EntityManager:        c.String("em"),
		ShardID:              c.String("shard"),
		PurgeWithTruncate:    c.Bool("purge-with-truncate"),
		MultipleTransactions: c.Bool("multiple-transactions"),
		PurgeExclusions:      c.StringSlice("purge-exclusions"),
	}
}

// isInteractive reports whether the operator can be prompted: interaction
// was not disabled and stdin is a terminal.
func isInteractive(c *cli.Context) bool {
	if c.Bool("no-interaction") {
		return false
	}
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
