// Command arena runs elimination tournaments from the terminal and shows the
// all-time leaderboard kept in the result log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ahrav/go-arena/infrastructure/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "arena",
		Usage: "run elimination tournaments",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every turn at debug level"},
			&cli.StringFlag{
				Name:    "results",
				Usage:   "path of the result log",
				Value:   store.DefaultResultsPath,
				EnvVars: []string{"ARENA_RESULTS"},
			},
		},
		Commands: []*cli.Command{
			newRunCommand(),
			newLeaderboardCommand(),
		},
	}
}

func newRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "play one tournament",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML tournament configuration"},
			&cli.Uint64Flag{Name: "seed", Usage: "seed for simulated scores and bonuses (0 = time based)"},
			&cli.IntFlag{Name: "contestants", Usage: "number of contestants, clamped to the configured limits"},
			&cli.StringFlag{Name: "script", Usage: "YAML score sheet to replay instead of simulating"},
			&cli.BoolFlag{Name: "random-names", Usage: "give unnamed contestants generated names"},
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "pause for Enter between rounds"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve Prometheus metrics on this address, e.g. :9090"},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c.Bool("verbose"))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts := runOptions{
				configPath:  c.String("config"),
				seed:        c.Uint64("seed"),
				contestants: c.Int("contestants"),
				scriptPath:  c.String("script"),
				randomNames: c.Bool("random-names"),
				interactive: c.Bool("interactive"),
				metricsAddr: c.String("metrics-addr"),
				resultsPath: c.String("results"),
			}
			return runTournament(c.Context, opts, logger, os.Stdin, os.Stdout)
		},
	}
}

func newLeaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "show championships and best scores from the result log",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "top", Usage: "show only the first N entries"},
		},
		Action: func(c *cli.Context) error {
			records, err := store.NewResultLog(c.String("results")).Records()
			if err != nil {
				return err
			}
			printLeaderboard(os.Stdout, store.BuildLeaderboard(records), c.Int("top"))
			return nil
		},
	}
}

// newLogger builds a production logger. Without verbose only warnings and
// errors are written so the scoreboard stays readable.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// exitError reports a tournament stopped at the operator's request as a
// clean exit.
func exitError(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
