package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

// currentConfig holds the configuration in effect for the running command:
// the file named by --config, or schemadrift.yaml from the working directory.
var currentConfig *config.Config

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the schemadrift CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --config, -c: Configuration file (defaults to schemadrift.yaml when present)
//   - --verbose, -v: Enable debug logging
//
// Logging is configured once, before any command runs, from the config file's
// log_level and the --verbose flag. Logs are written to stderr so that reports
// on stdout can be piped.
//
// Example usage:
//
//	schemadrift diff --old remote.surql --new schema.yaml
//	schemadrift -c ci.yaml diff --fail-on-changes
//	schemadrift parse --format json export/
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	// -v is taken by --verbose.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	currentConfig = p.Config

	app := &cli.Command{
		Name:  "schemadrift",
		Usage: "Detect schema drift between SurrealDB schema snapshots",
		Description: `schemadrift parses exported SurrealQL schema scripts or static YAML
models into schema snapshots and reports the tables, fields and access
methods that differ between two of them.`,
		Version:  p.Version.Version,
		Flags:    globalFlags(),
		Before:   before,
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the schemadrift config file",
			Sources: cli.EnvVars("SCHEMADRIFT_CONFIG"),
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
		},
	}
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.LoadConfigFile(path)
		if err != nil {
			return ctx, errors.Wrap(err, "failed to load config")
		}

		currentConfig = cfg
	}

	level := slog.LevelInfo
	if currentConfig != nil {
		lvl, err := currentConfig.Level()
		if err != nil {
			return ctx, err
		}

		level = lvl
	}

	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return ctx, nil
}
