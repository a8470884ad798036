package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/config"
	"github.com/rymskip/evenframe-sub000/pkg/consts"
	"github.com/rymskip/evenframe-sub000/pkg/report"
	"github.com/urfave/cli/v3"
)

// ErrChangesDetected is returned by diff --fail-on-changes when the snapshots
// differ.
var ErrChangesDetected = errors.New("schema changes detected")

// diff creates a CLI command that compares two schema snapshots and reports
// the differences.
//
// Snapshots can be exported SurrealQL scripts, directories of .surql files,
// static YAML models, or - for stdin. When --old or --new is omitted the
// value from schemadrift.yaml is used.
//
// Flags:
//   - --old, --new: Snapshot paths
//   - --format: text, yaml or json (defaults to report.format or text)
//   - --color: auto, always or never (defaults to report.color or auto)
//   - --out, -o: Write the report to a file instead of stdout
//   - --fail-on-changes: Exit non-zero when any change is detected
//
// When report.dir is configured a timestamped change log is written there as
// well, regardless of the output format.
//
// Examples:
//
//	# Compare a live export against the model
//	schemadrift diff --old remote.surql --new schema.yaml
//
//	# Fail a CI job on drift
//	surreal export ... | schemadrift diff --old - --new schema.yaml --fail-on-changes
func diff() *cli.Command {
	flags := append(snapshotFlags(),
		&cli.StringFlag{
			Name:  "format",
			Usage: "report format: text, yaml or json",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "colour text reports: auto, always or never",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "write the report to a file instead of stdout",
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.BoolFlag{
			Name:  "fail-on-changes",
			Usage: "exit with an error when changes are detected",
		},
	)

	return &cli.Command{
		Name:   "diff",
		Usage:  "Compare two schema snapshots",
		Flags:  flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := reportOptions(cmd)
			if err != nil {
				return err
			}

			changes, err := compareSnapshots(ctx, cmd)
			if err != nil {
				return err
			}

			if err := writeReport(cmd, opts, func(w io.Writer, opts report.Options) error {
				return report.Write(w, changes, opts)
			}); err != nil {
				return err
			}

			if currentConfig != nil && currentConfig.Report.Dir != "" {
				path, err := report.WriteLog(currentConfig.Report.Dir, changes, time.Now())
				if err != nil {
					return err
				}

				slog.Info("Wrote change log", "path", path)
			}

			if cmd.Bool("fail-on-changes") && !changes.IsEmpty() {
				return ErrChangesDetected
			}

			return nil
		},
	}
}

// reportOptions resolves the report format and colour from flags, then the
// config file, then the defaults.
func reportOptions(cmd *cli.Command) (report.Options, error) {
	var cfg config.Config
	if currentConfig != nil {
		cfg = *currentConfig
	}

	if cmd.IsSet("format") {
		cfg.Report.Format = cmd.String("format")
	}
	if cmd.IsSet("color") {
		cfg.Report.Color = cmd.String("color")
	}

	return cfg.Options()
}

// writeReport runs render against --out when given, or the command writer.
// Files never receive colour escapes in auto mode.
func writeReport(cmd *cli.Command, opts report.Options, render func(io.Writer, report.Options) error) error {
	path := cmd.String("out")
	if path == "" {
		return render(cmd.Writer, opts)
	}

	if opts.Color == report.ColorAuto {
		opts.Color = report.ColorNever
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.ModeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create report file: %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := render(f, opts); err != nil {
		return errors.Wrapf(err, "failed to write report: %s", path)
	}

	slog.Info("Wrote report", "path", path, "format", opts.Format)
	return nil
}
