package cmd

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/report"
	"github.com/urfave/cli/v3"
)

// parse creates a CLI command that loads a single snapshot and prints the
// parsed schema as YAML or JSON. It is mainly useful to check how an export
// or a model is understood before comparing it.
//
// Examples:
//
//	schemadrift parse remote.surql
//	schemadrift parse --format json export/
//	surreal export ... | schemadrift parse -
func parse() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the parsed schema of a snapshot",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: yaml or json",
				Value: string(report.FormatYAML),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write the schema to a file instead of stdout",
				Config:  cli.StringConfig{TrimSpace: true},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			format, err := report.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			def, err := loadSnapshot(ctx, cmd.Args().First())
			if err != nil {
				return err
			}

			return writeReport(cmd, report.Options{Format: format}, func(w io.Writer, opts report.Options) error {
				return report.WriteSchema(w, def, opts.Format)
			})
		},
	}
}
