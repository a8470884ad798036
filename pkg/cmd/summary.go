package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// summary creates a CLI command that prints one line per non-empty change
// category, or "No changes detected".
func summary() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Print a one line per category summary of the changes between two snapshots",
		Flags: snapshotFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			changes, err := compareSnapshots(ctx, cmd)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.Writer, changes.Summary())
			return err
		},
	}
}
