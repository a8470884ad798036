package cmd

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/schemadiff"
	"github.com/rymskip/evenframe-sub000/pkg/source"
	"github.com/urfave/cli/v3"
)

// snapshotFlags are shared by the commands that compare two snapshots.
func snapshotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:   "old",
			Usage:  "baseline snapshot: script, directory of scripts, model .yaml or - for stdin",
			Config: cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:   "new",
			Usage:  "target snapshot: script, directory of scripts, model .yaml or - for stdin",
			Config: cli.StringConfig{TrimSpace: true},
		},
	}
}

// snapshotPaths resolves the old and new snapshot paths from flags, falling
// back to the configuration file.
func snapshotPaths(cmd *cli.Command) (string, string, error) {
	oldPath, newPath := cmd.String("old"), cmd.String("new")
	if currentConfig != nil {
		if oldPath == "" {
			oldPath = currentConfig.Old
		}
		if newPath == "" {
			newPath = currentConfig.New
		}
	}

	if oldPath == "" || newPath == "" {
		return "", "", errors.New("both --old and --new are required (or set old and new in schemadrift.yaml)")
	}

	if oldPath == "-" && newPath == "-" {
		return "", "", errors.New("only one snapshot can be read from stdin")
	}

	return oldPath, newPath, nil
}

func loadSnapshot(ctx context.Context, path string) (*schema.SchemaDefinition, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}

	def, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load snapshot: %s", src.Name())
	}

	return def, nil
}

// compareSnapshots loads both snapshots and compares them, dropping
// key-rotation-only access changes when the config asks for it.
func compareSnapshots(ctx context.Context, cmd *cli.Command) (*schemadiff.SchemaChanges, error) {
	oldPath, newPath, err := snapshotPaths(cmd)
	if err != nil {
		return nil, err
	}

	current, err := loadSnapshot(ctx, oldPath)
	if err != nil {
		return nil, err
	}

	target, err := loadSnapshot(ctx, newPath)
	if err != nil {
		return nil, err
	}

	changes := schemadiff.Compare(current, target)
	if currentConfig != nil && currentConfig.IgnoreIgnorableAccessChanges {
		changes = changes.WithoutIgnorableAccessChanges()
	}

	slog.Debug("Compared snapshots",
		"old", oldPath,
		"new", newPath,
		"new_tables", len(changes.NewTables),
		"removed_tables", len(changes.RemovedTables),
		"modified_tables", len(changes.ModifiedTables),
		"new_accesses", len(changes.NewAccesses),
		"removed_accesses", len(changes.RemovedAccesses),
		"modified_accesses", len(changes.ModifiedAccesses),
	)

	return changes, nil
}
