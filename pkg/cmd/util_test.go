package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rymskip/evenframe-sub000/pkg/config"
	"github.com/rymskip/evenframe-sub000/pkg/consts"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const (
	oldScript = `DEFINE TABLE person TYPE NORMAL SCHEMAFULL PERMISSIONS NONE;
DEFINE FIELD name ON person TYPE string PERMISSIONS FULL;
DEFINE ACCESS account ON DATABASE TYPE RECORD WITH JWT ALGORITHM HS512 KEY 'old' WITH ISSUER KEY 'old' DURATION FOR TOKEN 15m, FOR SESSION 12h;
`

	newScript = `DEFINE TABLE person TYPE NORMAL SCHEMAFULL PERMISSIONS NONE;
DEFINE FIELD name ON person TYPE string PERMISSIONS FULL;
DEFINE FIELD age ON person TYPE int DEFAULT 0 PERMISSIONS FULL;
DEFINE TABLE pet TYPE NORMAL SCHEMAFULL PERMISSIONS NONE;
DEFINE ACCESS account ON DATABASE TYPE RECORD WITH JWT ALGORITHM HS512 KEY 'new' WITH ISSUER KEY 'new' DURATION FOR TOKEN 15m, FOR SESSION 12h;
`
)

// runCommand executes command as the root of a test app and returns its
// output.
func runCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "test",
		Flags:  command.Flags,
		Action: command.Action,
		Writer: &buf,
	}

	err := app.Run(context.Background(), append([]string{"test"}, args...))
	return buf.String(), err
}

// withConfig installs cfg as the active configuration for the test.
func withConfig(t *testing.T, cfg *config.Config) {
	t.Helper()

	prev := currentConfig
	currentConfig = cfg
	t.Cleanup(func() { currentConfig = prev })
}

// writeSnapshots writes the old and new scripts and returns their paths.
func writeSnapshots(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.surql")
	newPath := filepath.Join(dir, "new.surql")
	require.NoError(t, os.WriteFile(oldPath, []byte(oldScript), consts.ModeFile))
	require.NoError(t, os.WriteFile(newPath, []byte(newScript), consts.ModeFile))

	return oldPath, newPath
}

func TestSnapshotPaths(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
		args   []string
		old    string
		new    string
		err    string
	}{
		{name: "flags", args: []string{"--old", "a.surql", "--new", "b.yaml"}, old: "a.surql", new: "b.yaml"},
		{name: "config", config: &config.Config{Old: "c.surql", New: "d.surql"}, old: "c.surql", new: "d.surql"},
		{
			name:   "flags override config",
			config: &config.Config{Old: "c.surql", New: "d.surql"},
			args:   []string{"--new", "b.yaml"},
			old:    "c.surql",
			new:    "b.yaml",
		},
		{name: "missing", args: []string{"--old", "a.surql"}, err: "both --old and --new are required"},
		{name: "double stdin", args: []string{"--old", "-", "--new", "-"}, err: "only one snapshot can be read from stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.config)

			var oldPath, newPath string
			var pathErr error
			app := &cli.Command{
				Name:  "test",
				Flags: snapshotFlags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					oldPath, newPath, pathErr = snapshotPaths(cmd)
					return nil
				},
			}

			require.NoError(t, app.Run(context.Background(), append([]string{"test"}, tt.args...)))
			if tt.err != "" {
				require.Error(t, pathErr)
				require.Contains(t, pathErr.Error(), tt.err)
				return
			}

			require.NoError(t, pathErr)
			require.Equal(t, tt.old, oldPath)
			require.Equal(t, tt.new, newPath)
		})
	}
}
