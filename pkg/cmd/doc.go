// Package cmd provides CLI commands for the schemadrift tool.
//
// # Available Commands
//
//   - diff: Compare two schema snapshots and report the differences
//   - parse: Print the parsed schema of a single snapshot
//   - summary: Print the one line per category change summary
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. Commands are collected
// through the fx "commands" value group and mounted by Run.
//
// # Snapshots
//
// A snapshot path is resolved by source.Open:
//   - a directory is read as a tree of .surql export scripts
//   - a .yaml or .yml file is read as a static schema model
//   - - reads an export script from stdin
//   - anything else is read as a single export script
//
// # Global Options
//
//   - --config, -c: Configuration file (schemadrift.yaml when present)
//   - --verbose, -v: Enable debug logging
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	schemadrift diff --old remote.surql --new schema.yaml
//	schemadrift diff --format json --out drift.json
//	schemadrift summary --old export/ --new schema.yaml
//	schemadrift parse --format json remote.surql
package cmd
