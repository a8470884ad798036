// Package report renders schema change sets for people and machines.
//
// Text reports start with the summary lines of SchemaChanges.Summary and
// follow with a breakdown per table and per access method, marking additions
// with "+", removals with "-" and modifications with "~". Colours are applied
// with fatih/color and can be forced on or off with a ColorMode.
//
// YAML and JSON reports encode the SchemaChanges value as is, which makes
// them suitable for consumption by data generation tooling.
//
// Usage:
//
//	changes := schemadiff.Compare(current, target)
//
//	// Print a coloured report when stdout is a terminal
//	err := report.Write(os.Stdout, changes, report.Options{Format: report.FormatText})
//
//	// Keep a record of the run
//	path, err := report.WriteLog("logs", changes, time.Now())
package report
