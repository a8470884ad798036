package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/schemadiff"
)

type palette struct {
	added, removed, modified, heading *color.Color
}

func newPalette(mode ColorMode) *palette {
	p := &palette{
		added:    color.New(color.FgGreen),
		removed:  color.New(color.FgRed),
		modified: color.New(color.FgYellow),
		heading:  color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.added, p.removed, p.modified, p.heading} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}

	return p
}

// Text renders a human readable report: the summary lines followed by a
// per table and per access breakdown.
//
// Example output:
//
//	Summary:
//	  New tables: pet
//	  Modified tables: person
//
//	Tables:
//	  + pet
//	  ~ person
//	    + age
//	    ~ status: string -> string (required changed, default changed)
func Text(w io.Writer, changes *schemadiff.SchemaChanges, mode ColorMode) error {
	bw := bufio.NewWriter(w)
	p := newPalette(mode)

	if changes.IsEmpty() {
		bw.WriteString(changes.Summary() + "\n")
		return errors.Wrap(bw.Flush(), "failed to write report")
	}

	bw.WriteString(p.heading.Sprint("Summary:") + "\n")
	for _, line := range strings.Split(changes.Summary(), "\n") {
		bw.WriteString("  " + line + "\n")
	}

	if len(changes.NewTables)+len(changes.RemovedTables)+len(changes.ModifiedTables) > 0 {
		bw.WriteString("\n" + p.heading.Sprint("Tables:") + "\n")
		for _, name := range changes.NewTables {
			bw.WriteString("  " + p.added.Sprint("+ "+name) + "\n")
		}
		for _, name := range changes.RemovedTables {
			bw.WriteString("  " + p.removed.Sprint("- "+name) + "\n")
		}
		for _, tc := range changes.ModifiedTables {
			writeTable(bw, p, tc)
		}
	}

	if len(changes.NewAccesses)+len(changes.RemovedAccesses)+len(changes.ModifiedAccesses) > 0 {
		bw.WriteString("\n" + p.heading.Sprint("Accesses:") + "\n")
		for _, name := range changes.NewAccesses {
			bw.WriteString("  " + p.added.Sprint("+ "+name) + "\n")
		}
		for _, name := range changes.RemovedAccesses {
			bw.WriteString("  " + p.removed.Sprint("- "+name) + "\n")
		}
		for _, ac := range changes.ModifiedAccesses {
			bw.WriteString("  " + p.modified.Sprint("~ "+ac.AccessName) + "\n")
			for _, c := range ac.Changes {
				line := "    * " + c.String()
				if c.IsIgnorable() {
					line += " (ignorable)"
				}
				bw.WriteString(line + "\n")
			}
		}
	}

	return errors.Wrap(bw.Flush(), "failed to write report")
}

func writeTable(bw *bufio.Writer, p *palette, tc schemadiff.TableChanges) {
	bw.WriteString("  " + p.modified.Sprint("~ "+tc.TableName) + "\n")

	if tc.SchemaTypeChanged {
		bw.WriteString("    schema type changed\n")
	}
	if tc.PermissionChanged {
		bw.WriteString("    permissions changed\n")
	}

	for _, name := range tc.NewFields {
		bw.WriteString("    " + p.added.Sprint("+ "+name) + "\n")
	}
	for _, name := range tc.RemovedFields {
		bw.WriteString("    " + p.removed.Sprint("- "+name) + "\n")
	}

	for _, fc := range tc.ModifiedFields {
		switch fc.ChangeType {
		case schemadiff.ChangeAdded:
			bw.WriteString("    " + p.added.Sprint("+ "+fc.FieldName+": "+fc.NewType) + "\n")
		case schemadiff.ChangeRemoved:
			bw.WriteString("    " + p.removed.Sprint("- "+fc.FieldName+": "+fc.OldType) + "\n")
		default:
			bw.WriteString("    " + p.modified.Sprint("~ "+fc.FieldName+": "+fc.OldType+" -> "+fc.NewType) + flags(fc) + "\n")
		}
	}
}

func flags(fc schemadiff.FieldChange) string {
	var out []string
	if fc.RequiredChanged {
		out = append(out, "required changed")
	}
	if fc.DefaultChanged {
		out = append(out, "default changed")
	}

	if len(out) == 0 {
		return ""
	}

	return " (" + strings.Join(out, ", ") + ")"
}
