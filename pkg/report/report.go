package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/consts"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/schemadiff"
	"gopkg.in/yaml.v3"
)

const (
	// FormatText renders a human readable report
	FormatText Format = "text"
	// FormatYAML renders the change set as YAML
	FormatYAML Format = "yaml"
	// FormatJSON renders the change set as indented JSON
	FormatJSON Format = "json"
)

const (
	// ColorAuto colours output when stdout is a terminal
	ColorAuto ColorMode = "auto"
	// ColorAlways forces coloured output
	ColorAlways ColorMode = "always"
	// ColorNever disables coloured output
	ColorNever ColorMode = "never"
)

var (
	// ErrUnknownFormat is returned for unsupported output formats.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnknownColorMode is returned for unsupported colour modes.
	ErrUnknownColorMode = errors.New("unknown color mode")
)

type (
	// Format selects the report encoding.
	Format string

	// ColorMode controls colouring of text reports.
	ColorMode string

	// Options configure Write.
	Options struct {
		Format Format
		Color  ColorMode
	}
)

// ParseFormat validates a format name. Matching is case-insensitive and an
// empty name selects FormatText.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// ParseColorMode validates a colour mode. An empty name selects ColorAuto.
func ParseColorMode(name string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownColorMode, "%q", name)
	}
}

// Write renders changes to w in the requested format.
func Write(w io.Writer, changes *schemadiff.SchemaChanges, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return Text(w, changes, opts.Color)
	case FormatYAML:
		return encodeYAML(w, changes)
	case FormatJSON:
		return encodeJSON(w, changes)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", opts.Format)
	}
}

// WriteSchema renders a parsed schema as YAML or JSON.
func WriteSchema(w io.Writer, def *schema.SchemaDefinition, format Format) error {
	switch format {
	case FormatYAML, FormatText, "":
		return encodeYAML(w, def)
	case FormatJSON:
		return encodeJSON(w, def)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// WriteLog writes the text report to <dir>/<timestamp>.changes.log, creating
// dir when needed, and returns the path of the log file.
func WriteLog(dir string, changes *schemadiff.SchemaChanges, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return "", errors.Wrapf(err, "failed to create log directory: %s", dir)
	}

	path := filepath.Join(dir, now.Format(consts.ChangeLogTimeFormat)+".changes.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.ModeFile)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create change log: %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := Text(f, changes, ColorNever); err != nil {
		return "", err
	}

	return path, nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode yaml")
	}

	return errors.Wrap(enc.Close(), "failed to encode yaml")
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(v), "failed to encode json")
}
