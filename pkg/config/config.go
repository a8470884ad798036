package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/report"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLogLevel is returned for log levels slog does not understand.
var ErrUnknownLogLevel = errors.New("unknown log level")

type (
	// Report controls how detected changes are rendered and persisted.
	Report struct {
		// Dir is where timestamped change logs are written. Empty disables them.
		Dir string `yaml:"dir,omitempty"`

		// Format is one of text, yaml or json.
		Format string `yaml:"format,omitempty"`

		// Color is one of auto, always or never.
		Color string `yaml:"color,omitempty"`
	}

	// Config represents the schemadrift configuration file.
	Config struct {
		// Old is the baseline snapshot: an exported script, a directory of
		// scripts or a YAML model.
		Old string `yaml:"old"`

		// New is the target snapshot, in any of the forms accepted for Old.
		New string `yaml:"new"`

		// Report contains rendering settings for the diff command.
		Report Report `yaml:"report"`

		// LogLevel is one of debug, info, warn or error.
		LogLevel string `yaml:"log_level,omitempty"`

		// IgnoreIgnorableAccessChanges drops access changes that consist only
		// of key rotations.
		IgnoreIgnorableAccessChanges bool `yaml:"ignore_ignorable_access_changes,omitempty"`
	}
)

// LoadConfig parses a configuration from the provided io.Reader and fills in
// defaults for the report format, colour mode and log level.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	old: db/remote.surql
//	new: db/schema.yaml
//	report:
//	  dir: logs
//	`))
//	if err != nil {
//		return err
//	}
//
//	fmt.Printf("Comparing %s against %s\n", cfg.Old, cfg.New)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal schemadrift config")
	}

	if cfg.Report.Format == "" {
		cfg.Report.Format = string(report.FormatText)
	}
	if cfg.Report.Color == "" {
		cfg.Report.Color = string(report.ColorAuto)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if _, err := report.ParseFormat(cfg.Report.Format); err != nil {
		return nil, errors.Wrap(err, "invalid report format")
	}
	if _, err := report.ParseColorMode(cfg.Report.Color); err != nil {
		return nil, errors.Wrap(err, "invalid report color")
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, errors.Wrapf(ErrUnknownLogLevel, "%q", c.LogLevel)
	}

	return level, nil
}

// Options converts the report settings into report.Options.
func (c *Config) Options() (report.Options, error) {
	format, err := report.ParseFormat(c.Report.Format)
	if err != nil {
		return report.Options{}, err
	}

	color, err := report.ParseColorMode(c.Report.Color)
	if err != nil {
		return report.Options{}, err
	}

	return report.Options{Format: format, Color: color}, nil
}
