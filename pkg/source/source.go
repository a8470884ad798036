package source

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/model"
	"github.com/rymskip/evenframe-sub000/pkg/parser"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

// ErrEmptyExport is returned when a script source yields no statements at
// all. A script whose statements are all unrecognised is not an error and
// loads as an empty schema.
var ErrEmptyExport = errors.New("export produced no statements")

type (
	// Source produces a schema snapshot.
	Source interface {
		// Name identifies the source in logs and errors.
		Name() string
		// Load reads and assembles the snapshot.
		Load(ctx context.Context) (*schema.SchemaDefinition, error)
	}

	// FileSource reads a single exported script.
	FileSource struct {
		Path string
	}

	// DirSource reads every .surql script below a directory.
	DirSource struct {
		Path string
	}

	// ReaderSource reads a script from an arbitrary reader, such as stdin.
	ReaderSource struct {
		Label  string
		Reader io.Reader
	}

	// ModelSource reads a static YAML schema model.
	ModelSource struct {
		Path string
	}
)

// Open selects a source for path: "-" reads stdin, directories are read as
// script directories, .yaml and .yml files as models and anything else as a
// single script.
func Open(path string) (Source, error) {
	if path == "-" {
		return &ReaderSource{Label: "stdin", Reader: os.Stdin}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return &DirSource{Path: path}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return &ModelSource{Path: path}, nil
	default:
		return &FileSource{Path: path}, nil
	}
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) (*schema.SchemaDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	statements, err := parser.ReadStatementsFromFile(s.Path)
	if err != nil {
		return nil, err
	}

	return assemble(s.Name(), statements)
}

func (s *DirSource) Name() string { return s.Path }

func (s *DirSource) Load(ctx context.Context) (*schema.SchemaDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	statements, err := parser.ReadStatementsFromDirectory(s.Path)
	if err != nil {
		return nil, err
	}

	return assemble(s.Name(), statements)
}

func (s *ReaderSource) Name() string { return s.Label }

func (s *ReaderSource) Load(ctx context.Context) (*schema.SchemaDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	statements, err := parser.ReadStatements(s.Reader)
	if err != nil {
		return nil, err
	}

	return assemble(s.Name(), statements)
}

func (s *ModelSource) Name() string { return s.Path }

func (s *ModelSource) Load(ctx context.Context) (*schema.SchemaDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := model.LoadModelFile(s.Path)
	if err != nil {
		return nil, err
	}

	def, err := m.SchemaDefinition()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert model: %s", s.Path)
	}

	logLoaded(s.Name(), def)
	return def, nil
}

func assemble(name string, statements []string) (*schema.SchemaDefinition, error) {
	if len(statements) == 0 {
		return nil, errors.Wrapf(ErrEmptyExport, "%s", name)
	}

	slog.Debug("Parsing schema export", "source", name, "statements", len(statements))

	def := parser.ParseStatements(statements)
	logLoaded(name, def)
	return def, nil
}

func logLoaded(name string, def *schema.SchemaDefinition) {
	slog.Debug("Loaded schema",
		"source", name,
		"tables", len(def.Tables),
		"edges", len(def.Edges),
		"accesses", len(def.Accesses),
	)
}
