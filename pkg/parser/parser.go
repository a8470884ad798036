package parser

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/consts"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

// SplitStatements splits an exported script into statements, one per line.
// Lines are trimmed and blank lines dropped. Comment lines are kept; the
// assembler ignores them.
func SplitStatements(script string) []string {
	var statements []string
	for _, line := range strings.Split(script, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			statements = append(statements, line)
		}
	}

	return statements
}

// ParseStatements assembles a schema from already split statements. It never
// fails: statements that do not parse are skipped, and no statements at all
// yield an empty schema.
func ParseStatements(statements []string) *schema.SchemaDefinition {
	a := NewAssembler()
	for _, stmt := range statements {
		a.Add(stmt)
	}

	return a.Finish()
}

// ParseString parses an exported SurrealQL script.
//
// Example usage:
//
//	def := parser.ParseString(`
//		DEFINE TABLE user TYPE NORMAL SCHEMAFULL PERMISSIONS NONE;
//		DEFINE FIELD name ON user TYPE string;
//		DEFINE FIELD tags ON user TYPE array<string> DEFAULT [];
//		DEFINE FIELD tags[*] ON user TYPE string;
//	`)
//
//	user := def.Tables["user"]
//	fmt.Println(user.Fields["name"].Type)          // string
//	fmt.Println(user.Fields["tags"].Required)      // false
//	fmt.Println(user.ArrayWildcardFields["tags"].Name) // tags[*]
func ParseString(script string) *schema.SchemaDefinition {
	return ParseStatements(SplitStatements(script))
}

// ReadStatements reads a script from reader and splits it into statements.
func ReadStatements(reader io.Reader) ([]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read schema")
	}

	return SplitStatements(string(data)), nil
}

// ReadStatementsFromFile reads the statements of a single script file.
func ReadStatementsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return ReadStatements(f)
}

// ReadStatementsFromDirectory reads every .surql file below dir in lexical
// path order and concatenates their statements.
func ReadStatementsFromDirectory(dir string) ([]string, error) {
	var statements []string

	// NB: WalkDir always walks in lexical order.
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), consts.ScriptExtension) {
			return nil
		}

		stmts, err := ReadStatementsFromFile(path)
		if err != nil {
			return err
		}

		statements = append(statements, stmts...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	return statements, nil
}

// Parse parses a script from any reader.
func Parse(reader io.Reader) (*schema.SchemaDefinition, error) {
	statements, err := ReadStatements(reader)
	if err != nil {
		return nil, err
	}

	return ParseStatements(statements), nil
}

// ParseFile parses a single script file.
func ParseFile(path string) (*schema.SchemaDefinition, error) {
	statements, err := ReadStatementsFromFile(path)
	if err != nil {
		return nil, err
	}

	return ParseStatements(statements), nil
}

// ParseDirectory parses every .surql file below dir as one script.
func ParseDirectory(dir string) (*schema.SchemaDefinition, error) {
	statements, err := ReadStatementsFromDirectory(dir)
	if err != nil {
		return nil, err
	}

	return ParseStatements(statements), nil
}
