package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

var (
	// permissionsLexer tokenizes a PERMISSIONS clause. Punct accepts any
	// remaining character so arbitrary WHERE expressions always lex.
	permissionsLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "String", Pattern: `'([^'\\]|\\.)*'|"([^"\\]|\\.)*"`},
		{Name: "Param", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*`},
		{Name: "Number", Pattern: `\d+(\.\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*`},
		{Name: "Operator", Pattern: `!=|==|<=|>=|\?=|\*=|&&|\|\||\?\?|::`},
		{Name: "Punct", Pattern: `\S`},
	})

	permissionsParser = participle.MustBuild[permissionsClause](
		participle.Lexer(permissionsLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
)

type (
	// permissionsClause is the grammar for
	//
	//	PERMISSIONS NONE
	//	PERMISSIONS FULL
	//	PERMISSIONS FOR select, create WHERE <expr>, FOR delete NONE
	permissionsClause struct {
		None     bool              `parser:"'PERMISSIONS' ( @'NONE'"`
		Full     bool              `parser:"| @'FULL'"`
		Rules    []*permissionRule `parser:"| @@+ )"`
		Trailing []string          `parser:"@(~';')* ';'?"`
	}

	permissionRule struct {
		Actions []string `parser:"'FOR' @Ident ( ',' @Ident )*"`
		None    bool     `parser:"( @'NONE'"`
		Full    bool     `parser:"| @'FULL'"`
		Where   []string `parser:"| 'WHERE' @(~('FOR' | 'COMMENT' | ';'))+ ) ','?"`
	}
)

// ParsePermissions parses a table PERMISSIONS clause into per-action rule
// text. NONE and FULL apply to every action; FOR rules assign "NONE",
// "FULL" or "WHERE <expression>" to the listed actions and actions that no
// rule mentions are NONE.
//
// Example:
//
//	perms, err := ParsePermissions("PERMISSIONS FOR select FULL, FOR create, update WHERE user = $auth.id")
//	// perms.Select == "FULL"
//	// perms.Create == "WHERE user = $auth.id"
//	// perms.Delete == "NONE"
func ParsePermissions(clause string) (*schema.PermissionSet, error) {
	parsed, err := permissionsParser.ParseString("", clause)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse permissions")
	}

	switch {
	case parsed.None:
		return uniformPermissions("NONE"), nil
	case parsed.Full:
		return uniformPermissions("FULL"), nil
	}

	perms := uniformPermissions("NONE")
	for _, rule := range parsed.Rules {
		text := rule.text()
		for _, action := range rule.Actions {
			switch strings.ToLower(action) {
			case "select":
				perms.Select = text
			case "create":
				perms.Create = text
			case "update":
				perms.Update = text
			case "delete":
				perms.Delete = text
			}
		}
	}

	return perms, nil
}

func (r *permissionRule) text() string {
	switch {
	case r.None:
		return "NONE"
	case r.Full:
		return "FULL"
	}

	// The separator before the next FOR lands in the expression tokens.
	tokens := r.Where
	if n := len(tokens); n > 0 && tokens[n-1] == "," {
		tokens = tokens[:n-1]
	}

	return "WHERE " + strings.Join(tokens, " ")
}

func uniformPermissions(rule string) *schema.PermissionSet {
	return &schema.PermissionSet{Select: rule, Create: rule, Update: rule, Delete: rule}
}
