package parser_test

import (
	"testing"

	. "github.com/rymskip/evenframe-sub000/pkg/parser"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestParseTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stmt     string
		expected string
		ok       bool
	}{
		{name: "basic", stmt: "DEFINE TABLE user TYPE NORMAL SCHEMAFULL;", expected: "user", ok: true},
		{name: "semicolon", stmt: "DEFINE TABLE user;", expected: "user", ok: true},
		{name: "backticks", stmt: "DEFINE TABLE `user-data` SCHEMALESS;", expected: "user-data", ok: true},
		{name: "backticks and semicolon", stmt: "DEFINE TABLE `post`;", expected: "post", ok: true},
		{name: "missing name", stmt: "DEFINE TABLE", ok: false},
		{name: "empty name", stmt: "DEFINE TABLE ;", ok: false},
		{name: "lowercase keywords", stmt: "define table user;", ok: false},
		{name: "other statement", stmt: "DEFINE FIELD name ON user TYPE string;", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, ok := ParseTableName(tt.stmt)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, name)
		})
	}
}

func TestParseSchemaType(t *testing.T) {
	t.Parallel()

	require.Equal(t, schema.Schemafull, ParseSchemaType("DEFINE TABLE user TYPE NORMAL SCHEMAFULL;"))
	require.Equal(t, schema.Schemafull, ParseSchemaType("DEFINE TABLE user schemafull;"))
	require.Equal(t, schema.Schemaless, ParseSchemaType("DEFINE TABLE user TYPE NORMAL SCHEMALESS;"))
	require.Equal(t, schema.Schemaless, ParseSchemaType("DEFINE TABLE user;"))
}

func TestParseField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stmt     string
		expected *schema.FieldDefinition
	}{
		{
			name: "basic",
			stmt: "DEFINE FIELD name ON user TYPE string PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name:     "name",
				Type:     schema.Simple("string"),
				Required: true,
			},
		},
		{
			name: "type ends at semicolon",
			stmt: "DEFINE FIELD age ON user TYPE int;",
			expected: &schema.FieldDefinition{
				Name:     "age",
				Type:     schema.Simple("int"),
				Required: true,
			},
		},
		{
			name: "backticked name",
			stmt: "DEFINE FIELD `first-name` ON user TYPE string;",
			expected: &schema.FieldDefinition{
				Name:     "first-name",
				Type:     schema.Simple("string"),
				Required: true,
			},
		},
		{
			name: "default makes the field optional",
			stmt: "DEFINE FIELD status ON user TYPE string DEFAULT 'active' PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name:     "status",
				Type:     schema.Simple("string"),
				Required: false,
				Default:  utils.Ptr("'active'"),
			},
		},
		{
			name: "default object keeps its braces",
			stmt: "DEFINE FIELD settings ON user TYPE object DEFAULT { theme: 'dark; light', size: 1 } PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name:     "settings",
				Type:     schema.Simple("object"),
				Required: false,
				Default:  utils.Ptr("{ theme: 'dark; light', size: 1 }"),
			},
		},
		{
			name: "default and assert",
			stmt: "DEFINE FIELD age ON user TYPE int DEFAULT 18 ASSERT $value >= 0 PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name:       "age",
				Type:       schema.Simple("int"),
				Required:   false,
				Default:    utils.Ptr("18"),
				Assertions: []string{"$value >= 0"},
			},
		},
		{
			name: "assert at the end",
			stmt: "DEFINE FIELD email ON user TYPE string ASSERT string::is::email($value);",
			expected: &schema.FieldDefinition{
				Name:       "email",
				Type:       schema.Simple("string"),
				Required:   true,
				Assertions: []string{"string::is::email($value)"},
			},
		},
		{
			name: "object type",
			stmt: "DEFINE FIELD address ON user TYPE { city: string, zip: null | string } PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name: "address",
				Type: schema.Object{
					"city": schema.Simple("string"),
					"zip":  schema.Nullable{Inner: schema.Simple("string")},
				},
				Required: true,
			},
		},
		{
			name: "object type followed by object default",
			stmt: "DEFINE FIELD meta ON user TYPE { note: string, flag: bool } DEFAULT { note: '', flag: false };",
			expected: &schema.FieldDefinition{
				Name: "meta",
				Type: schema.Object{
					"note": schema.Simple("string"),
					"flag": schema.Simple("bool"),
				},
				Required: false,
				Default:  utils.Ptr("{ note: '', flag: false }"),
			},
		},
		{
			name: "array type",
			stmt: "DEFINE FIELD tags ON post TYPE array<string> DEFAULT [] PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name:     "tags",
				Type:     schema.Array{Elem: schema.Simple("string")},
				Required: false,
				Default:  utils.Ptr("[]"),
			},
		},
		{
			name: "wildcard",
			stmt: "DEFINE FIELD tags[*] ON post TYPE string PERMISSIONS FULL;",
			expected: &schema.FieldDefinition{
				Name:             "tags[*]",
				Type:             schema.Simple("string"),
				Required:         true,
				ParentArrayField: utils.Ptr("tags"),
			},
		},
		{
			name: "backticked wildcard",
			stmt: "DEFINE FIELD `tags`[*] ON post TYPE string;",
			expected: &schema.FieldDefinition{
				Name:             "tags[*]",
				Type:             schema.Simple("string"),
				Required:         true,
				ParentArrayField: utils.Ptr("tags"),
			},
		},
		{
			name: "flexible type",
			stmt: "DEFINE FIELD data ON event FLEXIBLE TYPE option<object>;",
			expected: &schema.FieldDefinition{
				Name:     "data",
				Type:     schema.Simple("option<object>"),
				Required: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			field, ok := ParseField(tt.stmt)
			require.True(t, ok)
			require.Equal(t, tt.expected, field)
		})
	}
}

func TestParseFieldRejects(t *testing.T) {
	t.Parallel()

	for _, stmt := range []string{
		"DEFINE FIELD name ON user;",
		"DEFINE FIELD",
		"DEFINE FIELD [*] ON user TYPE string;",
		"DEFINE TABLE user;",
	} {
		field, ok := ParseField(stmt)
		require.False(t, ok, stmt)
		require.Nil(t, field, stmt)
	}
}

func TestSplitWildcardName(t *testing.T) {
	t.Parallel()

	name, parent := SplitWildcardName("tags[*]")
	require.Equal(t, "tags[*]", name)
	require.Equal(t, utils.Ptr("tags"), parent)

	name, parent = SplitWildcardName("`title`")
	require.Equal(t, "title", name)
	require.Nil(t, parent)
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stmt      string
		table     string
		statement string
		ok        bool
	}{
		{
			name:      "basic",
			stmt:      "DEFINE EVENT audit ON TABLE user WHEN $event = 'CREATE' THEN (CREATE log SET at = time::now());",
			table:     "user",
			statement: "DEFINE EVENT audit ON TABLE user WHEN $event = 'CREATE' THEN (CREATE log SET at = time::now());",
			ok:        true,
		},
		{
			name:      "lowercase on table",
			stmt:      "  DEFINE EVENT audit on table `post`; ",
			table:     "post",
			statement: "DEFINE EVENT audit on table `post`;",
			ok:        true,
		},
		{
			name: "missing on table",
			stmt: "DEFINE EVENT audit ON user WHEN true THEN {};",
			ok:   false,
		},
		{
			name: "not an event",
			stmt: "DEFINE TABLE user;",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table, statement, ok := ParseEvent(tt.stmt)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.table, table)
			require.Equal(t, tt.statement, statement)
		})
	}
}

func TestExtractParenthesized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "simple", input: "(SELECT 1)", expected: "SELECT 1", ok: true},
		{name: "prefix text", input: " SIGNUP (CREATE user) SIGNIN", expected: "CREATE user", ok: true},
		{name: "nested", input: "(a (b) (c (d)))", expected: "a (b) (c (d))", ok: true},
		{name: "empty", input: "()", expected: "", ok: true},
		{name: "unbalanced", input: "(a (b)", ok: false},
		{name: "no parenthesis", input: "SELECT 1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, ok := ExtractParenthesized(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, content)
		})
	}
}
