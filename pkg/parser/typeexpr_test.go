package parser_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/rymskip/evenframe-sub000/pkg/parser"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected schema.ObjectType
	}{
		{
			name:     "simple",
			input:    "string",
			expected: schema.Simple("string"),
		},
		{
			name:     "trimmed",
			input:    "  int  ",
			expected: schema.Simple("int"),
		},
		{
			name:     "generic simple",
			input:    "record<user>",
			expected: schema.Simple("record<user>"),
		},
		{
			name:     "option kept verbatim",
			input:    "option<string>",
			expected: schema.Simple("option<string>"),
		},
		{
			name:     "array",
			input:    "array<string>",
			expected: schema.Array{Elem: schema.Simple("string")},
		},
		{
			name:     "nested array",
			input:    "array<array<int>>",
			expected: schema.Array{Elem: schema.Array{Elem: schema.Simple("int")}},
		},
		{
			name:     "nullable",
			input:    "null | string",
			expected: schema.Nullable{Inner: schema.Simple("string")},
		},
		{
			name:     "nullable with null last",
			input:    "string | null",
			expected: schema.Nullable{Inner: schema.Simple("string")},
		},
		{
			name:     "double null stays a union",
			input:    "null | null",
			expected: schema.Union{schema.Null, schema.Null},
		},
		{
			name:     "three member union with null",
			input:    "null | int | string",
			expected: schema.Union{schema.Null, schema.Simple("int"), schema.Simple("string")},
		},
		{
			name:     "union",
			input:    "int | string",
			expected: schema.Union{schema.Simple("int"), schema.Simple("string")},
		},
		{
			name:     "union inside generic is not split",
			input:    "record<user | admin>",
			expected: schema.Simple("record<user | admin>"),
		},
		{
			name:  "union of arrays is not an array",
			input: "array<int> | array<string>",
			expected: schema.Union{
				schema.Array{Elem: schema.Simple("int")},
				schema.Array{Elem: schema.Simple("string")},
			},
		},
		{
			name:     "adjacent bars share no space",
			input:    "a | | b",
			expected: schema.Union{schema.Simple("a"), schema.Simple("| b")},
		},
		{
			name:  "arrays inside nested objects",
			input: "array<{ a: array<{ b: int | string }>, c: record<x, y> }>",
			expected: schema.Array{Elem: schema.Object{
				"a": schema.Array{Elem: schema.Object{
					"b": schema.Union{schema.Simple("int"), schema.Simple("string")},
				}},
				"c": schema.Simple("record<x, y>"),
			}},
		},
		{
			name:     "bar without spaces is not a union",
			input:    "int|string",
			expected: schema.Simple("int|string"),
		},
		{
			name:     "union in quotes is not split",
			input:    "'a | b'",
			expected: schema.Simple("'a | b'"),
		},
		{
			name:     "literal union",
			input:    "'active' | 'inactive'",
			expected: schema.Union{schema.Simple("'active'"), schema.Simple("'inactive'")},
		},
		{
			name:     "empty object",
			input:    "{}",
			expected: schema.Object{},
		},
		{
			name:  "object",
			input: "{ city: string, zip: int }",
			expected: schema.Object{
				"city": schema.Simple("string"),
				"zip":  schema.Simple("int"),
			},
		},
		{
			name:  "object with trailing comma",
			input: "{ city: string, }",
			expected: schema.Object{
				"city": schema.Simple("string"),
			},
		},
		{
			name:  "object with nested structure",
			input: "{ geo: { lat: float, lng: float }, tags: array<string>, note: null | string }",
			expected: schema.Object{
				"geo":  schema.Object{"lat": schema.Simple("float"), "lng": schema.Simple("float")},
				"tags": schema.Array{Elem: schema.Simple("string")},
				"note": schema.Nullable{Inner: schema.Simple("string")},
			},
		},
		{
			name:  "object field with generic comma",
			input: "{ pair: record<a, b>, n: int }",
			expected: schema.Object{
				"pair": schema.Simple("record<a, b>"),
				"n":    schema.Simple("int"),
			},
		},
		{
			name:  "duplicate object keys keep the last",
			input: "{ a: int, a: string }",
			expected: schema.Object{
				"a": schema.Simple("string"),
			},
		},
		{
			name:  "union of objects",
			input: "{ a: int } | { b: int }",
			expected: schema.Union{
				schema.Object{"a": schema.Simple("int")},
				schema.Object{"b": schema.Simple("int")},
			},
		},
		{
			name:  "nullable object",
			input: "null | { a: int }",
			expected: schema.Nullable{
				Inner: schema.Object{"a": schema.Simple("int")},
			},
		},
		{
			name:  "array of objects",
			input: "array<{ id: string, score: null | float }>",
			expected: schema.Array{Elem: schema.Object{
				"id":    schema.Simple("string"),
				"score": schema.Nullable{Inner: schema.Simple("float")},
			}},
		},
		{
			name:     "empty",
			input:    "",
			expected: schema.Simple(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, ParseType(tt.input))
		})
	}
}

func TestParseTypeSizeCap(t *testing.T) {
	t.Parallel()

	long := "array<" + strings.Repeat("x", 100_000) + ">"
	require.Equal(t, schema.Simple(long), ParseType("  "+long+"  "))

	atCap := "array<" + strings.Repeat("x", 100_000-len("array<>")) + ">"
	require.IsType(t, schema.Array{}, ParseType(atCap))
}

func TestParseTypeDeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 2_000
	text := strings.Repeat("array<", depth) + "int" + strings.Repeat(">", depth)

	typ := ParseType(text)
	for range depth {
		arr, ok := typ.(schema.Array)
		require.True(t, ok)
		typ = arr.Elem
	}
	require.Equal(t, schema.Simple("int"), typ)

	objects := strings.Repeat("{ a: ", depth) + "int" + strings.Repeat(" }", depth)
	typ = ParseType(objects)
	for range depth {
		obj, ok := typ.(schema.Object)
		require.True(t, ok)
		typ = obj["a"]
	}
	require.Equal(t, schema.Simple("int"), typ)
}

func TestParseTypeDeepNestingNearSizeCap(t *testing.T) {
	t.Parallel()

	const depth = 12_000

	tests := []struct {
		name   string
		input  string
		unwrap func(schema.ObjectType) (schema.ObjectType, bool)
	}{
		{
			name:  "arrays",
			input: strings.Repeat("array<", depth) + "int" + strings.Repeat(">", depth),
			unwrap: func(typ schema.ObjectType) (schema.ObjectType, bool) {
				arr, ok := typ.(schema.Array)
				return arr.Elem, ok
			},
		},
		{
			name:  "objects",
			input: strings.Repeat("{ a: ", depth) + "int" + strings.Repeat(" }", depth),
			unwrap: func(typ schema.ObjectType) (schema.ObjectType, bool) {
				obj, ok := typ.(schema.Object)
				return obj["a"], ok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start := time.Now()
			typ := ParseType(tt.input)
			require.Less(t, time.Since(start), time.Second)

			for range depth {
				var ok bool
				typ, ok = tt.unwrap(typ)
				require.True(t, ok)
			}
			require.Equal(t, schema.Simple("int"), typ)
		})
	}
}

func TestSplitUnion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single", input: "string", expected: []string{"string"}},
		{name: "two", input: "int | string", expected: []string{"int", "string"}},
		{name: "nested generic", input: "record<a | b> | null", expected: []string{"record<a | b>", "null"}},
		{name: "nested object", input: "{ x: int | string } | bool", expected: []string{"{ x: int | string }", "bool"}},
		{name: "quoted", input: "'a | b' | 'c'", expected: []string{"'a | b'", "'c'"}},
		{name: "empty parts dropped", input: "int |  | string", expected: []string{"int", "string"}},
		{name: "adjacent bars", input: "a | | b", expected: []string{"a", "| b"}},
		{name: "empty", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, SplitUnion(tt.input))
		})
	}
}

func TestParseObjectFields(t *testing.T) {
	t.Parallel()

	require.Equal(t, schema.Object{}, ParseObjectFields(""))
	require.Equal(t, schema.Object{}, ParseObjectFields("no colon here"))
	require.Equal(t,
		schema.Object{"a": schema.Simple("int"), "b": schema.Array{Elem: schema.Simple("string")}},
		ParseObjectFields(" a: int,\n b: array<string> "),
	)
}
