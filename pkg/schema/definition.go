package schema

import (
	"encoding/json"

	"github.com/rymskip/evenframe-sub000/pkg/compare"
)

// SchemaType is the enforcement mode of a table.
type SchemaType string

const (
	Schemafull SchemaType = "SCHEMAFULL"
	Schemaless SchemaType = "SCHEMALESS"
)

// AccessType is the authentication mechanism of a DEFINE ACCESS statement.
type AccessType string

const (
	AccessRecord AccessType = "RECORD"
	AccessJWT    AccessType = "JWT"
	AccessBearer AccessType = "BEARER"
)

type (
	// FieldDefinition describes a single DEFINE FIELD statement.
	FieldDefinition struct {
		Name       string
		Type       ObjectType
		Required   bool
		Default    *string
		Assertions []string
		// ParentArrayField is set for wildcard fields (tags[*]) and names the
		// array field they describe (tags).
		ParentArrayField *string
	}

	// PermissionSet holds the rule text for each table action. Each rule is
	// "NONE", "FULL" or "WHERE <expression>".
	PermissionSet struct {
		Select string `yaml:"select" json:"select"`
		Create string `yaml:"create" json:"create"`
		Update string `yaml:"update" json:"update"`
		Delete string `yaml:"delete" json:"delete"`
	}

	// IndexDefinition is part of the model but never populated from exports.
	IndexDefinition struct {
		Name    string   `yaml:"name" json:"name"`
		Columns []string `yaml:"columns" json:"columns"`
		Unique  bool     `yaml:"unique" json:"unique"`
	}

	// TableDefinition is everything known about one table (or edge).
	TableDefinition struct {
		Name       string                      `yaml:"name" json:"name"`
		SchemaType SchemaType                  `yaml:"schema_type" json:"schema_type"`
		Fields     map[string]*FieldDefinition `yaml:"fields" json:"fields"`
		// ArrayWildcardFields is keyed by the parent array field name.
		ArrayWildcardFields map[string]*FieldDefinition `yaml:"array_wildcard_fields" json:"array_wildcard_fields"`
		Permissions         *PermissionSet              `yaml:"permissions,omitempty" json:"permissions,omitempty"`
		Indexes             []IndexDefinition           `yaml:"indexes" json:"indexes"`
		Events              []string                    `yaml:"events" json:"events"`
	}

	// AccessDefinition describes a DEFINE ACCESS statement. Optional clauses
	// are nil when absent.
	AccessDefinition struct {
		Name            string     `yaml:"name" json:"name"`
		Type            AccessType `yaml:"type" json:"type"`
		DatabaseLevel   bool       `yaml:"database_level" json:"database_level"`
		Signup          *string    `yaml:"signup,omitempty" json:"signup,omitempty"`
		Signin          *string    `yaml:"signin,omitempty" json:"signin,omitempty"`
		JWTAlgorithm    *string    `yaml:"jwt_algorithm,omitempty" json:"jwt_algorithm,omitempty"`
		JWTKey          *string    `yaml:"jwt_key,omitempty" json:"jwt_key,omitempty"`
		JWTURL          *string    `yaml:"jwt_url,omitempty" json:"jwt_url,omitempty"`
		IssuerKey       *string    `yaml:"issuer_key,omitempty" json:"issuer_key,omitempty"`
		Authenticate    *string    `yaml:"authenticate,omitempty" json:"authenticate,omitempty"`
		TokenDuration   *string    `yaml:"token_duration,omitempty" json:"token_duration,omitempty"`
		SessionDuration *string    `yaml:"session_duration,omitempty" json:"session_duration,omitempty"`
		BearerFor       *string    `yaml:"bearer_for,omitempty" json:"bearer_for,omitempty"`
	}

	// SchemaDefinition is a full schema snapshot. Tables and Edges are keyed
	// by table name.
	SchemaDefinition struct {
		Tables   map[string]*TableDefinition `yaml:"tables" json:"tables"`
		Edges    map[string]*TableDefinition `yaml:"edges" json:"edges"`
		Accesses []*AccessDefinition         `yaml:"accesses" json:"accesses"`
	}

	// fieldDocument is the serialized form of a FieldDefinition, with the type
	// rendered as text.
	fieldDocument struct {
		Name             string   `yaml:"name" json:"name"`
		Type             string   `yaml:"type" json:"type"`
		Required         bool     `yaml:"required" json:"required"`
		Default          *string  `yaml:"default,omitempty" json:"default,omitempty"`
		Assertions       []string `yaml:"assertions,omitempty" json:"assertions,omitempty"`
		ParentArrayField *string  `yaml:"parent_array_field,omitempty" json:"parent_array_field,omitempty"`
	}
)

// NewSchemaDefinition returns an empty, fully initialised schema.
func NewSchemaDefinition() *SchemaDefinition {
	return &SchemaDefinition{
		Tables:   make(map[string]*TableDefinition),
		Edges:    make(map[string]*TableDefinition),
		Accesses: []*AccessDefinition{},
	}
}

// NewTableDefinition returns a table with initialised field maps.
func NewTableDefinition(name string, schemaType SchemaType) *TableDefinition {
	return &TableDefinition{
		Name:                name,
		SchemaType:          schemaType,
		Fields:              make(map[string]*FieldDefinition),
		ArrayWildcardFields: make(map[string]*FieldDefinition),
		Indexes:             []IndexDefinition{},
		Events:              []string{},
	}
}

// AccessesByName indexes the access list by name. When a name occurs more
// than once the first definition wins.
func (s *SchemaDefinition) AccessesByName() map[string]*AccessDefinition {
	out := make(map[string]*AccessDefinition, len(s.Accesses))
	for _, a := range s.Accesses {
		if _, ok := out[a.Name]; !ok {
			out[a.Name] = a
		}
	}

	return out
}

// Level renders the scope of the access method.
func (a *AccessDefinition) Level() string {
	if a.DatabaseLevel {
		return "DATABASE"
	}

	return "NAMESPACE"
}

// Equal reports whether two permission sets carry the same rules.
func (p *PermissionSet) Equal(other *PermissionSet) bool {
	return compare.PointersWithEqual(p, other, func(a, b *PermissionSet) bool { return *a == *b })
}

// Equal compares every attribute of two field definitions.
func (f *FieldDefinition) Equal(other *FieldDefinition) bool {
	if eq, needsMoreChecks := compare.NilCheck(f, other); !needsMoreChecks {
		return eq
	}

	return f.Name == other.Name &&
		TypesEqual(f.Type, other.Type) &&
		f.Required == other.Required &&
		compare.Pointers(f.Default, other.Default) &&
		compare.Slices(f.Assertions, other.Assertions, func(a, b string) bool { return a == b }) &&
		compare.Pointers(f.ParentArrayField, other.ParentArrayField)
}

func (f *FieldDefinition) document() fieldDocument {
	return fieldDocument{
		Name:             f.Name,
		Type:             typeString(f.Type),
		Required:         f.Required,
		Default:          f.Default,
		Assertions:       f.Assertions,
		ParentArrayField: f.ParentArrayField,
	}
}

// MarshalYAML renders the field with its type as text.
func (f *FieldDefinition) MarshalYAML() (any, error) {
	return f.document(), nil
}

// MarshalJSON renders the field with its type as text.
func (f *FieldDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.document())
}
