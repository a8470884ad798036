package model

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rymskip/evenframe-sub000/pkg/parser"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"gopkg.in/yaml.v3"
)

const fullPermission = "FULL"

var (
	// ErrUnknownAccessType is returned for access types other than record,
	// jwt and bearer.
	ErrUnknownAccessType = errors.New("unknown access type")
	// ErrMissingName is returned for tables, fields or accesses without a name.
	ErrMissingName = errors.New("missing name")
)

type (
	// Model is a static description of a schema, typically maintained next to
	// the code that owns the tables.
	Model struct {
		Tables   []Table  `yaml:"tables"`
		Accesses []Access `yaml:"accesses,omitempty"`
	}

	// Table describes one table. Tables with a relation are edges.
	Table struct {
		Name        string       `yaml:"name"`
		Relation    *Relation    `yaml:"relation,omitempty"`
		Schemaless  bool         `yaml:"schemaless,omitempty"`
		Permissions *Permissions `yaml:"permissions,omitempty"`
		Events      []string     `yaml:"events,omitempty"`
		Fields      []Field      `yaml:"fields"`
	}

	// Relation marks an edge table between two record tables.
	Relation struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	}

	// Permissions holds per action rules. All overrides the individual
	// actions and unset actions default to FULL.
	Permissions struct {
		All    *string `yaml:"all,omitempty"`
		Select *string `yaml:"select,omitempty"`
		Create *string `yaml:"create,omitempty"`
		Update *string `yaml:"update,omitempty"`
		Delete *string `yaml:"delete,omitempty"`
	}

	// Field describes one field. Name may use the tags[*] wildcard form.
	Field struct {
		Name          string  `yaml:"name"`
		Type          string  `yaml:"type"`
		Default       *string `yaml:"default,omitempty"`
		DefaultAlways *string `yaml:"default_always,omitempty"`
		Assert        *string `yaml:"assert,omitempty"`
		Skip          bool    `yaml:"skip,omitempty"`
	}

	// Access describes an access method. Level is "database" (the default)
	// or "namespace".
	Access struct {
		Name            string  `yaml:"name"`
		Type            string  `yaml:"type"`
		Level           string  `yaml:"level,omitempty"`
		Signup          *string `yaml:"signup,omitempty"`
		Signin          *string `yaml:"signin,omitempty"`
		JWTAlgorithm    *string `yaml:"jwt_algorithm,omitempty"`
		JWTKey          *string `yaml:"jwt_key,omitempty"`
		JWTURL          *string `yaml:"jwt_url,omitempty"`
		IssuerKey       *string `yaml:"issuer_key,omitempty"`
		Authenticate    *string `yaml:"authenticate,omitempty"`
		TokenDuration   *string `yaml:"token_duration,omitempty"`
		SessionDuration *string `yaml:"session_duration,omitempty"`
		BearerFor       *string `yaml:"bearer_for,omitempty"`
	}
)

// LoadModel decodes a YAML model from r.
//
// Example:
//
//	m, err := model.LoadModel(strings.NewReader(`
//	tables:
//	  - name: person
//	    permissions:
//	      select: FULL
//	      create: WHERE $auth.admin = true
//	    fields:
//	      - name: name
//	        type: string
//	      - name: status
//	        type: string
//	        default: "'active'"
//	  - name: knows
//	    relation: { from: person, to: person }
//	    fields: []
//	`))
//	if err != nil {
//		return err
//	}
//
//	def, err := m.SchemaDefinition()
func LoadModel(r io.Reader) (*Model, error) {
	var m Model
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal schema model")
	}

	return &m, nil
}

// LoadModelFile loads a model from the specified file path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadModel(f)
}

// SchemaDefinition converts the model into the same shape the parser
// produces for an exported script, so both can be compared.
//
// Field types are parsed with parser.ParseType. A field is required when it
// has no default and is not skipped. Relation tables are stored as edges.
func (m *Model) SchemaDefinition() (*schema.SchemaDefinition, error) {
	def := schema.NewSchemaDefinition()

	for _, t := range m.Tables {
		table, err := t.definition()
		if err != nil {
			return nil, err
		}

		if t.Relation != nil {
			def.Edges[table.Name] = table
		} else {
			def.Tables[table.Name] = table
		}
	}

	for _, a := range m.Accesses {
		access, err := a.definition()
		if err != nil {
			return nil, err
		}

		def.Accesses = append(def.Accesses, access)
	}

	return def, nil
}

func (t Table) definition() (*schema.TableDefinition, error) {
	if t.Name == "" {
		return nil, errors.Wrap(ErrMissingName, "invalid table")
	}

	schemaType := schema.Schemafull
	if t.Schemaless {
		schemaType = schema.Schemaless
	}

	table := schema.NewTableDefinition(t.Name, schemaType)
	table.Permissions = t.Permissions.set()
	table.Events = append(table.Events, t.Events...)

	for _, f := range t.Fields {
		field, err := f.definition()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid field in table %s", t.Name)
		}

		if field.ParentArrayField != nil {
			table.ArrayWildcardFields[*field.ParentArrayField] = field
		} else {
			table.Fields[field.Name] = field
		}
	}

	return table, nil
}

func (p *Permissions) set() *schema.PermissionSet {
	if p == nil {
		return nil
	}

	rule := func(action *string) string {
		switch {
		case p.All != nil:
			return *p.All
		case action != nil:
			return *action
		default:
			return fullPermission
		}
	}

	return &schema.PermissionSet{
		Select: rule(p.Select),
		Create: rule(p.Create),
		Update: rule(p.Update),
		Delete: rule(p.Delete),
	}
}

func (f Field) definition() (*schema.FieldDefinition, error) {
	name, parent := parser.SplitWildcardName(f.Name)
	if name == "" {
		return nil, errors.Wrapf(ErrMissingName, "%q", f.Name)
	}

	field := &schema.FieldDefinition{
		Name:             name,
		Type:             parser.ParseType(f.Type),
		Default:          f.Default,
		ParentArrayField: parent,
	}
	if field.Default == nil {
		field.Default = f.DefaultAlways
	}
	field.Required = field.Default == nil && !f.Skip

	if f.Assert != nil {
		field.Assertions = []string{*f.Assert}
	}

	return field, nil
}

func (a Access) definition() (*schema.AccessDefinition, error) {
	if a.Name == "" {
		return nil, errors.Wrap(ErrMissingName, "invalid access")
	}

	accessType := schema.AccessType(strings.ToUpper(a.Type))
	switch accessType {
	case schema.AccessRecord, schema.AccessJWT, schema.AccessBearer:
	default:
		return nil, errors.Wrapf(ErrUnknownAccessType, "%q for access %s", a.Type, a.Name)
	}

	return &schema.AccessDefinition{
		Name:            a.Name,
		Type:            accessType,
		DatabaseLevel:   !strings.EqualFold(a.Level, "namespace"),
		Signup:          a.Signup,
		Signin:          a.Signin,
		JWTAlgorithm:    a.JWTAlgorithm,
		JWTKey:          a.JWTKey,
		JWTURL:          a.JWTURL,
		IssuerKey:       a.IssuerKey,
		Authenticate:    a.Authenticate,
		TokenDuration:   a.TokenDuration,
		SessionDuration: a.SessionDuration,
		BearerFor:       a.BearerFor,
	}, nil
}
