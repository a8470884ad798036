package schemadiff

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// ChangeAdded marks a field or nested key that only exists in the target
	ChangeAdded ChangeType = "ADDED"
	// ChangeRemoved marks a field or nested key that only exists in the current schema
	ChangeRemoved ChangeType = "REMOVED"
	// ChangeModified marks a field whose type, required flag or default changed
	ChangeModified ChangeType = "MODIFIED"
)

const (
	JWTKeyChanged             AccessChangeKind = "JWT_KEY_CHANGED"
	IssuerKeyChanged          AccessChangeKind = "ISSUER_KEY_CHANGED"
	JWTURLChanged             AccessChangeKind = "JWT_URL_CHANGED"
	AuthenticateClauseChanged AccessChangeKind = "AUTHENTICATE_CLAUSE_CHANGED"
	DurationChanged           AccessChangeKind = "DURATION_CHANGED"
	SigninChanged             AccessChangeKind = "SIGNIN_CHANGED"
	SignupChanged             AccessChangeKind = "SIGNUP_CHANGED"
	// OtherChange carries a free form description in AccessChangeType.Detail.
	OtherChange AccessChangeKind = "OTHER"
)

type (
	// ChangeType represents the kind of a field level change
	ChangeType string

	// AccessChangeKind enumerates the access attributes the differ tracks.
	AccessChangeKind string

	// FieldChange describes one changed field. For granular changes inside a
	// non-object field FieldName is a dot path (e.g. "meta.owner").
	FieldChange struct {
		FieldName       string     `yaml:"field_name" json:"field_name"`
		OldType         string     `yaml:"old_type" json:"old_type"`
		NewType         string     `yaml:"new_type" json:"new_type"`
		ChangeType      ChangeType `yaml:"change_type" json:"change_type"`
		RequiredChanged bool       `yaml:"required_changed" json:"required_changed"`
		DefaultChanged  bool       `yaml:"default_changed" json:"default_changed"`
	}

	// TableChanges collects the differences of a table present in both
	// schemas. Wildcard fields are listed with a [*] suffix.
	TableChanges struct {
		TableName         string        `yaml:"table_name" json:"table_name"`
		NewFields         []string      `yaml:"new_fields" json:"new_fields"`
		RemovedFields     []string      `yaml:"removed_fields" json:"removed_fields"`
		ModifiedFields    []FieldChange `yaml:"modified_fields" json:"modified_fields"`
		PermissionChanged bool          `yaml:"permission_changed" json:"permission_changed"`
		SchemaTypeChanged bool          `yaml:"schema_type_changed" json:"schema_type_changed"`
	}

	// AccessChangeType is a single detected access difference.
	AccessChangeType struct {
		Kind   AccessChangeKind `yaml:"kind" json:"kind"`
		Detail string           `yaml:"detail,omitempty" json:"detail,omitempty"`
	}

	// AccessChange lists the differences of an access method present in
	// both schemas.
	AccessChange struct {
		AccessName string             `yaml:"access_name" json:"access_name"`
		Changes    []AccessChangeType `yaml:"changes" json:"changes"`
	}

	// SchemaChanges is the result of comparing two schema snapshots. Every
	// list is non-nil and sorted.
	SchemaChanges struct {
		NewTables        []string       `yaml:"new_tables" json:"new_tables"`
		RemovedTables    []string       `yaml:"removed_tables" json:"removed_tables"`
		ModifiedTables   []TableChanges `yaml:"modified_tables" json:"modified_tables"`
		NewAccesses      []string       `yaml:"new_accesses" json:"new_accesses"`
		RemovedAccesses  []string       `yaml:"removed_accesses" json:"removed_accesses"`
		ModifiedAccesses []AccessChange `yaml:"modified_accesses" json:"modified_accesses"`
	}
)

// Other returns an OtherChange with a formatted description.
func Other(format string, args ...any) AccessChangeType {
	return AccessChangeType{Kind: OtherChange, Detail: fmt.Sprintf(format, args...)}
}

// IsIgnorable reports whether the change is a key rotation that does not
// alter the shape of the access method.
func (c AccessChangeType) IsIgnorable() bool {
	return c.Kind == JWTKeyChanged || c.Kind == IssuerKeyChanged
}

func (c AccessChangeType) String() string {
	switch c.Kind {
	case JWTKeyChanged:
		return "JWT key changed"
	case IssuerKeyChanged:
		return "Issuer key changed"
	case JWTURLChanged:
		return "JWT URL changed"
	case AuthenticateClauseChanged:
		return "Authenticate clause changed"
	case DurationChanged:
		return "Duration changed"
	case SigninChanged:
		return "Signin changed"
	case SignupChanged:
		return "Signup changed"
	default:
		return c.Detail
	}
}

// OnlyIgnorable reports whether every change is ignorable.
func (a AccessChange) OnlyIgnorable() bool {
	for _, c := range a.Changes {
		if !c.IsIgnorable() {
			return false
		}
	}

	return true
}

// IsEmpty reports whether no table level change was recorded.
func (t *TableChanges) IsEmpty() bool {
	return len(t.NewFields) == 0 &&
		len(t.RemovedFields) == 0 &&
		len(t.ModifiedFields) == 0 &&
		!t.PermissionChanged &&
		!t.SchemaTypeChanged
}

// NewSchemaChanges returns an empty change set with initialised lists.
func NewSchemaChanges() *SchemaChanges {
	return &SchemaChanges{
		NewTables:        []string{},
		RemovedTables:    []string{},
		ModifiedTables:   []TableChanges{},
		NewAccesses:      []string{},
		RemovedAccesses:  []string{},
		ModifiedAccesses: []AccessChange{},
	}
}

// IsEmpty reports whether the two compared schemas were equivalent.
func (s *SchemaChanges) IsEmpty() bool {
	return len(s.NewTables) == 0 &&
		len(s.RemovedTables) == 0 &&
		len(s.ModifiedTables) == 0 &&
		len(s.NewAccesses) == 0 &&
		len(s.RemovedAccesses) == 0 &&
		len(s.ModifiedAccesses) == 0
}

// Summary renders one line per non-empty category, or "No changes detected".
//
// Example output:
//
//	New tables: pet
//	Modified tables: person
//	Modified accesses: user_signin
func (s *SchemaChanges) Summary() string {
	var lines []string
	add := func(label string, names []string) {
		if len(names) > 0 {
			lines = append(lines, label+": "+strings.Join(names, ", "))
		}
	}

	add("New tables", s.NewTables)
	add("Removed tables", s.RemovedTables)
	add("Modified tables", s.ModifiedTableNames())
	add("New accesses", s.NewAccesses)
	add("Removed accesses", s.RemovedAccesses)
	add("Modified accesses", s.ModifiedAccessNames())

	if len(lines) == 0 {
		return "No changes detected"
	}

	return strings.Join(lines, "\n")
}

// ModifiedTableNames returns the names of the modified tables.
func (s *SchemaChanges) ModifiedTableNames() []string {
	names := make([]string, len(s.ModifiedTables))
	for i, t := range s.ModifiedTables {
		names[i] = t.TableName
	}

	return names
}

// ModifiedAccessNames returns the names of the modified access methods.
func (s *SchemaChanges) ModifiedAccessNames() []string {
	names := make([]string, len(s.ModifiedAccesses))
	for i, a := range s.ModifiedAccesses {
		names[i] = a.AccessName
	}

	return names
}

// Table returns the changes recorded for a modified table, or nil.
func (s *SchemaChanges) Table(name string) *TableChanges {
	for i := range s.ModifiedTables {
		if s.ModifiedTables[i].TableName == name {
			return &s.ModifiedTables[i]
		}
	}

	return nil
}

// IsFieldUnchanged reports whether existing data for table.field can be
// kept. Fields of new or removed tables, and new, removed or modified fields,
// are never unchanged. Fields of tables that do not appear in the change set
// are.
func (s *SchemaChanges) IsFieldUnchanged(table, field string) bool {
	if slices.Contains(s.NewTables, table) || slices.Contains(s.RemovedTables, table) {
		return false
	}

	tc := s.Table(table)
	if tc == nil {
		return true
	}

	if slices.Contains(tc.NewFields, field) || slices.Contains(tc.RemovedFields, field) {
		return false
	}

	return !slices.ContainsFunc(tc.ModifiedFields, func(fc FieldChange) bool {
		return fc.FieldName == field
	})
}

// FieldsNeedingGeneration lists the fields of table whose data must be
// generated. A new table yields the single marker "*"; a modified table
// yields its new fields followed by its modified field names.
func (s *SchemaChanges) FieldsNeedingGeneration(table string) []string {
	if slices.Contains(s.NewTables, table) {
		return []string{"*"}
	}

	fields := []string{}
	if tc := s.Table(table); tc != nil {
		fields = append(fields, tc.NewFields...)
		for _, fc := range tc.ModifiedFields {
			fields = append(fields, fc.FieldName)
		}
	}

	return fields
}

// WithoutIgnorableAccessChanges returns a copy of s without the access
// changes that consist solely of key rotations.
func (s *SchemaChanges) WithoutIgnorableAccessChanges() *SchemaChanges {
	out := *s
	out.ModifiedAccesses = make([]AccessChange, 0, len(s.ModifiedAccesses))
	for _, a := range s.ModifiedAccesses {
		if !a.OnlyIgnorable() {
			out.ModifiedAccesses = append(out.ModifiedAccesses, a)
		}
	}

	return &out
}
