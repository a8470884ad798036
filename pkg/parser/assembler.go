package parser

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

// Assembler folds an ordered stream of DEFINE statements into a
// SchemaDefinition.
//
// DEFINE FIELD statements belong to the most recent DEFINE TABLE, so the
// assembler keeps that table open until the next DEFINE TABLE or Finish.
// Access methods and events are collected independently of the open table;
// events are attached to their tables by name when the schema is finished.
//
// DEFINE INDEX and any unrecognised statement are ignored, and edges are
// never populated from statements.
//
// Example:
//
//	a := NewAssembler()
//	for _, stmt := range statements {
//		a.Add(stmt)
//	}
//	def := a.Finish()
type Assembler struct {
	def    *schema.SchemaDefinition
	open   *schema.TableDefinition
	events map[string][]string
}

// NewAssembler returns an assembler with no open table.
func NewAssembler() *Assembler {
	return &Assembler{
		def:    schema.NewSchemaDefinition(),
		events: make(map[string][]string),
	}
}

// Add dispatches a single statement on its DEFINE prefix.
func (a *Assembler) Add(stmt string) {
	trimmed := strings.TrimSpace(stmt)

	switch {
	case strings.HasPrefix(trimmed, "DEFINE TABLE"):
		a.Open(trimmed)
	case strings.HasPrefix(trimmed, "DEFINE ACCESS"):
		a.AddAccess(trimmed)
	case strings.HasPrefix(trimmed, "DEFINE EVENT"):
		a.AddEvent(trimmed)
	case strings.HasPrefix(trimmed, "DEFINE FIELD"):
		a.AddField(trimmed)
	}
}

// Open flushes the currently open table and opens the table defined by
// stmt. When the table name cannot be parsed no table is left open, so the
// fields that follow are dropped until the next valid DEFINE TABLE.
func (a *Assembler) Open(stmt string) {
	a.Flush()

	name, ok := ParseTableName(stmt)
	if !ok {
		return
	}

	a.open = schema.NewTableDefinition(name, ParseSchemaType(stmt))
	a.open.Permissions = ParseTablePermissions(stmt)
}

// AddField adds a field to the open table. It is a no-op when no table is
// open or the statement does not parse.
func (a *Assembler) AddField(stmt string) {
	if a.open == nil {
		return
	}

	field, ok := ParseField(stmt)
	if !ok {
		return
	}

	if field.ParentArrayField != nil {
		a.open.ArrayWildcardFields[*field.ParentArrayField] = field
		return
	}

	a.open.Fields[field.Name] = field
}

// AddAccess records an access method.
func (a *Assembler) AddAccess(stmt string) {
	if access, ok := ParseAccess(stmt); ok {
		a.def.Accesses = append(a.def.Accesses, access)
	}
}

// AddEvent records an event under its target table.
func (a *Assembler) AddEvent(stmt string) {
	if table, event, ok := ParseEvent(stmt); ok {
		a.events[table] = append(a.events[table], event)
	}
}

// Flush stores the open table, replacing any earlier table of the same
// name, and closes it.
func (a *Assembler) Flush() {
	if a.open == nil {
		return
	}

	a.def.Tables[a.open.Name] = a.open
	a.open = nil
}

// Finish flushes the open table, attaches events and returns the assembled
// schema. The assembler is reset and can be reused.
func (a *Assembler) Finish() *schema.SchemaDefinition {
	a.Flush()

	for name, table := range a.def.Tables {
		if events, ok := a.events[name]; ok {
			table.Events = events
		}
	}

	def := a.def
	*a = *NewAssembler()
	return def
}
