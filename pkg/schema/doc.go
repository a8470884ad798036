// Package schema defines the in-memory model of a SurrealDB schema snapshot.
//
// A SchemaDefinition holds the tables, edges and access methods recovered
// from a schema export (see package parser) or from a static model (see
// package model). Two snapshots are compared by package schemadiff.
//
// Field types are represented structurally by ObjectType, a closed set of
// implementations:
//
//	Simple("string")                                  // string
//	Array{Elem: Simple("int")}                        // array<int>
//	Nullable{Inner: Simple("string")}                 // null | string
//	Union{Simple("int"), Simple("string")}            // (int | string)
//	Object{"city": Simple("string")}                  // { city: string }
//
// String renders the canonical text used in change reports, and Equal gives
// structural equality:
//
//	a := schema.Array{Elem: schema.Simple("int")}
//	a.Equal(schema.Array{Elem: schema.Simple("int")}) // true
//	a.String()                                        // "array<int>"
//
// Wildcard fields such as tags[*] are stored in
// TableDefinition.ArrayWildcardFields keyed by the parent array name (tags),
// separately from plain fields.
package schema
