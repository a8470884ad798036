package schema

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/compare"
)

type (
	// ObjectType is the structural form of a SurrealQL field type. The set of
	// implementations is closed: Simple, Object, Array, Union and Nullable.
	//
	// Two ObjectType values are compared with Equal, never with ==, because
	// Object and Union are reference types.
	ObjectType interface {
		// String renders the type in the canonical text form used by change
		// reports.
		String() string
		// Equal reports whether other has the same structure.
		Equal(other ObjectType) bool

		objectType()
	}

	// Simple is an atomic type kept as its source text, e.g. "string",
	// "record<user>" or "option<datetime>".
	Simple string

	// Object is an inline object type mapping field names to their types.
	Object map[string]ObjectType

	// Array is an array<T> type.
	Array struct {
		Elem ObjectType
	}

	// Union is a top-level " | " separated alternative of two or more types.
	Union []ObjectType

	// Nullable is a two member union where one member is null.
	Nullable struct {
		Inner ObjectType
	}
)

// Null is the Simple type that marks a union member as nullable.
const Null = Simple("null")

func (Simple) objectType()   {}
func (Object) objectType()   {}
func (Array) objectType()    {}
func (Union) objectType()    {}
func (Nullable) objectType() {}

func (s Simple) String() string { return string(s) }

// String renders fields in key order as "{ a: int, b: string }". An object
// without fields renders as "{  }".
func (o Object) String() string {
	keys := compare.SortedKeys(o)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+typeString(o[k]))
	}

	return "{ " + strings.Join(parts, ", ") + " }"
}

func (a Array) String() string { return "array<" + typeString(a.Elem) + ">" }

func (u Union) String() string {
	parts := make([]string, 0, len(u))
	for _, t := range u {
		parts = append(parts, typeString(t))
	}

	return "(" + strings.Join(parts, " | ") + ")"
}

func (n Nullable) String() string { return "null | " + typeString(n.Inner) }

func (s Simple) Equal(other ObjectType) bool {
	o, ok := other.(Simple)
	return ok && s == o
}

func (o Object) Equal(other ObjectType) bool {
	b, ok := other.(Object)
	return ok && compare.MapsWithEqual(o, b, TypesEqual)
}

func (a Array) Equal(other ObjectType) bool {
	b, ok := other.(Array)
	return ok && TypesEqual(a.Elem, b.Elem)
}

func (u Union) Equal(other ObjectType) bool {
	b, ok := other.(Union)
	return ok && compare.Slices(u, b, TypesEqual)
}

func (n Nullable) Equal(other ObjectType) bool {
	b, ok := other.(Nullable)
	return ok && TypesEqual(n.Inner, b.Inner)
}

// TypesEqual compares two possibly nil types.
func TypesEqual(a, b ObjectType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}

// IsObject reports whether t is an inline object type.
func IsObject(t ObjectType) bool {
	_, ok := t.(Object)
	return ok
}

func typeString(t ObjectType) string {
	if t == nil {
		return ""
	}

	return t.String()
}
