// Package schemadiff compares two schema snapshots and reports the drift
// between them as a SchemaChanges value.
//
// The comparison is structural: tables, edges and access methods are
// matched by name, fields by name within their table, and types by value.
// Nothing is fuzzy matched, so attributes the model does not capture (such
// as the text of ASSERT clauses) never produce a change.
//
// Field changes come in two granularities. A coarse change reports that a
// whole field changed. A granular change points into a nullable or nested
// type with a dot path. Fields whose old or new type is an object are always
// reported coarsely because object values are regenerated as a unit.
//
// Usage:
//
//	current, _ := parser.ParseFile("remote.surql")
//	target, _ := parser.ParseFile("schema.surql")
//
//	changes := schemadiff.Compare(current, target)
//	fmt.Println(changes.Summary())
//
//	for _, field := range changes.FieldsNeedingGeneration("person") {
//		// regenerate data for field
//	}
//
// The result is built fresh on each call and holds no references to the
// input schemas, so Compare is safe to call concurrently.
package schemadiff
