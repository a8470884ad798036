package schemadiff

import (
	"cmp"
	"slices"

	"github.com/rymskip/evenframe-sub000/pkg/compare"
	"github.com/rymskip/evenframe-sub000/pkg/schema"
)

const wildcardSuffix = "[*]"

// Compare computes the changes needed to go from the current schema to the
// target schema. It never fails; a nil schema is treated as empty.
//
// Tables and edges are compared with the same rules and reported in the same
// lists. For tables present on both sides the differ reports:
//   - new and removed fields (wildcard fields suffixed with [*])
//   - modified fields, see compareField
//   - schema type and permission changes
//
// Access methods are matched by name and compared attribute by attribute.
//
// Example:
//
//	changes := schemadiff.Compare(remote, local)
//	if !changes.IsEmpty() {
//		fmt.Println(changes.Summary())
//	}
func Compare(current, target *schema.SchemaDefinition) *SchemaChanges {
	if current == nil {
		current = schema.NewSchemaDefinition()
	}
	if target == nil {
		target = schema.NewSchemaDefinition()
	}

	changes := NewSchemaChanges()
	compareTableSets(changes, current.Tables, target.Tables)
	compareTableSets(changes, current.Edges, target.Edges)

	slices.Sort(changes.NewTables)
	slices.Sort(changes.RemovedTables)
	slices.SortStableFunc(changes.ModifiedTables, func(a, b TableChanges) int {
		return cmp.Compare(a.TableName, b.TableName)
	})

	compareAccessSets(changes, current, target)
	return changes
}

func compareTableSets(changes *SchemaChanges, current, target map[string]*schema.TableDefinition) {
	added, removed, common := compare.SetDiff(current, target)
	changes.NewTables = append(changes.NewTables, added...)
	changes.RemovedTables = append(changes.RemovedTables, removed...)

	for _, name := range common {
		if tc := compareTables(name, current[name], target[name]); tc != nil {
			changes.ModifiedTables = append(changes.ModifiedTables, *tc)
		}
	}
}

// compareTables returns nil when the two definitions are equivalent.
func compareTables(name string, current, target *schema.TableDefinition) *TableChanges {
	tc := &TableChanges{
		TableName:         name,
		NewFields:         []string{},
		RemovedFields:     []string{},
		ModifiedFields:    []FieldChange{},
		SchemaTypeChanged: current.SchemaType != target.SchemaType,
		PermissionChanged: !current.Permissions.Equal(target.Permissions),
	}

	added, removed, common := compare.SetDiff(current.Fields, target.Fields)
	tc.NewFields = append(tc.NewFields, added...)
	tc.RemovedFields = append(tc.RemovedFields, removed...)
	for _, field := range common {
		tc.ModifiedFields = append(tc.ModifiedFields, compareField(field, current.Fields[field], target.Fields[field])...)
	}

	added, removed, common = compare.SetDiff(current.ArrayWildcardFields, target.ArrayWildcardFields)
	for _, parent := range added {
		tc.NewFields = append(tc.NewFields, parent+wildcardSuffix)
	}
	for _, parent := range removed {
		tc.RemovedFields = append(tc.RemovedFields, parent+wildcardSuffix)
	}
	for _, parent := range common {
		if fc, ok := coarseChange(parent+wildcardSuffix, current.ArrayWildcardFields[parent], target.ArrayWildcardFields[parent]); ok {
			tc.ModifiedFields = append(tc.ModifiedFields, fc)
		}
	}

	if tc.IsEmpty() {
		return nil
	}

	slices.Sort(tc.NewFields)
	slices.Sort(tc.RemovedFields)
	slices.SortStableFunc(tc.ModifiedFields, func(a, b FieldChange) int {
		return cmp.Compare(a.FieldName, b.FieldName)
	})

	return tc
}

// compareField diffs a field defined on both sides.
//
// When the types differ and either side is an object the whole field is
// reported as one coarse change, since objects are regenerated as a unit.
// Other type changes are localised with CompareObjectTypes, falling back to
// a coarse change when that finds nothing. With equal types a change is only
// reported when the required flag or the default differ.
func compareField(name string, current, target *schema.FieldDefinition) []FieldChange {
	if schema.TypesEqual(current.Type, target.Type) {
		if fc, ok := coarseChange(name, current, target); ok {
			return []FieldChange{fc}
		}
		return nil
	}

	if !schema.IsObject(current.Type) && !schema.IsObject(target.Type) {
		if diffs := CompareObjectTypes(name, current.Type, target.Type); len(diffs) > 0 {
			return diffs
		}
	}

	fc, _ := coarseChange(name, current, target)
	return []FieldChange{fc}
}

// coarseChange builds a whole-field change. It reports false when neither
// the type, the required flag nor the default differ.
func coarseChange(name string, current, target *schema.FieldDefinition) (FieldChange, bool) {
	fc := FieldChange{
		FieldName:       name,
		OldType:         render(current.Type),
		NewType:         render(target.Type),
		ChangeType:      ChangeModified,
		RequiredChanged: current.Required != target.Required,
		DefaultChanged:  !compare.Pointers(current.Default, target.Default),
	}

	changed := fc.RequiredChanged || fc.DefaultChanged || !schema.TypesEqual(current.Type, target.Type)
	return fc, changed
}

// CompareObjectTypes localises the differences between two types at path.
//
//   - Two objects are diffed key by key: keys only in target are Added, keys
//     only in current are Removed, and differing common keys are compared
//     recursively at path.key.
//   - Two nullable types are compared by their inner types at the same path.
//   - Any other unequal pair yields one Modified change at path.
//
// Equal types yield no changes.
func CompareObjectTypes(path string, current, target schema.ObjectType) []FieldChange {
	switch c := current.(type) {
	case schema.Object:
		if t, ok := target.(schema.Object); ok {
			return compareObjects(path, c, t)
		}
	case schema.Nullable:
		if t, ok := target.(schema.Nullable); ok {
			return CompareObjectTypes(path, c.Inner, t.Inner)
		}
	}

	if schema.TypesEqual(current, target) {
		return nil
	}

	return []FieldChange{modified(path, current, target)}
}

func compareObjects(path string, current, target schema.Object) []FieldChange {
	var changes []FieldChange

	added, removed, common := compare.SetDiff(current, target)
	for _, key := range added {
		changes = append(changes, FieldChange{
			FieldName:  joinPath(path, key),
			NewType:    render(target[key]),
			ChangeType: ChangeAdded,
		})
	}

	for _, key := range removed {
		changes = append(changes, FieldChange{
			FieldName:  joinPath(path, key),
			OldType:    render(current[key]),
			ChangeType: ChangeRemoved,
		})
	}

	for _, key := range common {
		if schema.TypesEqual(current[key], target[key]) {
			continue
		}

		sub := CompareObjectTypes(joinPath(path, key), current[key], target[key])
		if len(sub) == 0 {
			sub = []FieldChange{modified(joinPath(path, key), current[key], target[key])}
		}
		changes = append(changes, sub...)
	}

	return changes
}

func modified(path string, current, target schema.ObjectType) FieldChange {
	return FieldChange{
		FieldName:  path,
		OldType:    render(current),
		NewType:    render(target),
		ChangeType: ChangeModified,
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func render(t schema.ObjectType) string {
	if t == nil {
		return ""
	}

	return t.String()
}
