package compare

import (
	"cmp"
	"slices"
)

// NilCheck settles the comparison of two optional values when at least one
// of them is nil. needsMoreChecks is true only when both are set and the
// caller still has to compare what they point to.
//
// Example:
//
//	func (f *FieldDefinition) Equal(other *FieldDefinition) bool {
//		if eq, needsMoreChecks := compare.NilCheck(f, other); !needsMoreChecks {
//			return eq
//		}
//		return f.Name == other.Name // ...
//	}
func NilCheck[T any](a, b *T) (equal bool, needsMoreChecks bool) {
	switch {
	case a == nil && b == nil:
		return true, false
	case a == nil, b == nil:
		return false, false
	default:
		return false, true
	}
}

// PointersWithEqual reports whether two optional values are both unset, or
// both set and equal according to equal.
//
// Example:
//
//	compare.PointersWithEqual(current.Permissions, target.Permissions,
//		func(a, b *PermissionSet) bool { return *a == *b })
func PointersWithEqual[T any](a, b *T, equal func(*T, *T) bool) bool {
	if eq, needsMoreChecks := NilCheck(a, b); !needsMoreChecks {
		return eq
	}

	return equal(a, b)
}

// Pointers reports whether two optional clauses, such as a DEFAULT value or
// an access SIGNIN body, are both unset or hold the same value.
func Pointers[T comparable](a, b *T) bool {
	return PointersWithEqual(a, b, func(x, y *T) bool { return *x == *y })
}

// Slices compares two slices element by element.
//
// Example:
//
//	compare.Slices(current.Assertions, target.Assertions,
//		func(a, b string) bool { return a == b })
func Slices[T any](a, b []T, equal func(T, T) bool) bool {
	return slices.EqualFunc(a, b, equal)
}

// MapsWithEqual reports whether two maps have the same keys and equal values
// under equal. Object types use it to compare their field maps.
func MapsWithEqual[K comparable, V any](a, b map[K]V, equal func(V, V) bool) bool {
	if len(a) != len(b) {
		return false
	}

	for k, av := range a {
		bv, ok := b[k]
		if !ok || !equal(av, bv) {
			return false
		}
	}

	return true
}

// SetDiff partitions the keys of two maps into the keys present only in b
// (added), only in a (removed), and in both (common). Each result is sorted
// so callers produce deterministic output.
//
// Example:
//
//	added, removed, common := compare.SetDiff(old.Tables, new.Tables)
//	// added:   tables defined only in the new snapshot
//	// removed: tables defined only in the old snapshot
//	// common:  tables to compare field by field
func SetDiff[K cmp.Ordered, A, B any](a map[K]A, b map[K]B) (added, removed, common []K) {
	for k := range b {
		if _, ok := a[k]; !ok {
			added = append(added, k)
		}
	}
	for k := range a {
		if _, ok := b[k]; ok {
			common = append(common, k)
		} else {
			removed = append(removed, k)
		}
	}

	slices.Sort(added)
	slices.Sort(removed)
	slices.Sort(common)
	return added, removed, common
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
