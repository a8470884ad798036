// Package compare provides generic comparison utilities for structural equality
// testing and for diffing keyed collections.
//
// The equality helpers remove boilerplate from Equal methods on the schema
// model and from the access comparison in the differ: nil checks, optional
// clause comparisons, and element-wise slice and map comparisons. The set helpers partition two keyed collections into
// added/removed/common keys in a stable order, which is the backbone of the
// schema differ.
//
// # Usage Examples
//
// Replace repetitive nil checks:
//
//	if eq, done := compare.NilCheck(x, other); !done {
//	    return eq
//	}
//
// Compare pointer fields:
//
//	return compare.Pointers(a.Signup, other.Signup) &&
//	       compare.Pointers(a.Signin, other.Signin)
//
// Compare map values with a custom equality:
//
//	return compare.MapsWithEqual(o, other, func(x, y schema.ObjectType) bool {
//	    return x.Equal(y)
//	})
//
// Partition two snapshots:
//
//	added, removed, common := compare.SetDiff(old.Tables, new.Tables)
package compare
