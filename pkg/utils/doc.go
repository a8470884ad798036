// Package utils provides small helpers shared by the parser, the static
// model adapter and the differ.
//
// # Identifier Utilities (identifier.go)
//
// SurrealQL exports may quote identifiers with backticks and terminate a
// statement directly after a name token. The identifier helpers normalise
// such tokens so that `user`, user and `user`; all name the same table:
//
//	name := utils.TrimIdentifier("`user`;")
//	// Result: user
//
// # Pointer Utilities (ptr.go)
//
// Ptr returns a pointer to any value, which keeps optional fields in the
// schema model readable in literals and tests:
//
//	access.JWTAlgorithm = utils.Ptr("HS512")
package utils
