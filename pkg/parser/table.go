package parser

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/utils"
)

// ParseTableName returns the table named by a DEFINE TABLE statement. The
// statement must start with the literal tokens DEFINE and TABLE; the name is
// the third token with a trailing ';' and surrounding backticks removed.
//
// Example:
//
//	ParseTableName("DEFINE TABLE `user` SCHEMAFULL;") // "user", true
//	ParseTableName("DEFINE TABLE;")                  // "", false
func ParseTableName(stmt string) (string, bool) {
	tokens := strings.Fields(stmt)
	if len(tokens) < 3 || tokens[0] != "DEFINE" || tokens[1] != "TABLE" {
		return "", false
	}

	name := utils.TrimIdentifier(tokens[2])
	return name, name != ""
}

// ParseSchemaType reports Schemafull when the statement mentions SCHEMAFULL
// in any case, Schemaless otherwise.
func ParseSchemaType(stmt string) schema.SchemaType {
	if strings.Contains(strings.ToUpper(stmt), "SCHEMAFULL") {
		return schema.Schemafull
	}

	return schema.Schemaless
}

// ParseTablePermissions extracts the PERMISSIONS clause of a DEFINE TABLE
// statement. It returns nil when the statement has no clause or the clause
// cannot be parsed.
func ParseTablePermissions(stmt string) *schema.PermissionSet {
	pos := indexFold(stmt, " PERMISSIONS ")
	if pos < 0 {
		return nil
	}

	perms, err := ParsePermissions(stmt[pos+1:])
	if err != nil {
		return nil
	}

	return perms
}
