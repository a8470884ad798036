package parser

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/utils"
)

// ParseEvent parses a DEFINE EVENT statement and returns the table it is
// attached to together with the trimmed statement. The table is the token
// after " ON TABLE " (matched in any case). Statements without that clause
// yield false.
//
// Example:
//
//	ParseEvent("DEFINE EVENT audit ON TABLE `user` WHEN $event = 'CREATE' THEN {...};")
//	// "user", "DEFINE EVENT audit ON TABLE `user` WHEN ...", true
func ParseEvent(stmt string) (table string, statement string, ok bool) {
	trimmed := strings.TrimSpace(stmt)
	if !strings.HasPrefix(trimmed, "DEFINE EVENT") {
		return "", "", false
	}

	pos := indexFold(trimmed, " ON TABLE ")
	if pos < 0 {
		return "", "", false
	}

	table = utils.TrimIdentifier(firstField(trimmed[pos+len(" ON TABLE "):]))
	if table == "" {
		return "", "", false
	}

	return table, trimmed, true
}
