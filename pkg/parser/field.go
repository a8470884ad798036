package parser

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/utils"
)

// ParseField parses a DEFINE FIELD statement.
//
// The field name is the first token after DEFINE FIELD. A name containing
// [*] (e.g. tags[*]) is a wildcard field: it is stored as "tags[*]" with
// ParentArrayField "tags".
//
// The type starts after " TYPE " and ends at the first top-level
// " DEFAULT", " ASSERT", " PERMISSIONS" or ';'. A field is required unless
// the statement carries a DEFAULT clause. An ASSERT clause is kept verbatim
// as the single assertion.
//
// Statements without a name or without a TYPE clause yield false.
//
// Example:
//
//	f, _ := ParseField("DEFINE FIELD age ON user TYPE option<int> DEFAULT 18 ASSERT $value >= 0;")
//	// f.Name == "age", f.Type == Simple("option<int>")
//	// f.Required == false, *f.Default == "18"
//	// f.Assertions == []string{"$value >= 0"}
func ParseField(stmt string) (*schema.FieldDefinition, bool) {
	rest, ok := strings.CutPrefix(stmt, "DEFINE FIELD")
	if !ok {
		return nil, false
	}

	name, parent := SplitWildcardName(firstField(rest))
	if name == "" {
		return nil, false
	}

	typePos := strings.Index(stmt, " TYPE ")
	if typePos < 0 {
		return nil, false
	}

	field := &schema.FieldDefinition{
		Name:             name,
		Type:             ParseType(fieldTypeText(stmt[typePos+len(" TYPE "):])),
		Required:         true,
		ParentArrayField: parent,
	}

	if pos := strings.Index(stmt, " DEFAULT "); pos >= 0 {
		field.Required = false
		field.Default = utils.Ptr(defaultText(stmt[pos+len(" DEFAULT "):]))
	}

	if pos := strings.Index(stmt, " ASSERT "); pos >= 0 {
		field.Assertions = []string{assertText(stmt[pos+len(" ASSERT "):])}
	}

	return field, true
}

// SplitWildcardName normalises a field name token. For wildcard tokens such
// as "`tags`[*]" it returns ("tags[*]", "tags"); plain tokens come back with
// backticks trimmed and a nil parent. An empty base name yields "".
func SplitWildcardName(token string) (string, *string) {
	if idx := strings.Index(token, "[*]"); idx >= 0 {
		base := utils.TrimBackticks(strings.TrimSpace(token[:idx]))
		if base == "" {
			return "", nil
		}

		return base + "[*]", &base
	}

	return utils.TrimBackticks(token), nil
}

func fieldTypeText(s string) string {
	after := strings.TrimSpace(s)
	end := scanUntil(after, nesting{angles: true}, clauseBoundary(after, " DEFAULT", " ASSERT", " PERMISSIONS"))
	return strings.TrimRight(strings.TrimSpace(after[:end]), ";")
}

func defaultText(s string) string {
	after := strings.TrimSpace(s)
	end := scanUntil(after, nesting{}, clauseBoundary(after, " ASSERT", " PERMISSIONS"))
	return strings.TrimSpace(after[:end])
}

func assertText(s string) string {
	after := strings.TrimSpace(s)
	if end := strings.Index(after, " PERMISSIONS"); end >= 0 {
		after = after[:end]
	}

	return strings.TrimRight(after, ";")
}
