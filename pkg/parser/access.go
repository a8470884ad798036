package parser

import (
	"strings"

	"github.com/rymskip/evenframe-sub000/pkg/schema"
	"github.com/rymskip/evenframe-sub000/pkg/utils"
)

// ParseAccess parses a DEFINE ACCESS statement.
//
// Recognised clauses:
//
//   - ON DATABASE marks a database level method (namespace otherwise).
//   - TYPE RECORD | JWT | BEARER selects the access type. Other types yield false.
//   - SIGNUP (...) and SIGNIN (...) for RECORD methods.
//   - ALGORITHM <alg>, KEY '<key>', URL '<url>' and WITH ISSUER KEY '<key>',
//     only when the statement has a WITH JWT clause.
//   - AUTHENTICATE { ... } or AUTHENTICATE <expr>, for every access type.
//   - FOR USER | RECORD for BEARER methods.
//   - DURATION FOR TOKEN <d>, FOR SESSION <d>.
//
// Example:
//
//	a, _ := ParseAccess("DEFINE ACCESS api ON DATABASE TYPE BEARER FOR USER DURATION FOR TOKEN 1h, FOR SESSION 12h;")
//	// a.Type == schema.AccessBearer, *a.BearerFor == "USER"
//	// *a.TokenDuration == "1h", *a.SessionDuration == "12h"
func ParseAccess(stmt string) (*schema.AccessDefinition, bool) {
	rest, ok := strings.CutPrefix(stmt, "DEFINE ACCESS")
	if !ok {
		return nil, false
	}

	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return nil, false
	}

	typePos := strings.Index(stmt, " TYPE ")
	if typePos < 0 {
		return nil, false
	}

	access := &schema.AccessDefinition{
		Name:          utils.TrimBackticks(tokens[0]),
		DatabaseLevel: strings.Contains(stmt, " ON DATABASE "),
	}

	afterType := strings.TrimSpace(stmt[typePos+len(" TYPE "):])
	switch {
	case strings.HasPrefix(afterType, "RECORD"):
		access.Type = schema.AccessRecord
	case strings.HasPrefix(afterType, "JWT"):
		access.Type = schema.AccessJWT
	case strings.HasPrefix(afterType, "BEARER"):
		access.Type = schema.AccessBearer
	default:
		return nil, false
	}

	if access.Type == schema.AccessRecord {
		access.Signup = parenthesizedClause(stmt, " SIGNUP ")
		access.Signin = parenthesizedClause(stmt, " SIGNIN ")
	}

	if strings.Contains(stmt, " WITH JWT ") {
		parseJWT(stmt, access)
	}

	if pos := strings.Index(stmt, " FOR "); pos >= 0 && access.Type == schema.AccessBearer {
		access.BearerFor = utils.Ptr(strings.TrimRight(firstField(stmt[pos+len(" FOR "):]), ";"))
	}

	access.Authenticate = authenticateClause(stmt)
	parseDurations(stmt, access)

	return access, true
}

func parenthesizedClause(stmt, keyword string) *string {
	pos := strings.Index(stmt, keyword)
	if pos < 0 {
		return nil
	}

	if body, ok := ExtractParenthesized(stmt[pos+len(keyword):]); ok {
		return &body
	}

	return nil
}

func parseJWT(stmt string, access *schema.AccessDefinition) {
	if pos := strings.Index(stmt, " ALGORITHM "); pos >= 0 {
		access.JWTAlgorithm = utils.Ptr(strings.TrimRight(firstField(stmt[pos+len(" ALGORITHM "):]), ";"))
	}

	// The first " KEY '" is the signing key; the issuer key follows it.
	if pos := strings.Index(stmt, " KEY '"); pos >= 0 {
		after := stmt[pos+len(" KEY "):]
		if end := strings.IndexByte(after[1:], '\''); end >= 0 {
			access.JWTKey = utils.Ptr(after[1 : end+1])
		}
	}

	access.JWTURL = quotedClause(stmt, " URL '")
	access.IssuerKey = quotedClause(stmt, " WITH ISSUER KEY '")
}

// quotedClause returns the single quoted value that directly follows prefix,
// where prefix ends with the opening quote.
func quotedClause(stmt, prefix string) *string {
	pos := strings.Index(stmt, prefix)
	if pos < 0 {
		return nil
	}

	after := stmt[pos+len(prefix):]
	end := strings.IndexByte(after, '\'')
	if end < 0 {
		return nil
	}

	return utils.Ptr(after[:end])
}

// authenticateClause returns a braced AUTHENTICATE block including its
// braces, or the expression up to DURATION or the end of the statement.
func authenticateClause(stmt string) *string {
	pos := strings.Index(stmt, " AUTHENTICATE ")
	if pos < 0 {
		return nil
	}

	after := strings.TrimSpace(stmt[pos+len(" AUTHENTICATE "):])
	var body string
	if strings.HasPrefix(after, "{") {
		n := nesting{}
		end := len(after)
		for i := 0; i < len(after); i++ {
			if n.step(after[i]) && after[i] == '}' {
				end = i + 1
				break
			}
		}
		body = after[:end]
	} else {
		if end := strings.Index(after, " DURATION"); end >= 0 {
			after = after[:end]
		}
		body = strings.TrimRight(after, ";")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	return &body
}

func parseDurations(stmt string, access *schema.AccessDefinition) {
	pos := strings.Index(stmt, " DURATION ")
	if pos < 0 {
		return
	}
	after := stmt[pos+len(" DURATION "):]

	access.TokenDuration = durationValue(after, "FOR TOKEN ", ", ")
	access.SessionDuration = durationValue(after, "FOR SESSION ", "; ")
}

// durationValue returns the text after marker up to the first of the stop
// characters, or nil when it is empty.
func durationValue(s, marker, stops string) *string {
	pos := strings.Index(s, marker)
	if pos < 0 {
		return nil
	}

	value := s[pos+len(marker):]
	if end := strings.IndexAny(value, stops); end >= 0 {
		value = value[:end]
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}
