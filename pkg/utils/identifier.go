package utils

import "strings"

// TrimBackticks removes leading and trailing backticks only, leaving any
// interior backticks alone.
//
// Examples:
//   - "`user`" -> "user"
//   - "``user``" -> "user"
//   - "user" -> "user"
func TrimBackticks(s string) string {
	return strings.Trim(s, "`")
}

// TrimIdentifier normalises an identifier token lifted out of a DEFINE
// statement: trailing semicolons are dropped first, then surrounding
// backticks.
//
// Examples:
//   - "user" -> "user"
//   - "user;" -> "user"
//   - "`user`;" -> "user"
//   - "`;" -> ""
func TrimIdentifier(token string) string {
	return TrimBackticks(strings.TrimRight(token, ";"))
}
