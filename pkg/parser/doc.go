// Package parser recovers a schema.SchemaDefinition from an exported
// SurrealQL schema script.
//
// SurrealDB exports place one DEFINE statement per line. The package reads
// those lines and understands four statement kinds:
//
//	DEFINE TABLE user TYPE NORMAL SCHEMAFULL PERMISSIONS FOR select FULL, FOR create, update, delete NONE;
//	DEFINE FIELD address ON user TYPE { city: string, zip: option<string> };
//	DEFINE ACCESS account ON DATABASE TYPE RECORD SIGNUP (...) SIGNIN (...) DURATION FOR TOKEN 15m, FOR SESSION 12h;
//	DEFINE EVENT audit ON TABLE user WHEN $event = "CREATE" THEN (...);
//
// Every other statement, DEFINE INDEX included, is ignored.
//
// Parsing is deliberately lenient: a statement that does not match the
// expected shape is skipped, and the parse entry points only fail on I/O.
// Statement parsers work on plain text with quote and bracket tracking;
// the table PERMISSIONS clause is parsed with a participle grammar.
//
// Field types are parsed into schema.ObjectType values by ParseType, which
// walks nested objects, arrays and unions with an explicit work stack so
// deeply nested input cannot exhaust the call stack:
//
//	parser.ParseType("array<{ id: string, score: null | float }>")
//
// Basic usage:
//
//	// Parse a script held in memory
//	def := parser.ParseString(script)
//
//	// Parse from file
//	def, err := parser.ParseFile("schema.surql")
//
//	// Parse from directory (combines all .surql files)
//	def, err := parser.ParseDirectory("db/")
package parser
