package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the config file looked up in the working directory
	DefaultConfigFile = "schemadrift.yaml"

	// ScriptExtension is the file extension of exported SurrealQL scripts
	ScriptExtension = ".surql"

	// MaxTypeExpressionSize caps the byte length of a type expression that is
	// structurally parsed. Longer inputs are kept verbatim.
	MaxTypeExpressionSize = 100_000

	// ChangeLogTimeFormat names change log files written by the report package
	ChangeLogTimeFormat = "2006_01_02_15_04_05"
)
