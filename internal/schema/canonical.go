package schema

import "strings"

// CanonicalType normalizes a driver-reported type name so that the
// field mapper sees one spelling per storage type.
func CanonicalType(typ string) string {
	t := strings.ToLower(strings.TrimSpace(typ))

	// MySQL reports booleans as tinyint(1).
	if t == "tinyint(1)" {
		return "bool"
	}
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimSuffix(t, " unsigned")

	switch t {
	case "int", "int4", "integer":
		return "integer"
	case "int8":
		return "bigint"
	case "int2":
		return "smallint"
	case "character varying":
		return "varchar"
	case "timestamptz", "timestamp with time zone", "timestamp without time zone":
		return "timestamp"
	case "timetz", "time with time zone", "time without time zone":
		return "time"
	default:
		return t
	}
}
