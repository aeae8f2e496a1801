package schema

import (
	"strings"
)

// ColumnDescriptor is one row of catalog metadata.
type ColumnDescriptor struct {
	TableName  string
	ColumnName string
	DataType   string
}

// dbmlTypes maps catalog type spellings to their DBML spellings. Types not
// listed here pass through unchanged.
var dbmlTypes = map[string]string{
	"double precision":            "double",
	"integer":                     "int",
	"character varying":           "varchar",
	"timestamp without time zone": "timestamp",
	"timestamp with time zone":    "timestamptz",
	"boolean":                     "bool",
	"bigint":                      "bigint",
	"smallint":                    "smallint",
	"numeric":                     "decimal",
	"decimal":                     "decimal",
}

// MapType translates a catalog data type to its DBML spelling. Unrecognized
// types are returned verbatim (lower-cased), not treated as an error.
func MapType(catalogType string) string {
	lower := strings.ToLower(catalogType)
	if mapped, ok := dbmlTypes[lower]; ok {
		return mapped
	}
	return lower
}

// Render produces a DBML document from catalog rows. Columns stay grouped
// under their originating table in first-seen order; an empty input renders
// as an empty string.
func Render(columns []ColumnDescriptor) string {
	if len(columns) == 0 {
		return ""
	}

	var b strings.Builder
	currentTable := ""

	for _, col := range columns {
		if col.TableName != currentTable {
			if currentTable != "" {
				b.WriteString("}\n")
			}
			b.WriteString("Table " + col.TableName + " {\n")
			currentTable = col.TableName
		}
		b.WriteString("  " + col.ColumnName + " " + MapType(col.DataType) + "\n")
	}
	b.WriteString("}")

	return b.String()
}
