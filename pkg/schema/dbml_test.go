package schema

import (
	"testing"
)

func TestMapType_KnownTypes(t *testing.T) {
	cases := map[string]string{
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

	for input, want := range cases {
		if got := MapType(input); got != want {
			t.Errorf("MapType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMapType_UnknownPassesThrough(t *testing.T) {
	for _, input := range []string{"uuid", "jsonb", "text", "bytea"} {
		if got := MapType(input); got != input {
			t.Errorf("MapType(%q) = %q, want pass-through", input, got)
		}
	}
}

func TestMapType_CaseInsensitive(t *testing.T) {
	if got := MapType("Double Precision"); got != "double" {
		t.Errorf("MapType should lower-case before lookup, got %q", got)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("empty input must render as empty string, got %q", got)
	}
}

func TestRender_GroupsByFirstSeenTable(t *testing.T) {
	columns := []ColumnDescriptor{
		{TableName: "orders", ColumnName: "id", DataType: "integer"},
		{TableName: "orders", ColumnName: "total_sum", DataType: "double precision"},
		{TableName: "users", ColumnName: "id", DataType: "integer"},
		{TableName: "users", ColumnName: "full_name", DataType: "character varying"},
	}

	want := "Table orders {\n" +
		"  id int\n" +
		"  total_sum double\n" +
		"}\n" +
		"Table users {\n" +
		"  id int\n" +
		"  full_name varchar\n" +
		"}"

	if got := Render(columns); got != want {
		t.Errorf("Render mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_Idempotent(t *testing.T) {
	columns := []ColumnDescriptor{
		{TableName: "products", ColumnName: "id", DataType: "bigint"},
		{TableName: "products", ColumnName: "price", DataType: "numeric"},
	}

	first := Render(columns)
	second := Render(columns)
	if first != second {
		t.Errorf("rendering is not idempotent:\n%s\nvs\n%s", first, second)
	}
}

func TestValidateTableNames(t *testing.T) {
	valid := []string{"users", "order_items", "shipping-carriers", "t2"}
	if err := ValidateTableNames(valid); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}

	invalid := []string{"users; DROP TABLE users", "a.b", "café", "spaced name", ""}
	for _, name := range invalid {
		if err := ValidateTableNames([]string{name}); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}
