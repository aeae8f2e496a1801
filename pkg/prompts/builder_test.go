package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmbedsSchemaAndQuestion(t *testing.T) {
	b := NewBuilder(nil)
	schema := "Table users {\n  id int\n}"

	pair := b.Build("Show all users", schema)

	assert.Contains(t, pair.System, "DATABASE SCHEMA (DBML format):\n"+schema)
	assert.Contains(t, pair.User, "User's request: Show all users")
}

func TestBuild_NoPlaceholdersRemain(t *testing.T) {
	b := NewBuilder(nil)
	pair := b.Build("question", "schema")

	for _, text := range []string{pair.System, pair.User} {
		assert.NotContains(t, text, "{schema_data}")
		assert.NotContains(t, text, "{user_question}")
		assert.NotContains(t, text, "%s")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder(nil)
	first := b.Build("q", "s")
	second := b.Build("q", "s")
	assert.Equal(t, first, second)
}

func TestBuild_SystemPromptContents(t *testing.T) {
	b := NewBuilder(nil)
	pair := b.Build("q", "s")

	// Fixed rule set
	assert.Contains(t, pair.System, "Use only the tables and columns mentioned above")
	assert.Contains(t, pair.System, "CURRENT_DATE")
	assert.Contains(t, pair.System, "JOIN syntax with table aliases")

	// Four few-shot examples: three SQL answers and one JSON refusal
	assert.Equal(t, 3, strings.Count(pair.System, "SQL: "))
	assert.Contains(t, pair.System, `"error_description": "Cannot answer`)

	// Static business-rule hints
	assert.Contains(t, pair.System, `Table "products" has columns`)
	assert.Contains(t, pair.System, `Table "shipping_carriers" has columns`)
}

func TestBuild_UserPromptContract(t *testing.T) {
	b := NewBuilder(nil)
	pair := b.Build("q", "s")

	assert.Contains(t, pair.User, "Return ONLY the JSON, no other text.")
	assert.Contains(t, pair.User, `{"sql": "SELECT * FROM products WHERE price > 100;", "error_description": ""}`)
	assert.Contains(t, pair.User, `{"sql": "", "error_description": "The request cannot be converted to SQL because..."}`)
}

func TestCombined(t *testing.T) {
	pair := PromptPair{System: "sys", User: "usr"}
	assert.Equal(t, "sys\n\nusr", pair.Combined())
}

func TestLoadRulePack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
version: 2
business_rules:
  - 'Table "invoices" has columns: id, total'
rules:
  - Use only listed tables
examples:
  - user: list invoices
    sql: SELECT * FROM invoices;
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pack, err := LoadRulePack(path)
	require.NoError(t, err)
	assert.Equal(t, 2, pack.Version)
	require.Len(t, pack.Examples, 1)
	assert.Equal(t, "SELECT * FROM invoices;", pack.Examples[0].SQL)

	pair := NewBuilder(pack).Build("list invoices", "")
	assert.Contains(t, pair.System, `Table "invoices" has columns`)
}

func TestLoadRulePack_MissingFile(t *testing.T) {
	_, err := LoadRulePack(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
