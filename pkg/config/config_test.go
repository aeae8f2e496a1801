package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComplexFields_TablesList(t *testing.T) {
	cfg := &Config{}
	cfg.Schema.TablesJSON = `["users", "orders", "products"]`

	require.NoError(t, cfg.parseComplexFields())
	assert.Equal(t, []string{"users", "orders", "products"}, cfg.Schema.Tables)
}

func TestParseComplexFields_EmptyList(t *testing.T) {
	cfg := &Config{}
	cfg.Schema.TablesJSON = `[]`

	require.NoError(t, cfg.parseComplexFields())
	assert.Empty(t, cfg.Schema.Tables)
}

func TestParseComplexFields_InvalidJSON(t *testing.T) {
	cfg := &Config{}
	cfg.Schema.TablesJSON = `users, orders`

	err := cfg.parseComplexFields()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON list")
}

func TestDatabaseConfig_Missing(t *testing.T) {
	cfg := DatabaseConfig{Host: "localhost", Port: 5432}
	missing := cfg.Missing()
	assert.Equal(t, []string{"PGUSER", "PGPASSWORD", "PGDATABASE"}, missing)
}

func TestDatabaseConfig_ValidateComplete(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "secret",
		Database: "shop",
	}
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_ValidateEnumeratesMissing(t *testing.T) {
	cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "app"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGPASSWORD")
	assert.Contains(t, err.Error(), "PGDATABASE")
	assert.NotContains(t, err.Error(), "PGUSER")
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "shop",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=shop sslmode=disable",
		cfg.ConnectionString())
}
