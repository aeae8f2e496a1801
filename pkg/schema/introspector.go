// Package schema derives a compact DBML schema document from live
// PostgreSQL catalog metadata for an allow-listed set of tables.
package schema

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrInvalidTableName marks an allow-list entry that failed sanitization.
// It indicates a deployment misconfiguration and is surfaced before any
// catalog query is issued.
var ErrInvalidTableName = errors.New("invalid table name")

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateTableNames rejects any name not composed solely of alphanumerics,
// underscores, or hyphens.
func ValidateTableNames(names []string) error {
	for _, name := range names {
		if !tableNamePattern.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidTableName, name)
		}
	}
	return nil
}

// Querier is the slice of the pgx pool interface the introspector needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Introspector reads column metadata from information_schema and renders it
// as a DBML document.
type Introspector struct {
	db     Querier
	logger *zap.Logger
}

// NewIntrospector creates an Introspector over the given query interface.
// If logger is nil, a no-op logger is used.
func NewIntrospector(db Querier, logger *zap.Logger) *Introspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Introspector{db: db, logger: logger.Named("schema")}
}

const columnsQuery = `
	SELECT
		table_name,
		column_name,
		data_type
	FROM information_schema.columns
	WHERE table_schema = 'public'
	  AND table_name = ANY($1)
	ORDER BY table_name, ordinal_position
`

// Columns fetches catalog metadata for the allow-listed tables, ordered by
// table name then column ordinal position. An empty allow-list yields no
// rows and no catalog call.
func (i *Introspector) Columns(ctx context.Context, tables []string) ([]ColumnDescriptor, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	if err := ValidateTableNames(tables); err != nil {
		return nil, err
	}

	rows, err := i.db.Query(ctx, columnsQuery, tables)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var columns []ColumnDescriptor
	for rows.Next() {
		var c ColumnDescriptor
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		columns = append(columns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	return columns, nil
}

// BuildDocument renders the DBML schema document for the allow-listed
// tables. An empty allow-list or an allow-list with no matching catalog
// rows yields an empty document, which is a valid "no schema available"
// result distinct from a catalog failure.
func (i *Introspector) BuildDocument(ctx context.Context, tables []string) (string, error) {
	columns, err := i.Columns(ctx, tables)
	if err != nil {
		return "", err
	}

	if len(columns) == 0 {
		i.logger.Warn("No catalog metadata for allow-listed tables",
			zap.Strings("tables", tables))
		return "", nil
	}

	i.logger.Debug("Built schema document",
		zap.Int("columns", len(columns)),
		zap.Strings("tables", tables))

	return Render(columns), nil
}
