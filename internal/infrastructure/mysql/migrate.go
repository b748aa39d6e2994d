package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is CREATE TABLE IF NOT
// EXISTS, so running it against an initialized database is a no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// Tables lists the schema tables in dependency order.
func Tables() []string {
	return []string{"Users", "Orders", "FileUploads", "Reviews"}
}
