// Command generate_schema writes internal/database/sqlc/schema.sql from the
// embedded migrations so sqlc and the tests see the same schema.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recmgr/internal/database"
	"recmgr/internal/database/migrations"
)

const header = `-- Generated from internal/database/migrations/files/*.sql.
-- Do not edit; run 'go generate ./internal/database' instead.

`

func main() {
	if err := run(filepath.Join("internal", "database", "sqlc", "schema.sql")); err != nil {
		fmt.Fprintf(os.Stderr, "generate_schema: %v\n", err)
		os.Exit(1)
	}
}

func run(outPath string) error {
	db, err := database.OpenConnection(":memory:")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := migrations.MigrateUp(db); err != nil {
		return err
	}

	schema, err := dumpSchema(db)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(header+schema), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

// dumpSchema returns the CREATE statements of every table followed by every
// index, leaving out SQLite internals and the golang-migrate bookkeeping table.
func dumpSchema(db *sql.DB) (string, error) {
	rows, err := db.Query(`
		SELECT sql FROM sqlite_master
		WHERE type IN ('table', 'index')
		  AND sql IS NOT NULL
		  AND name NOT LIKE 'sqlite_%'
		  AND tbl_name != 'schema_migrations'
		ORDER BY type = 'index', tbl_name, name`)
	if err != nil {
		return "", fmt.Errorf("reading sqlite_master: %w", err)
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return "", fmt.Errorf("scanning statement: %w", err)
		}
		b.WriteString(stmt)
		b.WriteString(";\n\n")
	}
	return b.String(), rows.Err()
}
