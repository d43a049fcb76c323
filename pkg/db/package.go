package db

// Persists flattened tables as a sqlite resource for the annotation
// framework to pick up. One database file per packaging run; one sqlite
// table per (organism, sub-table) flatten.

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yumyai/eupathtable/internal/util"
	"github.com/yumyai/eupathtable/pkg/eupathdb"
)

type PackageDB struct {
	sql *sql.DB
}

func NewPackageDB(db *sql.DB) *PackageDB {
	return &PackageDB{sql: db}
}

// Init creates the build ledger. Safe to call on an existing resource.
func (p *PackageDB) Init(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS resource_builds (
		build_id   TEXT PRIMARY KEY,
		table_name TEXT NOT NULL,
		organism   TEXT NOT NULL,
		row_count  INTEGER NOT NULL,
		built_at   TEXT NOT NULL
	);`
	if _, err := p.sql.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create resource_builds: %w", err)
	}
	return nil
}

// WriteTable stores one flattened table under the given name, replacing
// any previous build of it (every invocation is a full refetch, there is
// no incremental update). Returns the build id recorded in the ledger.
func (p *PackageDB) WriteTable(ctx context.Context, name, organism string, table eupathdb.FlatTable) (string, error) {
	buildID := uuid.NewString()
	tableName := util.SanitizeIdent(name)

	tx, err := p.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin packaging tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, tableName)); err != nil {
		return "", fmt.Errorf("drop stale table %s: %w", tableName, err)
	}

	if !table.Empty() {
		if err := writeRows(ctx, tx, tableName, table); err != nil {
			return "", err
		}
	}

	const ledger = `INSERT INTO resource_builds
		(build_id, table_name, organism, row_count, built_at)
		VALUES (?, ?, ?, ?, ?);`
	built := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, ledger, buildID, tableName, organism, len(table.Rows), built); err != nil {
		return "", fmt.Errorf("record build %s: %w", buildID, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit packaging tx: %w", err)
	}
	return buildID, nil
}

func writeRows(ctx context.Context, tx *sql.Tx, tableName string, table eupathdb.FlatTable) error {
	cols := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = fmt.Sprintf(`"%s" TEXT`, util.SanitizeIdent(c))
	}
	create := fmt.Sprintf(`CREATE TABLE "%s" (%s);`, tableName, strings.Join(cols, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", tableName, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Columns)), ", ")
	insert := fmt.Sprintf(`INSERT INTO "%s" VALUES (%s);`, tableName, placeholders)
	stm, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert for %s: %w", tableName, err)
	}
	defer stm.Close()

	values := make([]any, len(table.Columns))
	for _, row := range table.Rows {
		for i, c := range table.Columns {
			values[i] = row[c]
		}
		if _, err := stm.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("insert row into %s: %w", tableName, err)
		}
	}
	return nil
}
