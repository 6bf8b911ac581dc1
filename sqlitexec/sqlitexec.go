/*
Package sqlitexec is a SQLite-backed qb.Executor built on database/sql.

The driver is selected at build time: modernc.org/sqlite (pure Go) by
default, mattn/go-sqlite3 (cgo) behind the "mattn" build tag. Both accept
the `?`/`?N` placeholder syntax the qb package emits, so statements run
unmodified.
*/
package sqlitexec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	qb "github.com/G4brym/workers-qb-sub000"
)

// Options for `Open`. The zero value opens an in-memory database.
type Config struct {
	// Path to the database file. Empty or ":memory:" opens an in-memory
	// database.
	Path string

	// Operational logging. Uses slog.Default() if nil.
	Logger *slog.Logger
}

// A qb.Executor backed by a SQLite database handle.
type DB struct {
	db  *sql.DB
	log *slog.Logger
}

func Open(cfg Config) (*DB, error) {
	path := cfg.Path
	if path == `` {
		path = `:memory:`
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open(driverName, buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf(`opening sqlite database %q: %w`, path, err)
	}
	if path == `:memory:` {
		// Each pool connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(`opening sqlite database %q: %w`, path, err)
	}

	log.Debug(`sqlite database open`, `path`, path, `driver`, driverName)
	return &DB{db: db, log: log}, nil
}

func (self *DB) Close() error {
	return self.db.Close()
}

// Runs the statements inside a single transaction, satisfying the atomicity
// the migration runner requires of one Exec call.
func (self *DB) Exec(ctx context.Context, stmts ...qb.Stmt) error {
	tx, err := self.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		self.log.Debug(`exec`, `sql`, stmt.SQL)
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			return fmt.Errorf(`exec %q: %w`, stmt.SQL, err)
		}
	}
	return tx.Commit()
}

// Runs one statement and returns its rows as column-keyed maps. The fetch
// hint only bounds how many rows are read.
func (self *DB) Query(ctx context.Context, stmt qb.Stmt) ([]map[string]any, error) {
	self.log.Debug(`query`, `sql`, stmt.SQL, `fetch`, stmt.Fetch)

	rows, err := self.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf(`query %q: %w`, stmt.SQL, err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if stmt.Fetch == qb.FetchOne && len(out) > 1 {
		out = out[:1]
	}
	return out, nil
}

func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for ind := range vals {
			ptrs[ind] = &vals[ind]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for ind, col := range cols {
			row[col] = vals[ind]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
