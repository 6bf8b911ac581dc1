/*
Package pgexec is a Postgres-backed qb.Executor built on database/sql with
the pgx stdlib driver.

Postgres binds parameters as `$N`, not the `?`/`?N` syntax the qb package
emits, so every statement is rewritten at this boundary before execution.
The rewrite is purely textual and position-preserving: a reused `?N` maps to
a reused `$N`, so the argument list carries over unchanged.
*/
package pgexec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	qb "github.com/G4brym/workers-qb-sub000"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// A qb.Executor backed by a Postgres connection pool.
type DB struct {
	db  *sql.DB
	log *slog.Logger
}

func Open(dsn string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open(`pgx`, dsn)
	if err != nil {
		return nil, fmt.Errorf(`opening postgres database: %w`, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(`opening postgres database: %w`, err)
	}
	return &DB{db: db, log: logger}, nil
}

func (self *DB) Close() error {
	return self.db.Close()
}

// Runs the statements inside a single transaction.
func (self *DB) Exec(ctx context.Context, stmts ...qb.Stmt) error {
	tx, err := self.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		sqlText := DollarParams(stmt.SQL)
		self.log.Debug(`exec`, `sql`, sqlText)
		if _, err := tx.ExecContext(ctx, sqlText, stmt.Args...); err != nil {
			return fmt.Errorf(`exec %q: %w`, sqlText, err)
		}
	}
	return tx.Commit()
}

// Runs one statement and returns its rows as column-keyed maps.
func (self *DB) Query(ctx context.Context, stmt qb.Stmt) ([]map[string]any, error) {
	sqlText := DollarParams(stmt.SQL)
	self.log.Debug(`query`, `sql`, sqlText, `fetch`, stmt.Fetch)

	rows, err := self.db.QueryContext(ctx, sqlText, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf(`query %q: %w`, sqlText, err)
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

/*
Rewrites `?`/`?N` placeholders to Postgres-style `$N`. Explicit ordinals keep
their numbers; bare `?` get the next free number. Placeholders inside quoted
strings, quoted identifiers, and comments are left untouched, courtesy of the
qb tokenizer.
*/
func DollarParams(src string) string {
	out := make([]byte, 0, len(src))
	next := 0

	tok := qb.Tokenizer{Source: src}
	for {
		token := tok.Next()
		if token.IsInvalid() {
			break
		}

		switch token.Type {
		case qb.TokenTypeAnonParam:
			next++
			out = append(out, '$')
			out = strconv.AppendInt(out, int64(next), 10)
		case qb.TokenTypeOrdinalParam:
			ord := token.ParseOrdinal()
			if ord > next {
				next = ord
			}
			out = append(out, '$')
			out = strconv.AppendInt(out, int64(ord), 10)
		default:
			out = append(out, token.Text...)
		}
	}
	return string(out)
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
