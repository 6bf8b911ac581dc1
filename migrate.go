package qb

import (
	"context"
	"fmt"
	"log/slog"
)

// Default name of the migration tracking table.
const DefaultMigrationTable = `migrations`

/*
One named, one-time schema-change statement. Names are the idempotency keys:
a migration whose name is already recorded in the tracking table is never
applied again, regardless of its SQL content.
*/
type Migration struct {
	Name string
	SQL  string
}

// Options for `NewRunner`. The zero value is usable.
type RunnerConfig struct {
	// Tracking table name. Default: "migrations".
	Table string

	// Progress logging. Uses slog.Default() if nil.
	Logger *slog.Logger
}

/*
Applies declared migrations in order, exactly once each, tracking applied
names in a dedicated table:

	id         INTEGER PRIMARY KEY AUTOINCREMENT
	name       TEXT UNIQUE NOT NULL
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP

The runner issues statements through an `Executor` and never touches storage
itself. A migration's SQL and its tracking insert go to the executor as one
atomic `Exec` call; atomicity across multiple migrations in one `Apply` is
deliberately not promised. `Apply` is not safe for parallel callers against
the same tracking table; serialize externally if needed.
*/
type Runner struct {
	exec  Executor
	table string
	defs  []Migration
	log   *slog.Logger
	ready bool
}

func NewRunner(exec Executor, defs []Migration, cfg RunnerConfig) (*Runner, error) {
	if exec == nil {
		return nil, ErrInvalidInput.while(`creating migration runner`).because(errf(`nil executor`))
	}

	seen := map[string]bool{}
	for _, def := range defs {
		if def.Name == `` {
			return nil, ErrInvalidInput.while(`creating migration runner`).because(errf(
				`migration with empty name`,
			))
		}
		if seen[def.Name] {
			return nil, ErrInvalidInput.while(`creating migration runner`).because(errf(
				`duplicate migration name %q`, def.Name,
			))
		}
		seen[def.Name] = true
	}

	table := cfg.Table
	if table == `` {
		table = DefaultMigrationTable
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Runner{exec: exec, table: table, defs: defs, log: log}, nil
}

// Ensures the tracking table exists. Idempotent; called implicitly by the
// other methods.
func (self *Runner) Initialize(ctx context.Context) error {
	if self.ready {
		return nil
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %v (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, self.table)

	err := self.exec.Exec(ctx, RawQuery(RawSpec{SQL: ddl}))
	if err != nil {
		return fmt.Errorf(`initializing migration table %q: %w`, self.table, err)
	}
	self.ready = true
	return nil
}

// Returns the names of already-applied migrations, in application order.
func (self *Runner) Applied(ctx context.Context) ([]string, error) {
	if err := self.Initialize(ctx); err != nil {
		return nil, err
	}

	stmt, err := SelectAll(SelectSpec{
		Table:   self.table,
		Fields:  []string{`name`},
		OrderBy: []Order{{`id`, DirAsc}},
	})
	if err != nil {
		return nil, err
	}

	rows, err := self.exec.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf(`fetching applied migrations: %w`, err)
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, stringValue(row[`name`]))
	}
	return out, nil
}

// Returns declared migrations, in declared order, whose name is not yet
// recorded as applied.
func (self *Runner) Unapplied(ctx context.Context) ([]Migration, error) {
	applied, err := self.Applied(ctx)
	if err != nil {
		return nil, err
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, name := range applied {
		appliedSet[name] = true
	}

	var out []Migration
	for _, def := range self.defs {
		if !appliedSet[def.Name] {
			out = append(out, def)
		}
	}
	return out, nil
}

/*
Applies every unapplied migration in declared order and returns the list
actually applied by this call. Each migration's SQL plus its tracking record
goes to the executor as one atomic unit; on failure the error names the
migration and no further migrations are attempted.
*/
func (self *Runner) Apply(ctx context.Context) ([]Migration, error) {
	pending, err := self.Unapplied(ctx)
	if err != nil {
		return nil, err
	}

	applied := []Migration{}
	for _, def := range pending {
		record, err := Insert(InsertSpec{
			Table: self.table,
			Rows:  []Row{{`name`: def.Name}},
		})
		if err != nil {
			return applied, err
		}

		self.log.Debug(`applying migration`, `name`, def.Name)
		err = self.exec.Exec(ctx, RawQuery(RawSpec{SQL: def.SQL}), record)
		if err != nil {
			return applied, fmt.Errorf(`applying migration %q: %w`, def.Name, err)
		}
		applied = append(applied, def)
	}
	return applied, nil
}

// Drivers disagree on whether TEXT scans as string or []byte.
func stringValue(val any) string {
	switch val := val.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
