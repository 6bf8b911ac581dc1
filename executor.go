package qb

import "context"

/*
The collaborator that actually runs composed statements against a concrete
backend. This package only ever hands an executor fully rendered statements;
it makes no assumption about results beyond the column maps returned by
`Query`. Implementations may be backed by anything that can run SQL; the
sqlitexec and pgexec subpackages provide the common two.

Implementations must make `Exec` atomic across the statements of one call:
the migration runner relies on a migration's SQL and its tracking insert
being applied as a single unit.
*/
type Executor interface {
	// Runs the statements as one atomic unit.
	Exec(ctx context.Context, stmts ...Stmt) error

	// Runs one statement and returns its rows as column-keyed maps.
	Query(ctx context.Context, stmt Stmt) ([]map[string]any, error)
}
