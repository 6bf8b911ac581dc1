package qb

import "testing"

// An unfiltered DELETE must be requested explicitly.
func TestDeleteRequiresFilterOrMarker(t *testing.T) {
	_, err := Delete(DeleteSpec{Table: `t`})
	errIs(t, err, ErrMissingData, `refusing DELETE without conditions`, `AllRows`)

	stmt, err := Delete(DeleteSpec{Table: `t`, AllRows: true})
	eqStmt(t, `DELETE FROM t`, nil, FetchNone, stmt, err)
}

func TestDeleteWhere(t *testing.T) {
	stmt, err := Delete(DeleteSpec{
		Table: `t`,
		Where: []Where{Cond(`id = ?`, 7)},
	})
	eqStmt(t, `DELETE FROM t WHERE id = ?1`, []any{7}, FetchNone, stmt, err)

	stmt, err = Delete(DeleteSpec{
		Table: `t`,
		Where: []Where{Cond(`a = ?`, 1), Cond(`b = ?`, 2)},
	})
	eqStmt(t, `DELETE FROM t WHERE (a = ?1) AND (b = ?2)`, []any{1, 2}, FetchNone, stmt, err)
}

func TestDeleteReturning(t *testing.T) {
	stmt, err := Delete(DeleteSpec{
		Table:     `t`,
		Where:     []Where{Cond(`id = ?`, 7)},
		Returning: []string{`id`},
	})
	eqStmt(t, `DELETE FROM t WHERE id = ?1 RETURNING id`, []any{7}, FetchAll, stmt, err)
}

// Batched pruning: delete the oldest N matching rows.
func TestDeleteOrderLimitOffset(t *testing.T) {
	stmt, err := Delete(DeleteSpec{
		Table:   `events`,
		Where:   []Where{Cond(`created_at < ?`, `2024-01-01`)},
		OrderBy: []Order{{`created_at`, DirAsc}},
		Limit:   100,
	})
	eqStmt(
		t,
		`DELETE FROM events WHERE created_at < ?1 ORDER BY created_at ASC LIMIT 100`,
		[]any{`2024-01-01`},
		FetchNone,
		stmt, err,
	)

	stmt, err = Delete(DeleteSpec{
		Table:   `events`,
		AllRows: true,
		OrderBy: []Order{{`id`, DirDesc}},
		Limit:   10,
		Offset:  5,
	})
	eqStmt(t, `DELETE FROM events ORDER BY id DESC LIMIT 10 OFFSET 5`, nil, FetchNone, stmt, err)
}

func TestDeleteMissingTable(t *testing.T) {
	_, err := Delete(DeleteSpec{AllRows: true})
	errIs(t, err, ErrMissingData, `missing required table name`)
}

func TestRawQueryPassthrough(t *testing.T) {
	stmt := RawQuery(RawSpec{
		SQL:   `UPDATE t SET a = ? WHERE b = ?`,
		Args:  []any{1, 2},
		Fetch: FetchNone,
	})
	// Verbatim: no renumbering of anonymous placeholders.
	eq(t, `UPDATE t SET a = ? WHERE b = ?`, stmt.SQL)
	eq(t, []any{1, 2}, stmt.Args)
	eq(t, FetchNone, stmt.Fetch)
}
