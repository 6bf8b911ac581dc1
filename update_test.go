package qb

import "testing"

/*
The canonical shape: WHERE placeholders take the low numbers and WHERE
parameters lead the argument list, even though SET precedes WHERE in the text.
This is the package's documented contract.
*/
func TestUpdateCanonical(t *testing.T) {
	stmt, err := Update(UpdateSpec{
		Table: `t`,
		Data:  Row{`my_field`: `test_data`},
		Where: []Where{Cond(`field = ?1`, `test_where`)},
	})
	eqStmt(
		t,
		`UPDATE t SET my_field = ?2 WHERE field = ?1`,
		[]any{`test_where`, `test_data`},
		FetchNone,
		stmt, err,
	)
}

func TestUpdateNoWhere(t *testing.T) {
	stmt, err := Update(UpdateSpec{
		Table: `t`,
		Data:  Row{`a`: 1},
	})
	eqStmt(t, `UPDATE t SET a = ?1`, []any{1}, FetchNone, stmt, err)
}

func TestUpdateMultiGroup(t *testing.T) {
	stmt, err := Update(UpdateSpec{
		Table: `t`,
		Data:  Row{`c`: 3},
		Where: []Where{Cond(`a = ?`, 1), Cond(`b = ?`, 2)},
	})
	eqStmt(
		t,
		`UPDATE t SET c = ?3 WHERE (a = ?1) AND (b = ?2)`,
		[]any{1, 2, 3},
		FetchNone,
		stmt, err,
	)
}

func TestUpdateRawAssignment(t *testing.T) {
	stmt, err := Update(UpdateSpec{
		Table: `t`,
		Data: Row{
			`counter`: Raw(`counter + 1`),
			`name`:    `renamed`,
		},
		Where: []Where{Cond(`id = ?`, 7)},
	})
	eqStmt(
		t,
		`UPDATE t SET counter = counter + 1, name = ?2 WHERE id = ?1`,
		[]any{7, `renamed`},
		FetchNone,
		stmt, err,
	)
}

func TestUpdateOrAction(t *testing.T) {
	stmt, err := Update(UpdateSpec{
		Table:  `t`,
		Data:   Row{`a`: 1},
		Action: ConflictIgnore,
	})
	eqStmt(t, `UPDATE OR IGNORE t SET a = ?1`, []any{1}, FetchNone, stmt, err)

	_, err = Update(UpdateSpec{
		Table:  `t`,
		Data:   Row{`a`: 1},
		Action: `NOPE`,
	})
	errIs(t, err, ErrInvalidInput, `unknown conflict action "NOPE"`)
}

func TestUpdateReturning(t *testing.T) {
	stmt, err := Update(UpdateSpec{
		Table:     `t`,
		Data:      Row{`a`: 1},
		Where:     []Where{Cond(`id = ?`, 7)},
		Returning: []string{`id`, `a`},
	})
	eqStmt(
		t,
		`UPDATE t SET a = ?2 WHERE id = ?1 RETURNING id, a`,
		[]any{7, 1},
		FetchAll,
		stmt, err,
	)
}

func TestUpdateValidation(t *testing.T) {
	_, err := Update(UpdateSpec{Data: Row{`a`: 1}})
	errIs(t, err, ErrMissingData, `missing required table name`)

	_, err = Update(UpdateSpec{Table: `t`})
	errIs(t, err, ErrMissingData, `missing update data`)
}
