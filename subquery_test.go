package qb

import "testing"

func recovered(fun func()) (err error) {
	defer rec(&err)
	fun()
	return
}

func roleSub(role string) SelectSpec {
	return SelectSpec{
		Table:  `roles`,
		Fields: []string{`user_id`},
		Where:  []Where{Cond(`role = ?`, role)},
	}
}

// A subquery parameter renders inline in place of its `?`, parenthesized,
// continuing the outer statement's placeholder numbering.
func TestSubqueryParam(t *testing.T) {
	stmt, err := SelectAll(SelectSpec{
		Table: `users`,
		Where: []Where{Cond(`id IN ?`, roleSub(`admin`))},
	})
	eqStmt(
		t,
		`SELECT * FROM users WHERE id IN (SELECT user_id FROM roles WHERE role = ?1)`,
		[]any{`admin`},
		FetchAll,
		stmt, err,
	)
}

// Outer arguments before the subquery, the subquery's own, then outer
// arguments after it: strictly textual order.
func TestSubqueryParamInterleaving(t *testing.T) {
	stmt, err := SelectAll(SelectSpec{
		Table: `users`,
		Where: []Where{
			Cond(`org_id = ?`, 7),
			Cond(`id IN ?`, roleSub(`admin`)),
			Cond(`active = ?`, true),
		},
	})
	eqStmt(
		t,
		`SELECT * FROM users WHERE (org_id = ?1) AND (id IN (SELECT user_id FROM roles WHERE role = ?2)) AND (active = ?3)`,
		[]any{7, `admin`, true},
		FetchAll,
		stmt, err,
	)
}

/*
Binding a subquery to an explicit ordinal is rejected: a later occurrence of
that ordinal would point at an argument slot the subquery's own arguments have
taken over.
*/
func TestSubqueryOnExplicitOrdinal(t *testing.T) {
	_, err := SelectAll(SelectSpec{
		Table: `users`,
		Where: []Where{Cond(`id IN ?1`, roleSub(`admin`))},
	})
	errIs(t, err, ErrInvalidInput, `subquery parameter bound to explicit placeholder "?1"`)
}

func TestSubqueryNil(t *testing.T) {
	err := recovered(func() { newAlloc().renderSubquery(nil) })
	errIs(t, err, ErrInvalidInput, `nil subquery`)
}

func TestJoinSubquery(t *testing.T) {
	stmt, err := SelectAll(SelectSpec{
		Table: `users`,
		Joins: []Join{{
			Type:  `LEFT`,
			Sub:   roleSub(`admin`),
			Alias: `r`,
			On:    `r.user_id = users.id`,
		}},
	})
	eqStmt(
		t,
		`SELECT * FROM users LEFT JOIN (SELECT user_id FROM roles WHERE role = ?1) AS r ON r.user_id = users.id`,
		[]any{`admin`},
		FetchAll,
		stmt, err,
	)
}

// Join subquery arguments precede WHERE arguments, matching textual order.
func TestJoinSubqueryArgOrder(t *testing.T) {
	stmt, err := SelectAll(SelectSpec{
		Table: `users`,
		Joins: []Join{{
			Sub:   roleSub(`admin`),
			Alias: `r`,
			On:    `r.user_id = users.id`,
		}},
		Where: []Where{Cond(`users.active = ?`, true)},
	})
	eqStmt(
		t,
		`SELECT * FROM users JOIN (SELECT user_id FROM roles WHERE role = ?1) AS r ON r.user_id = users.id WHERE users.active = ?2`,
		[]any{`admin`, true},
		FetchAll,
		stmt, err,
	)
}

func TestJoinSubqueryNested(t *testing.T) {
	inner := SelectSpec{
		Table: `b`,
		Where: []Where{Cond(`x = ?`, 1)},
	}
	mid := SelectSpec{
		Table: `a`,
		Joins: []Join{{Sub: inner, Alias: `i`, On: `i.id = a.b_id`}},
	}
	stmt, err := SelectAll(SelectSpec{
		Table: `t`,
		Joins: []Join{{Sub: mid, Alias: `m`, On: `m.id = t.a_id`}},
	})
	eqStmt(
		t,
		`SELECT * FROM t JOIN (SELECT * FROM a JOIN (SELECT * FROM b WHERE x = ?1) AS i ON i.id = a.b_id) AS m ON m.id = t.a_id`,
		[]any{1},
		FetchAll,
		stmt, err,
	)
}

func TestJoinSubqueryRequiresAlias(t *testing.T) {
	_, err := SelectAll(SelectSpec{
		Table: `t`,
		Joins: []Join{{Sub: roleSub(`admin`), On: `r.user_id = t.id`}},
	})
	errIs(t, err, ErrInvalidInput, `subquery join requires an alias`)
}

// The token machinery's failure modes are construction bugs, not caller
// mistakes; they still must fail loudly rather than emit tokens as SQL.
func TestSubqueryTokenFailures(t *testing.T) {
	al := &alloc{subs: map[string]string{}}
	err := recovered(func() {
		al.reify(`SELECT * FROM __qb_subquery_9__`, FetchAll)
	})
	errIs(t, err, ErrSubqueryToken, `unregistered subquery token`)

	bare := &alloc{}
	err = recovered(func() {
		bare.reify(`SELECT * FROM __qb_subquery_0__`, FetchAll)
	})
	errIs(t, err, ErrNoContext, `no registry`)

	err = recovered(func() { bare.subToken(roleSub(`admin`)) })
	errIs(t, err, ErrNoContext, `no subquery registry`)
}
