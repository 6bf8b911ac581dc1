package qb

/*
Renders an UPDATE:

	UPDATE [OR <ACTION>] <table> SET <col = ?, ...> [WHERE ...] [RETURNING ...]

WHERE is processed first: its placeholders take the low numbers and its
parameters lead the argument list, even though SET precedes WHERE in SQL
keyword order. `UPDATE t SET my_field = ?2 WHERE field = ?1` with args
`[whereVal, setVal]` is the canonical shape. This ordering is an explicit,
tested contract; do not "fix" it.
*/
func Update(spec UpdateSpec) (out Stmt, err error) {
	defer rec(&err)

	if spec.Table == `` {
		panic(errMissingTable(`UPDATE`))
	}
	if len(spec.Data) == 0 {
		panic(ErrMissingData.while(`rendering UPDATE`).because(errf(`missing update data`)))
	}

	al := newAlloc()
	whereBody := composeConds(al.groups(`WHERE`, spec.Where))
	assigns := al.assignments(spec.Data)

	bui := makeBui(128)
	bui.Str(`UPDATE`)
	appendOrAction(&bui, `UPDATE`, spec.Action)
	bui.Str(spec.Table)
	bui.Str(`SET`)
	bui.Str(assigns)
	if whereBody != `` {
		bui.Str(`WHERE`)
		bui.Str(whereBody)
	}
	appendReturning(&bui, spec.Returning)

	fetch := FetchNone
	if len(spec.Returning) > 0 {
		fetch = FetchAll
	}
	out = al.reify(bui.String(), fetch)
	return
}
