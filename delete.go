package qb

/*
Renders a DELETE:

	DELETE FROM <table> [WHERE ...] [RETURNING ...] [ORDER BY ...] [LIMIT ...] [OFFSET ...]

An unfiltered DELETE is legal but must be requested explicitly via the
`AllRows` marker; a spec with neither conditions nor the marker fails with
`ErrMissingData`. With the marker set, the full-table delete renders without
complaint.
*/
func Delete(spec DeleteSpec) (out Stmt, err error) {
	defer rec(&err)

	if spec.Table == `` {
		panic(errMissingTable(`DELETE`))
	}

	al := newAlloc()
	whereBody := composeConds(al.groups(`WHERE`, spec.Where))
	if whereBody == `` && !spec.AllRows {
		panic(ErrMissingData.while(`rendering DELETE`).because(errf(
			`refusing DELETE without conditions; set AllRows to delete the whole table`,
		)))
	}

	bui := makeBui(128)
	bui.Str(`DELETE FROM`)
	bui.Str(spec.Table)
	if whereBody != `` {
		bui.Str(`WHERE`)
		bui.Str(whereBody)
	}
	appendReturning(&bui, spec.Returning)
	appendOrderBy(&bui, spec.OrderBy)
	appendLimitOffset(&bui, spec.Limit, spec.Offset)

	fetch := FetchNone
	if len(spec.Returning) > 0 {
		fetch = FetchAll
	}
	out = al.reify(bui.String(), fetch)
	return
}
