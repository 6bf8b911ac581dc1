package qb

/*
Renders an INSERT:

	INSERT [OR <ACTION>] INTO <table> (<columns>) VALUES (...), (...) [conflict] [RETURNING ...]

The column set comes from the first row (sorted key order); a column absent
from a later row is bound as NULL. `Raw` values are inlined; everything else
takes sequential placeholders, the counter running across rows. Fetch
cardinality: one when a single row comes back via RETURNING, all for a
RETURNING batch or a multi-row insert, none otherwise.
*/
func Insert(spec InsertSpec) (out Stmt, err error) {
	defer rec(&err)

	if spec.Table == `` {
		panic(errMissingTable(`INSERT`))
	}
	if len(spec.Rows) == 0 {
		panic(ErrMissingData.while(`rendering INSERT`).because(errf(`missing insert data`)))
	}
	cols := sortedCols(spec.Rows[0])
	if len(cols) == 0 {
		panic(ErrMissingData.while(`rendering INSERT`).because(errf(`insert data has no columns`)))
	}

	al := newAlloc()
	if spec.Conflict != nil {
		// VALUES numbers before the conflict clause renders; its WHERE may
		// claim ordinals the tuples must not take.
		al.reserve(spec.Conflict.Where)
	}
	bui := makeBui(128)

	bui.Str(`INSERT`)
	if spec.Conflict != nil {
		appendOrAction(&bui, `INSERT`, spec.Conflict.Action)
	}
	bui.Str(`INTO`)
	bui.Str(spec.Table)
	bui.Str(`(` + commaJoin(cols) + `)`)
	bui.Str(`VALUES`)

	for ind, row := range spec.Rows {
		if ind > 0 {
			bui.Raw(`, `)
		}
		bui.Str(al.tuple(cols, row))
	}

	al.appendConflict(&bui, spec.Conflict)
	appendReturning(&bui, spec.Returning)

	out = al.reify(bui.String(), insertFetch(spec))
	return
}

// One parenthesized VALUES tuple.
func (self *alloc) tuple(cols []string, row Row) string {
	out := []byte{'('}
	for ind, col := range cols {
		if ind > 0 {
			out = append(out, `, `...)
		}
		out = self.appendValue(out, row[col])
	}
	return string(append(out, ')'))
}

func insertFetch(spec InsertSpec) Fetch {
	switch {
	case len(spec.Returning) > 0 && len(spec.Rows) == 1:
		return FetchOne
	case len(spec.Returning) > 0:
		return FetchAll
	case len(spec.Rows) > 1:
		return FetchAll
	default:
		return FetchNone
	}
}
