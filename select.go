package qb

/*
Renders a SELECT expecting any number of rows:

	SELECT <fields|*> FROM <table> <joins> <where> <groupBy> <having> <orderBy> <limit> <offset>
*/
func SelectAll(spec SelectSpec) (Stmt, error) {
	return renderSelect(spec, FetchAll)
}

// Same statement text as `SelectAll`; declares single-row cardinality. The
// declaration is the caller's, never inferred from LIMIT.
func SelectOne(spec SelectSpec) (Stmt, error) {
	return renderSelect(spec, FetchOne)
}

func renderSelect(spec SelectSpec, fetch Fetch) (out Stmt, err error) {
	defer rec(&err)
	al := newAlloc()
	out = al.reify(renderSelectText(spec, al), fetch)
	return
}

/*
Select body shared by the top-level renderer and subquery rendering. Writes
text into its own buffer; placeholder numbers and arguments go through the
shared allocator so nesting interleaves them correctly.
*/
func renderSelectText(spec SelectSpec, al *alloc) string {
	if spec.Table == `` {
		panic(errMissingTable(`SELECT`))
	}

	// Joins render first, so their auto-numbered placeholders must already
	// know which ordinals the condition clauses claim.
	al.reserve(spec.Where)
	al.reserve(spec.Having)

	bui := makeBui(128)
	bui.Str(`SELECT`)
	if len(spec.Fields) == 0 {
		bui.Str(`*`)
	} else {
		bui.Str(commaJoin(spec.Fields))
	}
	bui.Str(`FROM`)
	bui.Str(spec.Table)

	al.appendJoins(&bui, spec.Joins)
	al.appendCondClause(&bui, `WHERE`, spec.Where)

	if len(spec.GroupBy) > 0 {
		bui.Str(`GROUP BY`)
		bui.Str(commaJoin(spec.GroupBy))
	}

	al.appendCondClause(&bui, `HAVING`, spec.Having)
	appendOrderBy(&bui, spec.OrderBy)
	appendLimitOffset(&bui, spec.Limit, spec.Offset)
	return bui.String()
}
