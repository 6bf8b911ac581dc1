package qb

/*
Renders JOIN clauses in declaration order:

	[TYPE ]JOIN <target>[ AS <alias>] ON <predicate>

The target is a table name or, for subquery joins, a token standing in for
the rendered nested query (resolved during final reification). Subquery
targets render through the shared allocator, so their placeholders and
arguments interleave correctly with the rest of the statement.
*/
func (self *alloc) appendJoins(bui *bui, joins []Join) {
	for _, join := range joins {
		self.appendJoin(bui, join)
	}
}

func (self *alloc) appendJoin(bui *bui, join Join) {
	if join.On == `` {
		panic(ErrInvalidInput.while(`rendering JOIN`).because(errf(
			`missing ON predicate for join on %q`, joinTargetName(join),
		)))
	}

	if join.Type != `` {
		bui.Str(join.Type)
	}
	bui.Str(`JOIN`)

	if join.Sub != nil {
		if join.Alias == `` {
			panic(ErrInvalidInput.while(`rendering JOIN`).because(errf(
				`subquery join requires an alias`,
			)))
		}
		bui.Str(self.subToken(join.Sub))
	} else {
		if join.Table == `` {
			panic(ErrInvalidInput.while(`rendering JOIN`).because(errf(
				`join requires a table name or a subquery`,
			)))
		}
		bui.Str(join.Table)
	}

	if join.Alias != `` {
		bui.Str(`AS`)
		bui.Str(join.Alias)
	}

	bui.Str(`ON`)
	bui.Str(join.On)
}

func joinTargetName(join Join) string {
	if join.Sub != nil {
		return `(subquery)`
	}
	return join.Table
}
