package qb

/*
Renders the conflict clause of an INSERT.

The keyword form becomes an `OR <ACTION>` prefix and is handled by the INSERT
renderer itself; this file covers the upsert form:

	ON CONFLICT (<columns>) DO UPDATE SET <assignments>[ WHERE <conditions>]

Values are never reordered relative to render order: the conflict's WHERE
parameters are numbered and listed before its SET values, continuing the
statement-wide counter.
*/
func (self *alloc) appendConflict(bui *bui, val *Conflict) {
	if val == nil {
		return
	}
	if val.Action != `` {
		// The prefix was already emitted; both forms at once is ambiguous.
		if len(val.Columns) > 0 || len(val.Data) > 0 {
			panic(ErrInvalidInput.while(`rendering conflict clause`).because(errf(
				`conflict action %q and upsert target are mutually exclusive`, val.Action,
			)))
		}
		return
	}

	if len(val.Columns) == 0 {
		panic(ErrMissingData.while(`rendering conflict clause`).because(errf(
			`upsert requires at least one conflict column`,
		)))
	}
	if len(val.Data) == 0 {
		panic(ErrMissingData.while(`rendering conflict clause`).because(errf(
			`upsert requires a non-empty update set`,
		)))
	}

	whereBody := composeConds(self.groups(`conflict WHERE`, val.Where))
	assigns := self.assignments(val.Data)

	bui.Str(`ON CONFLICT (` + commaJoin(val.Columns) + `)`)
	bui.Str(`DO UPDATE SET`)
	bui.Str(assigns)
	if whereBody != `` {
		bui.Str(`WHERE`)
		bui.Str(whereBody)
	}
}

func validConflictAction(val ConflictAction) bool {
	switch val {
	case ConflictRollback, ConflictAbort, ConflictFail, ConflictIgnore, ConflictReplace:
		return true
	default:
		return false
	}
}

// Emits the `OR <ACTION>` statement prefix shared by INSERT and UPDATE.
func appendOrAction(bui *bui, op string, action ConflictAction) {
	if action == `` {
		return
	}
	if !validConflictAction(action) {
		panic(ErrInvalidInput.while(`rendering ` + op).because(errf(
			`unknown conflict action %q`, action,
		)))
	}
	bui.Str(`OR`)
	bui.Str(string(action))
}
