package qb

const (
	// Statement expects no rows back.
	FetchNone Fetch = 0
	// Statement expects exactly one row back.
	FetchOne Fetch = 1
	// Statement expects any number of rows back.
	FetchAll Fetch = 2
)

/*
Fetch cardinality: whether a statement expects no rows, exactly one row, or
many rows back. Always caller-declared, never inferred from LIMIT. Passed to
the `Executor` as a hint; this package makes no assumption about the result
shape.
*/
type Fetch byte

// Implement `fmt.Stringer` for debug purposes.
func (self Fetch) String() string {
	switch self {
	case FetchOne:
		return `one`
	case FetchAll:
		return `all`
	default:
		return `none`
	}
}

/*
A fully rendered statement: SQL text, the ordered arguments corresponding 1:1
to the distinct placeholders in the text, and the fetch-cardinality hint.
This is the complete input of an `Executor`.
*/
type Stmt struct {
	SQL   string
	Args  []any
	Fetch Fetch
}

/*
Marks its contents as literal SQL text, spliced inline rather than bound as a
parameter:

	qb.Row{`updated_at`: qb.Raw(`CURRENT_TIMESTAMP`), `counter`: qb.Raw(`counter + 1`)}

A `Raw` value never occupies a placeholder slot or an argument-list position.
*/
type Raw string

/*
One WHERE or HAVING group: one or more condition fragments, implicitly ANDed,
plus the ordered literal parameters consumed by the placeholders inside those
fragments, left to right. A parameter may itself be a `Queryer`; it is then
rendered as a parenthesized subquery in place of its placeholder, with its own
arguments spliced into the outer argument list at that position.
*/
type Where struct {
	Conds  []string
	Params []any
}

// Makes a `Where` group from one condition fragment and its parameters.
func Cond(frag string, params ...any) Where {
	return Where{Conds: []string{frag}, Params: params}
}

// Makes a `Where` group from placeholder-free condition fragments.
func Conds(frags ...string) Where {
	return Where{Conds: frags}
}

func (self Where) isZero() bool {
	return len(self.Conds) == 0 && len(self.Params) == 0
}

/*
One insert or update data row, keyed by column name. Go maps are unordered, so
rendered column order is the sorted key order, which keeps output
deterministic. Values are bound as parameters unless wrapped in `Raw`. See
`StructRow` for building a `Row` from a `db`-tagged struct.
*/
type Row map[string]any

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "ASC", "DESC".
type Dir byte

// Implement `fmt.Stringer` for debug purposes.
func (self Dir) String() string {
	switch self {
	case DirAsc:
		return `ASC`
	case DirDesc:
		return `DESC`
	default:
		return ``
	}
}

// One ORDER BY entry.
type Order struct {
	Col string
	Dir Dir
}

/*
One JOIN clause. The target is either a literal table name (`Table`) or a
nested query (`Sub`); when `Sub` is set, `Alias` is required, since a subquery
join must be named to be referenceable from the ON predicate. `Type` is an
optional prefix such as "LEFT" or "INNER".
*/
type Join struct {
	Type  string
	Table string
	Sub   Queryer
	On    string
	Alias string
}

const (
	ConflictRollback ConflictAction = `ROLLBACK`
	ConflictAbort    ConflictAction = `ABORT`
	ConflictFail     ConflictAction = `FAIL`
	ConflictIgnore   ConflictAction = `IGNORE`
	ConflictReplace  ConflictAction = `REPLACE`
)

// Conflict-resolution keyword, rendered as an `OR <ACTION>` prefix.
type ConflictAction string

/*
Conflict clause of an INSERT. Exactly one of the two forms must be used:

  - keyword form: `Action` set, rendered as `INSERT OR <ACTION> INTO ...`;
  - upsert form: `Columns` + `Data` set, rendered as
    `ON CONFLICT (<columns>) DO UPDATE SET ... [WHERE ...]`.

In the upsert form, `Raw` entries in `Data` are inlined verbatim and consume
no placeholder. `Where` restricts when the update branch applies; its
parameters are numbered before the SET values, mirroring the UPDATE contract.
*/
type Conflict struct {
	Action  ConflictAction
	Columns []string
	Data    Row
	Where   []Where
}

// Declarative description of one SELECT statement.
type SelectSpec struct {
	Table   string
	Fields  []string
	Where   []Where
	Joins   []Join
	GroupBy []string
	Having  []Where
	OrderBy []Order
	Limit   int
	Offset  int
}

// Implement `Queryer`. A spec is trivially renderable as itself.
func (self SelectSpec) QuerySpec() SelectSpec { return self }

/*
Declarative description of one INSERT statement. All rows share the column
set of the first row; a column absent from a later row is bound as NULL.
*/
type InsertSpec struct {
	Table     string
	Rows      []Row
	Returning []string
	Conflict  *Conflict
}

/*
Declarative description of one UPDATE statement. `Action` is the optional
`UPDATE OR <ACTION>` conflict resolution. WHERE parameters are numbered
before SET values: the rendered SQL reads `SET my_field = ?2 WHERE
field = ?1` and the argument list holds the WHERE value first. This ordering
is an explicit API contract.
*/
type UpdateSpec struct {
	Table     string
	Data      Row
	Where     []Where
	Action    ConflictAction
	Returning []string
}

/*
Declarative description of one DELETE statement. A DELETE without a WHERE is
permitted but must be requested explicitly by setting `AllRows`; a spec with
neither a filter nor the marker fails with `ErrMissingData` instead of
silently deleting the whole table.
*/
type DeleteSpec struct {
	Table     string
	Where     []Where
	AllRows   bool
	Returning []string
	OrderBy   []Order
	Limit     int
	Offset    int
}

/*
Verbatim SQL with positional arguments and a caller-declared fetch
cardinality. The text is passed through untouched: no renumbering, no
validation beyond what the backend does.
*/
type RawSpec struct {
	SQL   string
	Args  []any
	Fetch Fetch
}
