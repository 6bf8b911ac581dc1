package qb

import "strings"

/*
Fluent, immutable accumulator over a `SelectSpec`. Every chainable call
returns a new builder holding the merged option set; the receiver is never
mutated, so intermediate builders remain safely reusable as templates,
including across goroutines.

	base := qb.From(`employees`).Fields(`id`, `name`)
	active := base.Where(`active = ?`, true)
	managers := base.Where(`role = ?`, `manager`)

`Where` and `Having` accumulate: each call adds one more AND-group rather
than replacing the previous ones.
*/
type Builder struct {
	spec SelectSpec
}

// Starts a builder for the given table.
func From(table string) Builder {
	return Builder{SelectSpec{Table: table}}
}

// Implement `Queryer`, allowing a builder to appear as a subquery parameter
// or a subquery join target.
func (self Builder) QuerySpec() SelectSpec {
	spec := self.spec
	spec.Fields = copiedStrings(spec.Fields)
	spec.Where = copiedWheres(spec.Where)
	spec.Joins = append([]Join(nil), spec.Joins...)
	spec.GroupBy = copiedStrings(spec.GroupBy)
	spec.Having = copiedWheres(spec.Having)
	spec.OrderBy = append([]Order(nil), spec.OrderBy...)
	return spec
}

// Replaces the table name.
func (self Builder) Table(table string) Builder {
	self.spec.Table = table
	return self
}

// Replaces the selected fields. Each entry passes through unmodified, so raw
// SQL fragments such as `count(*) AS total` are fine.
func (self Builder) Fields(fields ...string) Builder {
	self.spec.Fields = copiedStrings(fields)
	return self
}

// Adds one AND-group with a single condition fragment and its parameters.
func (self Builder) Where(frag string, params ...any) Builder {
	self.spec.Where = appendedWhere(self.spec.Where, Cond(frag, params...))
	return self
}

// Adds one prebuilt AND-group.
func (self Builder) WhereGroup(group Where) Builder {
	self.spec.Where = appendedWhere(self.spec.Where, group)
	return self
}

/*
Sugar for membership tests. Expands to `col IN (?, ?, ...)` with flattened
parameters. An empty value list is a no-op: the returned builder is
equivalent to one where the call never happened, not a clause that always
evaluates false.
*/
func (self Builder) WhereIn(col string, vals ...any) Builder {
	if len(vals) == 0 {
		return self
	}
	frag := col + ` IN (` + placeholderList(len(vals)) + `)`
	return self.WhereGroup(Where{Conds: []string{frag}, Params: vals})
}

/*
Multi-column membership: `(c1, c2) IN (VALUES (?, ?), ...)` with parameters
flattened in row-major order. Empty rows are a no-op.
*/
func (self Builder) WhereInMulti(cols []string, rows ...[]any) Builder {
	if len(rows) == 0 || len(cols) == 0 {
		return self
	}

	tuple := `(` + placeholderList(len(cols)) + `)`
	tuples := make([]string, len(rows))
	params := make([]any, 0, len(rows)*len(cols))
	for ind, row := range rows {
		tuples[ind] = tuple
		params = append(params, row...)
	}

	frag := `(` + commaJoin(cols) + `) IN (VALUES ` + commaJoin(tuples) + `)`
	return self.WhereGroup(Where{Conds: []string{frag}, Params: params})
}

// Adds one join clause.
func (self Builder) Join(join Join) Builder {
	joins := make([]Join, 0, len(self.spec.Joins)+1)
	joins = append(joins, self.spec.Joins...)
	self.spec.Joins = append(joins, join)
	return self
}

// Replaces the GROUP BY columns.
func (self Builder) GroupBy(cols ...string) Builder {
	self.spec.GroupBy = copiedStrings(cols)
	return self
}

// Adds one HAVING AND-group. Same semantics as `Where`.
func (self Builder) Having(frag string, params ...any) Builder {
	self.spec.Having = appendedWhere(self.spec.Having, Cond(frag, params...))
	return self
}

// Adds one ORDER BY entry.
func (self Builder) OrderBy(col string, dir Dir) Builder {
	orders := make([]Order, 0, len(self.spec.OrderBy)+1)
	orders = append(orders, self.spec.OrderBy...)
	self.spec.OrderBy = append(orders, Order{col, dir})
	return self
}

// Replaces the LIMIT. Zero omits the clause.
func (self Builder) Limit(val int) Builder {
	self.spec.Limit = val
	return self
}

// Replaces the OFFSET. Zero omits the clause.
func (self Builder) Offset(val int) Builder {
	self.spec.Offset = val
	return self
}

// Renders the accumulated spec, declaring many-row cardinality.
func (self Builder) All() (Stmt, error) {
	return SelectAll(self.spec)
}

// Renders the accumulated spec, declaring single-row cardinality.
func (self Builder) One() (Stmt, error) {
	return SelectOne(self.spec)
}

func placeholderList(count int) string {
	parts := make([]string, count)
	for ind := range parts {
		parts[ind] = `?`
	}
	return strings.Join(parts, `, `)
}

func copiedStrings(vals []string) []string {
	if vals == nil {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Fresh backing array on every append, so derived builders never alias.
func appendedWhere(vals []Where, val Where) []Where {
	out := make([]Where, 0, len(vals)+1)
	out = append(out, vals...)
	return append(out, val)
}

func copiedWheres(vals []Where) []Where {
	if vals == nil {
		return nil
	}
	out := make([]Where, len(vals))
	copy(out, vals)
	return out
}
