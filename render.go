package qb

import (
	"sort"
	"strconv"
	"strings"
)

func commaJoin(vals []string) string {
	return strings.Join(vals, `, `)
}

// Deterministic column order for map-based rows.
func sortedCols(row Row) []string {
	out := make([]string, 0, len(row))
	for col := range row {
		out = append(out, col)
	}
	sort.Strings(out)
	return out
}

/*
Renders `col = <value>` assignments for SET lists, in sorted column order.
`Raw` values are inlined without consuming a placeholder; everything else
takes the next sequential number.
*/
func (self *alloc) assignments(row Row) string {
	var out []byte
	for ind, col := range sortedCols(row) {
		if ind > 0 {
			out = append(out, `, `...)
		}
		out = append(out, col...)
		out = append(out, ` = `...)
		out = self.appendValue(out, row[col])
	}
	return string(out)
}

func appendOrderBy(bui *bui, vals []Order) {
	if len(vals) == 0 {
		return
	}
	bui.Str(`ORDER BY`)
	for ind, val := range vals {
		if ind > 0 {
			bui.Raw(`, `)
		}
		bui.Str(val.Col)
		if val.Dir != DirNone {
			bui.Str(val.Dir.String())
		}
	}
}

func appendLimitOffset(bui *bui, limit, offset int) {
	if limit > 0 {
		bui.Str(`LIMIT`)
		bui.Str(strconv.Itoa(limit))
	}
	if offset > 0 {
		bui.Str(`OFFSET`)
		bui.Str(strconv.Itoa(offset))
	}
}

func appendReturning(bui *bui, vals []string) {
	if len(vals) == 0 {
		return
	}
	bui.Str(`RETURNING`)
	bui.Str(commaJoin(vals))
}

/*
Packages verbatim SQL as a statement. No renumbering, no validation; the
caller owns the text and the fetch declaration.
*/
func RawQuery(spec RawSpec) Stmt {
	return Stmt{SQL: spec.SQL, Args: spec.Args, Fetch: spec.Fetch}
}
