package qb

import "strings"

/*
Combines placeholder-numbered condition fragments into one WHERE/HAVING body.
Zero fragments produce an empty string and the clause is omitted entirely. A
lone fragment is emitted verbatim, unwrapped. Two or more are each wrapped in
parentheses and joined with ` AND `. The asymmetry between the one-fragment
and many-fragment cases is deliberate and byte-for-byte stable; generated SQL
is part of this package's compatibility surface.
*/
func composeConds(frags []string) string {
	switch len(frags) {
	case 0:
		return ``
	case 1:
		return frags[0]
	}

	var out strings.Builder
	for ind, frag := range frags {
		if ind > 0 {
			out.WriteString(` AND `)
		}
		out.WriteString(`(`)
		out.WriteString(frag)
		out.WriteString(`)`)
	}
	return out.String()
}

/*
Processes the groups of one conditional clause and appends the composed
clause, e.g. `WHERE a = ?1`, to the builder. No-op when there are no
conditions.
*/
func (self *alloc) appendCondClause(bui *bui, keyword string, groups []Where) {
	body := composeConds(self.groups(keyword, groups))
	if body != `` {
		bui.Str(keyword)
		bui.Str(body)
	}
}
