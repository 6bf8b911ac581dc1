package qb

import (
	"strconv"
	"strings"
)

/*
The capability that makes a value usable as a nested query: anywhere a
parameter or a join target may be a subquery, this package dispatches on this
interface rather than sniffing concrete types. Implemented by `SelectSpec`
and `Builder`.
*/
type Queryer interface {
	QuerySpec() SelectSpec
}

const subTokenPrefix = `__qb_subquery_`
const subTokenSuffix = `__`

/*
Renders a nested query to parenthesized text on the shared allocator, so its
placeholders continue the outer statement's numbering and its arguments land
in the outer argument list at the current position. Recursion is unbounded:
the nested query may itself contain subquery parameters and subquery joins.
*/
func (self *alloc) renderSubquery(val Queryer) string {
	if val == nil {
		panic(ErrInvalidInput.while(`rendering subquery`).because(errf(
			`nil subquery`,
		)))
	}
	return `(` + renderSelectText(val.QuerySpec(), self) + `)`
}

/*
Token-substitution mode, used for JOIN targets. The subquery is rendered
immediately (keeping argument order textual) but spliced into the outer text
as a unique token, replaced during final reification.
*/
func (self *alloc) subToken(val Queryer) string {
	if self.subs == nil {
		panic(ErrNoContext.while(`registering subquery join`).because(errf(
			`allocator has no subquery registry`,
		)))
	}

	token := subTokenPrefix + strconv.Itoa(self.subCount) + subTokenSuffix
	self.subCount++
	self.subs[token] = self.renderSubquery(val)
	return token
}

/*
Final render pass: resolves registered subquery tokens, then packages the
statement. Token resolution loops because a registered subquery may itself
contain join tokens; a pass that makes no progress means a token with no
registration, which is a construction bug in this package.
*/
func (self *alloc) reify(sql string, fetch Fetch) Stmt {
	for strings.Contains(sql, subTokenPrefix) {
		if self.subs == nil {
			panic(ErrNoContext.while(`resolving subquery tokens`).because(errf(
				`statement %q contains subquery tokens but the allocator has no registry`, sql,
			)))
		}

		prev := sql
		for token, text := range self.subs {
			sql = strings.ReplaceAll(sql, token, text)
		}
		if sql == prev {
			panic(ErrSubqueryToken.while(`resolving subquery tokens`).because(errf(
				`statement %q contains an unregistered subquery token`, sql,
			)))
		}
	}

	return Stmt{SQL: sql, Args: self.args, Fetch: fetch}
}
