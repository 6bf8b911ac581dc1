package qb

import (
	"strconv"
	"strings"
)

/*
Placeholder allocator. One per statement. Keeps the single monotonically
increasing placeholder counter, the set of explicit ordinals already bound to
an argument, the set of ordinals claimed by explicit placeholders anywhere in
the statement, the ordered argument list, and the registry of rendered
subquery join tokens. Numbering never restarts between clauses: WHERE
numbers precede SET/VALUES numbers because conditions are processed first in
this package's statements, even where SQL keyword order puts SET before
WHERE.
*/
type alloc struct {
	next     int
	seen     map[int]bool
	reserved map[int]bool
	args     []any
	subs     map[string]string
	subCount int
}

func newAlloc() *alloc {
	return &alloc{
		seen:     map[int]bool{},
		reserved: map[int]bool{},
		subs:     map[string]string{},
	}
}

/*
Records the explicit ordinals of the given groups before any bare `?` in the
statement is numbered. Renderers call this up front for every condition
clause they will process, so that auto-numbering can detect a collision with
an explicit `?N` that appears later in render order.
*/
func (self *alloc) reserve(groups []Where) {
	for _, group := range groups {
		for _, frag := range group.Conds {
			tok := Tokenizer{Source: frag}
			for {
				token := tok.Next()
				if token.IsInvalid() {
					break
				}
				if token.Type == TokenTypeOrdinalParam {
					self.reserved[token.ParseOrdinal()] = true
				}
			}
		}
	}
}

/*
Assigns the next number to a bare `?`. A number claimed by an explicit `?N`
elsewhere in the statement is never auto-assigned: the argument list is
positional, so either sharing or skipping the claimed number would mis-bind
at any ordinal-binding driver. The mix is rejected instead.
*/
func (self *alloc) nextAnon() int {
	num := self.next + 1
	if self.reserved[num] && !self.seen[num] {
		panic(ErrInvalidInput.while(`numbering placeholders`).because(errf(
			`bare "?" would take number %v, already claimed by an explicit "?%v" elsewhere in the statement; number the placeholders explicitly`,
			num, num,
		)))
	}
	self.next = num
	return num
}

/*
Rewrites all fragments of the given WHERE/HAVING groups so that every
placeholder is explicitly numbered, binding each group's parameters in
left-to-right textual order. Returns the flat fragment list for the condition
composer; arguments accumulate on the allocator.
*/
func (self *alloc) groups(clause string, groups []Where) []string {
	self.reserve(groups)

	var out []string
	for _, group := range groups {
		if group.isZero() {
			continue
		}
		self.checkGroup(clause, group)

		used := 0
		for _, frag := range group.Conds {
			out = append(out, self.rewrite(clause, frag, group.Params, &used))
		}
	}
	return out
}

/*
Pre-pass over one group: the count of placeholders that will consume an
argument (each bare `?` plus each not-yet-seen distinct `?N`) must equal the
count of supplied parameters. Fails before any text is emitted.
*/
func (self *alloc) checkGroup(clause string, group Where) {
	expected := 0
	fresh := map[int]bool{}

	for _, frag := range group.Conds {
		tok := Tokenizer{Source: frag}
		for {
			token := tok.Next()
			if token.IsInvalid() {
				break
			}
			switch token.Type {
			case TokenTypeAnonParam:
				expected++
			case TokenTypeOrdinalParam:
				ord := token.ParseOrdinal()
				if !self.seen[ord] && !fresh[ord] {
					fresh[ord] = true
					expected++
				}
			}
		}
	}

	if expected != len(group.Params) {
		panic(errParamMismatch(
			clause, strings.Join(group.Conds, ` AND `), expected, len(group.Params),
		))
	}
}

// Rewrites one fragment, consuming parameters through the shared cursor.
func (self *alloc) rewrite(clause, frag string, params []any, used *int) string {
	var out []byte
	tok := Tokenizer{Source: frag}

	for {
		token := tok.Next()
		if token.IsInvalid() {
			break
		}

		switch token.Type {
		case TokenTypeAnonParam:
			out = self.bindNext(out, clause, params, used)

		case TokenTypeOrdinalParam:
			out = self.bindOrdinal(out, token, clause, params, used)

		default:
			out = append(out, token.Text...)
		}
	}
	return string(out)
}

// Bare `?`: assign the next free number and bind one parameter.
func (self *alloc) bindNext(out []byte, clause string, params []any, used *int) []byte {
	val := self.takeParam(clause, params, used)

	switch val := val.(type) {
	case Raw:
		return append(out, val...)
	case Queryer:
		return append(out, self.renderSubquery(val)...)
	default:
		num := self.nextAnon()
		self.args = append(self.args, val)
		out = append(out, paramPrefix)
		return strconv.AppendInt(out, int64(num), 10)
	}
}

/*
Explicit `?N`: preserved verbatim. The first occurrence binds one parameter;
later occurrences reuse that argument slot, which is what lets a single bound
value satisfy multiple textual positions.
*/
func (self *alloc) bindOrdinal(out []byte, token Token, clause string, params []any, used *int) []byte {
	ord := token.ParseOrdinal()
	if ord > self.next {
		self.next = ord
	}

	if self.seen[ord] {
		return append(out, token.Text...)
	}
	self.seen[ord] = true

	val := self.takeParam(clause, params, used)
	switch val.(type) {
	case Raw:
		// Inlined values take no argument slot, so any occurrence of the
		// ordinal would dangle.
		panic(ErrInvalidInput.while(`composing ` + clause).because(errf(
			`raw SQL parameter bound to explicit placeholder %q; use a bare "?" for raw parameters`,
			token.Text,
		)))
	case Queryer:
		panic(ErrInvalidInput.while(`composing ` + clause).because(errf(
			`subquery parameter bound to explicit placeholder %q; use a bare "?" for subquery parameters`,
			token.Text,
		)))
	default:
		self.args = append(self.args, val)
		return append(out, token.Text...)
	}
}

func (self *alloc) takeParam(clause string, params []any, used *int) any {
	if *used >= len(params) {
		// Unreachable after checkGroup; kept as an internal invariant.
		panic(ErrInternal.while(`composing ` + clause).because(errf(
			`placeholder has no corresponding parameter (index %v of %v)`, *used, len(params),
		)))
	}
	val := params[*used]
	*used++
	return val
}

/*
Appends one SET/VALUES value: `Raw` is inlined verbatim, a `Queryer` renders
as a parenthesized subquery, anything else consumes the next sequential
placeholder and one argument slot.
*/
func (self *alloc) appendValue(out []byte, val any) []byte {
	switch val := val.(type) {
	case Raw:
		return append(out, val...)
	case Queryer:
		return append(out, self.renderSubquery(val)...)
	default:
		num := self.nextAnon()
		self.args = append(self.args, val)
		out = append(out, paramPrefix)
		return strconv.AppendInt(out, int64(num), 10)
	}
}
