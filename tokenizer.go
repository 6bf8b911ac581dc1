package qb

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	paramPrefix        = '?'
	commentLinePrefix  = `--`
	commentBlockPrefix = `/*`
	commentBlockSuffix = `*/`
	quoteSingle        = '\''
	quoteDouble        = '"'
	quoteGrave         = '`'
)

var (
	charsetDigitDec   = new(charset).addStr(`0123456789`)
	charsetSpace      = new(charset).addStr(" \t\v")
	charsetNewline    = new(charset).addStr("\r\n")
	charsetWhitespace = new(charset).addSet(charsetSpace).addSet(charsetNewline)
	charsetDelimStart = new(charset).addSet(charsetWhitespace).addStr(`([{.`)
	charsetDelimEnd   = new(charset).addSet(charsetWhitespace).addStr(`,}])`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

const (
	TokenTypeInvalid TokenType = iota
	TokenTypeText
	TokenTypeWhitespace
	TokenTypeQuotedSingle
	TokenTypeQuotedDouble
	TokenTypeQuotedGrave
	TokenTypeCommentLine
	TokenTypeCommentBlock
	TokenTypeAnonParam
	TokenTypeOrdinalParam
)

// Part of `Token`.
type TokenType byte

// Represents an arbitrary chunk of SQL text parsed by `Tokenizer`.
type Token struct {
	Text string
	Type TokenType
}

/*
True if the token's type is `TokenTypeInvalid`. This is used to detect end of
iteration when calling `(*Tokenizer).Next`.
*/
func (self Token) IsInvalid() bool {
	return self.Type == TokenTypeInvalid
}

// True for `?` and `?N` tokens.
func (self Token) IsParam() bool {
	return self.Type == TokenTypeAnonParam || self.Type == TokenTypeOrdinalParam
}

// Implement `fmt.Stringer` for debug purposes.
func (self Token) String() string { return self.Text }

/*
Assumes that the token has `TokenTypeOrdinalParam` and looks like an explicit
ordinal param: "?1", "?2" and so on. Parses and returns the number. Panics if
the text had the wrong structure.
*/
func (self Token) ParseOrdinal() int {
	rest, found := strings.CutPrefix(self.Text, string(paramPrefix))
	if !found {
		panic(ErrInternal.while(`parsing ordinal parameter`).because(errf(
			`malformed ordinal parameter %q`, self.Text,
		)))
	}
	val, err := strconv.Atoi(rest)
	try(err)
	return val
}

/*
Partial SQL tokenizer used internally to find `?` and `?N` placeholders while
correctly skipping whitespace, comments, quoted strings, and quoted
identifiers, so that a `?` inside a string literal is never mistaken for a
placeholder.

Not a full SQL parser and doesn't try to be. No special support for
dollar-quoted strings, which are rarely if ever used in dynamically-generated
queries.
*/
type Tokenizer struct {
	Source string
	cursor int
	next   Token
}

/*
Returns the next token if possible. When the tokenizer reaches the end, this
returns an empty `Token{}`. Call `Token.IsInvalid` to detect the end.
*/
func (self *Tokenizer) Next() Token {
	pending := self.next
	if !pending.IsInvalid() {
		self.next = Token{}
		return pending
	}

	start := self.cursor

	for self.more() {
		mid := self.cursor
		if self.maybeWhitespace(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeWhitespace)
		}
		if self.maybeQuoted(quoteSingle); self.cursor > mid {
			return self.choose(start, mid, TokenTypeQuotedSingle)
		}
		if self.maybeQuoted(quoteDouble); self.cursor > mid {
			return self.choose(start, mid, TokenTypeQuotedDouble)
		}
		if self.maybeQuoted(quoteGrave); self.cursor > mid {
			return self.choose(start, mid, TokenTypeQuotedGrave)
		}
		if self.maybeCommentLine(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeCommentLine)
		}
		if self.maybeCommentBlock(); self.cursor > mid {
			return self.choose(start, mid, TokenTypeCommentBlock)
		}
		if self.maybeParam(); self.cursor > mid {
			typ := TokenTypeAnonParam
			if self.cursor-mid > 1 {
				typ = TokenTypeOrdinalParam
			}
			return self.choose(start, mid, typ)
		}
		self.skipChar()
	}

	if self.cursor > start {
		return Token{self.from(start), TokenTypeText}
	}
	return Token{}
}

/*
When a special token is found after a run of plain text, the text run is
returned first and the special token is parked until the next call.
*/
func (self *Tokenizer) choose(start, mid int, typ TokenType) Token {
	tok := Token{self.from(mid), typ}
	if mid > start {
		if !self.next.IsInvalid() {
			panic(ErrInternal.while(`tokenizing SQL`).because(errf(
				`attempted to overwrite pending token %#v with %#v`, self.next, tok,
			)))
		}
		self.next = tok
		return Token{self.Source[start:mid], TokenTypeText}
	}
	return tok
}

func (self *Tokenizer) maybeWhitespace() {
	for self.more() && charsetWhitespace.has(self.headByte()) {
		self.cursor++
	}
}

func (self *Tokenizer) maybeQuoted(quote byte) {
	if !self.skippedByte(quote) {
		return
	}
	for self.more() {
		if self.skippedByte(quote) {
			return
		}
		self.skipChar()
	}
	panic(ErrInvalidInput.while(`tokenizing SQL`).because(fmt.Errorf(
		`expected closing %q, got unexpected %w`, rune(quote), io.EOF,
	)))
}

func (self *Tokenizer) maybeCommentLine() {
	if !self.skippedString(commentLinePrefix) {
		return
	}
	for self.more() && !charsetNewline.has(self.headByte()) {
		self.skipChar()
	}
	for self.more() && charsetNewline.has(self.headByte()) {
		self.cursor++
	}
}

// TODO support nested block comments, which are valid in SQL.
func (self *Tokenizer) maybeCommentBlock() {
	if !self.skippedString(commentBlockPrefix) {
		return
	}
	for self.more() {
		if self.skippedString(commentBlockSuffix) {
			return
		}
		self.skipChar()
	}
	panic(ErrInvalidInput.while(`tokenizing SQL`).because(fmt.Errorf(
		`expected closing %q, got unexpected %w`, commentBlockSuffix, io.EOF,
	)))
}

// `?` with optional trailing digits. Bare `?` is an anonymous param.
func (self *Tokenizer) maybeParam() {
	if !self.skippedByte(paramPrefix) {
		return
	}
	for self.more() && charsetDigitDec.has(self.headByte()) {
		self.cursor++
	}
}

func (self *Tokenizer) skipChar() {
	_, size := utf8.DecodeRuneInString(self.rest())
	self.cursor += size
}

func (self *Tokenizer) more() bool {
	return self.cursor < len(self.Source)
}

func (self *Tokenizer) rest() string {
	return self.Source[self.cursor:]
}

func (self *Tokenizer) from(start int) string {
	return self.Source[start:self.cursor]
}

func (self *Tokenizer) headByte() byte {
	return self.Source[self.cursor]
}

func (self *Tokenizer) skippedByte(val byte) bool {
	if self.more() && self.headByte() == val {
		self.cursor++
		return true
	}
	return false
}

func (self *Tokenizer) skippedString(val string) bool {
	if strings.HasPrefix(self.rest(), val) {
		self.cursor += len(val)
		return true
	}
	return false
}
