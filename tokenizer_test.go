package qb

import "testing"

func tokenize(src string) []Token {
	var out []Token
	tok := Tokenizer{Source: src}
	for {
		token := tok.Next()
		if token.IsInvalid() {
			return out
		}
		out = append(out, token)
	}
}

func tokenParams(src string) []Token {
	var out []Token
	for _, token := range tokenize(src) {
		if token.IsParam() {
			out = append(out, token)
		}
	}
	return out
}

func TestTokenizerRoundTrip(t *testing.T) {
	src := `select "col?" from t -- trailing ?
where a = ?1 and b = 'lit ?' /* block ? */ or c = ?`

	var joined string
	for _, token := range tokenize(src) {
		joined += token.Text
	}
	eq(t, src, joined)
}

func TestTokenizerParams(t *testing.T) {
	eq(
		t,
		[]Token{
			{`?1`, TokenTypeOrdinalParam},
			{`?`, TokenTypeAnonParam},
			{`?23`, TokenTypeOrdinalParam},
		},
		tokenParams(`a = ?1 and b = ? and c in (?23)`),
	)
}

func TestTokenizerParamsIgnoredInQuotesAndComments(t *testing.T) {
	eq(t, []Token(nil), tokenParams(`a = '?'`))
	eq(t, []Token(nil), tokenParams(`a = "?1"`))
	eq(t, []Token(nil), tokenParams("a = `?2`"))
	eq(t, []Token(nil), tokenParams(`-- a = ?`))
	eq(t, []Token(nil), tokenParams(`/* a = ?1 */`))

	eq(
		t,
		[]Token{{`?`, TokenTypeAnonParam}},
		tokenParams(`a = '?' and b = ? -- c = ?2`),
	)
}

func TestTokenizerDoubledQuote(t *testing.T) {
	// SQL escapes a quote by doubling it; the tokenizer sees two adjacent
	// quoted strings, which is fine for placeholder detection.
	eq(
		t,
		[]Token{
			{`a`, TokenTypeText},
			{` `, TokenTypeWhitespace},
			{`=`, TokenTypeText},
			{` `, TokenTypeWhitespace},
			{`'it'`, TokenTypeQuotedSingle},
			{`'s ?'`, TokenTypeQuotedSingle},
			{` `, TokenTypeWhitespace},
			{`b`, TokenTypeText},
			{` `, TokenTypeWhitespace},
			{`=`, TokenTypeText},
			{` `, TokenTypeWhitespace},
			{`?`, TokenTypeAnonParam},
		},
		tokenize(`a = 'it''s ?' b = ?`),
	)
}

func TestTokenizerUnterminated(t *testing.T) {
	panics(t, `expected closing`, func() { tokenize(`a = 'oops`) })
	panics(t, `expected closing`, func() { tokenize(`a = "oops`) })
	panics(t, `expected closing`, func() { tokenize(`a = 1 /* oops`) })
}

func TestTokenParseOrdinal(t *testing.T) {
	eq(t, 1, Token{`?1`, TokenTypeOrdinalParam}.ParseOrdinal())
	eq(t, 12, Token{`?12`, TokenTypeOrdinalParam}.ParseOrdinal())
	panics(t, `malformed ordinal parameter`, func() {
		Token{`12`, TokenTypeOrdinalParam}.ParseOrdinal()
	})
}
