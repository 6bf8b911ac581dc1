package qb

import "unsafe"

/*
Short for "builder". Tiny shortcut for accumulating SQL text. Used internally
by all renderers in this package. Appends are delimited by single spaces as
necessary, which keeps clause composition free of manual spacing bugs.
Arguments are tracked separately by the statement's placeholder allocator.
*/
type bui struct {
	Text []byte
}

// Prealloc tool.
func makeBui(textCap int) bui {
	return bui{make([]byte, 0, textCap)}
}

// Returns inner text as a string, performing a free cast.
func (self bui) String() string {
	return bytesToMutableString(self.Text)
}

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *bui) Str(val string) {
	self.Text = appendMaybeSpaced(self.Text, val)
}

// Appends the provided string verbatim, with no space handling. Used for
// punctuation such as commas between VALUES tuples.
func (self *bui) Raw(val string) {
	self.Text = append(self.Text, val...)
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	if !hasDelimSuffix(bytesToMutableString(text)) && !hasDelimPrefix(suffix) {
		text = append(text, ` `...)
	}
	text = append(text, suffix...)
	return text
}

func hasDelimPrefix(text string) bool {
	return len(text) == 0 || charsetDelimEnd.has(text[0])
}

func hasDelimSuffix(text string) bool {
	return len(text) == 0 || charsetDelimStart.has(text[len(text)-1])
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed
from the standard library. Should not be used when the underlying byte array
is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}
