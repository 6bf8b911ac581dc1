//go:build !mattn

package sqlitexec

import _ "modernc.org/sqlite"

const driverName = `sqlite`

// modernc.org/sqlite takes pragmas in the DSN query string:
// file:path?_pragma=name(value).
func buildDSN(path string) string {
	if path == `:memory:` {
		return `file::memory:?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)`
	}
	return `file:` + path + `?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)`
}
