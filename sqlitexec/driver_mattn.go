//go:build mattn

package sqlitexec

import _ "github.com/mattn/go-sqlite3"

const driverName = `sqlite3`

// mattn/go-sqlite3 takes pragmas as underscore-prefixed DSN parameters.
func buildDSN(path string) string {
	if path == `:memory:` {
		return `file::memory:?_foreign_keys=on&_busy_timeout=5000`
	}
	return `file:` + path + `?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL`
}
