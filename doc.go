/*
Package qb turns declarative query descriptions into parameterized SQL text
plus an ordered argument list, and applies ordered, idempotent schema
migrations on top of the same text-generation machinery.

The package never talks to storage. Every renderer produces a Stmt: SQL
text, the arguments bound to its placeholders in left-to-right textual
order, and a fetch-cardinality hint. Running the statement is the job of an
Executor supplied by the caller; adapters for SQLite and Postgres live in
the sqlitexec and pgexec subpackages.

Placeholders use the SQLite wire syntax: "?" is auto-numbered, "?N" is
explicit. An explicit "?N" may occur any number of times in the text and
consumes exactly one argument slot. Backends with a different bound
parameter syntax rewrite at the executor boundary (see pgexec).

Rendering is pure and deterministic: identical specs produce identical
statements, with no I/O and no shared mutable state. Builder values are
immutable; every fluent call returns a new builder, so a base builder can
be shared across goroutines as a template without locking.
*/
package qb
