package qb

import (
	"errors"
	r "reflect"
	"strings"
	"testing"
)

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

// Asserts a successful render against the full statement triple.
func eqStmt(t testing.TB, expSQL string, expArgs []any, expFetch Fetch, stmt Stmt, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf(`unexpected render error: %+v`, err)
	}
	eq(t, expSQL, stmt.SQL)
	eq(t, expArgs, stmt.Args)
	eq(t, expFetch, stmt.Fetch)
}

// Asserts a failed render: the error kind matches and the message carries
// every given substring, so callers can fix the call site from the message
// alone.
func errIs(t testing.TB, err, want error, msgParts ...string) {
	t.Helper()
	if err == nil {
		t.Fatalf(`expected error %v, got nil`, want)
	}
	if !errors.Is(err, want) {
		t.Fatalf(`expected error %v, got %+v`, want, err)
	}
	for _, part := range msgParts {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf(`expected error message to contain %q, got %q`, part, err.Error())
		}
	}
}

func panics(t testing.TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)
	if val == nil {
		t.Fatalf(`expected a panic containing %q, got none`, msg)
	}
	str := strings.TrimSpace(anyToString(val))
	if !strings.Contains(str, msg) {
		t.Fatalf(`expected a panic containing %q, got %q`, msg, str)
	}
}

func catchAny(fun func()) (val any) {
	defer func() { val = recover() }()
	fun()
	return
}

func anyToString(val any) string {
	err, _ := val.(error)
	if err != nil {
		return err.Error()
	}
	str, _ := val.(string)
	return str
}
