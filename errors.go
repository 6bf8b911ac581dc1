package qb

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown       ErrCode = ""
	ErrCodeInvalidInput  ErrCode = "InvalidInput"
	ErrCodeMissingData   ErrCode = "MissingData"
	ErrCodeParamMismatch ErrCode = "ParamMismatch"
	ErrCodeSubqueryToken ErrCode = "SubqueryToken"
	ErrCodeNoContext     ErrCode = "NoContext"
	ErrCodeInternal      ErrCode = "Internal"
)

/*
Use blank error variables to detect error kinds:

	if errors.Is(err, qb.ErrParamMismatch) {
		// Handle specific error.
	}

Errors returned by this package can't be compared via `==` because they carry
details about the offending clause or fragment. When compared by `errors.Is`,
they compare `.Cause` and fall back on `.Code`.

`ErrSubqueryToken` and `ErrNoContext` indicate construction bugs in this
package rather than caller mistakes; please report them.
*/
var (
	ErrInvalidInput  Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrMissingData   Err = Err{Code: ErrCodeMissingData, Cause: errors.New(`missing required data`)}
	ErrParamMismatch Err = Err{Code: ErrCodeParamMismatch, Cause: errors.New(`parameter count mismatch`)}
	ErrSubqueryToken Err = Err{Code: ErrCodeSubqueryToken, Cause: errors.New(`unresolved subquery token`)}
	ErrNoContext     Err = Err{Code: ErrCodeNoContext, Cause: errors.New(`missing subquery context`)}
	ErrInternal      Err = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}
	msg := `[qb]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != "" {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

/*
Parameter-mismatch constructor. The message embeds the clause name, the
offending fragment, and both counts, so the call site can be fixed without
consulting this package's source. A reused explicit `?N` counts once no
matter how many times it occurs.
*/
func errParamMismatch(clause, fragment string, expected, got int) Err {
	return ErrParamMismatch.while(`composing ` + clause).because(fmt.Errorf(
		`fragment %q expects %v parameter(s), got %v; note that a repeated explicit placeholder consumes a single parameter`,
		fragment, expected, got,
	))
}

func errMissingTable(op string) Err {
	return ErrMissingData.while(`rendering ` + op).because(errors.New(`missing required table name`))
}

func errf(pattern string, args ...any) error {
	return fmt.Errorf(pattern, args...)
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

/*
Converts panics raised during rendering into error returns. Must be deferred.
Rendering internals panic with `Err` values; everything else is rethrown.
*/
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}
