package qb

import (
	"reflect"

	"github.com/mitranim/refut"
)

/*
Converts a struct with `db`-tagged fields into a `Row` for insert/update
data:

	type Account struct {
		Email string `db:"email"`
		Name  string `db:"name"`
	}
	row, err := qb.StructRow(Account{`jane@example.com`, `Jane`})

Fields without a `db` tag, or tagged `-`, are skipped. Exported embedded
structs are traversed; unexported fields, embedded or not, are skipped. A nil
pointer input yields an empty row.
*/
func StructRow(input any) (row Row, err error) {
	defer rec(&err)
	row = Row{}
	traverseStructDbFields(input, func(col string, val any) {
		row[col] = val
	})
	return
}

func sfieldColumnName(sfield reflect.StructField) string {
	return refut.TagIdent(sfield.Tag.Get(`db`))
}

func traverseStructDbFields(input any, fun func(string, any)) {
	rval := reflect.ValueOf(input)
	if !rval.IsValid() {
		panic(ErrInvalidInput.while(`traversing struct for DB fields`).because(errf(
			`expected struct, got untyped nil`,
		)))
	}

	rtype := refut.RtypeDeref(rval.Type())
	if rtype.Kind() != reflect.Struct {
		panic(ErrInvalidInput.while(`traversing struct for DB fields`).because(errf(
			`expected struct, got %q`, rtype,
		)))
	}

	if refut.IsRvalNil(rval) {
		return
	}

	err := refut.TraverseStructRval(rval, func(rval reflect.Value, sfield reflect.StructField, _ []int) error {
		colName := sfieldColumnName(sfield)
		if colName == "" {
			return nil
		}
		fun(colName, rval.Interface())
		return nil
	})
	try(err)
}
