// v0
// internal/table/value.go
package table

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"pewpewworld/statsboard/internal/colorcode"
)

// kind orders values of different runtime types against each other.
type kind int

const (
	kindMissing kind = iota
	kindBool
	kindNumber
	kindString
)

// value is the normalized form of whatever an accessor returned.
type value struct {
	kind kind
	num  float64
	str  string
	b    bool
	raw  any
}

func normalize(v any) value {
	if v == nil {
		return value{kind: kindMissing}
	}
	switch t := v.(type) {
	case string:
		return value{kind: kindString, str: t, raw: t}
	case bool:
		return value{kind: kindBool, b: t, raw: t}
	case float64:
		return number(t, v)
	case float32:
		return number(float64(t), v)
	case int:
		return number(float64(t), v)
	case int64:
		return number(float64(t), v)
	case int32:
		return number(float64(t), v)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return value{kind: kindMissing}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return value{kind: kindMissing}
		}
	}
	switch rv.Kind() {
	case reflect.Int,reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number(float64(rv.Int()), rv.Interface())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number(float64(rv.Uint()), rv.Interface())
	case reflect.Float32, reflect.Float64:
		return number(rv.Float(), rv.Interface())
	case reflect.Bool:
		return value{kind: kindBool, b: rv.Bool(), raw: rv.Interface()}
	case reflect.String:
		return value{kind: kindString, str: rv.String(), raw: rv.Interface()}
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return value{kind: kindString, str: s.String(), raw: rv.Interface()}
	}
	return value{kind: kindString, str: fmt.Sprint(rv.Interface()), raw: rv.Interface()}
}

func number(f float64, raw any) value {
	if math.IsNaN(f) {
		return value{kind: kindMissing}
	}
	return value{kind: kindNumber, num: f, raw: raw}
}

// text is the searchable representation of a value.
func (v value) text() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Compare is the default ordering used when a column has no comparator:
// booleans sort false before true, numbers numerically and strings by the
// code points of their colour-stripped text. Values of different kinds
// order boolean < number < string. Missing values are handled by the caller.
func Compare(a, b any) int {
	return compareValues(normalize(a), normalize(b))
}

func compareValues(a, b value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case kindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return cmp.Compare(a.num, b.num)
	case kindString:
		// Byte order on valid UTF-8 is code point order.
		return strings.Compare(colorcode.StripCodes(a.str), colorcode.StripCodes(b.str))
	}
	return 0
}
