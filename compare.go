package fixture

import (
	"cmp"
	"reflect"

	"github.com/goliatone/go-fixtures/navigate"
)

// valuesMatch prefers ordering comparison when both values support it and
// falls back to deep equality, where two nils are equal.
func valuesMatch(actual, expected any) bool {
	if c, ok := compareOrdered(actual, expected); ok {
		return c == 0
	}
	return equalValues(actual, expected)
}

// compareOrdered compares values that expose a Compare or Cmp method
// accepting the other value, or that share an ordered kind.
func compareOrdered(actual, expected any) (int, bool) {
	if navigate.IsNil(actual) || navigate.IsNil(expected) {
		return 0, false
	}
	a, b := reflect.ValueOf(actual), reflect.ValueOf(expected)
	if c, ok := compareByMethod(a, b); ok {
		return c, true
	}
	a, b = reflect.Indirect(a), reflect.Indirect(b)
	if c, ok := compareByMethod(a, b); ok {
		return c, true
	}
	return compareKinds(a, b)
}

var compareMethods = []string{"Compare", "Cmp"}

func compareByMethod(a, b reflect.Value) (int, bool) {
	for _, name := range compareMethods {
		method := a.MethodByName(name)
		if !method.IsValid() {
			continue
		}
		mt := method.Type()
		if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Int {
			continue
		}
		if !b.Type().AssignableTo(mt.In(0)) {
			continue
		}
		return int(method.Call([]reflect.Value{b})[0].Int()), true
	}
	return 0, false
}

func compareKinds(a, b reflect.Value) (int, bool) {
	switch {
	case isSigned(a.Kind()) && isSigned(b.Kind()):
		return cmp.Compare(a.Int(), b.Int()), true
	case isUnsigned(a.Kind()) && isUnsigned(b.Kind()):
		return cmp.Compare(a.Uint(), b.Uint()), true
	case isFloat(a.Kind()) && isFloat(b.Kind()):
		return cmp.Compare(a.Float(), b.Float()), true
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return cmp.Compare(a.String(), b.String()), true
	default:
		return 0, false
	}
}

func equalValues(actual, expected any) bool {
	actualNil, expectedNil := navigate.IsNil(actual), navigate.IsNil(expected)
	if actualNil || expectedNil {
		return actualNil && expectedNil
	}
	return reflect.DeepEqual(actual, expected)
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isPointer(value any) bool {
	return reflect.ValueOf(value).Kind() == reflect.Pointer
}
