package fixture

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-fixtures/convert"
)

// Lookup converts the value stored under key into t. A missing key returns
// *MissingKeyError; a nil result means the value legitimately converted to
// nothing (for example a blank cell for a numeric type).
func (r *Record) Lookup(key string, t reflect.Type) (any, error) {
	value, ok := r.values[key]
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	out, err := r.cfg.converters.Convert(value, t)
	if err != nil {
		return nil, wrapBindingError(OpLookup, key, "", err)
	}
	return out, nil
}

// Value returns the value under key converted to T. The key is required.
func Value[T any](r *Record, key string) (T, error) {
	var zero T
	out, err := r.Lookup(key, reflect.TypeFor[T]())
	if err != nil || out == nil {
		return zero, err
	}
	return assertValue[T](key, out)
}

// ValueOpt is the optional variant of Value: an absent key, or a value that
// converts to nothing, reports false without an error.
func ValueOpt[T any](r *Record, key string) (T, bool, error) {
	var zero T
	if !r.Has(key) {
		return zero, false, nil
	}
	out, err := r.Lookup(key, reflect.TypeFor[T]())
	if err != nil || out == nil {
		return zero, false, err
	}
	typed, err := assertValue[T](key, out)
	if err != nil {
		return zero, false, err
	}
	return typed, true, nil
}

// ValueOr returns def when key is absent. Otherwise the value is converted to
// the dynamic type of def and def is only used when conversion yields nil.
// Conversion failures are returned, not masked by def.
func ValueOr[T any](r *Record, key string, def T) (T, error) {
	if !r.Has(key) {
		return def, nil
	}
	t := reflect.TypeOf(any(def))
	if t == nil {
		t = reflect.TypeFor[T]()
	}
	out, err := r.Lookup(key, t)
	if err != nil {
		var zero T
		return zero, err
	}
	if out == nil {
		return def, nil
	}
	return assertValue[T](key, out)
}

func assertValue[T any](key string, out any) (T, error) {
	typed, ok := out.(T)
	if !ok {
		var zero T
		return zero, wrapBindingError(OpLookup, key, "",
			fmt.Errorf("%w: got %T, want %s", convert.ErrUnsupported, out, reflect.TypeFor[T]()))
	}
	return typed, nil
}
