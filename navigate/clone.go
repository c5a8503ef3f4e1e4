package navigate

import "reflect"

// Clone copies value so that writes made through a navigator on the copy
// never reach value. Every pointer to a bindable struct is reallocated and
// its exported fields copied the same way; the graph keeps its shape, so two
// fields sharing a struct still share the copy. Leaf values, maps and slices
// are not walked by navigators and stay shared with value.
func Clone[T any](value T) T {
	src := reflect.ValueOf(&value).Elem()
	dst := reflect.New(src.Type()).Elem()
	copyGraph(dst, src, map[uintptr]reflect.Value{})
	return dst.Interface().(T)
}

func copyGraph(dst, src reflect.Value, copies map[uintptr]reflect.Value) {
	dst.Set(src)
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() || !bindableStruct(src.Type().Elem()) {
			return
		}
		if prior, ok := copies[src.Pointer()]; ok {
			dst.Set(prior)
			return
		}
		next := reflect.New(src.Type().Elem())
		copies[src.Pointer()] = next
		copyGraph(next.Elem(), src.Elem(), copies)
		dst.Set(next)
	case reflect.Interface:
		if src.IsNil() {
			return
		}
		inner := reflect.New(src.Elem().Type()).Elem()
		copyGraph(inner, src.Elem(), copies)
		dst.Set(inner)
	case reflect.Struct:
		if !bindableStruct(src.Type()) {
			return
		}
		for i := range src.NumField() {
			if field := dst.Field(i); field.CanSet() {
				copyGraph(field, src.Field(i), copies)
			}
		}
	}
}

// bindableStruct reports struct types a path can descend into.
func bindableStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !isLeafStruct(t)
}
