package convert

import (
	"encoding"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupported is returned when no converter can produce the requested type.
var ErrUnsupported = errors.New("convert: unsupported target type")

// DefaultTimeLayouts are tried in order when converting into time.Time.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Func converts a raw fixture string into a typed value. Returning a nil value
// with a nil error means "no value" (for example a blank cell).
type Func func(value string) (any, error)

// Registry stores converters keyed by their target type and falls back to
// kind-based parsing for scalars. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	funcs       map[reflect.Type]Func
	timeLayouts []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeLayouts replaces the layouts used to parse time.Time values.
func WithTimeLayouts(layouts ...string) Option {
	return func(r *Registry) {
		if len(layouts) == 0 {
			return
		}
		r.timeLayouts = append([]string(nil), layouts...)
	}
}

// NewRegistry builds a registry preloaded with the built-in converters.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		funcs:       make(map[reflect.Type]Func),
		timeLayouts: append([]string(nil), DefaultTimeLayouts...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	r.funcs[reflect.TypeFor[time.Duration]()] = func(value string) (any, error) {
		if isBlank(value) {
			return nil, nil
		}
		return time.ParseDuration(strings.TrimSpace(value))
	}
	r.funcs[reflect.TypeFor[time.Time]()] = r.parseTime
	r.funcs[reflect.TypeFor[uuid.UUID]()] = func(value string) (any, error) {
		if isBlank(value) {
			return nil, nil
		}
		return uuid.Parse(strings.TrimSpace(value))
	}
	r.funcs[reflect.TypeFor[*big.Int]()] = func(value string) (any, error) {
		if isBlank(value) {
			return nil, nil
		}
		n, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
		if !ok {
			return nil, fmt.Errorf("convert: invalid integer %q", value)
		}
		return n, nil
	}
	r.funcs[reflect.TypeFor[*big.Float]()] = func(value string) (any, error) {
		if isBlank(value) {
			return nil, nil
		}
		n, ok := new(big.Float).SetString(strings.TrimSpace(value))
		if !ok {
			return nil, fmt.Errorf("convert: invalid decimal %q", value)
		}
		return n, nil
	}
	r.funcs[reflect.TypeFor[*big.Rat]()] = func(value string) (any, error) {
		if isBlank(value) {
			return nil, nil
		}
		n, ok := new(big.Rat).SetString(strings.TrimSpace(value))
		if !ok {
			return nil, fmt.Errorf("convert: invalid rational %q", value)
		}
		return n, nil
	}
}

func (r *Registry) parseTime(value string) (any, error) {
	if isBlank(value) {
		return nil, nil
	}
	value = strings.TrimSpace(value)
	r.mu.RLock()
	layouts := r.timeLayouts
	r.mu.RUnlock()
	var lastErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("convert: invalid time %q: %w", value, lastErr)
}

// Register stores fn for t, guarding against duplicates.
func (r *Registry) Register(t reflect.Type, fn Func) error {
	if t == nil {
		return fmt.Errorf("convert: target type must not be nil")
	}
	if fn == nil {
		return fmt.Errorf("convert: converter for %s is nil", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = make(map[reflect.Type]Func)
	}
	if _, exists := r.funcs[t]; exists {
		return fmt.Errorf("convert: converter for %s already registered", t)
	}
	r.funcs[t] = fn
	return nil
}

// Register stores a typed converter for T on r.
func Register[T any](r *Registry, fn func(string) (T, error)) error {
	if fn == nil {
		return fmt.Errorf("convert: converter for %s is nil", reflect.TypeFor[T]())
	}
	return r.Register(reflect.TypeFor[T](), func(value string) (any, error) {
		return fn(value)
	})
}

// Clone returns a shallow copy of the registry.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Registry{
		funcs:       make(map[reflect.Type]Func, len(r.funcs)),
		timeLayouts: append([]string(nil), r.timeLayouts...),
	}
	for t, fn := range r.funcs {
		clone.funcs[t] = fn
	}
	return clone
}

func (r *Registry) lookup(t reflect.Type) Func {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[t]
}

// Convert turns value into a value of type t. A nil result with a nil error
// means the input legitimately produced no value.
func (r *Registry) Convert(value string, t reflect.Type) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("convert: registry is nil")
	}
	if t == nil {
		return nil, fmt.Errorf("convert: target type must not be nil")
	}

	if fn := r.lookup(t); fn != nil {
		out, err := fn(value)
		if err != nil {
			return nil, err
		}
		return coerceResult(out, t)
	}

	if t.Kind() == reflect.Pointer {
		if isBlank(value) {
			return nil, nil
		}
		elem, err := r.Convert(value, t.Elem())
		if err != nil || elem == nil {
			return nil, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(reflect.ValueOf(elem))
		return ptr.Interface(), nil
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		if isBlank(value) && t.Kind() != reflect.String {
			return nil, nil
		}
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value)); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}

	return convertKind(value, t)
}

// To converts value into T using r.
func To[T any](r *Registry, value string) (T, error) {
	var zero T
	out, err := r.Convert(value, reflect.TypeFor[T]())
	if err != nil || out == nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T for %s", ErrUnsupported, out, reflect.TypeFor[T]())
	}
	return typed, nil
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func convertKind(value string, t reflect.Type) (any, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(value)
		return out.Interface(), nil
	case reflect.Interface:
		raw := reflect.ValueOf(value)
		if !raw.Type().AssignableTo(t) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
		}
		return value, nil
	}

	if isBlank(value) {
		return nil, nil
	}
	trimmed := strings.TrimSpace(value)

	switch t.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("convert: invalid bool %q: %w", value, err)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(trimmed, 10, t.Bits())
		if err != nil {
			return nil, fmt.Errorf("convert: invalid %s %q: %w", t, value, err)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(trimmed, 10, t.Bits())
		if err != nil {
			return nil, fmt.Errorf("convert: invalid %s %q: %w", t, value, err)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(trimmed, t.Bits())
		if err != nil {
			return nil, fmt.Errorf("convert: invalid %s %q: %w", t, value, err)
		}
		out.SetFloat(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	return out.Interface(), nil
}

func coerceResult(out any, t reflect.Type) (any, error) {
	if out == nil {
		return nil, nil
	}
	v := reflect.ValueOf(out)
	if v.Type() == t || (t.Kind() == reflect.Interface && v.Type().Implements(t)) {
		return out, nil
	}
	if v.Type().ConvertibleTo(t) {
		return v.Convert(t).Interface(), nil
	}
	return nil, fmt.Errorf("%w: converter returned %T for %s", ErrUnsupported, out, t)
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
