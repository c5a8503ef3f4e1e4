package navigate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-fixtures/convert"
)

var (
	// ErrInvalidTarget indicates the root value cannot be navigated (nil, or
	// not a pointer when a write is requested).
	ErrInvalidTarget = errors.New("navigate: invalid target")
	// ErrUnknownField indicates a path segment does not name a field.
	ErrUnknownField = errors.New("navigate: unknown field")
	// ErrNilIntermediate indicates a write traversed a nil intermediate node.
	ErrNilIntermediate = errors.New("navigate: nil intermediate")
	// ErrNotSettable indicates the leaf cannot be assigned the given value.
	ErrNotSettable = errors.New("navigate: field not settable")
	// ErrNotConstructible indicates a type has no usable zero-argument form.
	ErrNotConstructible = errors.New("navigate: type not constructible")
)

// Navigator reads and writes values addressed by dotted paths on a target
// object graph.
type Navigator interface {
	Value(root any, path string) (any, error)
	Type(root any, path string) (reflect.Type, error)
	SetValue(root any, path string, value any) error
}

// Converter turns a raw string into a value of the requested type.
type Converter interface {
	Convert(value string, t reflect.Type) (any, error)
}

// Option configures a Reflect navigator.
type Option func(*Reflect)

// WithConverter sets the converter used to coerce string values on write.
func WithConverter(c Converter) Option {
	return func(n *Reflect) {
		if c != nil {
			n.converter = c
		}
	}
}

// WithTagName sets the struct tag consulted first when resolving segments.
func WithTagName(name string) Option {
	return func(n *Reflect) {
		n.tagName = strings.TrimSpace(name)
	}
}

// WithCaseInsensitive toggles case-insensitive field name matching.
func WithCaseInsensitive(enabled bool) Option {
	return func(n *Reflect) {
		n.caseInsensitive = enabled
	}
}

// Reflect is a Navigator backed by the reflect package. Segments resolve
// against exported struct fields by tag, exact name, json tag and finally
// (when enabled) case-insensitive name.
type Reflect struct {
	converter       Converter
	tagName         string
	caseInsensitive bool
}

// NewReflect constructs a reflection navigator.
func NewReflect(opts ...Option) *Reflect {
	n := &Reflect{
		tagName:         "fixture",
		caseInsensitive: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	if n.converter == nil {
		n.converter = convert.NewRegistry()
	}
	return n
}

// Value returns the current value at path. The leaf itself may be nil, but
// every segment before it must resolve to a non-nil struct; otherwise the
// error wraps ErrNilIntermediate.
func (n *Reflect) Value(root any, path string) (any, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	current, ok := indirect(reflect.ValueOf(root))
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrInvalidTarget, root)
	}
	for i, segment := range segments {
		field, err := n.field(current, segment)
		if err != nil {
			return nil, err
		}
		if i == len(segments)-1 {
			return field.Interface(), nil
		}
		next, ok := indirect(field)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrNilIntermediate, strings.Join(segments[:i+1], "."), path)
		}
		current = next
	}
	return nil, nil
}

// Type returns the declared type of the field at path.
func (n *Reflect) Type(root any, path string) (reflect.Type, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidTarget)
	}
	current := derefType(reflect.TypeOf(root))
	for i, segment := range segments {
		if current.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %q on non-struct %s", ErrUnknownField, segment, current)
		}
		sf, ok := n.lookup(current, segment)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrUnknownField, segment, current)
		}
		if i == len(segments)-1 {
			return sf.Type, nil
		}
		current = derefType(sf.Type)
	}
	return nil, nil
}

// SetValue assigns value at path. String values are coerced into the field
// type through the configured converter; nil assigns the zero value.
func (n *Reflect) SetValue(root any, path string, value any) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(root)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: writes need a non-nil pointer, got %T", ErrInvalidTarget, root)
	}
	current, ok := indirect(rv)
	if !ok {
		return fmt.Errorf("%w: %T", ErrInvalidTarget, root)
	}
	for i, segment := range segments {
		field, err := n.field(current, segment)
		if err != nil {
			return err
		}
		if i == len(segments)-1 {
			return n.assign(field, path, value)
		}
		next, ok := indirect(field)
		if !ok {
			return fmt.Errorf("%w: %q in %q", ErrNilIntermediate, strings.Join(segments[:i+1], "."), path)
		}
		current = next
	}
	return nil
}

func (n *Reflect) assign(field reflect.Value, path string, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("%w: %q", ErrNotSettable, path)
	}
	target := field.Type()
	if value == nil {
		field.Set(reflect.Zero(target))
		return nil
	}
	raw := reflect.ValueOf(value)
	if raw.Type().AssignableTo(target) {
		field.Set(raw)
		return nil
	}
	if s, ok := value.(string); ok {
		converted, err := n.converter.Convert(s, target)
		if err != nil {
			return fmt.Errorf("navigate: convert %q for %q: %w", s, path, err)
		}
		if converted == nil {
			field.Set(reflect.Zero(target))
			return nil
		}
		cv := reflect.ValueOf(converted)
		if !cv.Type().AssignableTo(target) {
			return fmt.Errorf("%w: %q expects %s, converter returned %s", ErrNotSettable, path, target, cv.Type())
		}
		field.Set(cv)
		return nil
	}
	if isNumeric(raw.Kind()) && isNumeric(target.Kind()) {
		field.Set(raw.Convert(target))
		return nil
	}
	return fmt.Errorf("%w: %q expects %s, got %s", ErrNotSettable, path, target, raw.Type())
}

// field resolves segment on the struct value v.
func (n *Reflect) field(v reflect.Value, segment string) (reflect.Value, error) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %q on non-struct %s", ErrUnknownField, segment, v.Type())
	}
	sf, ok := n.lookup(v.Type(), segment)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q on %s", ErrUnknownField, segment, v.Type())
	}
	field, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: embedded field for %q: %v", ErrNilIntermediate, segment, err)
	}
	return field, nil
}

func (n *Reflect) lookup(t reflect.Type, segment string) (reflect.StructField, bool) {
	fields := n.exportedFields(t)
	if n.tagName != "" {
		for _, sf := range fields {
			if tagName(sf, n.tagName) == segment {
				return sf, true
			}
		}
	}
	for _, sf := range fields {
		if sf.Name == segment {
			return sf, true
		}
	}
	for _, sf := range fields {
		if tagName(sf, "json") == segment {
			return sf, true
		}
	}
	if n.caseInsensitive {
		for _, sf := range fields {
			if strings.EqualFold(sf.Name, segment) {
				return sf, true
			}
		}
	}
	return reflect.StructField{}, false
}

func (n *Reflect) exportedFields(t reflect.Type) []reflect.StructField {
	visible := reflect.VisibleFields(t)
	out := make([]reflect.StructField, 0, len(visible))
	for _, sf := range visible {
		if !sf.IsExported() {
			continue
		}
		if n.tagName != "" && sf.Tag.Get(n.tagName) == "-" {
			continue
		}
		out = append(out, sf)
	}
	return out
}

func tagName(sf reflect.StructField, key string) string {
	tag, ok := sf.Tag.Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

func splitPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnknownField)
	}
	return strings.Split(path, "."), nil
}

// indirect follows pointers and interfaces. It reports false when a nil is
// encountered.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Instantiate returns a pointer to a new zero struct for t. Only pointers to
// structs qualify: they are the only intermediates a path can traverse.
func Instantiate(t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotConstructible)
	}
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotConstructible, t)
	}
	return reflect.New(t.Elem()).Interface(), nil
}

// IsNil reports whether value is nil, including typed nil pointers, maps,
// slices, interfaces, funcs and channels.
func IsNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
