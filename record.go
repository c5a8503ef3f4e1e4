package fixture

import (
	"encoding"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-fixtures/keyword"
	"github.com/goliatone/go-fixtures/navigate"
)

// Reserved keys carry row metadata and are never bound or compared.
const (
	ReservedPrefix = "_"
	IgnoreRowKey   = "_ignoreRow"
	ExpectFailKey  = "_expectFail"
)

// Record wraps one fixture row: a flat mapping of dotted keys to raw string
// values. Convert and ConvertExpr mutate the record and must not run
// concurrently with any other method; every other method only reads.
type Record struct {
	values map[string]string
	cfg    recordConfig
}

// ValueFunc converts a raw value during Convert.
type ValueFunc func(value string) (any, error)

// New copies values into a new Record.
func New(values map[string]string, opts ...Option) *Record {
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return &Record{
		values: copied,
		cfg:    applyOptions(opts),
	}
}

// Clone returns an independent copy sharing the same configuration.
func (r *Record) Clone() *Record {
	return &Record{
		values: maps.Clone(r.values),
		cfg:    r.cfg,
	}
}

// Has reports whether key is present, including reserved keys.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns a snapshot of every key, reserved ones included.
func (r *Record) Keys() map[string]struct{} {
	out := make(map[string]struct{}, len(r.values))
	for key := range r.values {
		out[key] = struct{}{}
	}
	return out
}

// SortedKeys returns every key in lexical order.
func (r *Record) SortedKeys() []string {
	return slices.Sorted(maps.Keys(r.values))
}

// Data returns a copy of the underlying mapping.
func (r *Record) Data() map[string]string {
	return maps.Clone(r.values)
}

// Eligible returns the entries that take part in binding: the key does not
// start with "_" and the value is not the empty string.
func (r *Record) Eligible() map[string]string {
	out := make(map[string]string, len(r.values))
	for key, value := range r.values {
		if strings.HasPrefix(key, ReservedPrefix) || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// eligibleKeys returns eligible keys sorted so logs and reports are stable.
func (r *Record) eligibleKeys() ([]string, map[string]string) {
	eligible := r.Eligible()
	return slices.Sorted(maps.Keys(eligible)), eligible
}

// IgnoreRow reports the _ignoreRow flag. An absent or blank value reads as
// no; a value that is not a yes/no keyword is an error.
func (r *Record) IgnoreRow() (bool, error) {
	return r.flag(IgnoreRowKey)
}

// NotIgnoreRow is the negation of IgnoreRow.
func (r *Record) NotIgnoreRow() (bool, error) {
	ignore, err := r.IgnoreRow()
	if err != nil {
		return false, err
	}
	return !ignore, nil
}

// ExpectFail reports the _expectFail flag with the same rules as IgnoreRow.
func (r *Record) ExpectFail() (bool, error) {
	return r.flag(ExpectFailKey)
}

func (r *Record) flag(key string) (bool, error) {
	value, err := ValueOr(r, key, keyword.No)
	if err != nil {
		r.cfg.logger.LogBinding(BindEvent{Op: OpLookup, Key: key, Value: r.values[key], Err: err})
		return false, err
	}
	return value.IsYes(), nil
}

// Convert renames oldKey to newKey, storing the string form of fn applied to
// the old value. A missing oldKey is a no-op. When fn fails the record is
// left unchanged, old key included. A nil result is stored as "", which makes
// the entry ineligible for binding.
func (r *Record) Convert(oldKey, newKey string, fn ValueFunc) error {
	old, ok := r.values[oldKey]
	if !ok {
		return nil
	}
	if fn == nil {
		return fmt.Errorf("fixture: converter for key %q is nil", oldKey)
	}
	out, err := fn(old)
	if err != nil {
		return wrapBindingError(OpConvert, oldKey, newKey, err)
	}
	delete(r.values, oldKey)
	r.values[newKey] = formatValue(out)
	return nil
}

func formatValue(value any) string {
	if navigate.IsNil(value) {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case encoding.TextMarshaler:
		if text, err := typed.MarshalText(); err == nil {
			return string(text)
		}
	case fmt.Stringer:
		return typed.String()
	}
	return fmt.Sprint(value)
}

// Equal reports whether both records hold the same mapping.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return maps.Equal(r.values, other.values)
}

func (r *Record) String() string {
	return fmt.Sprintf("Record [values=%v]", r.values)
}
