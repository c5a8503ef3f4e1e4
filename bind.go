package fixture

import (
	"time"

	"github.com/goliatone/go-fixtures/navigate"
)

// PutValuesTo writes every eligible entry onto target, which must be a
// non-nil pointer to a struct. Nil intermediate nodes along each path are
// replaced with fresh instances of their declared type before the leaf is
// set. The first failure is returned; writes already applied remain.
func (r *Record) PutValuesTo(target any) error {
	keys, eligible := r.eligibleKeys()
	for _, key := range keys {
		value := eligible[key]
		start := time.Now()
		err := r.putValue(target, key, value)
		r.cfg.logger.LogBinding(BindEvent{
			Op:       OpPut,
			Key:      key,
			Path:     key,
			Value:    value,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Record) putValue(target any, key, value string) error {
	path, err := ParsePath(key)
	if err != nil {
		return wrapBindingError(OpPut, key, "", err)
	}
	nav := r.cfg.navigator
	for _, prefix := range path.PrefixPaths() {
		if err := initNilIntermediate(nav, target, prefix); err != nil {
			return wrapBindingError(OpPut, key, prefix, err)
		}
	}
	if err := nav.SetValue(target, key, value); err != nil {
		return wrapBindingError(OpPut, key, key, err)
	}
	return nil
}

func initNilIntermediate(nav navigate.Navigator, target any, path string) error {
	current, err := nav.Value(target, path)
	if err != nil {
		return err
	}
	if !navigate.IsNil(current) {
		return nil
	}
	declared, err := nav.Type(target, path)
	if err != nil {
		return err
	}
	instance, err := navigate.Instantiate(declared)
	if err != nil {
		return err
	}
	return nav.SetValue(target, path, instance)
}

// Matches reports whether target's fields hold the record's eligible values.
// It stops at the first mismatch. A record with no eligible entries always
// matches. Unresolvable paths and unconvertible values are errors, not
// mismatches.
func (r *Record) Matches(target any) (bool, error) {
	keys, eligible := r.eligibleKeys()
	for _, key := range keys {
		value := eligible[key]
		start := time.Now()
		_, matched, err := r.matchEntry(target, key, value)
		r.cfg.logger.LogBinding(BindEvent{
			Op:       OpMatch,
			Key:      key,
			Path:     key,
			Value:    value,
			Matched:  matched,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// Compare evaluates every eligible entry and reports all mismatches.
func (r *Record) Compare(target any) (Report, error) {
	keys, eligible := r.eligibleKeys()
	report := Report{Checked: len(keys)}
	for _, key := range keys {
		value := eligible[key]
		start := time.Now()
		mismatch, matched, err := r.matchEntry(target, key, value)
		r.cfg.logger.LogBinding(BindEvent{
			Op:       OpMatch,
			Key:      key,
			Path:     key,
			Value:    value,
			Matched:  matched,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			return Report{}, err
		}
		if !matched {
			report.Mismatches = append(report.Mismatches, mismatch)
		}
	}
	return report, nil
}

func (r *Record) matchEntry(target any, key, value string) (Mismatch, bool, error) {
	if _, err := ParsePath(key); err != nil {
		return Mismatch{}, false, wrapBindingError(OpMatch, key, "", err)
	}
	nav := r.cfg.navigator
	actual, err := nav.Value(target, key)
	if err != nil {
		return Mismatch{}, false, wrapBindingError(OpMatch, key, key, err)
	}
	declared, err := nav.Type(target, key)
	if err != nil {
		return Mismatch{}, false, wrapBindingError(OpMatch, key, key, err)
	}
	expected, err := r.cfg.converters.Convert(value, declared)
	if err != nil {
		return Mismatch{}, false, wrapBindingError(OpMatch, key, key, err)
	}
	if valuesMatch(actual, expected) {
		return Mismatch{}, true, nil
	}
	return Mismatch{
		Path:     key,
		Raw:      value,
		Expected: expected,
		Actual:   actual,
	}, false, nil
}

// Apply binds the record onto a deep copy of base and returns the copy.
// base itself is never modified. base may be a struct or a pointer to one.
func Apply[T any](r *Record, base T) (T, error) {
	clone := navigate.Clone(base)
	var target any = &clone
	if rv := any(clone); rv != nil && isPointer(rv) {
		target = rv
	}
	if err := r.PutValuesTo(target); err != nil {
		var zero T
		return zero, err
	}
	return clone, nil
}
