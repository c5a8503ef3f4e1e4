package fixture

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates a blank or malformed dotted key.
var ErrInvalidPath = errors.New("fixture: invalid path")

// ErrNoTransformer indicates no expression engine is available.
var ErrNoTransformer = errors.New("fixture: transformer not configured")

// Binding operations reported by BindingError and BindEvent.
const (
	OpPut     = "put"
	OpMatch   = "match"
	OpLookup  = "lookup"
	OpConvert = "convert"
)

// MissingKeyError is returned by required accessors when the key is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixture: no value found for key %q", e.Key)
}

// BindingError captures a failure resolving or converting a key against a
// target: unknown field, non-constructible intermediate, or a value that
// does not convert to the declared field type.
type BindingError struct {
	Op   string
	Key  string
	Path string
	Err  error
}

func (e *BindingError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixture: %s key=%q%s: %v", e.Op, e.Key, describePath(e.Key, e.Path), e.Err)
}

func (e *BindingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describePath(key, path string) string {
	if path == "" || path == key {
		return ""
	}
	return fmt.Sprintf(" path=%q", path)
}

func wrapBindingError(op, key, path string, err error) error {
	if err == nil {
		return nil
	}

	var bindErr *BindingError
	if errors.As(err, &bindErr) {
		if bindErr.Op == "" {
			bindErr.Op = op
		}
		if bindErr.Key == "" {
			bindErr.Key = key
		}
		if bindErr.Path == "" {
			bindErr.Path = path
		}
		return bindErr
	}

	return &BindingError{
		Op:   op,
		Key:  key,
		Path: path,
		Err:  err,
	}
}

// TransformError captures expression metadata alongside the originating
// error when an expression-driven conversion fails.
type TransformError struct {
	Engine string
	Expr   string
	Key    string
	Err    error
}

func (e *TransformError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixture: %s transform %s key=%q: %v", e.Engine, describeExpression(e.Expr), e.Key, e.Err)
}

func (e *TransformError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapTransformError(engine, expr, key string, err error) error {
	if err == nil {
		return nil
	}

	var transformErr *TransformError
	if errors.As(err, &transformErr) {
		if transformErr.Engine == "" {
			transformErr.Engine = engine
		}
		if transformErr.Expr == "" {
			transformErr.Expr = expr
		}
		if transformErr.Key == "" {
			transformErr.Key = key
		}
		return transformErr
	}

	return &TransformError{
		Engine: engine,
		Expr:   expr,
		Key:    key,
		Err:    err,
	}
}
