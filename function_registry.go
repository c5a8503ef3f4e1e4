package fixture

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrDuplicateFunction indicates a function name is already registered.
var ErrDuplicateFunction = errors.New("fixture: function already registered")

// Function is a helper callable from conversion expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores expression helpers keyed by case-insensitive name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Register stores fn under name.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("fixture: function name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("fixture: function %q is nil", name)
	}
	key := strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFunction, name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy so later registrations do not leak between
// transformers.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	functions := maps.Clone(r.functions)
	if functions == nil {
		functions = make(map[string]Function)
	}
	return &FunctionRegistry{functions: functions}
}

// Call runs the function registered under name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("fixture: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("fixture: function %q not registered", name)
	}
	out, err := fn(args...)
	if err != nil {
		return nil, fmt.Errorf("fixture: function %q: %w", name, err)
	}
	return out, nil
}

// Names returns registered names in lexical order.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.functions))
}

// WithFunctionRegistry exposes registry to the record's default transformer.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *recordConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the record's default
// transformer. Invalid or duplicate registrations are dropped.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *recordConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
