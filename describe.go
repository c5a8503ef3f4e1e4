package fixture

import "github.com/goliatone/go-fixtures/navigate"

// FieldDescriptor describes a bindable path and its declared type.
type FieldDescriptor struct {
	Path string
	Type string
}

// Describer is implemented by navigators that can enumerate bindable paths.
type Describer interface {
	Describe(root any) []navigate.Descriptor
}

// Describe lists the dotted leaf paths a record could bind on target, as
// resolved by the configured navigator. It returns nil when the navigator
// cannot enumerate paths.
func Describe(target any, opts ...Option) []FieldDescriptor {
	cfg := applyOptions(opts)
	describer, ok := cfg.navigator.(Describer)
	if !ok {
		return nil
	}
	found := describer.Describe(target)
	if found == nil {
		return nil
	}
	out := make([]FieldDescriptor, len(found))
	for i, d := range found {
		out[i] = FieldDescriptor{Path: d.Path, Type: d.Type}
	}
	return out
}
