package fixture

import (
	"fmt"
	"strings"
)

// PathExpression is the parsed form of a dotted fixture key: the segments
// leading to the leaf plus the leaf field name itself.
type PathExpression struct {
	prefixes []string
	field    string
}

// ParsePath splits key on "." into prefix segments and a leaf field name.
// Segment names are not validated; they are resolved later by a navigator.
func ParsePath(key string) (PathExpression, error) {
	if strings.TrimSpace(key) == "" {
		return PathExpression{}, fmt.Errorf("%w: key must not be blank", ErrInvalidPath)
	}
	names := strings.Split(key, ".")
	field := names[len(names)-1]
	if field == "" {
		return PathExpression{}, fmt.Errorf("%w: %q has an empty field name", ErrInvalidPath, key)
	}
	return PathExpression{
		prefixes: names[:len(names)-1],
		field:    field,
	}, nil
}

// Prefixes returns a copy of the segments preceding the leaf.
func (p PathExpression) Prefixes() []string {
	out := make([]string, len(p.prefixes))
	copy(out, p.prefixes)
	return out
}

// Field returns the leaf field name.
func (p PathExpression) Field() string {
	return p.field
}

// HasPrefixes reports whether the path has any segment before the leaf.
func (p PathExpression) HasPrefixes() bool {
	return len(p.prefixes) > 0
}

// Segments returns prefixes followed by the leaf.
func (p PathExpression) Segments() []string {
	out := make([]string, 0, len(p.prefixes)+1)
	out = append(out, p.prefixes...)
	return append(out, p.field)
}

// PrefixPaths returns the accumulated intermediate paths, shortest first:
// "a.b.c" yields ["a", "a.b"].
func (p PathExpression) PrefixPaths() []string {
	out := make([]string, len(p.prefixes))
	for i := range p.prefixes {
		out[i] = strings.Join(p.prefixes[:i+1], ".")
	}
	return out
}

func (p PathExpression) String() string {
	return strings.Join(p.Segments(), ".")
}
