package navigate

import (
	"encoding"
	"reflect"
	"sort"
	"strings"
)

// Descriptor describes one bindable leaf path and its declared type.
type Descriptor struct {
	Path string
	Type string
}

// Describe lists the dotted leaf paths reachable from root's type using the
// names this navigator resolves first (tag name when present, field name
// otherwise). Recursive types stop at the first revisit.
func (n *Reflect) Describe(root any) []Descriptor {
	if root == nil {
		return nil
	}
	var out []Descriptor
	n.describeType(derefType(reflect.TypeOf(root)), "", map[reflect.Type]bool{}, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (n *Reflect) describeType(t reflect.Type, prefix string, seen map[reflect.Type]bool, out *[]Descriptor) {
	if t.Kind() != reflect.Struct || seen[t] {
		return
	}
	seen[t] = true
	defer delete(seen, t)

	for _, sf := range n.exportedFields(t) {
		if sf.Anonymous && derefType(sf.Type).Kind() == reflect.Struct {
			// promoted fields are listed individually by VisibleFields
			continue
		}
		name := sf.Name
		if n.tagName != "" {
			if tagged := tagName(sf, n.tagName); tagged != "" {
				name = tagged
			}
		}
		path := joinPath(prefix, name)
		inner := derefType(sf.Type)
		if inner.Kind() == reflect.Struct && !isLeafStruct(inner) {
			n.describeType(inner, path, seen, out)
			continue
		}
		*out = append(*out, Descriptor{Path: path, Type: sf.Type.String()})
	}
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// isLeafStruct reports struct types that bind as a single value, such as
// time.Time, rather than as a nested object.
func isLeafStruct(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	return t.PkgPath() == "math/big"
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
