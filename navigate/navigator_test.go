package navigate

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type address struct {
	City    string
	ZipCode string `fixture:"zip"`
	Geo     *geo
}

type geo struct {
	Lat float64 `json:"latitude"`
}

type audit struct {
	CreatedBy string
}

type person struct {
	audit
	Name     string
	Age      int
	Address  *address
	Home     address
	Joined   time.Time
	Nickname *string
	Secret   string `fixture:"-"`
	Any      any
	hidden   string
}

func TestValueResolvesNestedPaths(t *testing.T) {
	n := NewReflect()
	target := &person{
		Name:    "Alice",
		Address: &address{City: "NYC", ZipCode: "10001"},
	}
	cases := map[string]any{
		"Name":         "Alice",
		"name":         "Alice",
		"Address.City": "NYC",
		"address.zip":  "10001",
		"Home.City":    "",
	}
	for path, want := range cases {
		got, err := n.Value(target, path)
		if err != nil {
			t.Fatalf("Value(%q) unexpected error: %v", path, err)
		}
		if got != want {
			t.Fatalf("Value(%q) = %#v, want %#v", path, got, want)
		}
	}
}

func TestValueThroughNilIntermediateFails(t *testing.T) {
	n := NewReflect()
	if _, err := n.Value(&person{}, "Address.City"); !errors.Is(err, ErrNilIntermediate) {
		t.Fatalf("expected ErrNilIntermediate, got %v", err)
	}
	if _, err := n.Value(&person{Address: &address{}}, "Address.Geo.Lat"); !errors.Is(err, ErrNilIntermediate) {
		t.Fatalf("expected ErrNilIntermediate for nested nil, got %v", err)
	}
}

func TestValueNilLeafIsNil(t *testing.T) {
	n := NewReflect()
	got, err := n.Value(&person{}, "Address")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsNil(got) {
		t.Fatalf("expected nil leaf, got %#v", got)
	}
}

func TestValueUnknownField(t *testing.T) {
	n := NewReflect()
	if _, err := n.Value(&person{}, "Missing"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := n.Value(&person{}, "hidden"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unexported fields must not resolve, got %v", err)
	}
	if _, err := n.Value(&person{}, "Secret"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("fields tagged with - must not resolve, got %v", err)
	}
	if _, err := n.Value(&person{}, "Name.First"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField traversing a scalar, got %v", err)
	}
}

func TestCaseSensitiveMode(t *testing.T) {
	n := NewReflect(WithCaseInsensitive(false))
	if _, err := n.Value(&person{}, "name"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected case-sensitive lookup to fail, got %v", err)
	}
}

func TestTypeReturnsDeclaredType(t *testing.T) {
	n := NewReflect()
	cases := map[string]reflect.Type{
		"Address":              reflect.TypeFor[*address](),
		"Address.Geo.latitude": reflect.TypeFor[float64](),
		"Joined":               reflect.TypeFor[time.Time](),
		"Nickname":             reflect.TypeFor[*string](),
		"CreatedBy":            reflect.TypeFor[string](),
	}
	for path, want := range cases {
		got, err := n.Type(&person{}, path)
		if err != nil {
			t.Fatalf("Type(%q) unexpected error: %v", path, err)
		}
		if got != want {
			t.Fatalf("Type(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestSetValueCoercesStrings(t *testing.T) {
	n := NewReflect()
	target := &person{Address: &address{}}
	writes := map[string]any{
		"Name":         "Bob",
		"Age":          "31",
		"Address.City": "Paris",
		"Joined":       "2024-01-02",
		"Nickname":     "bobby",
		"CreatedBy":    "seed",
		"Any":          "anything",
	}
	for path, value := range writes {
		if err := n.SetValue(target, path, value); err != nil {
			t.Fatalf("SetValue(%q) unexpected error: %v", path, err)
		}
	}
	if target.Name != "Bob" || target.Age != 31 || target.Address.City != "Paris" {
		t.Fatalf("unexpected target state: %+v", target)
	}
	if target.Nickname == nil || *target.Nickname != "bobby" {
		t.Fatalf("expected nickname pointer to be set")
	}
	if target.CreatedBy != "seed" || target.Any != "anything" {
		t.Fatalf("expected promoted and interface fields to be set: %+v", target)
	}
	if !target.Joined.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected joined time %v", target.Joined)
	}
}

func TestSetValueFailures(t *testing.T) {
	n := NewReflect()
	if err := n.SetValue(person{}, "Name", "x"); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for non-pointer root, got %v", err)
	}
	if err := n.SetValue(&person{}, "Address.City", "x"); !errors.Is(err, ErrNilIntermediate) {
		t.Fatalf("expected ErrNilIntermediate, got %v", err)
	}
	if err := n.SetValue(&person{}, "Age", 3.5i); !errors.Is(err, ErrNotSettable) {
		t.Fatalf("expected ErrNotSettable, got %v", err)
	}
	if err := n.SetValue(&person{}, "Age", "old"); err == nil {
		t.Fatalf("expected conversion failure")
	}
}

func TestInstantiate(t *testing.T) {
	v, err := Instantiate(reflect.TypeFor[*address]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(*address); !ok {
		t.Fatalf("expected *address, got %T", v)
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[any](),
		reflect.TypeFor[map[string]string](),
		reflect.TypeFor[*int](),
		reflect.TypeFor[address](),
	} {
		if _, err := Instantiate(typ); !errors.Is(err, ErrNotConstructible) {
			t.Fatalf("Instantiate(%s) expected ErrNotConstructible, got %v", typ, err)
		}
	}
}

func TestDescribeListsLeafPaths(t *testing.T) {
	got := NewReflect().Describe(&person{})
	paths := make([]string, 0, len(got))
	for _, d := range got {
		paths = append(paths, d.Path)
	}
	want := []string{
		"Address.City",
		"Address.Geo.Lat",
		"Address.zip",
		"Age",
		"Any",
		"CreatedBy",
		"Home.City",
		"Home.Geo.Lat",
		"Home.zip",
		"Joined",
		"Name",
		"Nickname",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("describe mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneSeparatesStructGraph(t *testing.T) {
	joined := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	original := &person{Name: "A", Address: &address{City: "X", Geo: &geo{Lat: 1}}, Joined: joined}
	clone := Clone(original)
	if clone == original || clone.Address == original.Address || clone.Address.Geo == original.Address.Geo {
		t.Fatalf("struct pointers should be reallocated")
	}

	n := NewReflect()
	for path, value := range map[string]any{"Name": "B", "Address.City": "Y", "Address.Geo.Lat": "2"} {
		if err := n.SetValue(clone, path, value); err != nil {
			t.Fatalf("SetValue(%q) unexpected error: %v", path, err)
		}
	}
	if original.Name != "A" || original.Address.City != "X" || original.Address.Geo.Lat != 1 {
		t.Fatalf("clone writes reached original: %+v / %+v", original, original.Address)
	}
	if !clone.Joined.Equal(joined) {
		t.Fatalf("expected time to survive clone, got %v", clone.Joined)
	}
}

func TestClonePreservesSharingAndCycles(t *testing.T) {
	type node struct {
		Label string
		Next  *node
		Tags  map[string]string
	}
	shared := &address{City: "X"}
	original := person{Address: shared, Any: shared}
	clone := Clone(original)
	if clone.Address != clone.Any.(*address) {
		t.Fatalf("fields sharing a struct should share its copy")
	}
	if clone.Address == shared {
		t.Fatalf("shared struct should still be copied")
	}

	ring := &node{Label: "a", Tags: map[string]string{"k": "v"}}
	ring.Next = ring
	copied := Clone(ring)
	if copied == ring || copied.Next != copied {
		t.Fatalf("cycle should map onto the copy")
	}
	copied.Tags["k"] = "w"
	if ring.Tags["k"] != "w" {
		t.Fatalf("maps are not walked by navigators and stay shared")
	}
}
