package convert

import (
	"errors"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type status string

type level int

type upper string

func (u *upper) UnmarshalText(text []byte) error {
	*u = upper(strings.ToUpper(string(text)))
	return nil
}

func TestConvertScalarKinds(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		name  string
		input string
		typ   reflect.Type
		want  any
	}{
		{"string", "hello", reflect.TypeFor[string](), "hello"},
		{"named string", "active", reflect.TypeFor[status](), status("active")},
		{"int", "42", reflect.TypeFor[int](), 42},
		{"int trims", " 7 ", reflect.TypeFor[int64](), int64(7)},
		{"named int", "3", reflect.TypeFor[level](), level(3)},
		{"uint8", "255", reflect.TypeFor[uint8](), uint8(255)},
		{"float", "1.5", reflect.TypeFor[float64](), 1.5},
		{"bool", "true", reflect.TypeFor[bool](), true},
		{"any", "raw", reflect.TypeFor[any](), "raw"},
		{"duration", "1m30s", reflect.TypeFor[time.Duration](), 90 * time.Second},
		{"text unmarshaler", "abc", reflect.TypeFor[upper](), upper("ABC")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Convert(tc.input, tc.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("converted value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertPointerAllocates(t *testing.T) {
	r := NewRegistry()
	got, err := r.Convert("12", reflect.TypeFor[*int]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ptr, ok := got.(*int)
	if !ok || ptr == nil || *ptr != 12 {
		t.Fatalf("expected *int pointing at 12, got %#v", got)
	}
}

func TestConvertBlankYieldsNil(t *testing.T) {
	r := NewRegistry()
	for _, typ := range []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[*int](),
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[uuid.UUID](),
	} {
		got, err := r.Convert("  ", typ)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", typ, err)
		}
		if got != nil {
			t.Fatalf("%s: expected nil for blank input, got %#v", typ, got)
		}
	}
	got, err := r.Convert("", reflect.TypeFor[string]())
	if err != nil || got != "" {
		t.Fatalf("expected empty string to stay a string, got %#v (%v)", got, err)
	}
}

func TestConvertInvalidInput(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Convert("abc", reflect.TypeFor[int]()); err == nil {
		t.Fatalf("expected error converting abc to int")
	}
	if _, err := r.Convert("x", reflect.TypeFor[[]string]()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for slices, got %v", err)
	}
}

func TestConvertTimeLayouts(t *testing.T) {
	r := NewRegistry()
	got, err := To[time.Time](r, "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", got)
	}

	custom := NewRegistry(WithTimeLayouts("02/01/2006"))
	got, err = To[time.Time](custom, "15/06/2023")
	if err != nil {
		t.Fatalf("unexpected error with custom layout: %v", err)
	}
	if got.Month() != time.June || got.Day() != 15 {
		t.Fatalf("unexpected time %v", got)
	}
	if _, err := To[time.Time](custom, "2024-03-01"); err == nil {
		t.Fatalf("expected default layouts to be replaced")
	}
}

func TestConvertUUIDAndBigNumbers(t *testing.T) {
	r := NewRegistry()
	id := uuid.New()
	gotID, err := To[uuid.UUID](r, id.String())
	if err != nil || gotID != id {
		t.Fatalf("expected %s, got %s (%v)", id, gotID, err)
	}

	rat, err := To[*big.Rat](r, "1.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rat.Cmp(big.NewRat(3, 2)) != 0 {
		t.Fatalf("expected 3/2, got %s", rat)
	}
}

func TestRegisterCustomConverter(t *testing.T) {
	r := NewRegistry()
	err := Register(r, func(value string) (status, error) {
		return status(strings.ToLower(value)), nil
	})
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	got, err := To[status](r, "ACTIVE")
	if err != nil || got != "active" {
		t.Fatalf("expected custom converter to run, got %q (%v)", got, err)
	}
	if err := Register(r, func(value string) (status, error) { return "", nil }); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewRegistry()
	clone := r.Clone()
	if err := Register(clone, func(value string) (status, error) { return "cloned", nil }); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	got, err := To[status](r, "orig")
	if err != nil || got != "orig" {
		t.Fatalf("original registry should not see clone registration, got %q", got)
	}
}
