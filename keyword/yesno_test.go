package keyword

import "testing"

func TestParseYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  YesNo
	}{
		{"yes", Yes},
		{"YES", Yes},
		{" y ", Yes},
		{"true", Yes},
		{"no", No},
		{"N", No},
		{"false", No},
	}
	for _, tc := range cases {
		got, err := ParseYesNo(tc.input)
		if err != nil {
			t.Fatalf("ParseYesNo(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseYesNo(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseYesNoRejectsUnknown(t *testing.T) {
	if _, err := ParseYesNo("maybe"); err == nil {
		t.Fatalf("expected error for unknown value")
	}
}

func TestYesNoTextRoundTrip(t *testing.T) {
	var v YesNo
	if err := v.UnmarshalText([]byte("Yes")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsYes() {
		t.Fatalf("expected yes after unmarshal")
	}
	text, _ := v.MarshalText()
	if string(text) != "yes" {
		t.Fatalf("expected marshalled text yes, got %q", text)
	}
}
