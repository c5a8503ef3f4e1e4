package keyword

import (
	"fmt"
	"strings"
)

// YesNo is a two-valued flag used by fixture meta columns such as
// _ignoreRow and _expectFail.
type YesNo int

const (
	No YesNo = iota
	Yes
)

func (v YesNo) String() string {
	if v == Yes {
		return "yes"
	}
	return "no"
}

// IsYes reports whether the flag is set.
func (v YesNo) IsYes() bool {
	return v == Yes
}

// ParseYesNo converts a fixture cell into a YesNo. Matching is case-insensitive
// and accepts the common short and boolean spellings.
func ParseYesNo(value string) (YesNo, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "t", "1":
		return Yes, nil
	case "no", "n", "false", "f", "0":
		return No, nil
	default:
		return No, fmt.Errorf("keyword: invalid yes/no value %q", value)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *YesNo) UnmarshalText(text []byte) error {
	parsed, err := ParseYesNo(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v YesNo) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
