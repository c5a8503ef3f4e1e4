package fixture

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Report lists the outcome of comparing a record against a target.
type Report struct {
	Checked    int        `json:"checked"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Mismatch details one key whose target value differs from the fixture.
type Mismatch struct {
	Path     string `json:"path"`
	Raw      string `json:"raw"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

// Matched reports whether every checked entry matched.
func (r Report) Matched() bool {
	return len(r.Mismatches) == 0
}

func (r Report) String() string {
	if r.Matched() {
		return "fixture: " + strconv.Itoa(r.Checked) + " entries matched"
	}
	lines := make([]string, 0, len(r.Mismatches)+1)
	lines = append(lines, "fixture: "+strconv.Itoa(len(r.Mismatches))+" of "+strconv.Itoa(r.Checked)+" entries mismatched")
	for _, m := range r.Mismatches {
		lines = append(lines, "  "+m.String())
	}
	return strings.Join(lines, "\n")
}

func (m Mismatch) String() string {
	return spew.Sprintf("%s: expected %v (raw %s), got %v", m.Path, m.Expected, strconv.Quote(m.Raw), m.Actual)
}

// ToJSON serialises the report for logging or transport helpers.
func (r Report) ToJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(alias(r))
}

// ReportFromJSON deserialises a payload produced by ToJSON. Expected and
// Actual come back as generic JSON values.
func ReportFromJSON(payload []byte) (Report, error) {
	type alias Report
	var report alias
	if err := json.Unmarshal(payload, &report); err != nil {
		return Report{}, err
	}
	return Report(report), nil
}
