package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixture "github.com/goliatone/go-fixtures"
)

type address struct {
	City string
	Zip  string
}

type person struct {
	Name    string
	Age     int
	Score   float64
	Address *address
}

func newTable(rows ...[]string) *godog.Table {
	tbl := &messages.PickleTable{}
	for _, row := range rows {
		cells := make([]*messages.PickleTableCell, len(row))
		for i, value := range row {
			cells[i] = &messages.PickleTableCell{Value: value}
		}
		tbl.Rows = append(tbl.Rows, &messages.PickleTableRow{Cells: cells})
	}
	return tbl
}

func TestFromTable(t *testing.T) {
	tbl := newTable(
		[]string{"name", "age", "address.city", "_ignoreRow"},
		[]string{"Alice", "30", "Paris", ""},
		[]string{"Bob", "", "", "yes"},
	)
	records, err := FromTable(tbl)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{
		"name": "Alice", "age": "30", "address.city": "Paris", "_ignoreRow": "",
	}, records[0].Data())

	var alice person
	require.NoError(t, records[0].PutValuesTo(&alice))
	assert.Equal(t, person{Name: "Alice", Age: 30, Address: &address{City: "Paris"}}, alice)

	ok, err := records[1].Matches(&person{Name: "Bob", Age: 99})
	require.NoError(t, err)
	assert.True(t, ok, "blank cells should be skipped")

	active, err := Active(records)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].Equal(records[0]))
}

func TestFromTableRejectsMalformedTables(t *testing.T) {
	_, err := FromTable(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = FromTable(newTable())
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = FromTable(newTable([]string{"name", "age"}, []string{"Alice"}))
	assert.ErrorIs(t, err, ErrRaggedRow)

	_, err = FromTable(newTable([]string{"name", "name"}, []string{"a", "b"}))
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = FromTable(newTable([]string{"name", " "}, []string{"a", "b"}))
	assert.ErrorIs(t, err, fixture.ErrInvalidPath)
}

func TestActiveRejectsUnknownFlag(t *testing.T) {
	records, err := FromTable(newTable(
		[]string{"name", "_ignoreRow"},
		[]string{"Alice", "no"},
		[]string{"Bob", "yse"},
	))
	require.NoError(t, err)

	_, err = Active(records)
	require.Error(t, err)
	assert.ErrorContains(t, err, "row 2")
	var bindErr *fixture.BindingError
	assert.ErrorAs(t, err, &bindErr)
}

func TestFromTableHeaderOnly(t *testing.T) {
	records, err := FromTable(newTable([]string{"name"}))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFromTablePassesOptions(t *testing.T) {
	var events []fixture.BindEvent
	records, err := FromTable(
		newTable([]string{"name"}, []string{"Alice"}),
		fixture.WithLogger(fixture.BindLoggerFunc(func(e fixture.BindEvent) { events = append(events, e) })),
	)
	require.NoError(t, err)
	require.NoError(t, records[0].PutValuesTo(&person{}))
	assert.Len(t, events, 1)
}

func TestFromYAMLFile(t *testing.T) {
	records, err := FromYAMLFile(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{
		"name":         "Alice",
		"age":          "30",
		"score":        "1.0",
		"address.city": "Paris",
		"address.zip":  "75001",
	}, records[0].Data())
	assert.Equal(t, "", records[1].Data()["nickname"])
	ignore, err := records[1].IgnoreRow()
	require.NoError(t, err)
	assert.True(t, ignore)

	ok, err := records[0].Matches(&person{Name: "Alice", Age: 30, Score: 1, Address: &address{City: "Paris", Zip: "75001"}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFromYAMLErrors(t *testing.T) {
	_, err := FromYAML(strings.NewReader("name: Alice\n"))
	assert.ErrorContains(t, err, "must be a sequence")

	_, err = FromYAML(strings.NewReader("- [1, 2]\n"))
	assert.ErrorContains(t, err, "must be a mapping")

	_, err = FromYAML(strings.NewReader("- tags: [a, b]\n"))
	assert.ErrorContains(t, err, "sequence values are not supported")

	_, err = FromYAML(strings.NewReader("- a.b: 1\n  a:\n    b: 2\n"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	records, err := FromYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = FromYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromYAMLScalarAlias(t *testing.T) {
	src := "- city: &c Lima\n  home: *c\n"
	records, err := FromYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]string{"city": "Lima", "home": "Lima"}, records[0].Data())
}
