// Package fixture binds data-driven test rows onto Go values and checks Go
// values against them.
//
// A Record wraps one row: a flat map of dotted keys ("address.city") to raw
// string values. PutValuesTo writes each value onto the matching nested field
// of a target, creating nil intermediate structs on the way. Matches and
// Compare read the same fields back and compare them with the row, converting
// each raw value to the field's declared type first.
//
// Keys starting with "_" are row metadata (_ignoreRow, _expectFail) and are
// never bound; entries with an empty value are skipped as well.
//
// Data flow:
//
//	godog table / YAML -> table.FromTable / table.FromYAML -> []*Record
//	Record.PutValuesTo(target) -> navigate.Navigator.SetValue
//	Record.Matches(target)     -> navigate.Navigator.Value + convert.Registry
package fixture
