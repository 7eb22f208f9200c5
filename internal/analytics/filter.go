package analytics

import "shopsight/internal/dataset"

// Selection maps a filterable column name to the set of allowed values.
// An empty or missing set means the column is unconstrained; it never means
// "exclude everything". Column names not present in the table's schema are
// ignored rather than treated as errors.
type Selection map[string][]string

// Filter returns a new table view containing the rows that satisfy every
// constrained column (logical AND across columns). The input table is never
// mutated.
func Filter(t *dataset.Table, sel Selection) *dataset.Table {
	active := make(map[string]map[string]bool)
	for column, values := range sel {
		if len(values) == 0 || !t.HasColumn(column) {
			continue
		}
		allowed := make(map[string]bool, len(values))
		for _, v := range values {
			allowed[v] = true
		}
		active[column] = allowed
	}
	if len(active) == 0 {
		return t.WithRows(t.Rows())
	}

	kept := make([]dataset.Record, 0, t.Len())
	for _, r := range t.Rows() {
		match := true
		for column, allowed := range active {
			v, ok := t.CategoricalValue(r, column)
			if !ok || !allowed[v] {
				match = false
				break
			}
		}
		if match {
			kept = append(kept, r)
		}
	}
	return t.WithRows(kept)
}
