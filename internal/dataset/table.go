package dataset

import "sort"

// Column names as they appear in the source dataset. The dataset carries two
// distinct category columns and two distinct frequency columns; they are kept
// separate because the dashboard and the insights flow read different ones.
const (
	ColCustomerID          = "Customer_ID"
	ColAge                 = "Age"
	ColGender              = "Gender"
	ColIncomeLevel         = "Income_Level"
	ColPurchaseChannel     = "Purchase_Channel"
	ColPurchaseCategory    = "Purchase_Category"
	ColProductCategory     = "Product_Category"
	ColPurchaseAmount      = "Purchase_Amount"
	ColFrequencyOfPurchase = "Frequency_of_Purchase"
	ColPurchaseFrequency   = "Purchase_Frequency"
	ColBrandLoyalty        = "Brand_Loyalty"
)

// Record is a single purchase event.
type Record struct {
	CustomerID          string  `json:"customer_id"`
	Age                 int     `json:"age"`
	Gender              string  `json:"gender"`
	IncomeLevel         string  `json:"income_level"`
	PurchaseChannel     string  `json:"purchase_channel"`
	PurchaseCategory    string  `json:"purchase_category"`
	ProductCategory     string  `json:"product_category"`
	PurchaseAmount      float64 `json:"purchase_amount"`
	AmountValid         bool    `json:"-"`
	FrequencyOfPurchase float64 `json:"frequency_of_purchase"`
	PurchaseFrequency   float64 `json:"purchase_frequency"`
	BrandLoyalty        float64 `json:"brand_loyalty"`
}

// Table is an immutable, ordered collection of records sharing a schema.
// Filtering produces a new Table; the rows slice is never mutated in place.
type Table struct {
	columns map[string]bool
	rows    []Record
}

// NewTable builds a table over the given rows. columns lists the column
// names that were actually present in the source file.
func NewTable(columns []string, rows []Record) *Table {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &Table{columns: set, rows: rows}
}

// HasColumn reports whether the source file carried the named column.
func (t *Table) HasColumn(name string) bool {
	return t.columns[name]
}

// Columns returns the column names present in the table, sorted.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Rows returns the backing rows. Callers must treat the slice as read-only.
func (t *Table) Rows() []Record {
	return t.rows
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.rows)
}

// Head returns up to n leading rows in file order.
func (t *Table) Head(n int) []Record {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return t.rows[:n]
}

// WithRows returns a new table over the given rows, keeping the schema.
func (t *Table) WithRows(rows []Record) *Table {
	return &Table{columns: t.columns, rows: rows}
}

// CategoricalValue returns the string value of a categorical column for a
// record. The second return is false when the column is not categorical or
// not part of the schema.
func (t *Table) CategoricalValue(r Record, column string) (string, bool) {
	if !t.columns[column] {
		return "", false
	}
	switch column {
	case ColCustomerID:
		return r.CustomerID, true
	case ColGender:
		return r.Gender, true
	case ColIncomeLevel:
		return r.IncomeLevel, true
	case ColPurchaseChannel:
		return r.PurchaseChannel, true
	case ColPurchaseCategory:
		return r.PurchaseCategory, true
	case ColProductCategory:
		return r.ProductCategory, true
	}
	return "", false
}

// NumericValue returns the numeric value of a column for a record. For the
// purchase amount the second return is false when the source value could not
// be parsed, so malformed amounts never leak into aggregates as zeros.
func (t *Table) NumericValue(r Record, column string) (float64, bool) {
	if !t.columns[column] {
		return 0, false
	}
	switch column {
	case ColAge:
		return float64(r.Age), true
	case ColPurchaseAmount:
		return r.PurchaseAmount, r.AmountValid
	case ColFrequencyOfPurchase:
		return r.FrequencyOfPurchase, true
	case ColPurchaseFrequency:
		return r.PurchaseFrequency, true
	case ColBrandLoyalty:
		return r.BrandLoyalty, true
	}
	return 0, false
}

// Options returns the sorted distinct non-empty values of a categorical
// column. An unknown column yields an empty slice.
func (t *Table) Options(column string) []string {
	seen := make(map[string]bool)
	for _, r := range t.rows {
		v, ok := t.CategoricalValue(r, column)
		if !ok || v == "" {
			continue
		}
		seen[v] = true
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Ages returns the sorted distinct ages present in the table.
func (t *Table) Ages() []int {
	seen := make(map[int]bool)
	for _, r := range t.rows {
		seen[r.Age] = true
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
