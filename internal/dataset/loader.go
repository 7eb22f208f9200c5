package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSourceNotFound is returned when the dataset file does not exist. It is
// fatal to the session: the server refuses to start without its dataset.
var ErrSourceNotFound = errors.New("dataset source not found")

// LoadStats summarizes a completed load.
type LoadStats struct {
	Rows             int `json:"rows"`
	Columns          int `json:"columns"`
	MalformedAmounts int `json:"malformed_amounts"`
}

// Load reads a dataset file into an immutable Table. CSV is the default
// format; .xlsx/.xlsm files are read through excelize. The purchase amount
// column is normalized during the load so aggregation never sees raw
// currency strings.
func Load(path string, logger *slog.Logger) (*Table, LoadStats, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, LoadStats{}, fmt.Errorf("dataset %s has no header row", path)
	}

	header := rows[0]
	indices := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if name == "" {
			continue
		}
		indices[name] = i
		columns = append(columns, name)
	}

	table, stats := buildTable(columns, indices, rows[1:], logger)

	logger.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", stats.Rows),
		slog.Int("columns", stats.Columns),
		slog.Int("malformed_amounts", stats.MalformedAmounts))

	return table, stats, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	// First sheet with more than a header row wins.
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err == nil && len(rows) > 1 {
			return rows, nil
		}
	}
	return f.GetRows(sheets[0])
}

func buildTable(columns []string, indices map[string]int, raw [][]string, logger *slog.Logger) (*Table, LoadStats) {
	cell := func(row []string, col string) string {
		idx, ok := indices[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	number := func(row []string, col string) float64 {
		v, _ := strconv.ParseFloat(strings.ReplaceAll(cell(row, col), ",", ""), 64)
		return v
	}

	hasAmount := false
	if _, ok := indices[ColPurchaseAmount]; ok {
		hasAmount = true
	}

	records := make([]Record, 0, len(raw))
	malformed := 0
	for i, row := range raw {
		if isEmptyRow(row) {
			continue
		}

		r := Record{
			CustomerID:          cell(row, ColCustomerID),
			Gender:              cell(row, ColGender),
			IncomeLevel:         cell(row, ColIncomeLevel),
			PurchaseChannel:     cell(row, ColPurchaseChannel),
			PurchaseCategory:    cell(row, ColPurchaseCategory),
			ProductCategory:     cell(row, ColProductCategory),
			FrequencyOfPurchase: number(row, ColFrequencyOfPurchase),
			PurchaseFrequency:   number(row, ColPurchaseFrequency),
			BrandLoyalty:        number(row, ColBrandLoyalty),
		}
		r.Age = int(number(row, ColAge))

		if hasAmount {
			amount, err := ParseAmount(cell(row, ColPurchaseAmount))
			if err != nil {
				// Row-local failure: keep the row, null the amount.
				malformed++
				logger.Warn("malformed purchase amount",
					slog.Int("row", i+2),
					slog.String("value", cell(row, ColPurchaseAmount)))
			} else {
				r.PurchaseAmount = amount
				r.AmountValid = true
			}
		}

		records = append(records, r)
	}

	table := NewTable(columns, records)
	stats := LoadStats{
		Rows:             len(records),
		Columns:          len(columns),
		MalformedAmounts: malformed,
	}
	return table, stats
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
