package metrics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads the first sheet of a workbook as a metrics table. The
// first row is the header; rows are passed through the same dataframe
// pipeline as CSV so typing behaves identically.
func loadXLSX(path string) (*Dataset, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}
	// Ragged rows are padded so every record matches the header width.
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			r = padded
		}
		records = append(records, r[:width])
	}
	df := dataframe.LoadRecords(records)
	if df.Err != nil {
		return nil, fmt.Errorf("load %s: %w", path, df.Err)
	}
	return fromDataFrame(df)
}
