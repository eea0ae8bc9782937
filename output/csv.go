package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/fsql/query"
)

// CSVFormatter outputs results as CSV with a header row
type CSVFormatter struct {
	writer io.Writer
	// Raw disables formula sanitizing of cells
	Raw bool
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the header followed by one record per row. Rows shorter
// than the header are padded with empty fields.
func (c *CSVFormatter) Format(rs *query.ResultSet) error {
	csvWriter := csv.NewWriter(c.writer)

	columns := rs.ColumnNames()
	if err := csvWriter.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rs.Strings() {
		record := make([]string, max(len(row), len(columns)))
		for i, v := range row {
			record[i] = c.formatValue(v)
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue prefixes values that spreadsheet applications would run as
// formulas
func (c *CSVFormatter) formatValue(v string) string {
	if c.Raw || v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(v, "'", "''")
	}
	return v
}
