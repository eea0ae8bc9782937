package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/fsql/query"
)

// ParquetFormatter writes results as a Parquet file with one optional
// string column per header. Absent values are stored as nulls.
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new Parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes every row of rs and closes the Parquet footer
func (p *ParquetFormatter) Format(rs *query.ResultSet) error {
	names := fieldNames(rs.ColumnNames())

	group := make(parquet.Group, len(names))
	for _, name := range names {
		group[name] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("fsql", group)

	// leaf columns are ordered by field name
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	columnIndex := make(map[string]int, len(sorted))
	for i, name := range sorted {
		columnIndex[name] = i
	}

	rows := make([]parquet.Row, 0, len(rs.Rows))
	for _, cells := range rs.Rows {
		row := make(parquet.Row, len(names))
		for i, name := range names {
			idx := columnIndex[name]
			if i >= len(cells) || !cells[i].Value.Valid {
				row[idx] = parquet.NullValue().Level(0, 0, idx)
				continue
			}
			row[idx] = parquet.ValueOf(cells[i].String()).Level(0, 1, idx)
		}
		rows = append(rows, row)
	}

	writer := parquet.NewWriter(p.writer, schema)
	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// fieldNames makes header names unique; repeats get a numeric suffix
func fieldNames(columns []string) []string {
	seen := make(map[string]bool, len(columns))
	out := make([]string, len(columns))
	for i, name := range columns {
		if name == "" {
			name = "column"
		}
		unique := name
		for n := 2; seen[unique]; n++ {
			unique = name + "_" + strconv.Itoa(n)
		}
		seen[unique] = true
		out[i] = unique
	}
	return out
}
