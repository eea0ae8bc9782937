package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/fsql/query"
)

// TableFormatter renders results as an aligned console table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new console table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the header and every row
func (t *TableFormatter) Format(rs *query.ResultSet) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(rs.ColumnNames())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rs.Strings())
	table.Render()
	return nil
}
