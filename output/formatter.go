package output

import (
	"io"

	"github.com/vegasq/fsql/query"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a result in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the result in the formatter's specific format
	Format(rs *query.ResultSet) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for a sink format. FormatPrint maps to the
// console table.
func New(format query.Format, w io.Writer) Formatter {
	switch format {
	case query.FormatCSV:
		return NewCSVFormatter(w)
	case query.FormatJSON:
		return NewJSONFormatter(w)
	case query.FormatParquet:
		return NewParquetFormatter(w)
	default:
		return NewTableFormatter(w)
	}
}
