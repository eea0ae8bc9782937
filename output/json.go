package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vegasq/fsql/query"
)

// JSONFormatter outputs results as a JSON array of rows, each row an array
// of display strings
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes all rows as a single JSON document
func (j *JSONFormatter) Format(rs *query.ResultSet) error {
	encoder := json.NewEncoder(j.writer)
	if err := encoder.Encode(rs.Strings()); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
