// Package output writes statement results to CSV, JSON, Parquet or a
// console table.
//
// # Supported Formats
//
//   - CSV: header row, then one record per row
//   - JSON: an array of rows, each an array of strings
//   - Parquet: one optional string column per header
//   - Table: an aligned console table (used for printing)
//
// Cells are written as their display strings. Absent values are empty
// strings, except in Parquet where they are nulls.
//
// # Exporting
//
// Exporter implements query.Exporter and chooses the formatter from the
// format derived from the INSERT target. The file is written to a temporary
// name and renamed over the target once the formatter succeeds:
//
//	exec := query.NewExecutor(output.NewExporter(os.Stdout), parser.MSSQL, nil)
//	_, err := exec.ExecuteSQL("INSERT INTO out.csv SELECT Name, Size FROM [./docs]")
//
// # Writing to Different Destinations
//
// Change output destination dynamically:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	formatter.SetOutput(file)
//	if err := formatter.Format(rs); err != nil {
//	    log.Fatal(err)
//	}
//
// # CSV Sanitizing
//
// Values starting with =, +, -, @ or a control character are prefixed with
// a single quote so spreadsheet applications do not evaluate them. Set
// CSVFormatter.Raw to write values unchanged. Exporter always writes raw
// values.
package output
