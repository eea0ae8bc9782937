// Package query executes parsed statements against directory tables.
//
// This package implements:
//   - SELECT with column projection, wildcards (* and t.*) and aliases
//   - DISTINCT, TOP n, LIMIT and OFFSET
//   - INNER and LEFT OUTER equality joins on table.column = table.column
//   - WHERE predicates built from column comparisons
//   - INSERT INTO target SELECT ..., exported by file extension
//   - UPDATE ... WHERE, which selects candidate rows without writing
//   - SHOW COLUMNS, which lists the canonical columns
//
// # Basic Usage
//
// Execute a statement string:
//
//	exec := query.NewExecutor(output.NewExporter(os.Stdout), parser.MSSQL, slog.Default())
//	results, err := exec.ExecuteSQL("SELECT Name, Size FROM [./test]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, row := range results[0].Strings() {
//	    fmt.Println(row)
//	}
//
// # Expressions
//
// Evaluate converts an expression into an ExprResult before any row is
// read. Column references become Select or CompoundSelect, literals become
// Value, and comparisons between two columns become a BinaryOp that is
// applied per record. Two literals fold into a single Value:
//
//	res, _ := query.Evaluate(&parser.BinaryExpr{
//	    Left:     &parser.Literal{Kind: parser.LiteralNumber, Value: "2"},
//	    Operator: parser.TokenPlus,
//	    Right:    &parser.Literal{Kind: parser.LiteralNumber, Value: "2"},
//	})
//	// res == query.Value{Literal: schema.Number("4")}
//
// Comparing a column with a literal is not supported and fails with a
// general error.
//
// # Joins
//
// InnerJoin and LeftOuterJoin are generic hash joins usable on any row
// type. The executor validates every ON clause before it reads a table.
package query
