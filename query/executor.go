package query

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/parser"
	"github.com/vegasq/fsql/reader"
	"github.com/vegasq/fsql/schema"
)

// Format selects the sink an INSERT writes to
type Format int

const (
	FormatPrint Format = iota
	FormatCSV
	FormatJSON
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "print"
	}
}

// FormatForTarget picks the sink from the target's extension
func FormatForTarget(target string) Format {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".parquet":
		return FormatParquet
	default:
		return FormatPrint
	}
}

// Exporter writes an INSERT result to its target
type Exporter interface {
	Export(target string, format Format, rs *ResultSet) error
}

// Executor runs parsed statements against the filesystem.
// Statements share no state; each one loads its own tables.
type Executor struct {
	// LoadTable lists a directory; defaults to reader.LoadTable
	LoadTable func(dir string) ([]*reader.Row, error)
	// Exporter receives INSERT results
	Exporter Exporter
	// Dialect is used by ExecuteSQL
	Dialect parser.Dialect
	Logger  *slog.Logger
}

// NewExecutor creates an executor that reads tables from disk
func NewExecutor(exporter Exporter, dialect parser.Dialect, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		LoadTable: reader.LoadTable,
		Exporter:  exporter,
		Dialect:   dialect,
		Logger:    logger,
	}
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Executor) load(table string) ([]*reader.Row, error) {
	load := e.LoadTable
	if load == nil {
		load = reader.LoadTable
	}
	rows, err := load(table)
	if err != nil {
		return nil, err
	}
	e.logger().Debug("loaded table", "table", table, "rows", len(rows))
	return rows, nil
}

// ExecuteSQL parses sql and executes each statement in order. Execution
// stops at the first failing statement.
func (e *Executor) ExecuteSQL(sql string) ([]*ResultSet, error) {
	stmts, err := parser.Parse(sql, e.Dialect)
	if err != nil {
		return nil, err
	}

	results := make([]*ResultSet, 0, len(stmts))
	for _, stmt := range stmts {
		rs, err := e.Execute(stmt)
		if err != nil {
			return results, err
		}
		results = append(results, rs)
	}
	return results, nil
}

// Execute runs one statement
func (e *Executor) Execute(stmt parser.Statement) (*ResultSet, error) {
	switch s := stmt.(type) {
	case *parser.Select:
		return e.executeSelect(s)
	case *parser.Insert:
		return e.executeInsert(s)
	case *parser.Update:
		return e.executeUpdate(s)
	case *parser.ShowColumns:
		return showColumns(s.Table), nil
	default:
		return nil, errs.General("unsupported statement %T", stmt)
	}
}

// executeSelect runs: joins, WHERE, DISTINCT, projection, TOP, LIMIT/OFFSET
func (e *Executor) executeSelect(q *parser.Select) (*ResultSet, error) {
	if len(q.From) == 0 {
		return nil, errs.General("SELECT requires a FROM clause")
	}
	if len(q.From) > 1 {
		return nil, errs.General("multiple FROM relations are not supported; use JOIN ... ON")
	}

	// everything that can be rejected is rejected before any table is read
	sc, joins, err := planJoins(q.From[0], q.Joins)
	if err != nil {
		return nil, err
	}
	plan, err := planProjection(sc, q.Items)
	if err != nil {
		return nil, err
	}

	rows, err := e.load(q.From[0].Name)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{row}
	}

	for _, j := range joins {
		joinRows, err := e.load(j.join.Table.Name)
		if err != nil {
			return nil, err
		}
		records = j.apply(records, joinRows)
		e.logger().Debug("joined table", "type", j.join.Type.String(), "table", j.binding, "records", len(records))
	}

	records, err = ApplyFilter(sc, records, q.Where)
	if err != nil {
		return nil, fmt.Errorf("failed to apply WHERE: %w", err)
	}

	if q.Distinct {
		records = ApplyDistinct(records)
	}

	rs := &ResultSet{Kind: StatementSelect}
	for _, p := range plan {
		rs.Headers = append(rs.Headers, p.header)
	}
	rs.Rows = materialize(plan, records)
	rs.Rows = ApplyTop(rs.Rows, q.Top)
	if q.Limit != nil || q.Offset != nil {
		rs.Rows = ApplyLimitOffset(rs.Rows, q.Limit, q.Offset)
	}

	return rs, nil
}

// executeInsert runs the source query and exports the selected columns
func (e *Executor) executeInsert(ins *parser.Insert) (*ResultSet, error) {
	if e.Exporter == nil {
		return nil, errs.General("INSERT requires an exporter")
	}

	src, err := e.executeSelect(ins.Source)
	if err != nil {
		return nil, err
	}

	rs, err := selectColumns(src, ins.Columns)
	if err != nil {
		return nil, err
	}
	rs.Kind = StatementInsert
	rs.Target = ins.Target
	rs.Format = FormatForTarget(ins.Target)

	if err := e.Exporter.Export(rs.Target, rs.Format, rs); err != nil {
		return nil, fmt.Errorf("failed to export to %s: %w", rs.Target, err)
	}
	e.logger().Debug("exported rows", "target", rs.Target, "format", rs.Format.String(), "rows", len(rs.Rows))
	return rs, nil
}

// selectColumns keeps the named columns in the order they are named.
// A name matches a header name first and a column kind second.
func selectColumns(src *ResultSet, names []string) (*ResultSet, error) {
	if len(names) == 0 {
		return src, nil
	}

	idx := make([]int, 0, len(names))
	for _, name := range names {
		i := findHeader(src.Headers, name)
		if i < 0 {
			return nil, errs.General("column %q is not produced by the INSERT source", name)
		}
		idx = append(idx, i)
	}

	out := &ResultSet{Kind: src.Kind}
	for _, i := range idx {
		out.Headers = append(out.Headers, src.Headers[i])
	}
	for _, row := range src.Rows {
		filtered := make([]Cell, len(idx))
		for j, i := range idx {
			filtered[j] = row[i]
		}
		out.Rows = append(out.Rows, filtered)
	}
	return out, nil
}

func findHeader(headers []Header, name string) int {
	for i, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return i
		}
	}
	col, err := schema.KindOf(name)
	if err != nil {
		return -1
	}
	for i, h := range headers {
		if h.Column == col {
			return i
		}
	}
	return -1
}

// executeUpdate selects the rows matching the predicate. Assignments are
// resolved so that invalid ones fail, but nothing is written.
func (e *Executor) executeUpdate(upd *parser.Update) (*ResultSet, error) {
	sc := scope{upd.Table.Binding()}

	for _, a := range upd.Assignments {
		target, err := Evaluate(a.Column)
		if err != nil {
			return nil, err
		}
		switch t := target.(type) {
		case Select:
		case CompoundSelect:
			if _, err := sc.lookup(t.Table); err != nil {
				return nil, err
			}
		default:
			return nil, errs.General("invalid assignment target %s", describe(target))
		}
		if _, err := Evaluate(a.Value); err != nil {
			return nil, err
		}
	}

	rows, err := e.load(upd.Table.Name)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{row}
	}

	records, err = ApplyFilter(sc, records, upd.Where)
	if err != nil {
		return nil, fmt.Errorf("failed to apply WHERE: %w", err)
	}

	plan, err := planProjection(sc, []parser.SelectItem{{Wildcard: true}})
	if err != nil {
		return nil, err
	}
	rs := &ResultSet{Kind: StatementUpdate, Rows: materialize(plan, records)}
	for _, p := range plan {
		rs.Headers = append(rs.Headers, p.header)
	}

	e.logger().Warn("UPDATE assignments are not applied", "table", upd.Table.Name, "candidates", len(records), "assignments", len(upd.Assignments))
	return rs, nil
}
