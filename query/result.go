package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/parser"
	"github.com/vegasq/fsql/schema"
)

// StatementKind identifies the statement that produced a ResultSet
type StatementKind int

const (
	StatementSelect StatementKind = iota
	StatementInsert
	StatementUpdate
	StatementShowColumns
)

func (k StatementKind) String() string {
	switch k {
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementShowColumns:
		return "SHOW COLUMNS"
	default:
		return "SELECT"
	}
}

// columnNamespace scopes the name-based UUIDs of result columns
var columnNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vegasq/fsql/column"))

// Header describes one output column
type Header struct {
	// ID is derived from the position, source table, column and name,
	// so repeated or renamed columns stay distinguishable
	ID     uuid.UUID
	Table  string
	Column schema.Column
	Name   string
}

func newHeader(pos int, table string, col schema.Column, name string) Header {
	key := strings.Join([]string{strconv.Itoa(pos), table, col.String(), name}, "\x00")
	return Header{
		ID:     uuid.NewSHA1(columnNamespace, []byte(key)),
		Table:  table,
		Column: col,
		Name:   name,
	}
}

// Cell is one output value tagged with its header ID
type Cell struct {
	ID    uuid.UUID
	Value schema.Value
}

func (c Cell) String() string {
	return c.Value.String()
}

// ResultSet is a fully materialized statement result
type ResultSet struct {
	Kind    StatementKind
	Headers []Header
	Rows    [][]Cell
	// Target is the export destination of an INSERT
	Target string
	// Format is the sink used for Target
	Format Format
}

// ColumnNames returns the header names in order
func (rs *ResultSet) ColumnNames() []string {
	names := make([]string, len(rs.Headers))
	for i, h := range rs.Headers {
		names[i] = h.Name
	}
	return names
}

// Strings renders every row as display text
func (rs *ResultSet) Strings() [][]string {
	out := make([][]string, len(rs.Rows))
	for i, row := range rs.Rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = c.String()
		}
		out[i] = rec
	}
	return out
}

// showColumns returns the canonical column list
func showColumns(table string) *ResultSet {
	rs := &ResultSet{Kind: StatementShowColumns}
	for i, c := range schema.Columns() {
		rs.Headers = append(rs.Headers, newHeader(i, table, c, c.String()))
	}
	return rs
}

// projection maps an output column to a table slot of a record
type projection struct {
	slot   int
	header Header
}

// planProjection resolves the select list against the bound tables.
// * expands every table, t.* one table; identifiers read the leftmost table.
func planProjection(sc scope, items []parser.SelectItem) ([]projection, error) {
	var out []projection
	add := func(slot int, col schema.Column, name string) {
		out = append(out, projection{slot: slot, header: newHeader(len(out), sc[slot], col, name)})
	}

	for _, item := range items {
		if item.Wildcard {
			slots := make([]int, 0, len(sc))
			if item.Qualifier == "" {
				for i := range sc {
					slots = append(slots, i)
				}
			} else {
				i, err := sc.lookup(item.Qualifier)
				if err != nil {
					return nil, err
				}
				slots = append(slots, i)
			}
			for _, slot := range slots {
				for _, c := range schema.Columns() {
					add(slot, c, c.String())
				}
			}
			continue
		}

		res, err := Evaluate(item.Expr)
		if err != nil {
			return nil, err
		}

		var (
			table string
			col   schema.Column
		)
		switch r := res.(type) {
		case Select:
			col = r.Column
		case CompoundSelect:
			table, col = r.Table, r.Column
		default:
			return nil, errs.General("unsupported projection %s: only columns can be selected", describe(res))
		}

		slot, err := sc.lookup(table)
		if err != nil {
			return nil, err
		}
		name := item.Alias
		if name == "" {
			name = col.String()
		}
		add(slot, col, name)
	}

	return out, nil
}

// materialize reads the projected cells of every record
func materialize(plan []projection, records []Record) [][]Cell {
	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, len(plan))
		for j, p := range plan {
			row[j] = Cell{ID: p.header.ID, Value: cell(rec[p.slot], p.header.Column)}
		}
		rows[i] = row
	}
	return rows
}

// compareRecords orders records by the paths of their rows, table by
// table. A missing row sorts first.
func compareRecords(a, b Record) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] == nil && b[i] == nil:
			continue
		case a[i] == nil:
			return -1
		case b[i] == nil:
			return 1
		}
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// ApplyDistinct sorts records by row identity and drops adjacent
// duplicates. It runs before projection, so records naming different
// entries survive even when their projected values match.
func ApplyDistinct(records []Record) []Record {
	if len(records) < 2 {
		return records
	}
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareRecords(sorted[i], sorted[j]) < 0
	})

	out := sorted[:1]
	for _, rec := range sorted[1:] {
		if compareRecords(out[len(out)-1], rec) != 0 {
			out = append(out, rec)
		}
	}
	return out
}
