package query

import (
	"strings"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/parser"
	"github.com/vegasq/fsql/reader"
	"github.com/vegasq/fsql/schema"
)

// InnerJoin indexes left by key and emits combine(l, r) for every right
// row whose key matches. Duplicate keys fan out; unmatched rows on either
// side produce nothing.
func InnerJoin[L, R any, K comparable, T any](left []L, right []R, leftKey func(L) K, rightKey func(R) K, combine func(L, R) T) []T {
	index := make(map[K][]L, len(left))
	for _, l := range left {
		k := leftKey(l)
		index[k] = append(index[k], l)
	}

	var out []T
	for _, r := range right {
		for _, l := range index[rightKey(r)] {
			out = append(out, combine(l, r))
		}
	}
	return out
}

// LeftOuterJoin emits every left row at least once. Matches call
// combine(l, r, true); a left row without a match calls combine with the
// zero R and false.
func LeftOuterJoin[L, R any, K comparable, T any](left []L, right []R, leftKey func(L) K, rightKey func(R) K, combine func(L, R, bool) T) []T {
	index := make(map[K][]R, len(right))
	for _, r := range right {
		k := rightKey(r)
		index[k] = append(index[k], r)
	}

	out := make([]T, 0, len(left))
	for _, l := range left {
		matches := index[leftKey(l)]
		if len(matches) == 0 {
			var zero R
			out = append(out, combine(l, zero, false))
			continue
		}
		for _, r := range matches {
			out = append(out, combine(l, r, true))
		}
	}
	return out
}

// Record is one row of a working set: one entry per bound table. A nil
// entry is the missing side of a left outer join.
type Record []*reader.Row

// cell extracts a column, rendering a missing row as the Null tag
func cell(row *reader.Row, c schema.Column) schema.Value {
	if row == nil {
		return schema.NullValue()
	}
	return row.Value(c)
}

func (r Record) extend(row *reader.Row) Record {
	out := make(Record, len(r), len(r)+1)
	copy(out, r)
	return append(out, row)
}

// scope lists the binding names of the tables in a working set, in order
type scope []string

// lookup resolves a binding name; the empty name selects the leftmost table
func (s scope) lookup(table string) (int, error) {
	if table == "" {
		if len(s) == 0 {
			return 0, errs.General("no table in scope")
		}
		return 0, nil
	}
	for i, name := range s {
		if name == table {
			return i, nil
		}
	}
	for i, name := range s {
		if strings.EqualFold(name, table) {
			return i, nil
		}
	}
	return 0, errs.General("unknown table %q", table)
}

// joinPlan is a validated join clause
type joinPlan struct {
	join     parser.Join
	binding  string
	leftIdx  int           // bound table supplying the left key
	leftCol  schema.Column // key column on the bound table
	rightCol schema.Column // key column on the joined table
}

// planJoins validates every join clause against the relations bound before
// it. Nothing is loaded, so an unsupported join fails before any I/O.
func planJoins(from parser.TableRef, joins []parser.Join) (scope, []joinPlan, error) {
	bound := scope{from.Binding()}
	plans := make([]joinPlan, 0, len(joins))

	for _, j := range joins {
		binding := j.Table.Binding()
		if _, err := bound.lookup(binding); err == nil {
			return nil, nil, errs.General("table %q is bound more than once; use an alias", binding)
		}

		switch j.Type {
		case parser.JoinInner, parser.JoinLeft:
		default:
			return nil, nil, errs.General("%s is not supported", j.Type)
		}
		if len(j.Using) > 0 {
			return nil, nil, errs.General("JOIN ... USING is not supported; use ON a.col = b.col")
		}

		res, err := Evaluate(j.Condition)
		if err != nil {
			return nil, nil, err
		}
		op, ok := res.(BinaryOp)
		if !ok || op.Op != schema.OpEq || !op.Qualified() {
			return nil, nil, errs.General("unsupported join condition %s: expected table.column = table.column", describe(res))
		}

		current := scope{binding}
		left, right := op.Left, op.Right
		if _, err := current.lookup(left.Table); err == nil {
			left, right = right, left
		}
		if _, err := current.lookup(right.Table); err != nil {
			return nil, nil, errs.General("join condition must reference joined table %q", binding)
		}
		leftIdx, err := bound.lookup(left.Table)
		if err != nil {
			return nil, nil, errs.General("join condition references %q, which is not bound before %q", left.Table, binding)
		}
		if left.Column != right.Column {
			return nil, nil, errs.General("join keys must be the same column kind: %s vs %s", left, right)
		}

		plans = append(plans, joinPlan{
			join:     j,
			binding:  binding,
			leftIdx:  leftIdx,
			leftCol:  left.Column,
			rightCol: right.Column,
		})
		bound = append(bound, binding)
	}

	return bound, plans, nil
}

// apply joins the working set with the rows of the plan's table
func (p joinPlan) apply(records []Record, rows []*reader.Row) []Record {
	leftKey := func(rec Record) schema.JoinKey { return cell(rec[p.leftIdx], p.leftCol).Key() }
	rightKey := func(row *reader.Row) schema.JoinKey { return row.Value(p.rightCol).Key() }

	if p.join.Type == parser.JoinLeft {
		return LeftOuterJoin(records, rows, leftKey, rightKey, func(rec Record, row *reader.Row, ok bool) Record {
			if !ok {
				return rec.extend(nil)
			}
			return rec.extend(row)
		})
	}
	return InnerJoin(records, rows, leftKey, rightKey, func(rec Record, row *reader.Row) Record {
		return rec.extend(row)
	})
}
