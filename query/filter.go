package query

import (
	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/parser"
	"github.com/vegasq/fsql/schema"
)

// ApplyFilter keeps the records for which where evaluates to true.
//
// The predicate is evaluated with Evaluate. A constant predicate keeps all
// or none of the records. A BinaryOp is applied to each record; its result
// must be a Boolean.
func ApplyFilter(sc scope, records []Record, where parser.Expr) ([]Record, error) {
	if where == nil {
		return records, nil
	}

	res, err := Evaluate(where)
	if err != nil {
		return nil, err
	}

	switch pred := res.(type) {
	case Value:
		keep, err := truth(pred.Literal)
		if err != nil {
			return nil, err
		}
		if !keep {
			return []Record{}, nil
		}
		return records, nil
	case BinaryOp:
		li, err := sc.lookup(pred.Left.Table)
		if err != nil {
			return nil, err
		}
		ri, err := sc.lookup(pred.Right.Table)
		if err != nil {
			return nil, err
		}

		filtered := make([]Record, 0, len(records))
		for _, rec := range records {
			lit, err := pred.apply(cell(rec[li], pred.Left.Column), cell(rec[ri], pred.Right.Column))
			if err != nil {
				return nil, err
			}
			keep, err := truth(lit)
			if err != nil {
				return nil, err
			}
			if keep {
				filtered = append(filtered, rec)
			}
		}
		return filtered, nil
	default:
		return nil, errs.General("unsupported predicate %s: expected a comparison", describe(res))
	}
}

func truth(lit schema.Literal) (bool, error) {
	if !lit.IsBoolean() {
		return false, errs.General("predicate must produce a Boolean, got %s", lit.Kind)
	}
	return lit.Bool, nil
}

// ApplyTop keeps the first N rows. A missing or non-numeric quantity
// leaves the rows untouched.
func ApplyTop[T any](rows []T, top *parser.Literal) []T {
	if top == nil {
		return rows
	}
	n, ok := literalOf(top).Quantity()
	if !ok {
		return rows
	}
	if n < int64(len(rows)) {
		return rows[:n]
	}
	return rows
}

// ApplyLimitOffset applies LIMIT and OFFSET to rows
func ApplyLimitOffset[T any](rows []T, limit *int64, offset *int64) []T {
	if len(rows) == 0 {
		return rows
	}

	start := int64(0)
	if offset != nil && *offset > 0 {
		start = *offset
	}

	// If offset is beyond the end, return empty
	if start >= int64(len(rows)) {
		return rows[:0]
	}

	end := int64(len(rows))
	if limit != nil && *limit >= 0 {
		end = start + *limit
		if end > int64(len(rows)) {
			end = int64(len(rows))
		}
	}

	return rows[start:end]
}
