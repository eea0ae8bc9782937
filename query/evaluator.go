package query

import (
	"fmt"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/parser"
	"github.com/vegasq/fsql/schema"
)

// ExprResult is the evaluated form of an expression before any row is seen.
// It is one of Select, CompoundSelect, Value or BinaryOp.
type ExprResult interface {
	exprResult()
}

// Select selects a column from the single (or leftmost) table
type Select struct {
	Column schema.Column
}

// CompoundSelect selects a column from a named table
type CompoundSelect struct {
	Table  string
	Column schema.Column
}

// Value is a constant
type Value struct {
	Literal schema.Literal
}

// Operand is one side of a BinaryOp. An empty Table means the unqualified
// table context.
type Operand struct {
	Table  string
	Column schema.Column
}

func (o Operand) String() string {
	if o.Table == "" {
		return o.Column.String()
	}
	return o.Table + "." + o.Column.String()
}

// BinaryOp is a deferred operation over two column operands
type BinaryOp struct {
	Left  Operand
	Op    schema.Operator
	Right Operand
}

// Qualified reports whether both operands name a table
func (b BinaryOp) Qualified() bool {
	return b.Left.Table != "" && b.Right.Table != ""
}

func (Select) exprResult()         {}
func (CompoundSelect) exprResult() {}
func (Value) exprResult()          {}
func (BinaryOp) exprResult()       {}

var operators = map[parser.TokenType]schema.Operator{
	parser.TokenPlus:         schema.OpAdd,
	parser.TokenMinus:        schema.OpSub,
	parser.TokenStar:         schema.OpMul,
	parser.TokenSlash:        schema.OpDiv,
	parser.TokenPercent:      schema.OpMod,
	parser.TokenEqual:        schema.OpEq,
	parser.TokenNotEqual:     schema.OpNotEq,
	parser.TokenLess:         schema.OpLt,
	parser.TokenGreater:      schema.OpGt,
	parser.TokenLessEqual:    schema.OpLtEq,
	parser.TokenGreaterEqual: schema.OpGtEq,
	parser.TokenAnd:          schema.OpAnd,
	parser.TokenOr:           schema.OpOr,
}

// literalOf converts a parsed literal into a constant
func literalOf(lit *parser.Literal) schema.Literal {
	switch lit.Kind {
	case parser.LiteralNumber:
		return schema.Number(lit.Value)
	case parser.LiteralString:
		return schema.Text(lit.Value)
	case parser.LiteralBool:
		return schema.Boolean(lit.Value == "true")
	default:
		return schema.NullLiteral()
	}
}

// Evaluate turns an expression into an ExprResult without touching any row.
//
// Identifiers become Select, table.column becomes CompoundSelect and
// literals become Value. A binary expression combines its evaluated sides:
// two Selects or two CompoundSelects produce a BinaryOp, and two Values are
// folded into a single Value. Every other shape fails with a general error.
func Evaluate(expr parser.Expr) (ExprResult, error) {
	switch e := expr.(type) {
	case *parser.Identifier:
		col, err := schema.KindOf(e.Name)
		if err != nil {
			return nil, err
		}
		return Select{Column: col}, nil
	case *parser.CompoundIdentifier:
		col, err := schema.KindOf(e.Last())
		if err != nil {
			return nil, err
		}
		return CompoundSelect{Table: e.Qualifier(), Column: col}, nil
	case *parser.Literal:
		return Value{Literal: literalOf(e)}, nil
	case *parser.Nested:
		return Evaluate(e.Expr)
	case *parser.BinaryExpr:
		op, ok := operators[e.Operator]
		if !ok {
			return nil, errs.General("unsupported operator %v", e.Operator)
		}
		left, err := Evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return combine(left, op, right)
	case *parser.UnaryExpr:
		return nil, errs.General("unsupported expression: unary %v", e.Operator)
	case nil:
		return nil, errs.General("missing expression")
	default:
		return nil, errs.General("unsupported expression %T", expr)
	}
}

func combine(left ExprResult, op schema.Operator, right ExprResult) (ExprResult, error) {
	switch l := left.(type) {
	case Select:
		if r, ok := right.(Select); ok {
			return BinaryOp{Left: Operand{Column: l.Column}, Op: op, Right: Operand{Column: r.Column}}, nil
		}
	case CompoundSelect:
		if r, ok := right.(CompoundSelect); ok {
			return BinaryOp{
				Left:  Operand{Table: l.Table, Column: l.Column},
				Op:    op,
				Right: Operand{Table: r.Table, Column: r.Column},
			}, nil
		}
	case Value:
		if r, ok := right.(Value); ok {
			folded, err := schema.Fold(l.Literal, op, r.Literal)
			if err != nil {
				return nil, err
			}
			return Value{Literal: folded}, nil
		}
	}
	return nil, errs.General("unsupported operands: %s %s %s", describe(left), op, describe(right))
}

func describe(r ExprResult) string {
	switch v := r.(type) {
	case Select:
		return "column " + v.Column.String()
	case CompoundSelect:
		return "column " + v.Table + "." + v.Column.String()
	case Value:
		return v.Literal.Kind.String() + " literal"
	case BinaryOp:
		return fmt.Sprintf("(%s %s %s)", v.Left, v.Op, v.Right)
	default:
		return fmt.Sprintf("%T", r)
	}
}

// apply evaluates the operator over two concrete cells
func (b BinaryOp) apply(left, right schema.Value) (schema.Literal, error) {
	switch b.Op {
	case schema.OpEq:
		return schema.Boolean(schema.Equal(left, right)), nil
	case schema.OpAdd:
		sum, err := schema.Add(left, right)
		if err != nil {
			return schema.Literal{}, err
		}
		return sum.Literal(), nil
	default:
		return schema.Literal{}, errs.General("operator %s is not supported for columns %s and %s", b.Op, left.Column, right.Column)
	}
}
