package schema

import (
	"math"
	"strconv"

	"github.com/vegasq/fsql/errs"
)

// LiteralKind is the type of a constant
type LiteralKind int

// Literal kinds
const (
	LitNull LiteralKind = iota
	LitNumber
	LitText
	LitBoolean
)

func (k LiteralKind) String() string {
	switch k {
	case LitNumber:
		return "Number"
	case LitText:
		return "Text"
	case LitBoolean:
		return "Boolean"
	default:
		return "Null"
	}
}

// Literal is a constant taken from the statement text. Numbers keep their
// decimal text so folding never loses precision on integers.
type Literal struct {
	Kind LiteralKind
	Text string
	Bool bool
}

// NullLiteral returns the NULL constant
func NullLiteral() Literal { return Literal{Kind: LitNull} }

// Number returns a numeric constant from its decimal text
func Number(s string) Literal { return Literal{Kind: LitNumber, Text: s} }

// Text returns a string constant
func Text(s string) Literal { return Literal{Kind: LitText, Text: s} }

// Boolean returns a boolean constant
func Boolean(b bool) Literal { return Literal{Kind: LitBoolean, Bool: b} }

// IsNull reports whether l is NULL
func (l Literal) IsNull() bool { return l.Kind == LitNull }

// IsBoolean reports whether l is a boolean
func (l Literal) IsBoolean() bool { return l.Kind == LitBoolean }

// String renders the literal the way it is displayed in results
func (l Literal) String() string {
	switch l.Kind {
	case LitNumber, LitText:
		return l.Text
	case LitBoolean:
		return strconv.FormatBool(l.Bool)
	default:
		return ""
	}
}

// Quantity interprets the literal as a row count. Numbers and numeric text
// parse as non-negative integers and booleans count as 0 or 1. Anything
// else reports ok=false.
func (l Literal) Quantity() (int64, bool) {
	switch l.Kind {
	case LitNumber, LitText:
		n, err := strconv.ParseInt(l.Text, 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	case LitBoolean:
		if l.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Operator is a binary operator
type Operator int

// Binary operators
const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpAnd
	OpOr
)

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLtEq:
		return "<="
	case OpGtEq:
		return ">="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "?"
	}
}

// Fold evaluates a binary operator over two constants.
//
// Only + and = are defined:
//
//	Number + Number  -> numeric sum
//	Text + Text      -> concatenation
//	X + Null         -> X
//	Null + X         -> X
//	X = Y            -> Boolean, structural equality
//
// Every other combination fails with a general error.
func Fold(left Literal, op Operator, right Literal) (Literal, error) {
	switch op {
	case OpAdd:
		switch {
		case left.Kind == LitNull:
			return right, nil
		case right.Kind == LitNull:
			return left, nil
		case left.Kind == LitNumber && right.Kind == LitNumber:
			return addNumbers(left.Text, right.Text)
		case left.Kind == LitText && right.Kind == LitText:
			return Text(left.Text + right.Text), nil
		}
		return Literal{}, errs.General("invalid operand types: %s + %s", left.Kind, right.Kind)
	case OpEq:
		return Boolean(left == right), nil
	}
	return Literal{}, errs.General("operator %s is not supported for %s and %s", op, left.Kind, right.Kind)
}

func addNumbers(a, b string) (Literal, error) {
	x, errX := strconv.ParseInt(a, 10, 64)
	y, errY := strconv.ParseInt(b, 10, 64)
	if errX == nil && errY == nil {
		sum := x + y
		// overflow falls through to float addition
		if (sum > x) == (y > 0) {
			return Number(strconv.FormatInt(sum, 10)), nil
		}
	}

	fx, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return Literal{}, errs.General("invalid number %q", a)
	}
	fy, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return Literal{}, errs.General("invalid number %q", b)
	}
	sum := fx + fy
	if math.IsInf(sum, 0) || math.IsNaN(sum) {
		return Literal{}, errs.General("numeric overflow in %s + %s", a, b)
	}
	return Number(strconv.FormatFloat(sum, 'g', -1, 64)), nil
}
