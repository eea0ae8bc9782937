// Package parser turns statement text into an abstract syntax tree.
//
// It implements the SQL subset understood by the filesystem engine:
// SELECT with DISTINCT, TOP, joins, WHERE, LIMIT and OFFSET; INSERT INTO ...
// SELECT; UPDATE ... SET ... WHERE; and SHOW COLUMNS. Table names are
// directory paths and may be written bare (./some/dir), bracketed
// ([./some/dir]) in the mssql dialect, or back-quoted in the generic dialect.
//
// Example usage:
//
//	stmts, err := parser.Parse("SELECT Name FROM [./test/]", parser.MSSQL)
//	if err != nil {
//	    log.Fatal(err)
//	}
package parser

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom
	TokenWhere
	TokenAnd
	TokenOr
	TokenNot
	TokenAs
	TokenNull
	TokenDistinct
	TokenTop
	TokenLimit
	TokenOffset
	TokenJoin
	TokenInner
	TokenLeft
	TokenRight
	TokenFull
	TokenOuter
	TokenCross
	TokenOn
	TokenUsing
	TokenInsert
	TokenInto
	TokenUpdate
	TokenSet
	TokenShow
	TokenColumns
	TokenIn

	// Operators
	TokenEqual        // =
	TokenNotEqual     // != or <>
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenPercent      // %

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenQuotedIdent
	TokenBool

	// Delimiters
	TokenComma      // ,
	TokenDot        // .
	TokenLeftParen  // (
	TokenRightParen // )
	TokenSemicolon  // ;

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenSelect:       "SELECT",
	TokenFrom:         "FROM",
	TokenWhere:        "WHERE",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenAs:           "AS",
	TokenNull:         "NULL",
	TokenDistinct:     "DISTINCT",
	TokenTop:          "TOP",
	TokenLimit:        "LIMIT",
	TokenOffset:       "OFFSET",
	TokenJoin:         "JOIN",
	TokenInner:        "INNER",
	TokenLeft:         "LEFT",
	TokenRight:        "RIGHT",
	TokenFull:         "FULL",
	TokenOuter:        "OUTER",
	TokenCross:        "CROSS",
	TokenOn:           "ON",
	TokenUsing:        "USING",
	TokenInsert:       "INSERT",
	TokenInto:         "INTO",
	TokenUpdate:       "UPDATE",
	TokenSet:          "SET",
	TokenShow:         "SHOW",
	TokenColumns:      "COLUMNS",
	TokenIn:           "IN",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "identifier",
	TokenQuotedIdent:  "quoted identifier",
	TokenBool:         "boolean",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenSemicolon:    ";",
	TokenEOF:          "end of input",
	TokenError:        "invalid character",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Statement is a parsed top-level statement
type Statement interface {
	statementNode()
}

// Select represents a SELECT query
type Select struct {
	Distinct bool
	Top      *Literal     // TOP quantity, nil when absent
	Items    []SelectItem // projection list
	From     []TableRef   // comma-separated relations
	Joins    []Join       // JOIN clauses applied to the first relation
	Where    Expr         // optional filter
	Limit    *int64
	Offset   *int64
}

// TableRef names a directory and its optional alias
type TableRef struct {
	Name  string
	Alias string
}

// Binding returns the name qualified references use for this relation
func (t TableRef) Binding() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// JoinType represents the type of join operation
type JoinType int

const (
	JoinInner JoinType = iota // INNER JOIN (default)
	JoinLeft                  // LEFT JOIN / LEFT OUTER JOIN
	JoinRight                 // RIGHT JOIN / RIGHT OUTER JOIN
	JoinFull                  // FULL JOIN / FULL OUTER JOIN
	JoinCross                 // CROSS JOIN
)

func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinFull:
		return "FULL JOIN"
	case JoinCross:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// Join represents a JOIN clause
type Join struct {
	Type      JoinType
	Table     TableRef
	Condition Expr     // ON clause, nil for CROSS JOIN and USING
	Using     []string // USING (col, ...) columns
}

// SelectItem is one projection. Wildcard items have no Expr; a qualified
// wildcard (t.*) sets Qualifier.
type SelectItem struct {
	Wildcard  bool
	Qualifier string
	Expr      Expr
	Alias     string
}

// Insert represents INSERT INTO target [(columns)] SELECT ...
type Insert struct {
	Target  string
	Columns []string
	Source  *Select
}

// Update represents UPDATE table SET assignments [WHERE expr]
type Update struct {
	Table       TableRef
	Assignments []Assignment
	Where       Expr
}

// Assignment is one SET target = value pair
type Assignment struct {
	Column Expr
	Value  Expr
}

// ShowColumns represents SHOW COLUMNS FROM table
type ShowColumns struct {
	Table string
}

func (*Select) statementNode()      {}
func (*Insert) statementNode()      {}
func (*Update) statementNode()      {}
func (*ShowColumns) statementNode() {}

// Expr is a parsed expression
type Expr interface {
	exprNode()
}

// Identifier is a bare column reference
type Identifier struct {
	Name string
}

// CompoundIdentifier is a dotted reference such as t.name
type CompoundIdentifier struct {
	Parts []string
}

// Qualifier returns every part but the last, joined with dots
func (c *CompoundIdentifier) Qualifier() string {
	if len(c.Parts) < 2 {
		return ""
	}
	q := c.Parts[0]
	for _, p := range c.Parts[1 : len(c.Parts)-1] {
		q += "." + p
	}
	return q
}

// Last returns the final part
func (c *CompoundIdentifier) Last() string {
	if len(c.Parts) == 0 {
		return ""
	}
	return c.Parts[len(c.Parts)-1]
}

// LiteralKind is the type of a literal
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralNumber
	LiteralString
	LiteralBool
)

// Literal is a constant; Value holds the source text of numbers and
// strings, and "true" or "false" for booleans
type Literal struct {
	Kind  LiteralKind
	Value string
}

// BinaryExpr applies Operator to two operands
type BinaryExpr struct {
	Left     Expr
	Operator TokenType
	Right    Expr
}

// UnaryExpr applies NOT or - to one operand
type UnaryExpr struct {
	Operator TokenType
	Operand  Expr
}

// Nested is a parenthesised expression
type Nested struct {
	Expr Expr
}

func (*Identifier) exprNode()         {}
func (*CompoundIdentifier) exprNode() {}
func (*Literal) exprNode()            {}
func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*Nested) exprNode()             {}
