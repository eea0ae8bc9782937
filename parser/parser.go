package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/fsql/errs"
)

// Parser parses SQL statements into AST
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without advancing
func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos+1]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return fmt.Errorf("expected %v, got %s", tokType, describe(p.current()))
	}
	p.advance()
	return nil
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return fmt.Sprintf("invalid input %q", tok.Value)
	default:
		return fmt.Sprintf("%v %q", tok.Type, tok.Value)
	}
}

// Parse parses one or more statements separated by semicolons.
// All failures are reported as errs.ErrParse.
func Parse(query string, d Dialect) ([]Statement, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, errs.Parse(err, "invalid query")
	}

	tokens := Tokenize(query, d)

	if err := ValidateTokens(tokens); err != nil {
		return nil, errs.Parse(err, "invalid query")
	}

	parser := NewParser(tokens)
	stmts, err := parser.parseStatements()
	if err != nil {
		return nil, errs.Parse(err, "syntax error")
	}
	if len(stmts) == 0 {
		return nil, errs.Parse(ErrEmptyQuery, "syntax error")
	}
	return stmts, nil
}

// ParseOne parses exactly one statement
func ParseOne(query string, d Dialect) (Statement, error) {
	stmts, err := Parse(query, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, errs.Parse(nil, "expected one statement, got %d", len(stmts))
	}
	return stmts[0], nil
}

// parseStatements parses: stmt [; stmt]... [;]
func (p *Parser) parseStatements() ([]Statement, error) {
	var stmts []Statement
	for {
		for p.current().Type == TokenSemicolon {
			p.advance()
		}
		switch p.current().Type {
		case TokenEOF:
			return stmts, nil
		case TokenError:
			return nil, fmt.Errorf("invalid character in query: %s", p.current().Value)
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		switch p.current().Type {
		case TokenSemicolon, TokenEOF:
		case TokenError:
			return nil, fmt.Errorf("invalid character in query: %s", p.current().Value)
		default:
			return nil, fmt.Errorf("unexpected trailing tokens after statement: %s", p.current().Value)
		}
	}
}

func (p *Parser) parseStatement() (Statement, error) {
	switch p.current().Type {
	case TokenSelect:
		return p.parseSelect()
	case TokenInsert:
		return p.parseInsert()
	case TokenUpdate:
		return p.parseUpdate()
	case TokenShow:
		return p.parseShowColumns()
	default:
		return nil, fmt.Errorf("unsupported statement starting with %s", describe(p.current()))
	}
}

// parseSelect parses: SELECT [DISTINCT] [TOP n] items FROM tables [joins] [WHERE expr] [LIMIT n] [OFFSET n]
func (p *Parser) parseSelect() (*Select, error) {
	if err := p.expect(TokenSelect); err != nil {
		return nil, fmt.Errorf("query must start with SELECT: %w", err)
	}

	sel := &Select{}

	// DISTINCT and TOP may appear in either order
	for {
		if p.current().Type == TokenDistinct && !sel.Distinct {
			sel.Distinct = true
			p.advance()
			continue
		}
		if p.current().Type == TokenTop && sel.Top == nil {
			top, err := p.parseTop()
			if err != nil {
				return nil, err
			}
			sel.Top = top
			continue
		}
		break
	}

	items, err := p.parseSelectList()
	if err != nil {
		return nil, fmt.Errorf("failed to parse SELECT list: %w", err)
	}
	sel.Items = items

	if err := p.expect(TokenFrom); err != nil {
		return nil, fmt.Errorf("expected FROM after SELECT list: %w", err)
	}

	for {
		ref, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		sel.From = append(sel.From, ref)
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	for p.current().Type == TokenJoin || p.current().Type == TokenInner ||
		p.current().Type == TokenLeft || p.current().Type == TokenRight ||
		p.current().Type == TokenFull || p.current().Type == TokenCross {

		join, err := p.parseJoin()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JOIN: %w", err)
		}
		sel.Joins = append(sel.Joins, *join)
	}

	if p.current().Type == TokenWhere {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		sel.Where = expr
	}

	if p.current().Type == TokenLimit {
		p.advance()
		limit, err := p.parseCount("LIMIT")
		if err != nil {
			return nil, err
		}
		sel.Limit = limit
	}

	if p.current().Type == TokenOffset {
		p.advance()
		offset, err := p.parseCount("OFFSET")
		if err != nil {
			return nil, err
		}
		sel.Offset = offset
	}

	return sel, nil
}

// parseTop parses: TOP literal | TOP ( literal )
func (p *Parser) parseTop() (*Literal, error) {
	if err := p.expect(TokenTop); err != nil {
		return nil, err
	}

	paren := p.current().Type == TokenLeftParen
	if paren {
		p.advance()
	}

	lit, ok := p.literal()
	if !ok {
		return nil, fmt.Errorf("expected quantity after TOP, got %s", describe(p.current()))
	}
	p.advance()

	if paren {
		if err := p.expect(TokenRightParen); err != nil {
			return nil, fmt.Errorf("expected ) after TOP quantity: %w", err)
		}
	}
	return lit, nil
}

// parseCount parses the non-negative integer that follows LIMIT or OFFSET
func (p *Parser) parseCount(clause string) (*int64, error) {
	if p.current().Type != TokenNumber {
		return nil, fmt.Errorf("expected number after %s, got %s", clause, describe(p.current()))
	}
	n, err := strconv.ParseInt(p.current().Value, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer, got %s", clause, p.current().Value)
	}
	p.advance()
	return &n, nil
}

// parseSelectList parses the SELECT list (columns, wildcards, aliases)
func (p *Parser) parseSelectList() ([]SelectItem, error) {
	var items []SelectItem

	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.current().Type == TokenComma {
			p.advance()
			continue
		}
		break
	}

	return items, nil
}

// parseSelectItem parses *, t.*, or expr [[AS] alias]
func (p *Parser) parseSelectItem() (SelectItem, error) {
	var item SelectItem

	if p.current().Type == TokenStar {
		p.advance()
		item.Wildcard = true
		return item, nil
	}

	// bare t.* lexes as the identifier "t." followed by *
	if p.current().Type == TokenIdent && strings.HasSuffix(p.current().Value, ".") && p.peek().Type == TokenStar {
		item.Wildcard = true
		item.Qualifier = strings.TrimSuffix(p.current().Value, ".")
		p.advance()
		p.advance()
		return item, nil
	}

	// quoted [t].*
	if p.current().Type == TokenQuotedIdent && p.peek().Type == TokenDot &&
		p.pos+2 < len(p.tokens) && p.tokens[p.pos+2].Type == TokenStar {
		item.Wildcard = true
		item.Qualifier = p.current().Value
		p.pos += 3
		return item, nil
	}

	expr, err := p.parseOr()
	if err != nil {
		return item, err
	}
	item.Expr = expr

	alias, err := p.parseAlias()
	if err != nil {
		return item, err
	}
	item.Alias = alias

	return item, nil
}

// parseAlias parses an optional [AS] alias
func (p *Parser) parseAlias() (string, error) {
	if p.current().Type == TokenAs {
		p.advance()
		switch p.current().Type {
		case TokenIdent, TokenQuotedIdent, TokenString:
			alias := p.current().Value
			p.advance()
			return alias, nil
		default:
			return "", fmt.Errorf("expected alias name after AS, got %s", describe(p.current()))
		}
	}
	if p.current().Type == TokenIdent || p.current().Type == TokenQuotedIdent {
		alias := p.current().Value
		p.advance()
		return alias, nil
	}
	return "", nil
}

// parseTableName parses a bare, quoted or string table name
func (p *Parser) parseTableName() (string, error) {
	tok := p.current()
	switch tok.Type {
	case TokenIdent, TokenQuotedIdent, TokenString:
	default:
		return "", fmt.Errorf("expected table name, got %s", describe(tok))
	}
	if err := ValidateTableName(tok.Value); err != nil {
		return "", err
	}
	p.advance()
	return tok.Value, nil
}

// parseTableRef parses: table [[AS] alias]
func (p *Parser) parseTableRef() (TableRef, error) {
	name, err := p.parseTableName()
	if err != nil {
		return TableRef{}, err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return TableRef{}, err
	}
	return TableRef{Name: name, Alias: alias}, nil
}

// parseJoin parses a JOIN clause
func (p *Parser) parseJoin() (*Join, error) {
	join := &Join{}

	switch p.current().Type {
	case TokenCross:
		join.Type = JoinCross
		p.advance()
	case TokenInner:
		join.Type = JoinInner
		p.advance()
	case TokenLeft, TokenRight, TokenFull:
		join.Type = map[TokenType]JoinType{TokenLeft: JoinLeft, TokenRight: JoinRight, TokenFull: JoinFull}[p.current().Type]
		p.advance()
		if p.current().Type == TokenOuter {
			p.advance()
		}
	case TokenJoin:
		// Plain JOIN defaults to INNER JOIN
		join.Type = JoinInner
	default:
		return nil, fmt.Errorf("expected JOIN keyword")
	}
	if err := p.expect(TokenJoin); err != nil {
		return nil, err
	}

	ref, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	join.Table = ref

	if join.Type == JoinCross {
		return join, nil
	}

	switch p.current().Type {
	case TokenOn:
		p.advance()
		condition, err := p.parseOr()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JOIN condition: %w", err)
		}
		join.Condition = condition
	case TokenUsing:
		p.advance()
		cols, err := p.parseNameList()
		if err != nil {
			return nil, fmt.Errorf("failed to parse USING columns: %w", err)
		}
		join.Using = cols
	default:
		return nil, fmt.Errorf("expected ON clause after JOIN table: expected ON, got %s", describe(p.current()))
	}

	return join, nil
}

// parseNameList parses: ( name [, name]... )
func (p *Parser) parseNameList() ([]string, error) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	var names []string
	for {
		tok := p.current()
		if tok.Type != TokenIdent && tok.Type != TokenQuotedIdent {
			return nil, fmt.Errorf("expected column name, got %s", describe(tok))
		}
		if err := ValidateColumnName(tok.Value); err != nil {
			return nil, err
		}
		names = append(names, tok.Value)
		p.advance()
		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return names, nil
}

// parseInsert parses: INSERT INTO target [(col, ...)] SELECT ...
func (p *Parser) parseInsert() (*Insert, error) {
	if err := p.expect(TokenInsert); err != nil {
		return nil, err
	}
	if err := p.expect(TokenInto); err != nil {
		return nil, fmt.Errorf("expected INTO after INSERT: %w", err)
	}

	target, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	ins := &Insert{Target: target}

	if p.current().Type == TokenLeftParen {
		cols, err := p.parseNameList()
		if err != nil {
			return nil, fmt.Errorf("failed to parse INSERT columns: %w", err)
		}
		ins.Columns = cols
	}

	if p.current().Type != TokenSelect {
		return nil, fmt.Errorf("INSERT source must be a SELECT, got %s", describe(p.current()))
	}
	src, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	ins.Source = src
	return ins, nil
}

// parseUpdate parses: UPDATE table SET col = expr [, col = expr]... [WHERE expr]
func (p *Parser) parseUpdate() (*Update, error) {
	if err := p.expect(TokenUpdate); err != nil {
		return nil, err
	}

	ref, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	upd := &Update{Table: ref}

	if err := p.expect(TokenSet); err != nil {
		return nil, fmt.Errorf("expected SET after UPDATE table: %w", err)
	}

	for {
		target, err := p.parseIdentifier()
		if err != nil {
			return nil, fmt.Errorf("expected assignment target: %w", err)
		}
		if err := p.expect(TokenEqual); err != nil {
			return nil, fmt.Errorf("expected = in assignment: %w", err)
		}
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		upd.Assignments = append(upd.Assignments, Assignment{Column: target, Value: value})

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if p.current().Type == TokenWhere {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		upd.Where = expr
	}

	return upd, nil
}

// parseShowColumns parses: SHOW COLUMNS {FROM | IN} table
func (p *Parser) parseShowColumns() (*ShowColumns, error) {
	if err := p.expect(TokenShow); err != nil {
		return nil, err
	}
	if err := p.expect(TokenColumns); err != nil {
		return nil, fmt.Errorf("only SHOW COLUMNS is supported: %w", err)
	}
	if p.current().Type != TokenFrom && p.current().Type != TokenIn {
		return nil, fmt.Errorf("expected FROM or IN after SHOW COLUMNS, got %s", describe(p.current()))
	}
	p.advance()

	name, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	return &ShowColumns{Table: name}, nil
}
