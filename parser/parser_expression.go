package parser

import (
	"fmt"
	"strings"
)

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expr, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenOr, Right: right}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenAnd, Right: right}
	}

	return left, nil
}

// parseNot parses NOT expr
func (p *Parser) parseNot() (Expr, error) {
	if p.current().Type != TokenNot {
		return p.parseComparison()
	}
	p.advance()

	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Operator: TokenNot, Operand: operand}, nil
}

func isComparison(t TokenType) bool {
	switch t {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		return true
	}
	return false
}

// parseComparison parses a single comparison; comparisons do not chain
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if isComparison(p.current().Type) {
		operator := p.current().Type
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: operator, Right: right}
	}

	return left, nil
}

// parseAdditive parses + and -
func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		operator := p.current().Type
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: operator, Right: right}
	}

	return left, nil
}

// parseMultiplicative parses *, / and %
func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenStar || p.current().Type == TokenSlash || p.current().Type == TokenPercent {
		operator := p.current().Type
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: operator, Right: right}
	}

	return left, nil
}

// parseUnary parses a leading minus; negative numeric literals fold into the literal
func (p *Parser) parseUnary() (Expr, error) {
	if p.current().Type != TokenMinus {
		return p.parsePrimary()
	}
	p.advance()

	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if lit, ok := operand.(*Literal); ok && lit.Kind == LiteralNumber {
		if strings.HasPrefix(lit.Value, "-") {
			return &Literal{Kind: LiteralNumber, Value: lit.Value[1:]}, nil
		}
		return &Literal{Kind: LiteralNumber, Value: "-" + lit.Value}, nil
	}
	return &UnaryExpr{Operator: TokenMinus, Operand: operand}, nil
}

// literal converts the current token into a literal without advancing
func (p *Parser) literal() (*Literal, bool) {
	tok := p.current()
	switch tok.Type {
	case TokenNumber:
		return &Literal{Kind: LiteralNumber, Value: tok.Value}, true
	case TokenString:
		return &Literal{Kind: LiteralString, Value: tok.Value}, true
	case TokenBool:
		return &Literal{Kind: LiteralBool, Value: strings.ToLower(tok.Value)}, true
	case TokenNull:
		return &Literal{Kind: LiteralNull, Value: ""}, true
	}
	return nil, false
}

// parsePrimary parses literals, identifiers and parenthesised expressions
func (p *Parser) parsePrimary() (Expr, error) {
	if lit, ok := p.literal(); ok {
		p.advance()
		return lit, nil
	}

	switch p.current().Type {
	case TokenLeftParen:
		p.advance()
		if err := p.depthCounter.Enter(); err != nil {
			return nil, err
		}
		defer p.depthCounter.Exit()

		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, fmt.Errorf("expected ) after expression: %w", err)
		}
		return &Nested{Expr: inner}, nil
	case TokenIdent, TokenQuotedIdent:
		return p.parseIdentifier()
	default:
		return nil, fmt.Errorf("expected expression, got %s", describe(p.current()))
	}
}

// parseIdentifier parses a column reference. Bare identifiers split on dots
// (t.name); quoted identifiers are joined by explicit dot tokens ([t].[name]).
func (p *Parser) parseIdentifier() (Expr, error) {
	var parts []string

	for {
		tok := p.current()
		switch tok.Type {
		case TokenIdent:
			for _, part := range strings.Split(tok.Value, ".") {
				if part == "" {
					return nil, fmt.Errorf("invalid identifier %q", tok.Value)
				}
				parts = append(parts, part)
			}
		case TokenQuotedIdent:
			parts = append(parts, tok.Value)
		default:
			return nil, fmt.Errorf("expected column name, got %s", describe(tok))
		}
		p.advance()

		if p.current().Type != TokenDot {
			break
		}
		p.advance()
	}

	for _, part := range parts {
		if err := ValidateColumnName(part); err != nil {
			return nil, err
		}
	}

	if len(parts) == 1 {
		return &Identifier{Name: parts[0]}, nil
	}
	return &CompoundIdentifier{Parts: parts}, nil
}
