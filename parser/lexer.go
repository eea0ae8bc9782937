package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes SQL statement strings
type Lexer struct {
	input   string
	dialect Dialect
	pos     int // byte offset of the next rune
	ch      rune
	// afterQuote is set right after a quoted identifier so that a following
	// '.' is read as a separator rather than the start of a path
	afterQuote bool
}

// NewLexer creates a new lexer
func NewLexer(input string, d Dialect) *Lexer {
	l := &Lexer{input: input, dialect: d}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += size
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// skipWhitespace skips whitespace and -- line comments
func (l *Lexer) skipWhitespace() {
	for {
		for unicode.IsSpace(l.ch) {
			l.readChar()
		}
		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		return
	}
}

// readString reads a single-quoted string; a doubled quote is a literal quote
func (l *Lexer) readString() (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for {
		switch {
		case l.ch == 0:
			return result.String(), false
		case l.ch == '\'' && l.peekChar() == '\'':
			result.WriteRune('\'')
			l.readChar()
		case l.ch == '\'':
			l.readChar() // skip closing quote
			return result.String(), true
		case l.ch == '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case 0:
				return result.String(), false
			default:
				result.WriteRune(l.ch)
			}
		default:
			result.WriteRune(l.ch)
		}
		l.readChar()
	}
}

// readQuoted reads a delimited identifier; a doubled closing quote is literal
func (l *Lexer) readQuoted(end rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for {
		switch {
		case l.ch == 0:
			return result.String(), false
		case l.ch == end && l.peekChar() == end:
			result.WriteRune(end)
			l.readChar()
		case l.ch == end:
			l.readChar()
			return result.String(), true
		default:
			result.WriteRune(l.ch)
		}
		l.readChar()
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isPathChar reports characters allowed inside a bare identifier (including file paths)
func isPathChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '.' || ch == '/' || ch == '-' || ch == '~'
}

// readIdentifier reads an identifier or keyword (including file paths)
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for isPathChar(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// readNumber reads a number. A word that starts with a digit but is not a
// number, such as 3.md, is returned as an identifier.
func (l *Lexer) readNumber() Token {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	word := result.String()
	if isNumeric(word) {
		return Token{Type: TokenNumber, Value: word}
	}
	return Token{Type: TokenIdent, Value: word}
}

func isNumeric(s string) bool {
	dots := 0
	for _, ch := range s {
		switch {
		case ch == '.':
			dots++
		case !unicode.IsDigit(ch):
			return false
		}
	}
	return dots <= 1 && s != "."
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	afterQuote := l.afterQuote
	l.afterQuote = false
	l.skipWhitespace()

	if end, ok := l.dialect.closingQuote(l.ch); ok {
		value, closed := l.readQuoted(end)
		if !closed {
			return Token{Type: TokenError, Value: "unterminated identifier " + value}
		}
		l.afterQuote = true
		return Token{Type: TokenQuotedIdent, Value: value}
	}

	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: ""}
	case '=':
		tok = Token{Type: TokenEqual, Value: "="}
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "!="}
			l.readChar()
		} else {
			tok = Token{Type: TokenError, Value: "!"}
			l.readChar()
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: TokenLessEqual, Value: "<="}
			l.readChar()
		case '>':
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "<>"}
			l.readChar()
		default:
			tok = Token{Type: TokenLess, Value: "<"}
			l.readChar()
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenGreaterEqual, Value: ">="}
			l.readChar()
		} else {
			tok = Token{Type: TokenGreater, Value: ">"}
			l.readChar()
		}
	case '\'':
		value, closed := l.readString()
		if !closed {
			return Token{Type: TokenError, Value: "unterminated string " + value}
		}
		tok = Token{Type: TokenString, Value: value}
	case '+':
		tok = Token{Type: TokenPlus, Value: "+"}
		l.readChar()
	case '-':
		tok = Token{Type: TokenMinus, Value: "-"}
		l.readChar()
	case '*':
		tok = Token{Type: TokenStar, Value: "*"}
		l.readChar()
	case '%':
		tok = Token{Type: TokenPercent, Value: "%"}
		l.readChar()
	case ',':
		tok = Token{Type: TokenComma, Value: ","}
		l.readChar()
	case ';':
		tok = Token{Type: TokenSemicolon, Value: ";"}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLeftParen, Value: "("}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRightParen, Value: ")"}
		l.readChar()
	case '/':
		// a slash directly followed by a path character starts an absolute path
		if isPathChar(l.peekChar()) {
			tok = Token{Type: TokenIdent, Value: l.readIdentifier()}
		} else {
			tok = Token{Type: TokenSlash, Value: "/"}
			l.readChar()
		}
	case '.':
		if afterQuote {
			tok = Token{Type: TokenDot, Value: "."}
			l.readChar()
		} else if unicode.IsDigit(l.peekChar()) {
			tok = l.readNumber()
		} else if isPathChar(l.peekChar()) {
			tok = Token{Type: TokenIdent, Value: l.readIdentifier()}
		} else {
			tok = Token{Type: TokenDot, Value: "."}
			l.readChar()
		}
	case '~':
		tok = Token{Type: TokenIdent, Value: l.readIdentifier()}
	default:
		if unicode.IsDigit(l.ch) {
			tok = l.readNumber()
		} else if isIdentStart(l.ch) {
			value := l.readIdentifier()
			tok = Token{Type: identifierType(value), Value: value}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	return tok
}

var keywords = map[string]TokenType{
	"SELECT":   TokenSelect,
	"FROM":     TokenFrom,
	"WHERE":    TokenWhere,
	"AND":      TokenAnd,
	"OR":       TokenOr,
	"NOT":      TokenNot,
	"AS":       TokenAs,
	"NULL":     TokenNull,
	"DISTINCT": TokenDistinct,
	"TOP":      TokenTop,
	"LIMIT":    TokenLimit,
	"OFFSET":   TokenOffset,
	"JOIN":     TokenJoin,
	"INNER":    TokenInner,
	"LEFT":     TokenLeft,
	"RIGHT":    TokenRight,
	"FULL":     TokenFull,
	"OUTER":    TokenOuter,
	"CROSS":    TokenCross,
	"ON":       TokenOn,
	"USING":    TokenUsing,
	"INSERT":   TokenInsert,
	"INTO":     TokenInto,
	"UPDATE":   TokenUpdate,
	"SET":      TokenSet,
	"SHOW":     TokenShow,
	"COLUMNS":  TokenColumns,
	"IN":       TokenIn,
	"TRUE":     TokenBool,
	"FALSE":    TokenBool,
}

// identifierType determines if an identifier is a keyword
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[strings.ToUpper(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input
func Tokenize(input string, d Dialect) []Token {
	lexer := NewLexer(input, d)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
