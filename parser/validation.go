package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validation constants to prevent resource exhaustion
const (
	// MaxQueryLength is the maximum allowed statement string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxTokens is the maximum number of tokens in a statement batch
	MaxTokens = 10000

	// MaxExpressionDepth is the maximum nesting depth for expressions
	MaxExpressionDepth = 100

	// MaxColumnNameLength is the maximum length for a column name
	MaxColumnNameLength = 256

	// MaxTableNameLength is the maximum length for a table name, the
	// usual PATH_MAX
	MaxTableNameLength = 4096

	// MaxPathElementLength bounds one element of a table path (NAME_MAX)
	MaxPathElementLength = 255
)

var (
	// ErrQueryTooLong is returned when a statement exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrTooManyTokens is returned when a statement has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in query")

	// ErrExpressionTooDeep is returned when expression nesting exceeds limit
	ErrExpressionTooDeep = errors.New("expression nesting too deep")

	// ErrColumnNameTooLong is returned when column name is too long
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrTableNameTooLong is returned when table name is too long
	ErrTableNameTooLong = errors.New("table name too long")

	// ErrEmptyTableName is returned when table name is empty
	ErrEmptyTableName = errors.New("table name cannot be empty")

	// ErrInvalidTableName is returned when a table name cannot name a directory
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrEmptyQuery is returned when the input holds no statement
	ErrEmptyQuery = errors.New("no statement to execute")
)

// ValidateQuery checks the raw statement text
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}
	return nil
}

// ValidateTableName checks that name can be opened as a directory path:
// non-empty, no NUL bytes, and within PATH_MAX overall and NAME_MAX per
// element.
func ValidateTableName(name string) error {
	if name == "" {
		return ErrEmptyTableName
	}
	if len(name) > MaxTableNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrTableNameTooLong, len(name), MaxTableNameLength)
	}
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("%w: contains a NUL byte", ErrInvalidTableName)
	}
	for _, elem := range strings.Split(filepath.ToSlash(name), "/") {
		if len(elem) > MaxPathElementLength {
			return fmt.Errorf("%w: path element of %d chars (max %d)", ErrTableNameTooLong, len(elem), MaxPathElementLength)
		}
	}
	return nil
}

// ValidateColumnName validates column name length
func ValidateColumnName(name string) error {
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// ValidateTokens validates token count
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}

// ExpressionDepthCounter tracks expression nesting depth
type ExpressionDepthCounter struct {
	depth    int
	maxDepth int
}

// NewExpressionDepthCounter creates a new depth counter
func NewExpressionDepthCounter() *ExpressionDepthCounter {
	return &ExpressionDepthCounter{depth: 0, maxDepth: MaxExpressionDepth}
}

// Enter increments depth and returns error if limit exceeded
func (c *ExpressionDepthCounter) Enter() error {
	c.depth++
	if c.depth > c.maxDepth {
		return fmt.Errorf("%w: %d (max %d)", ErrExpressionTooDeep, c.depth, c.maxDepth)
	}
	return nil
}

// Exit decrements depth
func (c *ExpressionDepthCounter) Exit() {
	c.depth--
}
