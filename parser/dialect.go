package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect controls which characters delimit quoted identifiers
type Dialect struct {
	Name string

	// quotes maps an opening quote to its closing quote
	quotes map[rune]rune
}

var (
	// MSSQL accepts [bracketed] and "double-quoted" identifiers
	MSSQL = Dialect{Name: "mssql", quotes: map[rune]rune{'[': ']', '"': '"'}}

	// Generic accepts `back-quoted` and "double-quoted" identifiers
	Generic = Dialect{Name: "generic", quotes: map[rune]rune{'`': '`', '"': '"'}}
)

// DefaultDialect is used when no dialect is configured
var DefaultDialect = MSSQL

var dialects = map[string]Dialect{
	MSSQL.Name:   MSSQL,
	Generic.Name: Generic,
}

// LookupDialect returns the dialect with the given case-insensitive name.
// An empty name selects DefaultDialect.
func LookupDialect(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultDialect, nil
	}
	if d, ok := dialects[name]; ok {
		return d, nil
	}
	return Dialect{}, fmt.Errorf("unknown dialect %q (supported: %s)", name, strings.Join(DialectNames(), ", "))
}

// DialectNames lists the supported dialect names
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// closingQuote reports whether ch opens a quoted identifier
func (d Dialect) closingQuote(ch rune) (rune, bool) {
	if d.quotes == nil {
		d = DefaultDialect
	}
	end, ok := d.quotes[ch]
	return end, ok
}

func (d Dialect) String() string {
	return d.Name
}
