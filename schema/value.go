package schema

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vegasq/fsql/errs"
)

// Source is anything that can report directory entry metadata.
// Each metadata call may fail independently; failures report ok=false.
type Source interface {
	Name() string
	Path() (string, bool)
	Kind() EntryKind
	Size() (uint64, bool)
	Created() (time.Time, bool)
	AbsolutePath() (string, bool)
}

// Value is a typed cell. Column always names the producing column and
// Valid reports whether the payload is present.
type Value struct {
	Column Column
	Valid  bool

	text string
	size uint64
	time time.Time
	kind EntryKind
}

// NullValue returns the cell rendered for a missing row
func NullValue() Value {
	return Value{Column: Null}
}

// Absent returns a value of column c with no payload
func Absent(c Column) Value {
	return Value{Column: c}
}

// TextValue builds a Name, Path, FileExtension or AbsolutePath value
func TextValue(c Column, s string) Value {
	return Value{Column: c, Valid: true, text: s}
}

// SizeValue builds a Size value
func SizeValue(n uint64) Value {
	return Value{Column: Size, Valid: true, size: n}
}

// CreatedValue builds a Created value
func CreatedValue(t time.Time) Value {
	return Value{Column: Created, Valid: true, time: t.UTC()}
}

// TypeValue builds a Type value; KindUnknown yields an absent value
func TypeValue(k EntryKind) Value {
	if k == KindUnknown {
		return Absent(Type)
	}
	return Value{Column: Type, Valid: true, kind: k}
}

// Text returns the textual payload of Name, Path, FileExtension and AbsolutePath values
func (v Value) Text() (string, bool) {
	return v.text, v.Valid && isText(v.Column)
}

// Uint returns the payload of a Size value
func (v Value) Uint() (uint64, bool) {
	return v.size, v.Valid && v.Column == Size
}

// Time returns the payload of a Created value
func (v Value) Time() (time.Time, bool) {
	return v.time, v.Valid && v.Column == Created
}

// EntryKind returns the payload of a Type value
func (v Value) EntryKind() (EntryKind, bool) {
	return v.kind, v.Valid && v.Column == Type
}

func isText(c Column) bool {
	return c == Name || c == Path || c == FileExtension || c == AbsolutePath
}

// ValueOf extracts column c from src. It never fails: metadata that cannot
// be read produces an absent value tagged with c.
func ValueOf(src Source, c Column) Value {
	if src == nil {
		return NullValue()
	}
	switch c {
	case Name:
		return TextValue(Name, src.Name())
	case Path:
		if p, ok := src.Path(); ok {
			return TextValue(Path, p)
		}
	case Type:
		return TypeValue(src.Kind())
	case FileExtension:
		base := src.Name()
		if p, ok := src.Path(); ok {
			base = filepath.Base(p)
		}
		if ext, ok := extension(base); ok {
			return TextValue(FileExtension, ext)
		}
	case Size:
		if n, ok := src.Size(); ok {
			return SizeValue(n)
		}
	case AbsolutePath:
		if p, ok := src.AbsolutePath(); ok {
			return TextValue(AbsolutePath, p)
		}
	case Created:
		if t, ok := src.Created(); ok {
			return CreatedValue(t)
		}
	default:
		return NullValue()
	}
	return Absent(c)
}

// extension returns the text after the final dot of a file name.
// Names without a dot, and dot files such as ".profile", have none.
func extension(base string) (string, bool) {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

// String renders the value for CSV and console output. Absent payloads
// and the Null tag render as the empty string.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	switch v.Column {
	case Size:
		return strconv.FormatUint(v.size, 10)
	case Type:
		return v.kind.String()
	case Created:
		return v.time.Format(time.RFC3339Nano)
	case Null:
		return ""
	default:
		return v.text
	}
}

// Compare orders values by column tag, then presence (absent first), then payload
func Compare(a, b Value) int {
	if a.Column != b.Column {
		return cmpInt(int(a.Column), int(b.Column))
	}
	if a.Valid != b.Valid {
		if a.Valid {
			return 1
		}
		return -1
	}
	if !a.Valid {
		return 0
	}
	switch a.Column {
	case Size:
		switch {
		case a.size < b.size:
			return -1
		case a.size > b.size:
			return 1
		}
		return 0
	case Type:
		return cmpInt(int(a.kind), int(b.kind))
	case Created:
		return a.time.Compare(b.time)
	default:
		return strings.Compare(a.text, b.text)
	}
}

// Equal reports structural equality
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Add is defined only between two Size values. An absent operand yields
// an absent Size.
func Add(a, b Value) (Value, error) {
	if a.Column != Size || b.Column != Size {
		return Value{}, errs.General("operator + is not defined for columns %s and %s", a.Column, b.Column)
	}
	if !a.Valid || !b.Valid {
		return Absent(Size), nil
	}
	return SizeValue(a.size + b.size), nil
}

// Literal converts the value into a constant. Size becomes a Number,
// absent payloads and Null become Null, everything else is Text.
func (v Value) Literal() Literal {
	if !v.Valid || v.Column == Null {
		return NullLiteral()
	}
	if v.Column == Size {
		return Number(strconv.FormatUint(v.size, 10))
	}
	return Text(v.String())
}

// JoinKey is the hashable form of a Value. Keys of different columns
// never compare equal.
type JoinKey struct {
	Column Column
	Valid  bool
	Text   string
	Size   uint64
	Nanos  int64
	Kind   EntryKind
}

// Key returns the join key of v
func (v Value) Key() JoinKey {
	k := JoinKey{Column: v.Column, Valid: v.Valid}
	if !v.Valid {
		return k
	}
	switch v.Column {
	case Size:
		k.Size = v.size
	case Type:
		k.Kind = v.kind
	case Created:
		k.Nanos = v.time.UnixNano()
	default:
		k.Text = v.text
	}
	return k
}
