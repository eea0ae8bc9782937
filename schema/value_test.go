package schema

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/vegasq/fsql/errs"
)

// fakeSource is an entry whose metadata reads can be switched off
type fakeSource struct {
	name    string
	path    string
	kind    EntryKind
	size    uint64
	created time.Time
	broken  bool
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Path() (string, bool) { return f.path, f.path != "" }

func (f fakeSource) Kind() EntryKind { return f.kind }

func (f fakeSource) Size() (uint64, bool) { return f.size, !f.broken }

func (f fakeSource) Created() (time.Time, bool) {
	return f.created, !f.broken && !f.created.IsZero()
}

func (f fakeSource) AbsolutePath() (string, bool) {
	if f.broken || f.path == "" {
		return "", false
	}
	return "/abs/" + f.path, true
}

func TestValueOf(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 500, time.FixedZone("X", 3600))
	src := fakeSource{name: "3.md", path: "test/3.md", kind: KindFile, size: 42, created: created}

	tests := []struct {
		col  Column
		want string
	}{
		{Name, "3.md"},
		{Path, "test/3.md"},
		{Type, "file"},
		{FileExtension, "md"},
		{Size, "42"},
		{AbsolutePath, "/abs/test/3.md"},
		{Created, "2024-03-01T11:30:00.0000005Z"},
	}

	for _, tt := range tests {
		t.Run(tt.col.String(), func(t *testing.T) {
			v := ValueOf(src, tt.col)
			if v.Column != tt.col {
				t.Errorf("tag = %v, want %v", v.Column, tt.col)
			}
			if !v.Valid {
				t.Fatalf("expected present payload")
			}
			if v.String() != tt.want {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestValueOf_AbsentKeepsTag(t *testing.T) {
	src := fakeSource{name: "gone", broken: true}
	for _, c := range []Column{Path, Type, FileExtension, Size, AbsolutePath, Created} {
		v := ValueOf(src, c)
		if v.Column != c {
			t.Errorf("ValueOf(%v) tag = %v", c, v.Column)
		}
		if v.Valid {
			t.Errorf("ValueOf(%v) expected absent payload, got %q", c, v.String())
		}
		if v.String() != "" {
			t.Errorf("absent %v renders %q, want empty", c, v.String())
		}
	}
	if v := ValueOf(src, Name); !v.Valid || v.String() != "gone" {
		t.Errorf("name must always be present, got %+v", v)
	}
}

func TestValueOf_NilSourceIsNull(t *testing.T) {
	v := ValueOf(nil, Size)
	if v.Column != Null || v.String() != "" {
		t.Errorf("ValueOf(nil) = %+v, want Null", v)
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"3.md", "md", true},
		{"archive.tar.gz", "gz", true},
		{"one", "", false},
		{".profile", "", false},
		{"trailing.", "", true},
	}
	for _, tt := range tests {
		got, ok := extension(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("extension(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAdd(t *testing.T) {
	sum, err := Add(SizeValue(40), SizeValue(2))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if n, ok := sum.Uint(); !ok || n != 42 {
		t.Errorf("Add() = %v, want 42", sum)
	}

	sum, err = Add(SizeValue(1), Absent(Size))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if sum.Valid || sum.Column != Size {
		t.Errorf("Add() with absent operand = %+v, want absent Size", sum)
	}

	pairs := [][2]Value{
		{TextValue(Name, "a"), TextValue(Name, "b")},
		{SizeValue(1), TextValue(Name, "b")},
		{TypeValue(KindFile), SizeValue(1)},
		{NullValue(), SizeValue(1)},
	}
	for _, p := range pairs {
		if _, err := Add(p[0], p[1]); !errors.Is(err, errs.ErrGeneral) {
			t.Errorf("Add(%v, %v) error = %v, want general error", p[0].Column, p[1].Column, err)
		}
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	values := []Value{
		SizeValue(10),
		TextValue(Name, "b"),
		Absent(Size),
		TextValue(Name, "a"),
		NullValue(),
		SizeValue(2),
		TypeValue(KindDir),
		TypeValue(KindFile),
	}
	sort.Slice(values, func(i, j int) bool { return Compare(values[i], values[j]) < 0 })

	want := []string{"", "a", "b", "file", "dir", "", "2", "10"}
	for i, v := range values {
		if v.String() != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, v.String(), want[i])
		}
	}
	if !Equal(TextValue(Name, "x"), TextValue(Name, "x")) {
		t.Error("equal payloads must compare equal")
	}
	if Equal(TextValue(Name, "x"), TextValue(Path, "x")) {
		t.Error("different tags must not compare equal")
	}
}

func TestKey(t *testing.T) {
	if TextValue(Name, "x").Key() == TextValue(Path, "x").Key() {
		t.Error("keys of different columns must differ")
	}
	if SizeValue(3).Key() != SizeValue(3).Key() {
		t.Error("equal sizes must share a key")
	}
	a := CreatedValue(time.Unix(100, 5))
	b := CreatedValue(time.Unix(100, 5).In(time.FixedZone("Y", -7200)))
	if a.Key() != b.Key() {
		t.Error("equal instants must share a key regardless of zone")
	}
}

func TestValue_Literal(t *testing.T) {
	tests := []struct {
		v    Value
		want Literal
	}{
		{SizeValue(7), Number("7")},
		{TextValue(Name, "n"), Text("n")},
		{TypeValue(KindDir), Text("dir")},
		{Absent(Size), NullLiteral()},
		{NullValue(), NullLiteral()},
	}
	for _, tt := range tests {
		if got := tt.v.Literal(); got != tt.want {
			t.Errorf("%+v.Literal() = %+v, want %+v", tt.v, got, tt.want)
		}
	}
}
