package reader

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/schema"
)

// createTestTable creates a directory holding the named files and subdirectories
func createTestTable(t *testing.T, files map[string]string, dirs ...string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	for _, name := range dirs {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadTable(t *testing.T) {
	dir := createTestTable(t, map[string]string{"one": "1", "two": "22", "3.md": "# three"}, "sub")
	if err := os.WriteFile(filepath.Join(dir, "sub", "nested.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create nested file: %v", err)
	}

	rows, err := LoadTable(dir)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	var names []string
	for _, r := range rows {
		names = append(names, r.Name())
		p, ok := r.Path()
		if !ok || filepath.Dir(p) != dir {
			t.Errorf("row %s path = %q, want a direct child of %s", r.Name(), p, dir)
		}
	}
	sort.Strings(names)
	want := []string{"3.md", "one", "sub", "two"}
	if len(names) != len(want) {
		t.Fatalf("LoadTable() returned %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestLoadTable_Kinds(t *testing.T) {
	dir := createTestTable(t, map[string]string{"file.txt": "hello"}, "folder")
	if err := os.Symlink(filepath.Join(dir, "file.txt"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rows, err := LoadTable(dir)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	kinds := map[string]schema.EntryKind{}
	for _, r := range rows {
		kinds[r.Name()] = r.Kind()
	}
	if kinds["file.txt"] != schema.KindFile {
		t.Errorf("file.txt kind = %v", kinds["file.txt"])
	}
	if kinds["folder"] != schema.KindDir {
		t.Errorf("folder kind = %v", kinds["folder"])
	}
	if kinds["link"] != schema.KindSymlink {
		t.Errorf("link kind = %v", kinds["link"])
	}
}

func TestLoadTable_Missing(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("LoadTable() error = %v, want io error", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected cause to be os.ErrNotExist, got %v", err)
	}
}

func TestLoadTable_Empty(t *testing.T) {
	rows, err := LoadTable(t.TempDir())
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestRow_Metadata(t *testing.T) {
	dir := createTestTable(t, map[string]string{"data.csv": "a,b\n1,2\n"})
	rows, err := LoadTable(dir)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]

	size, ok := row.Size()
	if !ok || size != 8 {
		t.Errorf("Size() = %d, %v; want 8, true", size, ok)
	}

	abs, ok := row.AbsolutePath()
	if !ok || !filepath.IsAbs(abs) || filepath.Base(abs) != "data.csv" {
		t.Errorf("AbsolutePath() = %q, %v", abs, ok)
	}

	if v := row.Value(schema.FileExtension); v.String() != "csv" {
		t.Errorf("FileExtension = %q, want csv", v.String())
	}
}

func TestRow_MetadataReadOnEveryAccess(t *testing.T) {
	dir := createTestTable(t, map[string]string{"grow": "a"})
	rows, err := LoadTable(dir)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	row := rows[0]
	if v := row.Value(schema.Size); v.String() != "1" {
		t.Fatalf("initial size = %q", v.String())
	}

	if err := os.WriteFile(filepath.Join(dir, "grow"), []byte("abcd"), 0o644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	if v := row.Value(schema.Size); v.String() != "4" {
		t.Errorf("size after rewrite = %q, want 4", v.String())
	}
}

func TestRow_DeletedAfterEnumeration(t *testing.T) {
	dir := createTestTable(t, map[string]string{"gone.txt": "bye"})
	rows, err := LoadTable(dir)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "gone.txt")); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	row := rows[0]
	for _, c := range []schema.Column{schema.Size, schema.Created, schema.AbsolutePath} {
		v := row.Value(c)
		if v.Valid {
			t.Errorf("%v of deleted entry = %q, want absent", c, v.String())
		}
		if v.Column != c {
			t.Errorf("%v tag changed to %v", c, v.Column)
		}
	}
	// facts captured at enumeration survive
	if v := row.Value(schema.Name); v.String() != "gone.txt" {
		t.Errorf("Name = %q", v.String())
	}
	if v := row.Value(schema.FileExtension); v.String() != "txt" {
		t.Errorf("FileExtension = %q", v.String())
	}
}

func TestRow_CompareByPath(t *testing.T) {
	a := NewRow("x", "dir/a", schema.KindFile)
	b := NewRow("x", "dir/b", schema.KindDir)
	a2 := NewRow("other", "dir/a", schema.KindDir)

	if !a.Equal(a2) {
		t.Error("rows with the same path must be equal")
	}
	if a.Equal(b) {
		t.Error("rows with different paths must differ")
	}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 {
		t.Error("rows must order by path")
	}
}

func TestRow_NoPath(t *testing.T) {
	r := NewRow("orphan", "", schema.KindUnknown)
	for _, c := range []schema.Column{schema.Path, schema.Type, schema.Size, schema.Created, schema.AbsolutePath} {
		if v := r.Value(c); v.Valid {
			t.Errorf("%v = %q, want absent", c, v.String())
		}
	}
}
