package reader

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/schema"
)

// Row is one directory entry
type Row struct {
	name string
	path string
	kind schema.EntryKind
}

// NewRow creates a row from already known entry facts.
// An empty path or schema.KindUnknown mark those facts as absent.
func NewRow(name, path string, kind schema.EntryKind) *Row {
	return &Row{name: name, path: path, kind: kind}
}

// Name returns the entry name
func (r *Row) Name() string {
	return r.name
}

// Path returns the entry path as listed under the table directory
func (r *Row) Path() (string, bool) {
	return r.path, r.path != ""
}

// Kind returns the entry type captured at enumeration
func (r *Row) Kind() schema.EntryKind {
	return r.kind
}

// Size stats the entry and returns its length in bytes
func (r *Row) Size() (uint64, bool) {
	if r.path == "" {
		return 0, false
	}
	info, err := os.Stat(r.path)
	if err != nil || info.Size() < 0 {
		return 0, false
	}
	return uint64(info.Size()), true
}

// Created returns the entry birth time when the platform records one
func (r *Row) Created() (time.Time, bool) {
	if r.path == "" {
		return time.Time{}, false
	}
	return birthTime(r.path)
}

// AbsolutePath resolves the entry path against the working directory.
// An entry that no longer exists has no absolute path.
func (r *Row) AbsolutePath() (string, bool) {
	if r.path == "" {
		return "", false
	}
	if _, err := os.Lstat(r.path); err != nil {
		return "", false
	}
	abs, err := filepath.Abs(r.path)
	if err != nil {
		return "", false
	}
	return abs, true
}

// Value extracts one column of the row
func (r *Row) Value(c schema.Column) schema.Value {
	return schema.ValueOf(r, c)
}

// Compare orders rows by path
func (r *Row) Compare(other *Row) int {
	return strings.Compare(r.path, other.path)
}

// Equal reports whether two rows name the same path
func (r *Row) Equal(other *Row) bool {
	return r.path == other.path
}

// LoadTable lists one level of dir. The rows keep the filesystem order.
func LoadTable(dir string) ([]*Row, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, errs.IO(err, "failed to open table %s", dir)
	}
	defer func() { _ = f.Close() }()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, errs.IO(err, "failed to list table %s", dir)
	}

	rows := make([]*Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, &Row{
			name: entry.Name(),
			path: filepath.Join(dir, entry.Name()),
			kind: schema.KindFromMode(entry.Type()),
		})
	}

	return rows, nil
}
