package query

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/vegasq/fsql/parser"
)

// createTable creates a directory with the given files (name -> content)
func createTable(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

// createScenarioTable creates the canonical one, two, 3.md table
func createScenarioTable(t *testing.T) string {
	t.Helper()
	return createTable(t, map[string]string{"one": "1", "two": "22", "3.md": "333"})
}

// run parses and executes a single statement
func run(t *testing.T, exec *Executor, sql string) *ResultSet {
	t.Helper()
	results, err := exec.ExecuteSQL(sql)
	if err != nil {
		t.Fatalf("ExecuteSQL(%q) error = %v", sql, err)
	}
	if len(results) != 1 {
		t.Fatalf("ExecuteSQL(%q) returned %d results, want 1", sql, len(results))
	}
	return results[0]
}

// column returns one column of a result as sorted display strings
func column(rs *ResultSet, i int) []string {
	var out []string
	for _, row := range rs.Rows {
		out = append(out, row[i].String())
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// recordingExporter keeps every exported result
type recordingExporter struct {
	targets []string
	formats []Format
	sets    []*ResultSet
	err     error
}

func (r *recordingExporter) Export(target string, format Format, rs *ResultSet) error {
	if r.err != nil {
		return r.err
	}
	r.targets = append(r.targets, target)
	r.formats = append(r.formats, format)
	r.sets = append(r.sets, rs)
	return nil
}

func newTestExecutor(exp Exporter) *Executor {
	return NewExecutor(exp, parser.MSSQL, nil)
}
