package query

import (
	"os"
	"sort"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/fsql/errs"
)

type scenarioFile struct {
	Tables    map[string]map[string]string `yaml:"tables"`
	Scenarios []scenario                   `yaml:"scenarios"`
}

type scenario struct {
	Name    string     `yaml:"name"`
	SQL     string     `yaml:"sql"`
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
	Count   *int       `yaml:"count"`
	Error   string     `yaml:"error"`
}

func loadScenarios(t *testing.T) scenarioFile {
	t.Helper()
	data, err := os.ReadFile("testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("failed to read scenarios: %v", err)
	}
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("failed to decode scenarios: %v", err)
	}
	if len(f.Scenarios) == 0 {
		t.Fatal("no scenarios")
	}
	return f
}

func sortedRows(rows [][]string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = strings.Join(row, "|")
	}
	sort.Strings(out)
	return out
}

func TestScenarios(t *testing.T) {
	f := loadScenarios(t)

	for _, sc := range f.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			sql := sc.SQL
			for name, files := range f.Tables {
				sql = strings.ReplaceAll(sql, "{"+name+"}", createTable(t, files))
			}

			results, err := newTestExecutor(nil).ExecuteSQL(sql)
			if sc.Error != "" {
				if err == nil {
					t.Fatalf("expected %s", sc.Error)
				}
				if got := errs.KindOf(err).String(); got != sc.Error {
					t.Errorf("error kind = %q, want %q (%v)", got, sc.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExecuteSQL() error = %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("got %d results, want 1", len(results))
			}
			rs := results[0]

			if sc.Columns != nil && !equalStrings(rs.ColumnNames(), sc.Columns) {
				t.Errorf("columns = %v, want %v", rs.ColumnNames(), sc.Columns)
			}
			if sc.Count != nil && len(rs.Rows) != *sc.Count {
				t.Errorf("got %d rows, want %d", len(rs.Rows), *sc.Count)
			}
			if sc.Rows != nil {
				got, want := sortedRows(rs.Strings()), sortedRows(sc.Rows)
				if !equalStrings(got, want) {
					t.Errorf("rows = %v, want %v", got, want)
				}
			}
		})
	}
}
