package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestTable creates the one, two, 3.md directory used by most tests
func createTestTable(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{"one": "1", "two": "22", "3.md": "333"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_SelectName(t *testing.T) {
	dir := createTestTable(t)

	code, stdout, stderr := runCLI(t, "SELECT Name FROM ["+dir+"]")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	for _, want := range []string{"3.md", "one", "two"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_CSV(t *testing.T) {
	dir := createTestTable(t)

	code, stdout, stderr := runCLI(t, "-f", "csv", "SELECT TOP 1 Name, Size FROM ["+dir+"]")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	if err != nil {
		t.Fatalf("stdout is not CSV: %v", err)
	}
	if len(records) != 2 || strings.Join(records[0], ",") != "Name,Size" {
		t.Errorf("records = %v", records)
	}
}

func TestRun_JSON(t *testing.T) {
	dir := createTestTable(t)

	code, stdout, stderr := runCLI(t, "-f", "json", "SELECT Name FROM ["+dir+"] WHERE 1 = 2")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	var rows [][]string
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v", rows)
	}
}

func TestRun_GenericDialect(t *testing.T) {
	dir := createTestTable(t)

	code, stdout, stderr := runCLI(t, "-f", "csv", "SELECT Name FROM `"+dir+"`", "generic")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "3.md") {
		t.Errorf("stdout = %s", stdout)
	}
}

func TestRun_ShowColumns(t *testing.T) {
	code, stdout, _ := runCLI(t, "SHOW COLUMNS FROM anything")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	want := "Name, Path, Type, FileExtension, Size, AbsolutePath, Created\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_Insert(t *testing.T) {
	dir := createTestTable(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	code, stdout, stderr := runCLI(t, "INSERT INTO ["+target+"] SELECT Name FROM ["+dir+"]")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "3 rows exported") {
		t.Errorf("stdout = %q", stdout)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "Name\n") {
		t.Errorf("export = %q", string(data))
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := createTestTable(t)
	cfgPath := filepath.Join(t.TempDir(), "fsql.yaml")
	if err := os.WriteFile(cfgPath, []byte("format: json\ndialect: generic\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	code, stdout, stderr := runCLI(t, "-config", cfgPath, "SELECT Name FROM `"+dir+"`")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(strings.TrimSpace(stdout), "[[") {
		t.Errorf("stdout = %q, want JSON", stdout)
	}

	// flags override the file
	code, stdout, _ = runCLI(t, "-config", cfgPath, "-f", "csv", "SELECT Name FROM `"+dir+"`")
	if code != 0 || !strings.HasPrefix(stdout, "Name\n") {
		t.Errorf("exit code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_DebugLogging(t *testing.T) {
	dir := createTestTable(t)

	code, _, stderr := runCLI(t, "-log-level", "debug", "SELECT Name FROM ["+dir+"]")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stderr, "loaded table") {
		t.Errorf("stderr = %q, want debug log", stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := createTestTable(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no arguments", nil, "expected an SQL argument"},
		{"too many arguments", []string{"SELECT Name FROM x", "mssql", "extra"}, "expected an SQL argument"},
		{"missing table", []string{"SELECT Name FROM [" + filepath.Join(dir, "missing") + "]"}, "io error"},
		{"unknown column", []string{"SELECT Colour FROM [" + dir + "]"}, "general error"},
		{"syntax", []string{"SELECT FROM"}, "parse error"},
		{"unknown dialect", []string{"SELECT Name FROM x", "oracle"}, "unknown dialect"},
		{"unknown format", []string{"-f", "xml", "SELECT Name FROM x"}, "unknown output format"},
		{"unknown flag", []string{"-q", "SELECT Name FROM x"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr, "Usage: fsql") {
		t.Errorf("stderr = %q", stderr)
	}
}
