package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vegasq/fsql/internal/config"
	"github.com/vegasq/fsql/internal/logging"
	"github.com/vegasq/fsql/output"
	"github.com/vegasq/fsql/parser"
	"github.com/vegasq/fsql/query"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("fsql", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFlag := flags.String("config", "", "Path to a YAML config file")
	formatFlag := flags.String("f", "", "Output format: table, csv, json (default from config, else table)")
	logLevelFlag := flags.String("log-level", "", "Log level: debug, info, warn, error")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fsql [options] <sql> [dialect]\n\n")
		fmt.Fprintf(stderr, "Query directories with SQL. Directories are tables, entries are rows.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE the SQL argument.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nDialects: %s (default %s)\n", strings.Join(parser.DialectNames(), ", "), parser.DefaultDialect.Name)
		fmt.Fprintf(stderr, "\nColumns: Name, Path, Type, FileExtension, Size, AbsolutePath, Created\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fsql \"SELECT Name, Size FROM [./docs]\"\n")
		fmt.Fprintf(stderr, "  fsql -f csv \"SELECT TOP 10 * FROM [/tmp]\"\n")
		fmt.Fprintf(stderr, "  fsql \"SELECT Name FROM `./docs`\" generic\n")
		fmt.Fprintf(stderr, "  fsql \"INSERT INTO out.parquet SELECT Name, Size FROM [.]\"\n")
		fmt.Fprintf(stderr, "  fsql \"SHOW COLUMNS FROM [.]\"\n")
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if flags.NArg() < 1 || flags.NArg() > 2 {
		fmt.Fprintf(stderr, "Error: expected an SQL argument and an optional dialect\n\n")
		flags.Usage()
		return 1
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *formatFlag != "" {
		cfg.Format = *formatFlag
	}
	if *logLevelFlag != "" {
		cfg.Log.Level = *logLevelFlag
	}
	if flags.NArg() == 2 {
		cfg.Dialect = flags.Arg(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.New(cfg.Logging(), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	dialect, err := parser.LookupDialect(cfg.Dialect)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	exec := query.NewExecutor(output.NewExporter(stdout), dialect, logger)
	results, err := exec.ExecuteSQL(flags.Arg(0))

	// results of the statements that ran before a failure are still shown
	for _, rs := range results {
		if perr := printResult(stdout, cfg.Format, rs); perr != nil {
			fmt.Fprintf(stderr, "Error formatting output: %v\n", perr)
			return 1
		}
	}

	if err != nil {
		logger.Error("statement failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// printResult writes one statement result to stdout
func printResult(w io.Writer, format string, rs *query.ResultSet) error {
	switch rs.Kind {
	case query.StatementShowColumns:
		_, err := fmt.Fprintln(w, strings.Join(rs.ColumnNames(), ", "))
		return err
	case query.StatementInsert:
		// printed targets were already written by the exporter
		if rs.Format != query.FormatPrint {
			_, err := fmt.Fprintf(w, "%d rows exported to %s\n", len(rs.Rows), rs.Target)
			return err
		}
		return nil
	}

	var formatter output.Formatter
	switch strings.ToLower(format) {
	case config.FormatCSV:
		formatter = output.NewCSVFormatter(w)
	case config.FormatJSON:
		formatter = output.NewJSONFormatter(w)
	default:
		formatter = output.NewTableFormatter(w)
	}
	return formatter.Format(rs)
}
