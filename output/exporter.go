package output

import (
	"io"
	"os"
	"path/filepath"

	"github.com/vegasq/fsql/errs"
	"github.com/vegasq/fsql/query"
)

// Exporter writes INSERT results to files. FormatPrint results go to
// Stdout as a console table instead of a file.
type Exporter struct {
	Stdout io.Writer

	newFormatter func(query.Format, io.Writer) Formatter
}

// NewExporter creates an exporter that prints to stdout
func NewExporter(stdout io.Writer) *Exporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Exporter{Stdout: stdout, newFormatter: fileFormatter}
}

// fileFormatter is New with CSV cells written unchanged
func fileFormatter(format query.Format, w io.Writer) Formatter {
	f := New(format, w)
	if c, ok := f.(*CSVFormatter); ok {
		c.Raw = true
	}
	return f
}

// Export implements query.Exporter. The file is written next to target
// and renamed over it once complete, so a failed export leaves any
// existing target untouched.
func (e *Exporter) Export(target string, format query.Format, rs *query.ResultSet) (err error) {
	if format == query.FormatPrint {
		return New(format, e.Stdout).Format(rs)
	}

	newFormatter := e.newFormatter
	if newFormatter == nil {
		newFormatter = fileFormatter
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return errs.IO(err, "failed to create %s", target)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := newFormatter(format, tmp).Format(rs); err != nil {
		return errs.IO(err, "failed to write %s", target)
	}
	if err := tmp.Close(); err != nil {
		return errs.IO(err, "failed to close %s", target)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errs.IO(err, "failed to set permissions on %s", target)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return errs.IO(err, "failed to replace %s", target)
	}
	return nil
}
