// Package reader binds table names to directories and exposes their entries as rows.
//
// A table is one level of a directory listing. Each entry becomes a Row that
// snapshots its name, path and entry type at enumeration time. Everything else
// (size, creation time, absolute path) is read from the filesystem on every
// access and reported as absent when the read fails.
//
// # Basic Usage
//
// Loading a table:
//
//	rows, err := reader.LoadTable("./test")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, row := range rows {
//	    size, ok := row.Size()
//	    fmt.Println(row.Name(), size, ok)
//	}
//
// # Ordering
//
// Rows are returned in the order the filesystem lists them. Rows compare
// by path only, see Row.Compare.
//
// # Creation Time
//
// Creation time comes from statx on Linux, st_birthtimespec on Darwin and
// FreeBSD, and the file attribute data on Windows. Other platforms, and
// filesystems that do not record a birth time, report it as absent.
package reader
