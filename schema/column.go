// Package schema defines the closed column model exposed by filesystem rows.
//
// A directory entry exposes exactly seven columns, always in the same
// canonical order: Name, Path, Type, FileExtension, Size, AbsolutePath and
// Created. Every extracted cell is a Value tagged with the column that
// produced it. A Value whose metadata could not be read keeps its tag and
// reports an absent payload instead of an error.
//
// Example usage:
//
//	col, err := schema.KindOf("file_extension")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(schema.ValueOf(row, col))
package schema

import (
	"io/fs"
	"strings"

	"github.com/vegasq/fsql/errs"
)

// Column identifies one metadata facet of a directory entry
type Column int

const (
	// Null is the tag rendered for cells of a missing outer-join row.
	// It is not part of the canonical column list.
	Null Column = iota
	Name
	Path
	Type
	FileExtension
	Size
	AbsolutePath
	Created
)

var canonical = []Column{Name, Path, Type, FileExtension, Size, AbsolutePath, Created}

// Columns returns the canonical column list
func Columns() []Column {
	cols := make([]Column, len(canonical))
	copy(cols, canonical)
	return cols
}

// String returns the canonical display name
func (c Column) String() string {
	switch c {
	case Name:
		return "Name"
	case Path:
		return "Path"
	case Type:
		return "Type"
	case FileExtension:
		return "FileExtension"
	case Size:
		return "Size"
	case AbsolutePath:
		return "AbsolutePath"
	case Created:
		return "Created"
	default:
		return "Null"
	}
}

var spellings = map[string]Column{
	"name":           Name,
	"path":           Path,
	"type":           Type,
	"filetype":       Type,
	"file_type":      Type,
	"extension":      FileExtension,
	"fileextension":  FileExtension,
	"file_extension": FileExtension,
	"size":           Size,
	"absolutepath":   AbsolutePath,
	"absolute_path":  AbsolutePath,
	"created":        Created,
}

// KindOf resolves a case-insensitive column name
func KindOf(ident string) (Column, error) {
	if c, ok := spellings[strings.ToLower(strings.TrimSpace(ident))]; ok {
		return c, nil
	}
	return Null, errs.General("unknown column %q", ident)
}

// EntryKind is the type of a directory entry
type EntryKind int

const (
	// KindUnknown marks an entry whose type could not be determined
	KindUnknown EntryKind = iota
	KindFile
	KindDir
	KindSymlink
	KindOther
)

// KindFromMode classifies a file mode
func KindFromMode(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	case KindOther:
		return "other"
	default:
		return ""
	}
}
