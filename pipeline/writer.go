package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"series-extract/dataset"
)

// Output is a table and the file name it is written to
type Output struct {
	File  string
	Table *dataset.Table
}

// WriteOutputs writes each table as comma-separated text with a header row
// into dir, creating dir when needed. It stops at the first failure; files
// written before it are left in place.
func WriteOutputs(dir string, outputs []Output) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &dataset.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	var written []string
	for _, out := range outputs {
		path := filepath.Join(dir, out.File)
		if err := writeCSV(path, out.Table); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeCSV(path string, table *dataset.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &dataset.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &dataset.IOError{Op: "close", Path: path, Err: closeErr}
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header()); err != nil {
		return &dataset.IOError{Op: "write", Path: path, Err: err}
	}
	for i := 0; i < table.Len(); i++ {
		if err := w.Write(table.Row(i).Values()); err != nil {
			return &dataset.IOError{Op: "write", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &dataset.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
