package dataset

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const readBufferSize = 1 << 20

// Load reads a gzip-compressed, tab-separated table with a header row.
// The file is decompressed as a stream straight into the row parser.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer zr.Close()

	return ReadTSV(path, zr)
}

// ReadTSV parses tab-separated text with a header row. Blank lines are
// skipped; any other row must have one field per header column.
func ReadTSV(path string, r io.Reader) (*Table, error) {
	br := bufio.NewReaderSize(r, readBufferSize)

	var table *Table
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}
		if line != "" {
			lineNo++
			line = strings.TrimRight(line, "\r\n")
			if line != "" {
				fields := strings.Split(line, "\t")
				if table == nil {
					table = NewTable(TableName(path), fields)
				} else if appendErr := table.Append(fields); appendErr != nil {
					return nil, &ParseError{Path: path, Line: lineNo, Err: appendErr}
				}
			}
		}
		if err == io.EOF {
			break
		}
	}

	if table == nil {
		return nil, &ParseError{Path: path, Err: ErrEmptyTable}
	}
	return table, nil
}
