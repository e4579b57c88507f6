// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ReadCSV reads comma-separated values from r. The first record names
// the columns.
func ReadCSV(r io.Reader) (*table.Table, error) {
	return readDelimited(r, ',')
}

// ReadTSV reads tab-separated values from r. The first record names
// the columns.
func ReadTSV(r io.Reader) (*table.Table, error) {
	return readDelimited(r, '\t')
}

func readDelimited(r io.Reader, comma rune) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	// TrimLeadingSpace would swallow empty tab-separated fields.
	cr.TrimLeadingSpace = comma != '\t'
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	return fromRecords(records[0], records[1:])
}

// LoadCSV reads a CSV file.
func LoadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load reads a table from path, choosing the format by extension:
// .csv, .tsv, .xlsx (first sheet), or anything else as Go benchmark
// results.
func Load(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var t *table.Table
	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		t, err = ReadTSV(f)
	} else {
		t, err = ReadBenchmarks(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
