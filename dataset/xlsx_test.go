// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				t.Fatal(err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"first": {
			{"group", "value"},
			{"a", 1},
			{"b", 2},
		},
		"second": {
			{"label"},
			{"x"},
		},
	}, []string{"first", "second"})

	tab, err := ReadXLSX(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tab.Column("group")); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, tab.Column("value")); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}

	tab, err = ReadXLSX(path, "second")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x"}, tab.Column("label")); diff != "" {
		t.Errorf("label mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadXLSX(path, "missing"); err == nil {
		t.Error("want error for missing sheet")
	}

	tab, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"group", "value"}, tab.Columns()); diff != "" {
		t.Errorf("Load columns mismatch (-want +got):\n%s", diff)
	}
}
